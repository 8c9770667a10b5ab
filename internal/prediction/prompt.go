package prediction

import (
	"strings"
	"time"

	"parcel-tracker/internal/parcel"
)

const systemPrompt = "You are a logistics analyst estimating delivery risk for parcels in transit. " +
	"Answer only with the requested JSON object."

func BuildPrompt(p parcel.Parcel) string {
	var sb strings.Builder
	sb.WriteString("Analyze this parcel for delivery risks and predict a realistic delivery time.\n")
	sb.WriteString("Parcel ID: " + p.ID + "\n")
	sb.WriteString("Origin: " + p.Origin + "\n")
	sb.WriteString("Destination: " + p.Destination + "\n")
	sb.WriteString("Current Status: " + string(p.Status) + "\n")
	sb.WriteString("Weight: " + p.Weight + "\n")
	sb.WriteString("Last Updated: " + p.LastUpdated.Format(time.RFC3339) + "\n")
	sb.WriteString("Original Estimated Delivery: " + p.EstimatedDelivery.Format(time.RFC3339) + "\n")
	sb.WriteString("\nConsider hypothetical environmental factors like weather in " + p.Destination +
		" and current logistics trends.\n")
	sb.WriteString("Return the response in JSON format.")
	return sb.String()
}
