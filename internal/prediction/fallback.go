package prediction

import (
	"time"

	"parcel-tracker/internal/parcel"
)

const fallbackReasoning = "Based on historical average data for this route. (AI Analysis unavailable)"

// Fallback is the fixed prediction served whenever the model cannot produce a
// usable result. It depends only on the parcel's estimated delivery.
func Fallback(p parcel.Parcel) Result {
	return Result{
		DelayRisk:            15,
		AdjustedDeliveryTime: p.EstimatedDelivery.Format(time.RFC3339),
		Reasoning:            fallbackReasoning,
		Factors: Factors{
			Weather:   WeatherFair,
			Traffic:   TrafficModerate,
			Logistics: LogisticsEfficient,
		},
	}
}
