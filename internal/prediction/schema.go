package prediction

import "github.com/sashabaranov/go-openai/jsonschema"

const schemaName = "delivery_risk"

// Schema is the structured output the model must return.
func Schema() jsonschema.Definition {
	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"delayRisk": {
				Type:        jsonschema.Integer,
				Description: "Risk percentage 0-100",
			},
			"adjustedDeliveryTime": {
				Type:        jsonschema.String,
				Description: "ISO date string",
			},
			"reasoning": {
				Type:        jsonschema.String,
				Description: "Detailed explanation",
			},
			"factors": {
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"weather":   {Type: jsonschema.String, Enum: weatherValues},
					"traffic":   {Type: jsonschema.String, Enum: trafficValues},
					"logistics": {Type: jsonschema.String, Enum: logisticsValues},
				},
				Required:             []string{"weather", "traffic", "logistics"},
				AdditionalProperties: false,
			},
		},
		Required:             []string{"delayRisk", "adjustedDeliveryTime", "reasoning", "factors"},
		AdditionalProperties: false,
	}
}
