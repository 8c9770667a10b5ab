package prediction

import (
	"errors"
	"fmt"
	"time"
)

type Weather string

const (
	WeatherGood Weather = "Good"
	WeatherFair Weather = "Fair"
	WeatherPoor Weather = "Poor"
)

type Traffic string

const (
	TrafficLow      Traffic = "Low"
	TrafficModerate Traffic = "Moderate"
	TrafficHigh     Traffic = "High"
)

type Logistics string

const (
	LogisticsEfficient  Logistics = "Efficient"
	LogisticsBacklogged Logistics = "Backlogged"
)

var (
	weatherValues   = []string{string(WeatherGood), string(WeatherFair), string(WeatherPoor)}
	trafficValues   = []string{string(TrafficLow), string(TrafficModerate), string(TrafficHigh)}
	logisticsValues = []string{string(LogisticsEfficient), string(LogisticsBacklogged)}
)

type Factors struct {
	Weather   Weather   `json:"weather"`
	Traffic   Traffic   `json:"traffic"`
	Logistics Logistics `json:"logistics"`
}

// Result is a delivery risk assessment for one parcel. It is built fresh for
// every request and never stored.
type Result struct {
	DelayRisk            int     `json:"delayRisk"`
	AdjustedDeliveryTime string  `json:"adjustedDeliveryTime"`
	Reasoning            string  `json:"reasoning"`
	Factors              Factors `json:"factors"`
}

// Accepted layouts for adjustedDeliveryTime. Models often drop the zone or the time.
var deliveryTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Validate reports every way r breaks the output contract.
func (r Result) Validate() error {
	var errs []error
	if r.DelayRisk < 0 || r.DelayRisk > 100 {
		errs = append(errs, fmt.Errorf("delayRisk %d outside 0-100", r.DelayRisk))
	}
	if !parsesAsDeliveryTime(r.AdjustedDeliveryTime) {
		errs = append(errs, fmt.Errorf("adjustedDeliveryTime %q is not an ISO-8601 timestamp", r.AdjustedDeliveryTime))
	}
	if r.Reasoning == "" {
		errs = append(errs, errors.New("reasoning is empty"))
	}
	if !oneOf(string(r.Factors.Weather), weatherValues) {
		errs = append(errs, fmt.Errorf("factors.weather %q not one of %v", r.Factors.Weather, weatherValues))
	}
	if !oneOf(string(r.Factors.Traffic), trafficValues) {
		errs = append(errs, fmt.Errorf("factors.traffic %q not one of %v", r.Factors.Traffic, trafficValues))
	}
	if !oneOf(string(r.Factors.Logistics), logisticsValues) {
		errs = append(errs, fmt.Errorf("factors.logistics %q not one of %v", r.Factors.Logistics, logisticsValues))
	}
	return errors.Join(errs...)
}

func parsesAsDeliveryTime(s string) bool {
	for _, layout := range deliveryTimeLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
