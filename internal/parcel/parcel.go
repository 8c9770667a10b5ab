package parcel

import "time"

// Status is the lifecycle stage of a parcel.
type Status string

const (
	StatusOrdered        Status = "Ordered"
	StatusShipped        Status = "Shipped"
	StatusInTransit      Status = "In Transit"
	StatusOutForDelivery Status = "Out for Delivery"
	StatusDelivered      Status = "Delivered"
	// StatusDelayed is not terminal; a delayed parcel may move on to any later stage.
	StatusDelayed Status = "Delayed"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{
	StatusOrdered,
	StatusShipped,
	StatusInTransit,
	StatusOutForDelivery,
	StatusDelivered,
	StatusDelayed,
}

func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusDelivered
}

// TrackingEvent is one state change in a parcel's history.
type TrackingEvent struct {
	Status      Status    `json:"status"`
	Location    string    `json:"location"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
}

// Parcel is a shipment record. History is ordered earliest first and its last
// entry always carries the parcel's current Status.
type Parcel struct {
	ID                string          `json:"id"`
	Sender            string          `json:"sender"`
	Recipient         string          `json:"recipient"`
	Origin            string          `json:"origin"`
	Destination       string          `json:"destination"`
	Status            Status          `json:"status"`
	LastUpdated       time.Time       `json:"lastUpdated"`
	EstimatedDelivery time.Time       `json:"estimatedDelivery"`
	Weight            string          `json:"weight"`
	Type              string          `json:"type"`
	History           []TrackingEvent `json:"history"`
}

func (p Parcel) clone() Parcel {
	c := p
	c.History = append([]TrackingEvent(nil), p.History...)
	return c
}

// Stats aggregates parcel counts for the dashboard. Ordered and Shipped parcels
// count toward Total only.
type Stats struct {
	Total     int `json:"total"`
	Delivered int `json:"delivered"`
	InTransit int `json:"inTransit"`
	Delayed   int `json:"delayed"`
}
