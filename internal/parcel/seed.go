package parcel

import "time"

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// Seed returns a fresh copy of the demo dataset the service starts with.
func Seed() []Parcel {
	return []Parcel{
		{
			ID:                "PKG-1001",
			Sender:            "TechMart Inc.",
			Recipient:         "Alice Johnson",
			Origin:            "San Francisco, CA",
			Destination:       "Austin, TX",
			Status:            StatusInTransit,
			LastUpdated:       ts("2024-05-20T10:30:00Z"),
			EstimatedDelivery: ts("2024-05-22T18:00:00Z"),
			Weight:            "2.5 kg",
			Type:              "Electronics",
			History: []TrackingEvent{
				{Status: StatusOrdered, Location: "San Francisco, CA", Timestamp: ts("2024-05-18T09:00:00Z"), Description: "Order processed and package prepared."},
				{Status: StatusShipped, Location: "San Francisco Sorting Facility", Timestamp: ts("2024-05-19T14:20:00Z"), Description: "Package left the warehouse."},
				{Status: StatusInTransit, Location: "Phoenix, AZ Hub", Timestamp: ts("2024-05-20T10:30:00Z"), Description: "Package arrived at regional hub."},
			},
		},
		{
			ID:                "PKG-1002",
			Sender:            "Green Garden Co.",
			Recipient:         "Bob Smith",
			Origin:            "Portland, OR",
			Destination:       "Seattle, WA",
			Status:            StatusDelivered,
			LastUpdated:       ts("2024-05-19T15:45:00Z"),
			EstimatedDelivery: ts("2024-05-19T16:00:00Z"),
			Weight:            "5.0 kg",
			Type:              "Garden Supplies",
			History: []TrackingEvent{
				{Status: StatusOrdered, Location: "Portland, OR", Timestamp: ts("2024-05-17T11:00:00Z"), Description: "Order received."},
				{Status: StatusShipped, Location: "Portland Warehouse", Timestamp: ts("2024-05-18T08:00:00Z"), Description: "Package dispatched."},
				{Status: StatusOutForDelivery, Location: "Seattle, WA", Timestamp: ts("2024-05-19T09:00:00Z"), Description: "Package is with the local courier."},
				{Status: StatusDelivered, Location: "Seattle, WA", Timestamp: ts("2024-05-19T15:45:00Z"), Description: "Delivered to front porch."},
			},
		},
		{
			ID:                "PKG-1003",
			Sender:            "Fashion Hub",
			Recipient:         "Charlie Davis",
			Origin:            "New York, NY",
			Destination:       "Miami, FL",
			Status:            StatusDelayed,
			LastUpdated:       ts("2024-05-20T12:00:00Z"),
			EstimatedDelivery: ts("2024-05-21T17:00:00Z"),
			Weight:            "1.2 kg",
			Type:              "Apparel",
			History: []TrackingEvent{
				{Status: StatusOrdered, Location: "New York, NY", Timestamp: ts("2024-05-18T14:00:00Z"), Description: "Order placed."},
				{Status: StatusShipped, Location: "NY Logistics Center", Timestamp: ts("2024-05-19T10:00:00Z"), Description: "In transit to destination."},
				{Status: StatusDelayed, Location: "Atlanta, GA", Timestamp: ts("2024-05-20T12:00:00Z"), Description: "Weather delay at major hub."},
			},
		},
		{
			ID:                "PKG-1004",
			Sender:            "Book Worms",
			Recipient:         "Diana Prince",
			Origin:            "Chicago, IL",
			Destination:       "Denver, CO",
			Status:            StatusOutForDelivery,
			LastUpdated:       ts("2024-05-20T08:15:00Z"),
			EstimatedDelivery: ts("2024-05-20T18:00:00Z"),
			Weight:            "0.8 kg",
			Type:              "Books",
			History: []TrackingEvent{
				{Status: StatusOrdered, Location: "Chicago, IL", Timestamp: ts("2024-05-17T16:00:00Z"), Description: "Processing order."},
				{Status: StatusShipped, Location: "Chicago Hub", Timestamp: ts("2024-05-18T09:00:00Z"), Description: "Departed sorting center."},
				{Status: StatusInTransit, Location: "Denver, CO Hub", Timestamp: ts("2024-05-19T20:00:00Z"), Description: "Arrived at destination city."},
				{Status: StatusOutForDelivery, Location: "Denver, CO", Timestamp: ts("2024-05-20T08:15:00Z"), Description: "Courier is on the way."},
			},
		},
	}
}
