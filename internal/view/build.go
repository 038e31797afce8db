package view

import (
	"fmt"

	"taxifare/internal/modules/history"
	"taxifare/internal/modules/prediction"
	"taxifare/internal/modules/ride"
	"taxifare/internal/types"
)

const (
	Title = "Taxi Fare Prediction"

	MapZoom         = 11
	MarkerRadiusM   = 100
	PickupLabel     = "Pickup"
	DropoffLabel    = "Dropoff"
	successTemplate = "Estimated Fare: %s"
	failureTemplate = "Failed to get prediction: %v"
)

var markerColor = [3]uint8{255, 0, 0}

// Input is everything a page render depends on.
type Input struct {
	Request  ride.Request
	Outcome  *prediction.Outcome
	History  []history.Entry
	Pending  bool
	MapImage string
	Endpoint string
}

// Build is deterministic: equal inputs give equal pages.
func Build(in Input) Page {
	return Page{
		Title:    Title,
		Request:  in.Request,
		Pending:  in.Pending,
		Message:  ResultMessage(in.Outcome),
		Chart:    BuildChart(in.History),
		Map:      BuildMap(in.Request),
		MapImage: in.MapImage,
		Endpoint: in.Endpoint,
	}
}

// ResultMessage returns nil until something has been triggered.
func ResultMessage(o *prediction.Outcome) *Message {
	switch {
	case o == nil:
		return nil
	case o.Err != nil:
		return &Message{Kind: MessageError, Text: fmt.Sprintf(failureTemplate, o.Err)}
	case o.Fare != nil:
		return &Message{Kind: MessageSuccess, Text: fmt.Sprintf(successTemplate, o.Fare.Fare)}
	default:
		return nil
	}
}

// BuildChart collects history in insertion order with datetimes as
// categorical x labels. It returns nil for an empty history.
func BuildChart(entries []history.Entry) *Chart {
	if len(entries) == 0 {
		return nil
	}
	c := &Chart{
		Labels: make([]string, len(entries)),
		Values: make([]types.USD, len(entries)),
		YMin:   entries[0].Fare,
		YMax:   entries[0].Fare,
	}
	for i, e := range entries {
		c.Labels[i] = e.Datetime
		c.Values[i] = e.Fare
		c.YMin = min(c.YMin, e.Fare)
		c.YMax = max(c.YMax, e.Fare)
	}
	return c
}

// BuildMap places the two markers and labels from the current request.
func BuildMap(req ride.Request) Map {
	points := func() []MapMarker {
		return []MapMarker{
			{Position: req.Pickup, Label: PickupLabel},
			{Position: req.Dropoff, Label: DropoffLabel},
		}
	}
	return Map{
		Center:     types.Midpoint(req.Pickup, req.Dropoff),
		Zoom:       MapZoom,
		DistanceKm: types.DistanceKm(req.Pickup, req.Dropoff),
		Markers: MarkerLayer{
			RadiusMeters: MarkerRadiusM,
			Color:        markerColor,
			Points:       points(),
		},
		Labels: TextLayer{Points: points()},
	}
}
