// README: Ride request collected from the form and sent to the prediction API.
package ride

import (
	"net/url"
	"strconv"

	"taxifare/internal/types"
)

const (
	MinPassengers = 1
	MaxPassengers = 8

	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Sample NYC coordinates used when a field is left untouched.
var (
	DefaultPickup  = types.Point{Lat: 40.783282, Lng: -73.950655}
	DefaultDropoff = types.Point{Lat: 40.769802, Lng: -73.984365}
)

type Request struct {
	PickupDatetime string      `json:"pickup_datetime"`
	Pickup         types.Point `json:"pickup"`
	Dropoff        types.Point `json:"dropoff"`
	PassengerCount int         `json:"passenger_count"`
}

// Query encodes the request as the prediction API's query parameters.
func (r Request) Query() url.Values {
	q := url.Values{}
	q.Set("pickup_datetime", r.PickupDatetime)
	q.Set("pickup_longitude", formatCoord(r.Pickup.Lng))
	q.Set("pickup_latitude", formatCoord(r.Pickup.Lat))
	q.Set("dropoff_longitude", formatCoord(r.Dropoff.Lng))
	q.Set("dropoff_latitude", formatCoord(r.Dropoff.Lat))
	q.Set("passenger_count", strconv.Itoa(r.PassengerCount))
	return q
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
