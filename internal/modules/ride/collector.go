// README: Input collector; turns raw form fields into a well-formed Request.
package ride

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Form holds the raw user-editable fields. Empty values mean "use the default".
type Form struct {
	PickupDate     string `form:"pickup_date" json:"pickup_date"`
	PickupTime     string `form:"pickup_time" json:"pickup_time"`
	PickupLat      string `form:"pickup_latitude" json:"pickup_latitude"`
	PickupLon      string `form:"pickup_longitude" json:"pickup_longitude"`
	DropoffLat     string `form:"dropoff_latitude" json:"dropoff_latitude"`
	DropoffLon     string `form:"dropoff_longitude" json:"dropoff_longitude"`
	PassengerCount string `form:"passenger_count" json:"passenger_count"`
}

// Default returns the request shown before the user edits anything.
func Default(now time.Time) Request {
	now = now.Truncate(time.Minute)
	return Request{
		PickupDatetime: now.Format(DateLayout) + " " + now.Format(TimeLayout),
		Pickup:         DefaultPickup,
		Dropoff:        DefaultDropoff,
		PassengerCount: MinPassengers,
	}
}

// Collect builds a Request from the form. It never fails: every field that is
// missing or unparseable falls back to its default.
func Collect(f Form, now time.Time) Request {
	now = now.Truncate(time.Minute)
	req := Default(now)

	date := strings.TrimSpace(f.PickupDate)
	if _, err := time.Parse(DateLayout, date); err != nil {
		date = now.Format(DateLayout)
	}
	req.PickupDatetime = date + " " + normalizeTime(f.PickupTime, now)

	req.Pickup.Lat = parseFloat(f.PickupLat, req.Pickup.Lat)
	req.Pickup.Lng = parseFloat(f.PickupLon, req.Pickup.Lng)
	req.Dropoff.Lat = parseFloat(f.DropoffLat, req.Dropoff.Lat)
	req.Dropoff.Lng = parseFloat(f.DropoffLon, req.Dropoff.Lng)

	if n, err := strconv.Atoi(strings.TrimSpace(f.PassengerCount)); err == nil {
		req.PassengerCount = ClampPassengers(n)
	}
	return req
}

// FormOf turns req back into form fields, so Collect(FormOf(req), now) == req.
func FormOf(req Request) Form {
	date, tm, _ := strings.Cut(req.PickupDatetime, " ")
	return Form{
		PickupDate:     date,
		PickupTime:     tm,
		PickupLat:      strconv.FormatFloat(req.Pickup.Lat, 'f', -1, 64),
		PickupLon:      strconv.FormatFloat(req.Pickup.Lng, 'f', -1, 64),
		DropoffLat:     strconv.FormatFloat(req.Dropoff.Lat, 'f', -1, 64),
		DropoffLon:     strconv.FormatFloat(req.Dropoff.Lng, 'f', -1, 64),
		PassengerCount: strconv.Itoa(req.PassengerCount),
	}
}

// Overlay returns f with every non-empty field of edit applied on top.
func (f Form) Overlay(edit Form) Form {
	pick := func(base, v string) string {
		if strings.TrimSpace(v) == "" {
			return base
		}
		return v
	}
	return Form{
		PickupDate:     pick(f.PickupDate, edit.PickupDate),
		PickupTime:     pick(f.PickupTime, edit.PickupTime),
		PickupLat:      pick(f.PickupLat, edit.PickupLat),
		PickupLon:      pick(f.PickupLon, edit.PickupLon),
		DropoffLat:     pick(f.DropoffLat, edit.DropoffLat),
		DropoffLon:     pick(f.DropoffLon, edit.DropoffLon),
		PassengerCount: pick(f.PassengerCount, edit.PassengerCount),
	}
}

// ClampPassengers bounds n to [MinPassengers, MaxPassengers].
func ClampPassengers(n int) int {
	if n < MinPassengers {
		return MinPassengers
	}
	if n > MaxPassengers {
		return MaxPassengers
	}
	return n
}

// normalizeTime accepts "HH:MM" (what browsers send) or "HH:MM:SS".
func normalizeTime(v string, now time.Time) string {
	v = strings.TrimSpace(v)
	for _, layout := range []string{TimeLayout, "15:04"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(TimeLayout)
		}
	}
	return now.Format(TimeLayout)
}

func parseFloat(v string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}
