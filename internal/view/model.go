// README: Page model rendered from session state; no component here mutates that state.
package view

import (
	"taxifare/internal/modules/ride"
	"taxifare/internal/types"
)

type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

type Message struct {
	Kind MessageKind `json:"kind"`
	Text string      `json:"text"`
}

type Page struct {
	Title    string       `json:"title"`
	Request  ride.Request `json:"request"`
	Pending  bool         `json:"pending"`
	Message  *Message     `json:"message,omitempty"`
	Chart    *Chart       `json:"chart,omitempty"`
	Map      Map          `json:"map"`
	MapImage string       `json:"map_image,omitempty"`
	Endpoint string       `json:"endpoint"`
}

type Chart struct {
	Labels []string    `json:"labels"`
	Values []types.USD `json:"values"`
	YMin   types.USD   `json:"y_min"`
	YMax   types.USD   `json:"y_max"`
}

type Map struct {
	Center     types.Point `json:"center"`
	Zoom       int         `json:"zoom"`
	DistanceKm float64     `json:"distance_km"`
	Markers    MarkerLayer `json:"markers"`
	Labels     TextLayer   `json:"labels"`
}

type MarkerLayer struct {
	RadiusMeters int         `json:"radius_m"`
	Color        [3]uint8    `json:"color"`
	Points       []MapMarker `json:"points"`
}

type TextLayer struct {
	Points []MapMarker `json:"points"`
}

type MapMarker struct {
	Position types.Point `json:"position"`
	Label    string      `json:"label"`
}
