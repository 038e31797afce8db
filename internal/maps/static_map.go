package maps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"strconv"
	"unicode/utf8"

	"googlemaps.github.io/maps"

	"taxifare/internal/types"
	"taxifare/internal/view"
)

// ErrNoAPIKey is returned when static maps are requested without a key.
var ErrNoAPIKey = errors.New("maps api key not configured")

const imageSize = "640x400"

// StaticMapService renders the pickup/dropoff map through the Google Static Maps API.
type StaticMapService struct {
	client *maps.Client
}

// NewStaticMapService creates a StaticMapService with the given API Key.
func NewStaticMapService(apiKey string) (*StaticMapService, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &StaticMapService{client: client}, nil
}

// Render fetches the map image for m and returns it PNG-encoded.
func (s *StaticMapService) Render(ctx context.Context, m view.Map) ([]byte, error) {
	img, err := s.client.StaticMap(ctx, StaticMapRequest(m))
	if err != nil {
		return nil, fmt.Errorf("static map api error: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode static map: %w", err)
	}
	return buf.Bytes(), nil
}

// StaticMapRequest maps the view's marker and label layers onto one static
// map request: one marker per point, labelled with the first letter of its text.
func StaticMapRequest(m view.Map) *maps.StaticMapRequest {
	r := &maps.StaticMapRequest{
		Center: latLngString(m.Center),
		Zoom:   m.Zoom,
		Size:   imageSize,
	}
	color := fmt.Sprintf("0x%02x%02x%02x", m.Markers.Color[0], m.Markers.Color[1], m.Markers.Color[2])
	for i, p := range m.Markers.Points {
		label := p.Label
		if i < len(m.Labels.Points) {
			label = m.Labels.Points[i].Label
		}
		marker := maps.Marker{
			Color:    color,
			Location: []maps.LatLng{{Lat: p.Position.Lat, Lng: p.Position.Lng}},
		}
		if r, _ := utf8.DecodeRuneInString(label); r != utf8.RuneError {
			marker.Label = string(r)
		}
		r.Markers = append(r.Markers, marker)
	}
	return r
}

func latLngString(p types.Point) string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lng, 'f', -1, 64)
}
