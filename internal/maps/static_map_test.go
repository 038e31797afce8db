package maps

import (
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxifare/internal/modules/ride"
	"taxifare/internal/types"
	"taxifare/internal/view"
)

func TestStaticMapRequest(t *testing.T) {
	m := view.BuildMap(ride.Request{
		Pickup:  types.Point{Lat: 40.0, Lng: -73.0},
		Dropoff: types.Point{Lat: 40.2, Lng: -73.2},
	})

	r := StaticMapRequest(m)
	lat, lng, ok := strings.Cut(r.Center, ",")
	require.True(t, ok)
	assert.InDelta(t, 40.1, mustFloat(t, lat), 1e-9)
	assert.InDelta(t, -73.1, mustFloat(t, lng), 1e-9)
	assert.Equal(t, view.MapZoom, r.Zoom)
	assert.Equal(t, "640x400", r.Size)

	require.Len(t, r.Markers, 2)
	assert.Equal(t, "P", r.Markers[0].Label)
	assert.Equal(t, "D", r.Markers[1].Label)
	assert.Equal(t, "0xff0000", r.Markers[0].Color)
	require.Len(t, r.Markers[1].Location, 1)
	assert.Equal(t, 40.2, r.Markers[1].Location[0].Lat)
	assert.Equal(t, -73.2, r.Markers[1].Location[0].Lng)
}

func TestStaticMapRequest_LabelUsesFirstRune(t *testing.T) {
	m := view.BuildMap(ride.Request{})
	m.Labels.Points[0].Label = "Ñuñoa"
	m.Labels.Points[1].Label = ""
	m.Markers.Points[1].Label = ""

	r := StaticMapRequest(m)
	require.Len(t, r.Markers, 2)
	assert.Equal(t, "Ñ", r.Markers[0].Label)
	assert.True(t, utf8.ValidString(r.Markers[0].Label))
	assert.Empty(t, r.Markers[1].Label)
}

func TestNewStaticMapService_NoKey(t *testing.T) {
	_, err := NewStaticMapService("")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func mustFloat(t *testing.T, s string) float64 {
	t.Helper()
	f, err := strconv.ParseFloat(s, 64)
	require.NoError(t, err)
	return f
}
