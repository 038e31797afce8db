package prediction

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxifare/internal/modules/ride"
	"taxifare/internal/types"
)

func sampleRequest() ride.Request {
	return ride.Request{
		PickupDatetime: "2013-07-06 17:18:00",
		Pickup:         ride.DefaultPickup,
		Dropoff:        ride.DefaultDropoff,
		PassengerCount: 1,
	}
}

func newAPI(t *testing.T, status int, body string, seen *url.Values) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if seen != nil {
			*seen = r.URL.Query()
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/predict", 0)
}

func TestPredict_Success(t *testing.T) {
	var q url.Values
	c := newAPI(t, http.StatusOK, `{"fare": 12.5}`, &q)

	got, err := c.Predict(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, types.USD(12.5), got.Fare)

	assert.Equal(t, "2013-07-06 17:18:00", q.Get("pickup_datetime"))
	assert.Equal(t, "40.783282", q.Get("pickup_latitude"))
	assert.Equal(t, "-73.984365", q.Get("dropoff_longitude"))
	assert.Equal(t, "1", q.Get("passenger_count"))
}

func TestPredict_IntegerFare(t *testing.T) {
	c := newAPI(t, http.StatusOK, `{"fare": 7, "extra": "ignored"}`, nil)

	got, err := c.Predict(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, types.USD(7), got.Fare)
}

func TestPredict_NonSuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError, http.StatusFound} {
		c := newAPI(t, status, `{"fare": 12.5}`, nil)

		_, err := c.Predict(context.Background(), sampleRequest())
		var re *RemoteError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, KindHTTPStatus, re.Kind)
		assert.Equal(t, status, re.StatusCode)
	}
}

func TestPredict_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"missing fare", `{"not_fare": 1}`, errMissingFare},
		{"string fare", `{"fare": "12.5"}`, errFareNotNum},
		{"null fare", `{"fare": null}`, errFareNotNum},
		{"not an object", `[1, 2]`, nil},
		{"not json", `<html>`, nil},
		{"empty body", ``, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newAPI(t, http.StatusOK, tt.body, nil)

			_, err := c.Predict(context.Background(), sampleRequest())
			var re *RemoteError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, KindMalformed, re.Kind)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestPredict_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	_, err := NewClient(endpoint, time.Second).Predict(context.Background(), sampleRequest())
	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, KindNetwork, re.Kind)
}

func TestPredict_Cancelled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL, 0).Predict(ctx, sampleRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNewClient_DefaultURL(t *testing.T) {
	assert.Equal(t, DefaultURL, NewClient("", 0).URL())
}
