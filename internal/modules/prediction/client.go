// README: Fare client; one GET per prediction against the remote API.
package prediction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"taxifare/internal/modules/ride"
	"taxifare/internal/types"
)

const DefaultURL = "https://taxifare.lewagon.ai/predict"

// Predictor is what sessions call to obtain a fare.
type Predictor interface {
	Predict(ctx context.Context, req ride.Request) (FareResult, error)
}

type Client struct {
	url  string
	http *http.Client
}

// NewClient returns a Client for endpoint. A zero timeout leaves the
// transport default in place; cancellation still flows through ctx.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultURL
	}
	return &Client{url: endpoint, http: &http.Client{Timeout: timeout}}
}

func (c *Client) URL() string {
	return c.url
}

// Predict issues a single GET and extracts the numeric "fare" field.
func (c *Client) Predict(ctx context.Context, req ride.Request) (FareResult, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return FareResult{}, &RemoteError{Kind: KindNetwork, Err: fmt.Errorf("build request: %w", err)}
	}
	httpReq.URL.RawQuery = req.Query().Encode()
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return FareResult{}, &RemoteError{Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return FareResult{}, &RemoteError{Kind: KindHTTPStatus, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return FareResult{}, &RemoteError{Kind: KindNetwork, Err: fmt.Errorf("read response: %w", err)}
	}

	fare, err := parseFare(body)
	if err != nil {
		return FareResult{}, &RemoteError{Kind: KindMalformed, Err: err}
	}
	return FareResult{Fare: types.USD(fare)}, nil
}

var (
	errMissingFare = errors.New(`missing "fare" field`)
	errFareNotNum  = errors.New(`"fare" is not a number`)
)

func parseFare(body []byte) (float64, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return 0, fmt.Errorf("decode body: %w", err)
	}
	raw, ok := fields["fare"]
	if !ok {
		return 0, errMissingFare
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return 0, errFareNotNum
	}
	var fare float64
	if err := json.Unmarshal(raw, &fare); err != nil {
		return 0, errFareNotNum
	}
	return fare, nil
}
