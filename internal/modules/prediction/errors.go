package prediction

import "fmt"

// Kind classifies a failed prediction call.
type Kind string

const (
	KindNetwork    Kind = "network_failure"
	KindHTTPStatus Kind = "http_status_failure"
	KindMalformed  Kind = "malformed_response"
)

// RemoteError is returned by Client.Predict for every failure.
type RemoteError struct {
	Kind       Kind
	StatusCode int
	Err        error
}

func (e *RemoteError) Error() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("prediction api returned status %d", e.StatusCode)
	case KindMalformed:
		return fmt.Sprintf("malformed prediction response: %v", e.Err)
	default:
		return fmt.Sprintf("prediction request failed: %v", e.Err)
	}
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
