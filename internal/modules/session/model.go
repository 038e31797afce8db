// README: Session state: current inputs, latest outcome and the trigger state machine.
package session

import (
	"errors"
	"time"

	"taxifare/internal/modules/history"
	"taxifare/internal/modules/prediction"
	"taxifare/internal/modules/ride"
)

type State string

const (
	StateIdle    State = "idle"
	StatePending State = "pending"
)

var (
	ErrPending   = errors.New("prediction already in progress")
	ErrNotFound  = errors.New("session not found")
	ErrCancelled = errors.New("prediction cancelled")
)

// Snapshot is a consistent read of a session for rendering.
type Snapshot struct {
	ID      string
	State   State
	Request ride.Request
	Outcome *prediction.Outcome
	History []history.Entry
	SeenAt  time.Time
}
