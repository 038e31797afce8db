// README: History entries recorded after each successful prediction.
package history

import (
	"context"

	"taxifare/internal/types"
)

type Entry struct {
	Datetime string    `json:"datetime"`
	Fare     types.USD `json:"fare"`
}

// Store is an append-only, insertion-ordered list scoped to one session.
// Clear is reserved for session teardown.
type Store interface {
	Append(ctx context.Context, e Entry) error
	All(ctx context.Context) ([]Entry, error)
	Len(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}
