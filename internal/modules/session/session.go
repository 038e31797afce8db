package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"taxifare/internal/modules/history"
	"taxifare/internal/modules/prediction"
	"taxifare/internal/modules/ride"
)

type Session struct {
	id        string
	predictor prediction.Predictor
	history   history.Store

	mu      sync.Mutex
	state   State
	request ride.Request
	outcome *prediction.Outcome
	cancel  context.CancelFunc
	done    chan struct{}
	seenAt  time.Time
	closed  bool
}

func newSession(id string, predictor prediction.Predictor, store history.Store, now time.Time) *Session {
	return &Session{
		id:        id,
		predictor: predictor,
		history:   store,
		state:     StateIdle,
		request:   ride.Default(now),
		seenAt:    now,
	}
}

func (s *Session) ID() string {
	return s.id
}

// SetRequest replaces the current inputs without triggering a prediction.
func (s *Session) SetRequest(req ride.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrNotFound
	}
	s.request = req
	return nil
}

// Trigger records req and starts a prediction in the background. The returned
// channel is closed once the outcome and history are updated. parent bounds
// the task's lifetime; it is not tied to the caller's request.
func (s *Session) Trigger(parent context.Context, req ride.Request) (<-chan struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrNotFound
	}
	if s.state == StatePending {
		return nil, ErrPending
	}

	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	s.request = req
	s.state = StatePending
	s.cancel = cancel
	s.done = done

	go s.run(ctx, cancel, req, done)
	return done, nil
}

func (s *Session) run(ctx context.Context, cancel context.CancelFunc, req ride.Request, done chan struct{}) {
	defer close(done)
	defer cancel()

	fare, err := s.predictor.Predict(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
	s.cancel = nil

	if s.closed {
		// history was cleared by teardown; appending would bring it back
		log.Printf("session %s: dropping prediction result after teardown", s.id)
		return
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			err = ErrCancelled
		}
		log.Printf("session %s: prediction failed: %v", s.id, err)
		s.outcome = prediction.Failure(err)
		return
	}

	// use a fresh context so a cancel racing the response cannot drop the append
	if err := s.history.Append(context.WithoutCancel(ctx), history.Entry{
		Datetime: req.PickupDatetime,
		Fare:     fare.Fare,
	}); err != nil {
		log.Printf("session %s: history append failed: %v", s.id, err)
		s.outcome = prediction.Failure(err)
		return
	}
	s.outcome = prediction.Success(fare)
}

// Cancel aborts the in-flight prediction, if any. It reports whether a task was cancelled.
func (s *Session) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil {
		return false
	}
	s.cancel()
	return true
}

// Wait blocks until the in-flight prediction finishes or ctx is done.
func (s *Session) Wait(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot copies the session fields under the lock and reads history after
// releasing it, so a slow store never blocks Cancel or touch.
func (s *Session) Snapshot(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	snap := Snapshot{
		ID:      s.id,
		State:   s.state,
		Request: s.request,
		Outcome: s.outcome,
		SeenAt:  s.seenAt,
	}
	s.mu.Unlock()

	entries, err := s.history.All(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	snap.History = entries
	return snap, nil
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seenAt = now
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StatePending {
		return 0
	}
	return now.Sub(s.seenAt)
}

// teardown closes the session, cancels any in-flight task and drops the
// session history. A task that resolves afterwards leaves the store alone.
func (s *Session) teardown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()
	return s.history.Clear(ctx)
}
