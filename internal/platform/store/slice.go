package store

import (
	"context"
	"sync"
	"time"

	"github.com/kislikjeka/expensetrack/pkg/logger"
)

// Slice owns the cached list of one resource type. All mutations go through
// Dispatch; subscribers see every new snapshot.
type Slice[T Entity] struct {
	name   string
	logger *logger.Logger

	mu          sync.RWMutex
	state       State[T]
	subscribers []subscriber[T]
	nextSubID   int
}

type subscriber[T Entity] struct {
	id int
	fn func(State[T])
}

// NewSlice creates an empty slice named after its resource, e.g. "entries".
func NewSlice[T Entity](name string, log *logger.Logger) *Slice[T] {
	return &Slice[T]{
		name:   name,
		logger: log.WithField("slice", name),
		state:  State[T]{entities: []T{}},
	}
}

// Name returns the slice name
func (s *Slice[T]) Name() string {
	return s.name
}

// State returns the current snapshot
func (s *Slice[T]) State() State[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies reducer to the current snapshot and notifies subscribers
// with the result.
func (s *Slice[T]) Dispatch(action string, reducer Reducer[T]) State[T] {
	s.mu.Lock()
	s.state = reducer(s.state)
	next := s.state
	subs := make([]subscriber[T], len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	s.logger.Debug("action dispatched", "action", action, "count", next.Len())

	for _, sub := range subs {
		sub.fn(next)
	}
	return next
}

// Subscribe registers fn for future snapshots and returns a function that
// removes it.
func (s *Slice[T]) Subscribe(fn func(State[T])) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers = append(s.subscribers, subscriber[T]{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// RunThunk runs call and, when it succeeds, dispatches the reducer built by
// fulfilled. A failed call leaves the state untouched and returns the error
// unchanged; no error is kept in the slice.
func RunThunk[T Entity, R any](
	ctx context.Context,
	s *Slice[T],
	action string,
	call func(ctx context.Context) (R, error),
	fulfilled func(R) Reducer[T],
) (R, error) {
	log := s.logger.WithContext(ctx).WithField("action", action)
	start := time.Now()
	log.Debug(action + "/pending")

	result, err := call(ctx)
	if err != nil {
		log.WithDuration(time.Since(start)).Warn(action+"/rejected", "error", err)
		var zero R
		return zero, err
	}

	if fulfilled != nil {
		s.Dispatch(action+"/fulfilled", fulfilled(result))
	}
	log.WithDuration(time.Since(start)).Debug(action + "/fulfilled")
	return result, nil
}
