package store

// Entity is anything held in a slice. Identity is the server-assigned id.
type Entity interface {
	EntityID() ID
}

// State is an immutable snapshot of one resource's cached list. Reducers
// return new snapshots and never mutate the one they receive.
type State[T Entity] struct {
	entities []T
	loaded   bool
}

// Entities returns a copy of the list in cache order.
func (s State[T]) Entities() []T {
	out := make([]T, len(s.entities))
	copy(out, s.entities)
	return out
}

// Len returns the number of cached entities
func (s State[T]) Len() int {
	return len(s.entities)
}

// Loaded reports whether at least one fetch has completed.
func (s State[T]) Loaded() bool {
	return s.loaded
}

// Find returns the first entity with the given id.
func (s State[T]) Find(id ID) (T, bool) {
	for _, e := range s.entities {
		if e.EntityID() == id {
			return e, true
		}
	}
	var zero T
	return zero, false
}

// Reducer computes the next snapshot from the current one.
type Reducer[T Entity] func(State[T]) State[T]

// ReplaceAll discards the cached list in favour of items (last fetch wins).
func ReplaceAll[T Entity](items []T) Reducer[T] {
	return func(s State[T]) State[T] {
		next := make([]T, len(items))
		copy(next, items)
		return State[T]{entities: next, loaded: true}
	}
}

// Append adds item at the end of the list.
func Append[T Entity](item T) Reducer[T] {
	return func(s State[T]) State[T] {
		next := make([]T, len(s.entities), len(s.entities)+1)
		copy(next, s.entities)
		return State[T]{entities: append(next, item), loaded: s.loaded}
	}
}

// Patch replaces every cached entity sharing item's id, keeping positions.
// An id that is not cached leaves the list as is.
func Patch[T Entity](item T) Reducer[T] {
	return func(s State[T]) State[T] {
		next := make([]T, len(s.entities))
		copy(next, s.entities)
		for i, e := range next {
			if e.EntityID() == item.EntityID() {
				next[i] = item
			}
		}
		return State[T]{entities: next, loaded: s.loaded}
	}
}

// Remove drops every cached entity with the given id.
func Remove[T Entity](id ID) Reducer[T] {
	return func(s State[T]) State[T] {
		next := make([]T, 0, len(s.entities))
		for _, e := range s.entities {
			if e.EntityID() != id {
				next = append(next, e)
			}
		}
		return State[T]{entities: next, loaded: s.loaded}
	}
}
