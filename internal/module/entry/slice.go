package entry

import (
	"context"

	"github.com/kislikjeka/expensetrack/internal/platform/store"
	"github.com/kislikjeka/expensetrack/pkg/logger"
)

// SliceName prefixes every entry action
const SliceName = "entries"

// Service is the network side of the entries slice
type Service interface {
	FetchAll(ctx context.Context) ([]Entry, error)
	FetchOne(ctx context.Context, id store.ID) (Entry, error)
	Create(ctx context.Context, dto CreateEntryDTO) (Entry, error)
	Update(ctx context.Context, id store.ID, e Entry) (Entry, error)
	Delete(ctx context.Context, id store.ID) error
}

// Slice holds the cached entry list and the thunks that reconcile it with
// the server.
type Slice struct {
	api   Service
	store *store.Slice[Entry]
}

// NewSlice creates an empty entries slice
func NewSlice(api Service, log *logger.Logger) *Slice {
	return &Slice{
		api:   api,
		store: store.NewSlice[Entry](SliceName, log),
	}
}

// State returns the current snapshot
func (s *Slice) State() store.State[Entry] {
	return s.store.State()
}

// Subscribe registers fn for future snapshots
func (s *Slice) Subscribe(fn func(store.State[Entry])) func() {
	return s.store.Subscribe(fn)
}

// FetchEntries replaces the cached list with the server's.
func (s *Slice) FetchEntries(ctx context.Context) ([]Entry, error) {
	return store.RunThunk(ctx, s.store, SliceName+"/fetchEntries", s.api.FetchAll, store.ReplaceAll[Entry])
}

// FetchEntry reads one entry without touching the cached list.
func (s *Slice) FetchEntry(ctx context.Context, id store.ID) (Entry, error) {
	return store.RunThunk(ctx, s.store, SliceName+"/fetchEntry",
		func(ctx context.Context) (Entry, error) {
			return s.api.FetchOne(ctx, id)
		},
		nil,
	)
}

// CreateEntry appends the created entry to the cached list.
func (s *Slice) CreateEntry(ctx context.Context, dto CreateEntryDTO) (Entry, error) {
	return store.RunThunk(ctx, s.store, SliceName+"/createEntry",
		func(ctx context.Context) (Entry, error) {
			return s.api.Create(ctx, dto)
		},
		store.Append[Entry],
	)
}

// UpdateEntry sends the full entry and patches the cached copy, if any.
func (s *Slice) UpdateEntry(ctx context.Context, id store.ID, e Entry) (Entry, error) {
	return store.RunThunk(ctx, s.store, SliceName+"/updateEntry",
		func(ctx context.Context) (Entry, error) {
			return s.api.Update(ctx, id, e)
		},
		store.Patch[Entry],
	)
}

// DeleteEntry deletes the entry and drops it from the cached list.
func (s *Slice) DeleteEntry(ctx context.Context, id store.ID) error {
	_, err := store.RunThunk(ctx, s.store, SliceName+"/deleteEntry",
		func(ctx context.Context) (store.ID, error) {
			return id, s.api.Delete(ctx, id)
		},
		store.Remove[Entry],
	)
	return err
}
