package category

import (
	"context"

	"github.com/kislikjeka/expensetrack/internal/platform/store"
	"github.com/kislikjeka/expensetrack/pkg/logger"
)

// SliceName prefixes every category action
const SliceName = "category"

// Service is the network side of the category slice
type Service interface {
	FetchAll(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, dto CreateCategoryDTO) (Category, error)
	Update(ctx context.Context, id store.ID, c Category) (Category, error)
	Delete(ctx context.Context, id store.ID) error
}

// Slice holds the cached category list
type Slice struct {
	api   Service
	store *store.Slice[Category]
}

// NewSlice creates an empty category slice
func NewSlice(api Service, log *logger.Logger) *Slice {
	return &Slice{
		api:   api,
		store: store.NewSlice[Category](SliceName, log),
	}
}

// State returns the current snapshot
func (s *Slice) State() store.State[Category] {
	return s.store.State()
}

// Subscribe registers fn for future snapshots
func (s *Slice) Subscribe(fn func(store.State[Category])) func() {
	return s.store.Subscribe(fn)
}

// FetchCategories replaces the cached list with the server's.
func (s *Slice) FetchCategories(ctx context.Context) ([]Category, error) {
	return store.RunThunk(ctx, s.store, SliceName+"/fetchCategories", s.api.FetchAll, store.ReplaceAll[Category])
}

// CreateCategory appends the created category to the cached list.
func (s *Slice) CreateCategory(ctx context.Context, dto CreateCategoryDTO) (Category, error) {
	return store.RunThunk(ctx, s.store, SliceName+"/createCategory",
		func(ctx context.Context) (Category, error) {
			return s.api.Create(ctx, dto)
		},
		store.Append[Category],
	)
}

// UpdateCategory sends the full category and patches the cached copy, if any.
func (s *Slice) UpdateCategory(ctx context.Context, id store.ID, c Category) (Category, error) {
	return store.RunThunk(ctx, s.store, SliceName+"/updateCategory",
		func(ctx context.Context) (Category, error) {
			return s.api.Update(ctx, id, c)
		},
		store.Patch[Category],
	)
}

// DeleteCategory deletes the category and drops it from the cached list.
func (s *Slice) DeleteCategory(ctx context.Context, id store.ID) error {
	_, err := store.RunThunk(ctx, s.store, SliceName+"/deleteCategory",
		func(ctx context.Context) (store.ID, error) {
			return id, s.api.Delete(ctx, id)
		},
		store.Remove[Category],
	)
	return err
}
