package screen

import (
	"context"
	"strings"

	"github.com/kislikjeka/expensetrack/internal/module/category"
	"github.com/kislikjeka/expensetrack/internal/platform/store"
	apperrors "github.com/kislikjeka/expensetrack/internal/shared/errors"
	"github.com/kislikjeka/expensetrack/pkg/logger"
)

// TitleNameRequired is shown when a category is submitted without a name
const TitleNameRequired = "Please enter a category name"

// CategoryManager is the part of the category slice the category screen uses
type CategoryManager interface {
	FetchCategories(ctx context.Context) ([]category.Category, error)
	CreateCategory(ctx context.Context, dto category.CreateCategoryDTO) (category.Category, error)
	State() store.State[category.Category]
	Subscribe(fn func(store.State[category.Category])) func()
}

// CategoryList lists categories and creates new ones
type CategoryList struct {
	lifecycle

	categories  CategoryManager
	logger      *logger.Logger
	rows        []category.Category
	form        category.CreateCategoryDTO
	dialog      *Dialog
	err         error
	unsubscribe func()
}

// NewCategoryList creates the category screen
func NewCategoryList(categories CategoryManager, log *logger.Logger) *CategoryList {
	return &CategoryList{
		categories: categories,
		logger:     log.WithField("screen", string(RouteCategories)),
	}
}

// Mount renders the cached categories, follows slice updates and fetches
// the server list.
func (s *CategoryList) Mount(ctx context.Context) error {
	ctx = logger.WithScreen(ctx, string(RouteCategories))

	s.render(s.categories.State())
	unsubscribe := s.categories.Subscribe(s.render)
	s.update(func() { s.unsubscribe = unsubscribe })

	if _, err := s.categories.FetchCategories(ctx); err != nil {
		s.logger.WithContext(ctx).Error("failed to fetch categories", "error", err)
		s.update(func() { s.err = err })
		return err
	}
	return nil
}

func (s *CategoryList) render(st store.State[category.Category]) {
	s.update(func() { s.rows = st.Entities() })
}

// Unmount stops following the slice
func (s *CategoryList) Unmount() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.unmounted = true
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// SetName sets the new category's name
func (s *CategoryList) SetName(v string) {
	s.update(func() { s.form.Name = v })
}

// SetDescription sets the new category's description
func (s *CategoryList) SetDescription(v string) {
	s.update(func() { s.form.Description = v })
}

// Submit creates the category. The new row appears through the slice.
func (s *CategoryList) Submit(ctx context.Context) (category.Category, error) {
	ctx = logger.WithScreen(ctx, string(RouteCategories))

	s.mu.Lock()
	if s.unmounted {
		s.mu.Unlock()
		return category.Category{}, ErrUnmounted
	}
	dto := s.form
	dto.Name = strings.TrimSpace(dto.Name)
	if dto.Name == "" {
		err := apperrors.Validation(TitleNameRequired, "name")
		s.dialog = okDialog(TitleNameRequired, "")
		s.err = err
		s.mu.Unlock()
		return category.Category{}, err
	}
	s.err = nil
	s.mu.Unlock()

	created, err := s.categories.CreateCategory(ctx, dto)
	if err != nil {
		s.logger.WithContext(ctx).Error("failed to create category", "name", dto.Name, "error", err)
		s.update(func() { s.err = err })
		return category.Category{}, err
	}

	s.update(func() { s.form = category.CreateCategoryDTO{} })
	return created, nil
}

// Dismiss closes the open dialog
func (s *CategoryList) Dismiss() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dialog == nil {
		return ErrNoDialog
	}
	s.dialog = nil
	return nil
}

// Rows returns the rendered categories
func (s *CategoryList) Rows() []category.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]category.Category, len(s.rows))
	copy(out, s.rows)
	return out
}

// Dialog returns the open dialog, if any
func (s *CategoryList) Dialog() *Dialog {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dialog == nil {
		return nil
	}
	d := *s.dialog
	return &d
}

// Err returns the last failure
func (s *CategoryList) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
