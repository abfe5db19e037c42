package category

import (
	"context"
	"fmt"
	"net/url"

	"github.com/kislikjeka/expensetrack/internal/platform/store"
)

const basePath = "/categories"

// Transport is the subset of the HTTP client the API needs
type Transport interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// API maps category operations onto REST calls under /categories
type API struct {
	transport Transport
}

// NewAPI creates a new categories API
func NewAPI(transport Transport) *API {
	return &API{transport: transport}
}

func itemPath(id store.ID) string {
	return basePath + "/" + url.PathEscape(id.String())
}

// FetchAll handles GET /categories
func (a *API) FetchAll(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := a.transport.Get(ctx, basePath, &categories); err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	if categories == nil {
		categories = []Category{}
	}
	return categories, nil
}

// FetchOne handles GET /categories/{id}
func (a *API) FetchOne(ctx context.Context, id store.ID) (Category, error) {
	var c Category
	if err := a.transport.Get(ctx, itemPath(id), &c); err != nil {
		return Category{}, fmt.Errorf("fetch category %s: %w", id, err)
	}
	return c, nil
}

// Create handles POST /categories
func (a *API) Create(ctx context.Context, dto CreateCategoryDTO) (Category, error) {
	var c Category
	if err := a.transport.Post(ctx, basePath, dto, &c); err != nil {
		return Category{}, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

// Update handles PUT /categories/{id}
func (a *API) Update(ctx context.Context, id store.ID, c Category) (Category, error) {
	var updated Category
	if err := a.transport.Put(ctx, itemPath(id), c, &updated); err != nil {
		return Category{}, fmt.Errorf("update category %s: %w", id, err)
	}
	if updated.ID == "" {
		updated = c
		updated.ID = id
	}
	return updated, nil
}

// Delete handles DELETE /categories/{id}
func (a *API) Delete(ctx context.Context, id store.ID) error {
	if err := a.transport.Delete(ctx, itemPath(id)); err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	return nil
}
