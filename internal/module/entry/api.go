package entry

import (
	"context"
	"fmt"
	"net/url"

	"github.com/kislikjeka/expensetrack/internal/platform/store"
)

const basePath = "/entries"

// Transport is the subset of the HTTP client the API needs
type Transport interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// API maps entry operations onto REST calls under /entries
type API struct {
	transport Transport
}

// NewAPI creates a new entries API
func NewAPI(transport Transport) *API {
	return &API{transport: transport}
}

func itemPath(id store.ID) string {
	return basePath + "/" + url.PathEscape(id.String())
}

// FetchAll handles GET /entries
func (a *API) FetchAll(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	if err := a.transport.Get(ctx, basePath, &entries); err != nil {
		return nil, fmt.Errorf("fetch entries: %w", err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// FetchOne handles GET /entries/{id}. A missing entry surfaces as an HTTP 404.
func (a *API) FetchOne(ctx context.Context, id store.ID) (Entry, error) {
	var e Entry
	if err := a.transport.Get(ctx, itemPath(id), &e); err != nil {
		return Entry{}, fmt.Errorf("fetch entry %s: %w", id, err)
	}
	return e, nil
}

// Create handles POST /entries and returns the entry with its new id
func (a *API) Create(ctx context.Context, dto CreateEntryDTO) (Entry, error) {
	var e Entry
	if err := a.transport.Post(ctx, basePath, dto, &e); err != nil {
		return Entry{}, fmt.Errorf("create entry: %w", err)
	}
	return e, nil
}

// Update handles PUT /entries/{id} with the full entry. Servers that answer
// with an empty body get the sent entry back.
func (a *API) Update(ctx context.Context, id store.ID, e Entry) (Entry, error) {
	var updated Entry
	if err := a.transport.Put(ctx, itemPath(id), e, &updated); err != nil {
		return Entry{}, fmt.Errorf("update entry %s: %w", id, err)
	}
	if updated.ID == "" {
		updated = e
		updated.ID = id
	}
	return updated, nil
}

// Delete handles DELETE /entries/{id}
func (a *API) Delete(ctx context.Context, id store.ID) error {
	if err := a.transport.Delete(ctx, itemPath(id)); err != nil {
		return fmt.Errorf("delete entry %s: %w", id, err)
	}
	return nil
}
