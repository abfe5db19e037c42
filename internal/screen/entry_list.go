package screen

import (
	"context"
	"strconv"

	"github.com/kislikjeka/expensetrack/internal/module/entry"
	"github.com/kislikjeka/expensetrack/internal/platform/store"
	apperrors "github.com/kislikjeka/expensetrack/internal/shared/errors"
	"github.com/kislikjeka/expensetrack/pkg/logger"
)

// EntrySource is the part of the entries slice the list screen reads
type EntrySource interface {
	FetchEntries(ctx context.Context) ([]entry.Entry, error)
	State() store.State[entry.Entry]
	Subscribe(fn func(store.State[entry.Entry])) func()
}

// EntryList renders the cached entry list
type EntryList struct {
	lifecycle

	entries     EntrySource
	nav         Navigator
	logger      *logger.Logger
	rows        []entry.Entry
	err         error
	notice      error
	unsubscribe func()
}

// NewEntryList creates the list screen. A notice carried by route (for
// instance a failed delete) is kept for display.
func NewEntryList(entries EntrySource, nav Navigator, log *logger.Logger, route Route) *EntryList {
	return &EntryList{
		entries: entries,
		nav:     nav,
		logger:  log.WithField("screen", string(RouteEntryList)),
		notice:  route.Notice,
	}
}

// Mount renders the cached list, follows slice updates and fetches the
// server list. A failed fetch keeps the cached rows.
func (s *EntryList) Mount(ctx context.Context) error {
	ctx = logger.WithScreen(ctx, string(RouteEntryList))

	s.render(s.entries.State())
	unsubscribe := s.entries.Subscribe(s.render)
	s.update(func() { s.unsubscribe = unsubscribe })

	if _, err := s.entries.FetchEntries(ctx); err != nil {
		s.logger.WithContext(ctx).Error("failed to fetch entries", "error", err)
		s.update(func() { s.err = err })
		return err
	}
	return nil
}

func (s *EntryList) render(st store.State[entry.Entry]) {
	s.update(func() { s.rows = st.Entities() })
}

// Unmount stops following the slice
func (s *EntryList) Unmount() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.unmounted = true
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// Rows returns the rendered entries
func (s *EntryList) Rows() []entry.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entry.Entry, len(s.rows))
	copy(out, s.rows)
	return out
}

// Err returns the last fetch failure
func (s *EntryList) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Notice returns the failure handed over by the previous screen
func (s *EntryList) Notice() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

// Select opens the edit screen for a listed entry. The edit route takes a
// numeric id.
func (s *EntryList) Select(id store.ID) error {
	s.mu.Lock()
	found := false
	for _, e := range s.rows {
		if e.ID == id {
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return apperrors.New(apperrors.ErrCodeNotFound, "entry "+id.String()+" is not listed")
	}
	n, err := strconv.Atoi(id.String())
	if err != nil {
		return apperrors.InvalidArgument("entry id " + id.String() + " is not numeric")
	}
	s.navigate(Route{Name: RouteEntryEdit, EntryID: n})
	return nil
}

// Add opens the add-entry screen
func (s *EntryList) Add() {
	s.navigate(Route{Name: RouteAddEntry})
}

func (s *EntryList) navigate(route Route) {
	if !s.Mounted() {
		return
	}
	s.nav.Navigate(route)
}
