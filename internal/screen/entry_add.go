package screen

import (
	"context"
	"strings"
	"time"

	"github.com/kislikjeka/expensetrack/internal/module/entry"
	apperrors "github.com/kislikjeka/expensetrack/internal/shared/errors"
	"github.com/kislikjeka/expensetrack/pkg/logger"
	"github.com/kislikjeka/expensetrack/pkg/money"
)

const (
	TitleCreated = "Created"

	messageCreated = "Entry added successfully, click OK to go back to the main page."
	dateLayout     = "2006-01-02"
)

// EntryCreator is the part of the entries slice the add screen dispatches to
type EntryCreator interface {
	CreateEntry(ctx context.Context, dto entry.CreateEntryDTO) (entry.Entry, error)
}

// NewEntryForm holds the add-entry fields
type NewEntryForm struct {
	Amount      string `json:"amount"`
	Name        string `json:"name"`
	Currency    string `json:"currency"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// EntryAddState is a snapshot of the add-entry screen
type EntryAddState struct {
	Form    NewEntryForm `json:"form"`
	Created *entry.Entry `json:"created,omitempty"`
	Dialog  *Dialog      `json:"dialog,omitempty"`
	Err     error        `json:"-"`
}

// EntryAdd is the add-entry screen
type EntryAdd struct {
	lifecycle

	entries         EntryCreator
	nav             Navigator
	logger          *logger.Logger
	defaultCurrency string
	now             func() time.Time

	form    NewEntryForm
	created *entry.Entry
	dialog  *Dialog
	err     error
}

// EntryAddOption configures an EntryAdd screen
type EntryAddOption func(*EntryAdd)

// WithClock replaces the clock used for the default date
func WithClock(now func() time.Time) EntryAddOption {
	return func(s *EntryAdd) {
		s.now = now
	}
}

// NewEntryAdd creates the add-entry screen. Entries without a currency get
// defaultCurrency; entries without a date get today's.
func NewEntryAdd(entries EntryCreator, nav Navigator, log *logger.Logger, defaultCurrency string, opts ...EntryAddOption) *EntryAdd {
	s := &EntryAdd{
		entries:         entries,
		nav:             nav,
		logger:          log.WithField("screen", string(RouteAddEntry)),
		defaultCurrency: defaultCurrency,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetForm replaces the form fields
func (s *EntryAdd) SetForm(f NewEntryForm) {
	s.update(func() { s.form = f })
}

// Submit validates the form and creates the entry
func (s *EntryAdd) Submit(ctx context.Context) error {
	ctx = logger.WithScreen(ctx, string(RouteAddEntry))

	s.mu.Lock()
	if s.unmounted {
		s.mu.Unlock()
		return ErrUnmounted
	}
	dto, err := s.build()
	if err != nil {
		title := TitleFillAllFields
		if !s.missing() {
			title = TitleInvalidAmount
		}
		s.dialog = okDialog(title, "")
		s.err = err
		s.mu.Unlock()
		return err
	}
	s.err = nil
	s.mu.Unlock()

	created, err := s.entries.CreateEntry(ctx, dto)
	if err != nil {
		s.logger.WithContext(ctx).Error("failed to create entry", "error", err)
		s.update(func() { s.err = err })
		return err
	}

	s.update(func() {
		s.created = &created
		s.form = NewEntryForm{}
		s.dialog = okDialog(TitleCreated, messageCreated)
	})
	return nil
}

// missing must hold s.mu
func (s *EntryAdd) missing() bool {
	return s.form.Amount == "" || s.form.Name == "" || s.form.Description == ""
}

// build must hold s.mu
func (s *EntryAdd) build() (entry.CreateEntryDTO, error) {
	var missing []string
	if s.form.Amount == "" {
		missing = append(missing, "amount")
	}
	if s.form.Name == "" {
		missing = append(missing, "name")
	}
	if s.form.Description == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return entry.CreateEntryDTO{}, apperrors.Validation(TitleFillAllFields, missing...)
	}

	amount, err := money.ParseAmount(s.form.Amount)
	if err != nil {
		return entry.CreateEntryDTO{}, apperrors.Validation(TitleInvalidAmount, "amount")
	}

	currency := strings.ToUpper(strings.TrimSpace(s.form.Currency))
	if currency == "" {
		currency = s.defaultCurrency
	}
	date := strings.TrimSpace(s.form.Date)
	if date == "" {
		date = s.now().Format(dateLayout)
	}

	return entry.CreateEntryDTO{
		Amount:      amount,
		Date:        date,
		Currency:    currency,
		Name:        s.form.Name,
		Category:    s.form.Category,
		Description: s.form.Description,
	}, nil
}

// Resolve answers the open dialog. Confirming "Created" returns to the list.
func (s *EntryAdd) Resolve(ctx context.Context, action ActionName) error {
	s.mu.Lock()
	d := s.dialog
	if d == nil {
		s.mu.Unlock()
		return ErrNoDialog
	}
	if !d.Offers(action) {
		s.mu.Unlock()
		return ErrUnknownAction
	}
	s.dialog = nil
	s.mu.Unlock()

	if d.Title == TitleCreated && s.Mounted() {
		s.nav.Navigate(Route{Name: RouteEntryList})
	}
	return nil
}

// State returns a snapshot of the screen
func (s *EntryAdd) State() EntryAddState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := EntryAddState{Form: s.form, Err: s.err}
	if s.created != nil {
		c := *s.created
		st.Created = &c
	}
	if s.dialog != nil {
		d := *s.dialog
		st.Dialog = &d
	}
	return st
}
