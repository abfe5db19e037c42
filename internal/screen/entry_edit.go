package screen

import (
	"context"
	"errors"
	"strings"

	"github.com/kislikjeka/expensetrack/internal/module/entry"
	"github.com/kislikjeka/expensetrack/internal/platform/store"
	apperrors "github.com/kislikjeka/expensetrack/internal/shared/errors"
	"github.com/kislikjeka/expensetrack/pkg/logger"
	"github.com/kislikjeka/expensetrack/pkg/money"
)

// Phase is a state of the edit-entry screen
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseLoading    Phase = "loading"
	PhaseLoaded     Phase = "loaded"
	PhaseEditing    Phase = "editing"
	PhaseSubmitting Phase = "submitting"
	PhaseSuccess    Phase = "success"
)

// Dialog texts of the edit-entry screen
const (
	TitleFillAllFields = "Please fill in all fields"
	TitleInvalidAmount = "Amount must be a number"
	TitleUpdated       = "Updated"
	TitleDeleteConfirm = "Delete Confirmation"

	messageUpdated       = "Data updated successfully, click OK to go back to the main page."
	messageDeleteConfirm = "Are you sure you want to delete this entry?"
)

// ErrSubmitInFlight is returned when Submit is called while an update is pending
var ErrSubmitInFlight = errors.New("an update is already in flight")

// EntryEditor is the part of the entries slice the edit screen dispatches to
type EntryEditor interface {
	FetchEntry(ctx context.Context, id store.ID) (entry.Entry, error)
	UpdateEntry(ctx context.Context, id store.ID, e entry.Entry) (entry.Entry, error)
	DeleteEntry(ctx context.Context, id store.ID) error
}

// EntryForm holds the editable fields. All of them start empty.
type EntryForm struct {
	Amount      string `json:"amount"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (f EntryForm) empty() bool {
	return f.Amount == "" && f.Name == "" && f.Description == "" && f.Category == ""
}

type editDialog int

const (
	editDialogNone editDialog = iota
	editDialogInvalid
	editDialogUpdated
	editDialogDelete
)

// EntryEditState is a snapshot of the edit-entry screen
type EntryEditState struct {
	Phase   Phase        `json:"phase"`
	EntryID int          `json:"entry_id"`
	Current *entry.Entry `json:"current,omitempty"`
	Form    EntryForm    `json:"form"`
	Dialog  *Dialog      `json:"dialog,omitempty"`
	Err     error        `json:"-"`
}

// EntryEdit is the edit-entry screen
type EntryEdit struct {
	lifecycle

	entries EntryEditor
	nav     Navigator
	logger  *logger.Logger
	entryID int

	phase      Phase
	current    *entry.Entry
	form       EntryForm
	dialog     *Dialog
	dialogKind editDialog
	err        error
}

// NewEntryEdit creates the screen for route. route.EntryID selects the entry.
func NewEntryEdit(entries EntryEditor, nav Navigator, log *logger.Logger, route Route) *EntryEdit {
	return &EntryEdit{
		entries: entries,
		nav:     nav,
		logger:  log.WithField("screen", string(RouteEntryEdit)),
		entryID: route.EntryID,
		phase:   PhaseIdle,
	}
}

func (s *EntryEdit) id() store.ID {
	return store.FromInt(s.entryID)
}

// Mount fetches the entry named by the route. A failed fetch keeps the
// previous current entry; the error is recorded and returned.
func (s *EntryEdit) Mount(ctx context.Context) error {
	ctx = logger.WithScreen(ctx, string(RouteEntryEdit))
	s.update(func() {
		s.phase = PhaseLoading
		s.err = nil
	})

	e, err := s.entries.FetchEntry(ctx, s.id())

	s.update(func() {
		if err != nil {
			s.err = err
			s.phase = s.restingPhase()
			return
		}
		s.current = &e
		s.phase = s.restingPhase()
	})
	if err != nil {
		s.logger.WithContext(ctx).Error("failed to fetch entry", "entry_id", s.entryID, "error", err)
		return err
	}
	return nil
}

// restingPhase is the phase outside of any request; must hold s.mu
func (s *EntryEdit) restingPhase() Phase {
	switch {
	case !s.form.empty():
		return PhaseEditing
	case s.current != nil:
		return PhaseLoaded
	default:
		return PhaseIdle
	}
}

// SetAmount sets the amount field
func (s *EntryEdit) SetAmount(v string) { s.setField(func(f *EntryForm) { f.Amount = v }) }

// SetName sets the name field
func (s *EntryEdit) SetName(v string) { s.setField(func(f *EntryForm) { f.Name = v }) }

// SetDescription sets the description field
func (s *EntryEdit) SetDescription(v string) { s.setField(func(f *EntryForm) { f.Description = v }) }

// SetCategory sets the category field
func (s *EntryEdit) SetCategory(v string) { s.setField(func(f *EntryForm) { f.Category = v }) }

func (s *EntryEdit) setField(set func(*EntryForm)) {
	s.update(func() {
		set(&s.form)
		if s.phase != PhaseSubmitting && s.phase != PhaseLoading {
			s.phase = s.restingPhase()
		}
	})
}

// Placeholders returns the current entry's values for display next to the
// empty form fields.
func (s *EntryEdit) Placeholders() EntryForm {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return EntryForm{}
	}
	return EntryForm{
		Amount:      s.current.Amount.String(),
		Name:        s.current.Name,
		Description: s.current.Description,
		Category:    s.current.Category,
	}
}

// Submit validates the form and dispatches the update. On success the
// "Updated" dialog is shown; its confirm action returns to the list.
func (s *EntryEdit) Submit(ctx context.Context) error {
	ctx = logger.WithScreen(ctx, string(RouteEntryEdit))

	var (
		payload entry.Entry
		guard   error
		busy    bool
	)
	mounted := s.update(func() {
		if s.phase == PhaseSubmitting {
			busy = true
			return
		}
		payload, guard = s.merge()
		switch {
		case apperrors.IsValidationError(guard) && s.missingFields():
			s.showDialog(editDialogInvalid, okDialog(TitleFillAllFields, ""))
		case guard != nil:
			s.showDialog(editDialogInvalid, okDialog(TitleInvalidAmount, ""))
		default:
			s.phase = PhaseSubmitting
			s.err = nil
		}
	})
	switch {
	case !mounted:
		return ErrUnmounted
	case busy:
		return ErrSubmitInFlight
	case guard != nil:
		return guard
	}

	updated, err := s.entries.UpdateEntry(ctx, s.id(), payload)
	if err != nil {
		s.logger.WithContext(ctx).Error("failed to update entry", "entry_id", s.entryID, "error", err)
		s.update(func() {
			s.err = err
			s.phase = PhaseEditing
		})
		return err
	}

	s.update(func() {
		s.current = &updated
		s.phase = PhaseSuccess
		s.showDialog(editDialogUpdated, okDialog(TitleUpdated, messageUpdated))
	})
	return nil
}

// missingFields must hold s.mu
func (s *EntryEdit) missingFields() bool {
	return s.form.Amount == "" || s.form.Name == "" || s.form.Description == ""
}

// merge builds the update payload from the current entry and the form; must hold s.mu
func (s *EntryEdit) merge() (entry.Entry, error) {
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
		return entry.Entry{}, apperrors.Validation(TitleFillAllFields, missing...)
	}

	amount, err := money.ParseAmount(s.form.Amount)
	if err != nil {
		return entry.Entry{}, apperrors.Validation(TitleInvalidAmount, "amount")
	}

	var payload entry.Entry
	if s.current != nil {
		payload = *s.current
	}
	payload.ID = s.id()
	payload.Amount = amount
	payload.Name = s.form.Name
	payload.Description = s.form.Description
	if strings.TrimSpace(s.form.Category) != "" {
		payload.Category = s.form.Category
	}
	return payload, nil
}

// RequestDelete shows the delete confirmation dialog
func (s *EntryEdit) RequestDelete() {
	s.update(func() {
		s.showDialog(editDialogDelete, confirmDialog(TitleDeleteConfirm, messageDeleteConfirm))
	})
}

// showDialog must hold s.mu
func (s *EntryEdit) showDialog(kind editDialog, d *Dialog) {
	s.dialog = d
	s.dialogKind = kind
}

// Resolve answers the open dialog with action.
//
// Updated/confirm navigates to the list. Delete/cancel navigates to the list
// without deleting. Delete/confirm deletes the entry and navigates to the
// list whatever the outcome; a failure is returned, kept in the screen state
// and passed along as the route notice.
func (s *EntryEdit) Resolve(ctx context.Context, action ActionName) error {
	ctx = logger.WithScreen(ctx, string(RouteEntryEdit))

	var (
		kind    editDialog
		missing error
	)
	mounted := s.update(func() {
		switch {
		case s.dialog == nil:
			missing = ErrNoDialog
		case !s.dialog.Offers(action):
			missing = ErrUnknownAction
		default:
			kind = s.dialogKind
			s.dialog = nil
			s.dialogKind = editDialogNone
		}
	})
	if !mounted {
		return ErrUnmounted
	}
	if missing != nil {
		return missing
	}

	switch kind {
	case editDialogUpdated:
		s.navigate(Route{Name: RouteEntryList})
	case editDialogDelete:
		if action == ActionCancel {
			s.navigate(Route{Name: RouteEntryList})
			return nil
		}
		err := s.entries.DeleteEntry(ctx, s.id())
		if err != nil {
			s.logger.WithContext(ctx).Error("failed to delete entry", "entry_id", s.entryID, "error", err)
			s.update(func() { s.err = err })
		}
		s.navigate(Route{Name: RouteEntryList, Notice: err})
		return err
	}
	return nil
}

func (s *EntryEdit) navigate(route Route) {
	if !s.Mounted() {
		return
	}
	s.nav.Navigate(route)
}

// State returns a snapshot of the screen
func (s *EntryEdit) State() EntryEditState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := EntryEditState{
		Phase:   s.phase,
		EntryID: s.entryID,
		Form:    s.form,
		Err:     s.err,
	}
	if s.current != nil {
		cur := *s.current
		st.Current = &cur
	}
	if s.dialog != nil {
		d := *s.dialog
		st.Dialog = &d
	}
	return st
}
