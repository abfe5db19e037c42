package screen

import (
	"errors"
	"sync"
)

// ActionName identifies a dialog button
type ActionName string

const (
	ActionConfirm ActionName = "confirm"
	ActionCancel  ActionName = "cancel"
)

// ErrNoDialog is returned when resolving a dialog that is not shown
var ErrNoDialog = errors.New("no dialog is open")

// ErrUnknownAction is returned when resolving a dialog with an action it does not offer
var ErrUnknownAction = errors.New("dialog does not offer this action")

// ErrUnmounted is returned when a closed screen is asked to act
var ErrUnmounted = errors.New("screen is no longer shown")

// DialogAction is one button of a dialog
type DialogAction struct {
	Name  ActionName `json:"name"`
	Label string     `json:"label"`
}

// Dialog is a modal message waiting for the user to pick an action
type Dialog struct {
	Title   string         `json:"title"`
	Message string         `json:"message,omitempty"`
	Actions []DialogAction `json:"actions"`
}

// Offers reports whether the dialog has a button for action
func (d *Dialog) Offers(action ActionName) bool {
	if d == nil {
		return false
	}
	for _, a := range d.Actions {
		if a.Name == action {
			return true
		}
	}
	return false
}

func okDialog(title, message string) *Dialog {
	return &Dialog{
		Title:   title,
		Message: message,
		Actions: []DialogAction{{Name: ActionConfirm, Label: "OK"}},
	}
}

func confirmDialog(title, message string) *Dialog {
	return &Dialog{
		Title:   title,
		Message: message,
		Actions: []DialogAction{
			{Name: ActionCancel, Label: "Cancel"},
			{Name: ActionConfirm, Label: "OK"},
		},
	}
}

// lifecycle tracks whether a screen is still shown. Work finishing after
// Unmount must not touch screen state or navigate.
type lifecycle struct {
	mu        sync.Mutex
	unmounted bool
}

// Unmount detaches the screen. Results of operations still in flight are dropped.
func (l *lifecycle) Unmount() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.unmounted = true
}

// Mounted reports whether the screen is still shown
func (l *lifecycle) Mounted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.unmounted
}

// update runs fn under the screen lock unless the screen was unmounted.
func (l *lifecycle) update(fn func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.unmounted {
		return false
	}
	fn()
	return true
}
