package entry

import (
	"github.com/kislikjeka/expensetrack/internal/platform/store"
	"github.com/kislikjeka/expensetrack/pkg/money"
)

// Entry is one expense record as exchanged with the remote API
type Entry struct {
	ID          store.ID     `json:"id"`
	Amount      money.Amount `json:"amount"`
	Date        string       `json:"date"`
	Currency    string       `json:"currency"`
	Name        string       `json:"name"`
	Category    string       `json:"category"`
	Description string       `json:"description"`
}

// EntityID implements store.Entity
func (e Entry) EntityID() store.ID {
	return e.ID
}

// CreateEntryDTO is the payload for creating an entry; the id is assigned by
// the server.
type CreateEntryDTO struct {
	Amount      money.Amount `json:"amount"`
	Date        string       `json:"date"`
	Currency    string       `json:"currency"`
	Name        string       `json:"name"`
	Category    string       `json:"category"`
	Description string       `json:"description"`
}
