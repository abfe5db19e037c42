package category

import "github.com/kislikjeka/expensetrack/internal/platform/store"

// Category groups entries. Entries refer to categories by name.
type Category struct {
	ID          store.ID `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
}

// EntityID implements store.Entity
func (c Category) EntityID() store.ID {
	return c.ID
}

// CreateCategoryDTO holds the fields required to create a category
type CreateCategoryDTO struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
