package screen_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kislikjeka/expensetrack/internal/module/entry"
	"github.com/kislikjeka/expensetrack/internal/platform/store"
	"github.com/kislikjeka/expensetrack/internal/screen"
	"github.com/kislikjeka/expensetrack/pkg/money"
)

// MockEntryEditor is a mock implementation of screen.EntryEditor
type MockEntryEditor struct {
	mock.Mock
}

func (m *MockEntryEditor) FetchEntry(ctx context.Context, id store.ID) (entry.Entry, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entry.Entry), args.Error(1)
}

func (m *MockEntryEditor) UpdateEntry(ctx context.Context, id store.ID, e entry.Entry) (entry.Entry, error) {
	args := m.Called(ctx, id, e)
	return args.Get(0).(entry.Entry), args.Error(1)
}

func (m *MockEntryEditor) DeleteEntry(ctx context.Context, id store.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEntryCreator is a mock implementation of screen.EntryCreator
type MockEntryCreator struct {
	mock.Mock
}

func (m *MockEntryCreator) CreateEntry(ctx context.Context, dto entry.CreateEntryDTO) (entry.Entry, error) {
	args := m.Called(ctx, dto)
	return args.Get(0).(entry.Entry), args.Error(1)
}

// MockNavigator is a mock implementation of screen.Navigator
type MockNavigator struct {
	mock.Mock
}

func (m *MockNavigator) Navigate(route screen.Route) {
	m.Called(route)
}

var (
	coffee = entry.Entry{ID: "7", Amount: money.NewAmount(3.2), Date: "2024-03-01", Currency: "EUR", Name: "Coffee", Category: "Food", Description: "Morning"}
	fuel   = entry.Entry{ID: "8", Amount: money.NewAmount(40), Date: "2024-03-02", Currency: "EUR", Name: "Fuel", Category: "Car", Description: "Full tank"}
)
