package entry_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kislikjeka/expensetrack/internal/infra/gateway/expenseapi"
	"github.com/kislikjeka/expensetrack/internal/module/entry"
	apperrors "github.com/kislikjeka/expensetrack/internal/shared/errors"
	"github.com/kislikjeka/expensetrack/pkg/logger"
	"github.com/kislikjeka/expensetrack/pkg/money"
)

func newAPI(t *testing.T, handler http.HandlerFunc) *entry.API {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return entry.NewAPI(expenseapi.NewClient(server.URL, logger.Discard()))
}

func TestAPI_FetchAll(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/entries", r.URL.Path)
		w.Write([]byte(`[
			{"id":"1","amount":"12.50","date":"2024-03-01","currency":"EUR","name":"Coffee","category":"Food","description":"Morning"},
			{"id":2,"amount":40,"date":"2024-03-02","currency":"EUR","name":"Fuel","category":"Car","description":""}
		]`))
	})

	entries, err := api.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "1", entries[0].ID.String())
	assert.Equal(t, 12.5, entries[0].Amount.Float64())
	assert.Equal(t, "2", entries[1].ID.String(), "numeric ids are normalised to strings")
	assert.Equal(t, 40.0, entries[1].Amount.Float64())
}

func TestAPI_FetchAll_KeepsNonNumericAmount(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":1,"amount":"3.20","currency":"EUR","name":"Coffee"},
			{"id":2,"amount":"12,50","currency":"EUR","name":"Lunch"}
		]`))
	})

	entries, err := api.FetchAll(context.Background())
	require.NoError(t, err, "one malformed amount must not fail the whole list")
	require.Len(t, entries, 2)

	assert.True(t, entries[0].Amount.Valid())
	assert.Equal(t, 3.2, entries[0].Amount.Float64())
	assert.False(t, entries[1].Amount.Valid())
	assert.Equal(t, "12,50", entries[1].Amount.String())
	assert.Equal(t, "Lunch", entries[1].Name)
}

func TestAPI_FetchAll_NullBody(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	})

	entries, err := api.FetchAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestAPI_FetchOne_NotFound(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/entries/99", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := api.FetchOne(context.Background(), "99")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "fetch entry 99")
}

func TestAPI_Create(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/entries", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		var raw map[string]any
		assert.NoError(t, json.Unmarshal(body, &raw))
		_, hasID := raw["id"]
		assert.False(t, hasID, "create payload must not carry an id")
		assert.Equal(t, 3.5, raw["amount"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"abc","amount":3.5,"name":"Tea","currency":"EUR","date":"2024-03-03","category":"","description":"x"}`))
	})

	created, err := api.Create(context.Background(), entry.CreateEntryDTO{Amount: money.NewAmount(3.5), Name: "Tea", Currency: "EUR", Date: "2024-03-03", Description: "x"})
	require.NoError(t, err)
	assert.Equal(t, "abc", created.ID.String())
	assert.Equal(t, "Tea", created.Name)
}

func TestAPI_Update_SendsFullEntity(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/entries/5", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"id":"5","amount":12.5,"date":"2024-03-01","currency":"EUR","name":"Coffee","category":"","description":"Morning"}`, string(body))
		w.Write(body)
	})

	e := entry.Entry{ID: "5", Amount: money.NewAmount(12.5), Date: "2024-03-01", Currency: "EUR", Name: "Coffee", Description: "Morning"}
	updated, err := api.Update(context.Background(), "5", e)
	require.NoError(t, err)
	assert.Equal(t, e, updated)
}

func TestAPI_Update_EmptyResponse(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	e := entry.Entry{Amount: money.NewAmount(1), Name: "x"}
	updated, err := api.Update(context.Background(), "8", e)
	require.NoError(t, err)
	assert.Equal(t, "8", updated.ID.String())
	assert.Equal(t, "x", updated.Name)
}

func TestAPI_Delete(t *testing.T) {
	var method, path string
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, api.Delete(context.Background(), "5"))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/entries/5", path)
}

func TestAPI_Delete_ServerError(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := api.Delete(context.Background(), "5")
	assert.Equal(t, http.StatusInternalServerError, apperrors.StatusCode(err))
}
