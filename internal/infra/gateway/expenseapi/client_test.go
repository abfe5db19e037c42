package expenseapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kislikjeka/expensetrack/internal/infra/gateway/expenseapi"
	apperrors "github.com/kislikjeka/expensetrack/internal/shared/errors"
	"github.com/kislikjeka/expensetrack/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New("development", io.Discard)
}

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// =============================================================================
// Header Tests
// =============================================================================

func TestClient_Headers(t *testing.T) {
	var accept, requestID, contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		requestID = r.Header.Get("X-Request-ID")
		contentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(item{ID: "1"})
	}))
	defer server.Close()

	client := expenseapi.NewClient(server.URL, testLogger())

	var out item
	require.NoError(t, client.Post(context.Background(), "/categories", item{Name: "Food"}, &out))

	assert.Equal(t, "application/json", accept)
	assert.Equal(t, "application/json", contentType)
	_, err := uuid.Parse(requestID)
	assert.NoError(t, err, "request id should be a uuid")
}

func TestClient_GetHasNoContentType(t *testing.T) {
	var contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := expenseapi.NewClient(server.URL, testLogger())

	var out []item
	require.NoError(t, client.Get(context.Background(), "/entries", &out))
	assert.Empty(t, contentType)
}

// =============================================================================
// Verb and Path Tests
// =============================================================================

func TestClient_VerbsAndPaths(t *testing.T) {
	type call struct{ method, path, body string }
	var calls []call

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls = append(calls, call{r.Method, r.URL.Path, string(body)})
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Write([]byte(`{"id":"7","name":"Coffee"}`))
	}))
	defer server.Close()

	client := expenseapi.NewClient(server.URL+"/", testLogger())
	ctx := context.Background()

	var out item
	require.NoError(t, client.Get(ctx, "/entries/7", &out))
	require.NoError(t, client.Put(ctx, "/entries/7", item{ID: "7", Name: "Coffee"}, &out))
	require.NoError(t, client.Delete(ctx, "/entries/7"))

	require.Len(t, calls, 3)
	assert.Equal(t, call{"GET", "/entries/7", ""}, calls[0])
	assert.Equal(t, "PUT", calls[1].method)
	assert.JSONEq(t, `{"id":"7","name":"Coffee"}`, calls[1].body)
	assert.Equal(t, call{"DELETE", "/entries/7", ""}, calls[2])
	assert.Equal(t, item{ID: "7", Name: "Coffee"}, out)
}

func TestClient_DeleteIgnoresBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := expenseapi.NewClient(server.URL, testLogger())
	assert.NoError(t, client.Delete(context.Background(), "/entries/1"))
}

// =============================================================================
// Error Tests
// =============================================================================

func TestClient_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	}))
	defer server.Close()

	client := expenseapi.NewClient(server.URL, testLogger())

	var out item
	err := client.Get(context.Background(), "/entries/1", &out)
	require.Error(t, err)

	var httpErr *apperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, http.MethodGet, httpErr.Method)
	assert.Contains(t, httpErr.Body, "boom")
	assert.Empty(t, out.ID, "output must not be touched on failure")
}

func TestClient_NotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	client := expenseapi.NewClient(server.URL, testLogger())

	err := client.Get(context.Background(), "/entries/404", &item{})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := expenseapi.NewClient(url, testLogger())

	err := client.Get(context.Background(), "/entries", &[]item{})
	require.Error(t, err)
	assert.True(t, apperrors.IsNetworkError(err))
	assert.Equal(t, 0, apperrors.StatusCode(err))
}

func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := expenseapi.NewClient(server.URL, testLogger(), expenseapi.WithTimeout(50*time.Millisecond))

	err := client.Get(context.Background(), "/entries", &[]item{})
	assert.True(t, apperrors.IsNetworkError(err))
}

func TestClient_CancelledContext(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	client := expenseapi.NewClient(server.URL, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.Get(ctx, "/entries", &[]item{})
	require.Error(t, err)
	assert.True(t, apperrors.IsNetworkError(err))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestClient_DecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := expenseapi.NewClient(server.URL, testLogger())

	err := client.Get(context.Background(), "/entries", &[]item{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
	assert.False(t, apperrors.IsNetworkError(err))
}

// =============================================================================
// Pacing Tests
// =============================================================================

func TestClient_RateLimitPacesRequests(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := expenseapi.NewClient(server.URL, testLogger(), expenseapi.WithRateLimit(20, 1))

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, client.Get(context.Background(), "/entries", &[]item{}))
	}

	// burst of 1 at 20/s: the 2nd and 3rd requests each wait ~50ms
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits), "pacing never drops or retries requests")
}

// =============================================================================
// Logging Tests
// =============================================================================

func TestClient_LogsRequestFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	var buf bytes.Buffer
	client := expenseapi.NewClient(server.URL, logger.NewWithFormat("development", "json", &buf))
	ctx := logger.WithScreen(context.Background(), "EntryList")
	require.Error(t, client.Get(ctx, "/entries", nil))

	var apiError map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var record map[string]any
		require.NoError(t, json.Unmarshal(line, &record))
		if record["msg"] == "API error" {
			apiError = record
		}
	}
	require.NotNil(t, apiError, "log: %s", buf.String())
	assert.Equal(t, "GET", apiError["method"])
	assert.Equal(t, server.URL+"/entries", apiError["url"])
	assert.Equal(t, float64(http.StatusBadGateway), apiError["status_code"])
	assert.Equal(t, "expenseapi", apiError["component"])
	assert.Equal(t, "EntryList", apiError["screen"])
	assert.Contains(t, apiError, "request_id")
	assert.Contains(t, apiError, "duration_ms")
}
