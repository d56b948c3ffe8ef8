package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servly-app/servly/internal/storage"
)

type memStore map[string]string

func (m memStore) Get(_ context.Context, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return v, nil
}

func (m memStore) Set(_ context.Context, key, value string) error {
	m[key] = value
	return nil
}

func (m memStore) Delete(_ context.Context, key string) error {
	delete(m, key)
	return nil
}

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Notify(message string) {
	n.messages = append(n.messages, message)
}

func TestClient_GetDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/services", r.URL.Path)
		w.Write([]byte(`{"data": [{"serviceId": "svc-1"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, memStore{})
	resp, err := c.Get(context.Background(), "/services", RequestOptions{})

	require.NoError(t, err)
	assert.JSONEq(t, `[{"serviceId": "svc-1"}]`, string(resp.Data))
}

func TestClient_AttachesBearerTokenFromStorage(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data": null}`))
	}))
	defer srv.Close()

	store := memStore{storage.KeyToken: "srv_abc123"}
	c := NewClient(srv.URL, store)

	_, err := c.Get(context.Background(), "/", RequestOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer srv_abc123", gotAuth)
}

func TestClient_MissingTokenIsNotAnError(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data": null}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, memStore{})

	_, err := c.Get(context.Background(), "/", RequestOptions{})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_QueryParams(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"data": null}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, memStore{})
	_, err := c.Get(context.Background(), "/services", RequestOptions{
		Query: url.Values{"location": {"Mumbai"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "Mumbai", gotQuery.Get("location"))
}

func TestClient_EmptyBodyIsNullResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, memStore{})
	resp, err := c.Delete(context.Background(), "/bookings/1", RequestOptions{})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Nil(t, resp.Data)
}

func TestClient_HTTPErrorCarriesStatusAndMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "service not found"}`))
	}))
	defer srv.Close()

	notifier := &recordingNotifier{}
	c := NewClient(srv.URL, memStore{}, WithNotifier(notifier))

	_, err := c.Get(context.Background(), "/services/missing", RequestOptions{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "service not found", apiErr.Message)
	// HTTP-status errors never auto-notify; callers decide.
	assert.Empty(t, notifier.messages)
}

func TestClient_HTTPErrorPrefersMessageField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "invalid booking"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, memStore{})
	_, err := c.Post(context.Background(), "/bookings", map[string]string{}, RequestOptions{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid booking", apiErr.Message)
}

func TestClient_HTTPErrorWithUnparseableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`oops`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, memStore{})
	_, err := c.Get(context.Background(), "/", RequestOptions{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "oops", apiErr.Message)
}

func TestClient_TimeoutIsFlaggedAndNotifies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"data": null}`))
	}))
	defer srv.Close()

	notifier := &recordingNotifier{}
	c := NewClient(srv.URL, memStore{}, WithTimeout(20*time.Millisecond), WithNotifier(notifier))

	_, err := c.Get(context.Background(), "/slow", RequestOptions{})

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.True(t, reqErr.Timeout)
	assert.False(t, reqErr.Network)
	assert.Len(t, notifier.messages, 1)
}

func TestClient_NetworkFailureIsFlaggedAndNotifies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	notifier := &recordingNotifier{}
	c := NewClient(srv.URL, memStore{}, WithNotifier(notifier))

	_, err := c.Get(context.Background(), "/", RequestOptions{})

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.True(t, reqErr.Network)
	assert.False(t, reqErr.Timeout)
	assert.Len(t, notifier.messages, 1)
}

func TestClient_PerRequestTimeoutOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.Write([]byte(`{"data": null}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, memStore{}, WithTimeout(10*time.Millisecond))

	// The default would time out, the per-request override does not.
	_, err := c.Get(context.Background(), "/slow", RequestOptions{Timeout: time.Second})
	require.NoError(t, err)
}

func TestClient_IdempotencyKeyHeader(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Idempotency-Key")
		w.Write([]byte(`{"data": null}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, memStore{})
	_, err := c.Post(context.Background(), "/bookings", nil, RequestOptions{IdempotencyKey: "idem-1"})

	require.NoError(t, err)
	assert.Equal(t, "idem-1", gotKey)
}

func TestRequestError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &RequestError{Network: true, Err: inner}
	assert.ErrorIs(t, err, inner)
}
