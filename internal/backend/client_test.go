package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/containerd/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func TestHTTPClient_Get_DataEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/profile", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":"1","name":"A","email":"a@b.com"}}`))
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL+"/", "tok", 5*time.Second)
	require.NoError(t, err)

	var p testProfile
	require.NoError(t, c.Get(context.Background(), "/profile", &p))
	assert.Equal(t, testProfile{ID: "1", Name: "A", Email: "a@b.com"}, p)
}

func TestHTTPClient_Get_BareBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"2","name":"B"}`))
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL, "", 5*time.Second)
	require.NoError(t, err)

	var p testProfile
	require.NoError(t, c.Get(context.Background(), "/profile", &p))
	assert.Equal(t, "2", p.ID)
}

func TestHTTPClient_StatusClassification(t *testing.T) {
	tests := []struct {
		status  int
		message string
		check   func(error) bool
	}{
		{http.StatusUnauthorized, MsgUnauthorized, errdefs.IsUnauthorized},
		{http.StatusNotFound, MsgNotFound, errdefs.IsNotFound},
		{http.StatusInternalServerError, MsgServer, errdefs.IsInternal},
		{http.StatusUnprocessableEntity, MsgValidation, errdefs.IsInvalidArgument},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			w.Write([]byte(`{"error":{"message":"backend says no"}}`))
		}))

		c, err := NewHTTPClient(srv.URL, "", 5*time.Second)
		require.NoError(t, err)
		err = c.Get(context.Background(), "/users", nil)
		srv.Close()

		require.Error(t, err, "status %d", tt.status)
		assert.True(t, tt.check(err), "status %d: kind check failed for %v", tt.status, err)
		assert.Equal(t, tt.message, Humanize(err), "status %d", tt.status)
	}
}

func TestHTTPClient_ValidationFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":{"message":"invalid","fields":{"email":"must be a valid email"}}}`))
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL, "", 5*time.Second)
	require.NoError(t, err)

	err = c.Post(context.Background(), "/users", map[string]string{"email": "nope"}, nil)
	require.Error(t, err)
	assert.Equal(t, "must be a valid email", FieldErrors(err)["email"])
}

func TestHTTPClient_TransportErrorClassifiedAsNetwork(t *testing.T) {
	// Point at a server that is immediately closed so the dial fails.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := NewHTTPClient(url, "", 1*time.Second)
	require.NoError(t, err)

	err = c.Get(context.Background(), "/users", nil)
	require.Error(t, err)
	assert.True(t, errdefs.IsUnavailable(err), "expected network kind, got %v", err)
	assert.Equal(t, MsgNetwork, Humanize(err))
}

func TestHTTPClient_PutSendsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"data":{"id":"1","name":"B","email":"x@y.com"}}`))
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL, "", 5*time.Second)
	require.NoError(t, err)

	var p testProfile
	require.NoError(t, c.Put(context.Background(), "/profile", testProfile{Name: "B"}, &p))
	// Server response is authoritative, including fields the caller never sent.
	assert.Equal(t, "x@y.com", p.Email)
}

func TestNewHTTPClient_RequiresBaseURL(t *testing.T) {
	_, err := NewHTTPClient("", "", time.Second)
	require.Error(t, err)
}
