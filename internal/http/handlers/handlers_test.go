package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/adboard-be/internal/auth"
	"github.com/hongminglow/adboard-be/internal/credential"
	"github.com/hongminglow/adboard-be/internal/storage/memory"
)

type testAPI struct {
	t      *testing.T
	router chi.Router
	store  *memory.Store
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := memory.NewStore()
	hasher, err := credential.NewHasher(credential.MD5)
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	NewAccountHandler(store, hasher, logger).Register(r)
	NewListingHandler(store, auth.NewAuthenticator(store, hasher), logger).Register(r)
	return &testAPI{t: t, router: r, store: store}
}

type creds struct{ email, password string }

// do sends body (marshalled unless it is already a string) and decodes the
// JSON response into a generic map.
func (a *testAPI) do(method, path string, body any, c *creds) (int, map[string]any) {
	a.t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c != nil {
		req.Header.Set(auth.EmailHeader, c.email)
		req.Header.Set(auth.PasswordHeader, c.password)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return rec.Code, out
}

// createAccount registers an account and returns its id and credentials.
func (a *testAPI) createAccount(name, email string) (int64, *creds) {
	a.t.Helper()
	password := "Abcdefg1"
	status, body := a.do(http.MethodPost, "/account", map[string]string{
		"name": name, "email": email, "password": password,
	}, nil)
	require.Equal(a.t, http.StatusOK, status, "body: %v", body)
	return int64(body["id"].(float64)), &creds{email: email, password: password}
}

func (a *testAPI) createListing(c *creds, title, description string) int64 {
	a.t.Helper()
	status, body := a.do(http.MethodPost, "/listing", map[string]string{
		"title": title, "description": description,
	}, c)
	require.Equal(a.t, http.StatusOK, status, "body: %v", body)
	return int64(body["id"].(float64))
}
