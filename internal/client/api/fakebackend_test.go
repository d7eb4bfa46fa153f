package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/mechanicassist/internal/client/session"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	Method    string
	Path      string
	Auth      string
	RequestID string
	Body      string
}

// fakeBackend accepts a single valid access token and exchanges a single
// valid refresh token for newAccess.
type fakeBackend struct {
	mu sync.Mutex

	validAccess   string
	validRefresh  string
	newAccess     string
	rotateRefresh string
	refreshFails  bool

	// status returned by protected routes regardless of auth, 0 = normal
	forceStatus int

	refreshCalls  int
	refreshBodies []string
	calls         []recordedCall

	srv *httptest.Server
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{
		validAccess:  "A1",
		validRefresh: "R1",
		newAccess:    "A2",
	}
	fb.srv = httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(fb.srv.Close)
	return fb
}

func (fb *fakeBackend) baseURL() string {
	return fb.srv.URL + "/api"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (fb *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	path := strings.TrimPrefix(r.URL.Path, "/api")

	fb.mu.Lock()
	defer fb.mu.Unlock()

	if path == RefreshPath {
		fb.refreshCalls++
		fb.refreshBodies = append(fb.refreshBodies, string(body))
		var req refreshRequest
		_ = json.Unmarshal(body, &req)
		if fb.refreshFails || req.Refresh != fb.validRefresh || r.Header.Get("Authorization") != "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token is invalid or expired", "code": "token_not_valid"})
			return
		}
		fb.validAccess = fb.newAccess
		resp := map[string]string{"access": fb.newAccess}
		if fb.rotateRefresh != "" {
			resp["refresh"] = fb.rotateRefresh
			fb.validRefresh = fb.rotateRefresh
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}

	fb.calls = append(fb.calls, recordedCall{
		Method:    r.Method,
		Path:      path,
		Auth:      r.Header.Get("Authorization"),
		RequestID: r.Header.Get(RequestIDHeader),
		Body:      string(body),
	})

	if fb.forceStatus != 0 {
		writeJSON(w, fb.forceStatus, map[string]string{"error": "Request is already ACCEPTED"})
		return
	}
	if r.Header.Get("Authorization") != "Bearer "+fb.validAccess {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Given token not valid for any token type"})
		return
	}

	switch path {
	case "/auth/me/":
		writeJSON(w, http.StatusOK, map[string]any{"id": 1, "email": "asha@example.com", "name": "Asha", "role": "CUSTOMER"})
	default:
		writeJSON(w, http.StatusOK, map[string]any{"path": path, "query": r.URL.RawQuery})
	}
}

func (fb *fakeBackend) snapshot() (int, []recordedCall) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.refreshCalls, append([]recordedCall(nil), fb.calls...)
}

func seededSession(t *testing.T, access, refresh string) (*session.Session, *session.MemoryStore) {
	t.Helper()
	st := session.NewMemoryStore()
	ctx := t.Context()
	if access != "" {
		require.NoError(t, st.Set(ctx, session.KeyAccessToken, []byte(access)))
	}
	if refresh != "" {
		require.NoError(t, st.Set(ctx, session.KeyRefreshToken, []byte(refresh)))
	}
	require.NoError(t, st.Set(ctx, session.KeyUser, []byte(`{"id":1,"email":"asha@example.com"}`)))
	return session.New(st), st
}

func newTestClient(t *testing.T, fb *fakeBackend, sess *session.Session, opts ...Option) *Client {
	t.Helper()
	c, err := New(fb.baseURL(), sess, opts...)
	require.NoError(t, err)
	return c
}
