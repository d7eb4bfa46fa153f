package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/mechanicassist/internal/client/api"
	"github.com/dmitrijs2005/mechanicassist/internal/client/session"
	"github.com/stretchr/testify/require"
)

// backend is a small in-memory stand-in for the dispatch API. It issues
// numbered access tokens, accepts only the latest one, and rotates nothing.
type backend struct {
	mu sync.Mutex

	access       string
	refresh      string
	refreshValid bool
	accessSeq    int

	refreshCalls int
	hits         map[string]int
	lastBody     map[string]json.RawMessage
	lastQuery    string

	requests map[int64]map[string]any

	srv *httptest.Server
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{
		refresh:      "R1",
		refreshValid: true,
		hits:         map[string]int{},
		lastBody:     map[string]json.RawMessage{},
		requests: map[int64]map[string]any{
			5: {"id": 5, "status": "REQUESTED", "issue_text": "flat tyre", "customer_lat": "12.000000", "customer_lng": "77.000000"},
			6: {"id": 6, "status": "ACCEPTED", "issue_text": "dead battery", "customer_lat": "12.000000", "customer_lng": "77.000000"},
		},
	}
	b.srv = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *backend) url() string { return b.srv.URL + "/api" }

// expireAccess makes the current access token invalid.
func (b *backend) expireAccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.access = "expired-" + b.access
}

func (b *backend) issueAccess() string {
	b.accessSeq++
	b.access = fmt.Sprintf("A%d", b.accessSeq)
	return b.access
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var asha = map[string]any{"id": 1, "email": "asha@example.com", "name": "Asha", "phone": "555", "role": "CUSTOMER"}

func (b *backend) serve(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	path := strings.TrimPrefix(r.URL.Path, "/api")

	b.mu.Lock()
	defer b.mu.Unlock()
	b.hits[r.Method+" "+path]++
	b.lastBody[path] = raw
	b.lastQuery = r.URL.RawQuery

	switch path {
	case "/auth/login/", "/auth/register/":
		var in map[string]string
		_ = json.Unmarshal(raw, &in)
		if in["password"] != "secret" {
			reply(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
			return
		}
		reply(w, http.StatusOK, map[string]any{
			"user":    asha,
			"tokens":  map[string]string{"access": b.issueAccess(), "refresh": b.refresh},
			"message": "Login successful",
		})
		return
	case api.RefreshPath:
		b.refreshCalls++
		var in map[string]string
		_ = json.Unmarshal(raw, &in)
		if !b.refreshValid || in["refresh"] != b.refresh {
			reply(w, http.StatusUnauthorized, map[string]string{"detail": "Token is invalid or expired", "code": "token_not_valid"})
			return
		}
		reply(w, http.StatusOK, map[string]string{"access": b.issueAccess()})
		return
	case "/ratings/mechanic/7/":
		reply(w, http.StatusOK, []map[string]any{{"id": 1, "stars": 5, "review_text": "quick"}})
		return
	}

	if b.access == "" || r.Header.Get("Authorization") != "Bearer "+b.access {
		reply(w, http.StatusUnauthorized, map[string]string{"detail": "Given token not valid for any token type"})
		return
	}

	switch {
	case path == "/auth/me/":
		reply(w, http.StatusOK, asha)
	case path == "/auth/profile/update/":
		u := map[string]any{}
		for k, v := range asha {
			u[k] = v
		}
		var in map[string]string
		_ = json.Unmarshal(raw, &in)
		for k, v := range in {
			u[k] = v
		}
		reply(w, http.StatusOK, u)
	case path == "/requests/customer/", path == "/requests/mechanic/":
		out := []map[string]any{b.requests[5], b.requests[6]}
		reply(w, http.StatusOK, out)
	case path == "/requests/create/":
		reply(w, http.StatusCreated, map[string]any{
			"id": 9, "status": "REQUESTED", "issue_text": "flat tyre",
			"customer_lat": "12.000000", "customer_lng": "77.000000",
			"distance_km": "5.00", "estimated_cost": "150.00",
			"mechanic": map[string]any{"id": 7, "name": "Ravi", "role": "MECHANIC"},
		})
	case path == "/requests/5/accept/":
		b.requests[5]["status"] = "ACCEPTED"
		reply(w, http.StatusOK, b.requests[5])
	case path == "/requests/6/complete/":
		b.requests[6]["status"] = "COMPLETED"
		reply(w, http.StatusOK, b.requests[6])
	case path == "/requests/6/accept/":
		reply(w, http.StatusBadRequest, map[string]string{"error": "Request is already ACCEPTED"})
	case path == "/mechanic/profile/":
		reply(w, http.StatusOK, map[string]any{"id": 3, "skill_type": "TYRES", "availability": true, "latitude": "12.000000", "longitude": "77.000000", "rating_avg": "4.50", "rating_count": 2})
	case path == "/mechanic/profile/update/":
		var in map[string]any
		_ = json.Unmarshal(raw, &in)
		in["id"] = 3
		reply(w, http.StatusOK, in)
	case path == "/mechanics/nearby/":
		reply(w, http.StatusOK, []map[string]any{
			{"id": 3, "user": map[string]any{"id": 7, "name": "Ravi", "role": "MECHANIC"}, "skill_type": "TYRES", "availability": true, "rating_avg": "4.50", "rating_count": 2, "distance_km": 5.0},
			{"id": 4, "user": map[string]any{"id": 8, "name": "Mei", "role": "MECHANIC"}, "skill_type": "ENGINE", "availability": true, "rating_avg": "0.00", "rating_count": 0, "distance_km": 12.3},
		})
	case path == "/ratings/add/":
		reply(w, http.StatusCreated, map[string]any{"id": 11, "stars": 4, "review_text": "good"})
	default:
		reply(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
	}
}

func (b *backend) count(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[key]
}

type harness struct {
	backend *backend
	store   *session.MemoryStore
	session *session.Session
	client  *api.Client
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	b := newBackend(t)
	st := session.NewMemoryStore()
	sess := session.New(st)
	c, err := api.New(b.url(), sess)
	require.NoError(t, err)
	return &harness{backend: b, store: st, session: sess, client: c}
}

// signIn logs in through the backend so the session holds a valid pair.
func (h *harness) signIn(t *testing.T) {
	t.Helper()
	_, err := NewAuthService(h.client, h.session).Login(t.Context(), "asha@example.com", "secret")
	require.NoError(t, err)
}
