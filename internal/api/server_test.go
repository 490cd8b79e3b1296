package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/nyanbar/nyanbar/internal/config"
	"github.com/nyanbar/nyanbar/internal/database"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	return NewServer(db, cfg, zerolog.Nop())
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/health", "/api/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		s.Echo().ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
			continue
		}

		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode %s response: %v", path, err)
		}
		if body["status"] != "ok" {
			t.Errorf("GET %s status = %q", path, body["status"])
		}
	}
}

func TestWatchlistEndToEnd(t *testing.T) {
	s := newTestServer(t)

	post := httptest.NewRequest(http.MethodPost, "/api/watchlist",
		strings.NewReader(`{"animeId": 1, "title": {"romaji": "Dandadan"}}`))
	post.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, post)

	if rec.Code != http.StatusOK {
		t.Fatalf("POST /api/watchlist = %d, body = %s", rec.Code, rec.Body.String())
	}

	get := httptest.NewRequest(http.MethodGet, "/api/watchlist", nil)
	rec = httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, get)

	var entries []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode watch list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("watch list has %d entries, want 1", len(entries))
	}
	if entries[0]["animeId"] != float64(1) {
		t.Errorf("entry = %v", entries[0])
	}
}

func TestRoutesRegistered(t *testing.T) {
	s := newTestServer(t)

	want := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/torrents/:animeTitle"},
		{http.MethodGet, "/api/anime/:id"},
		{http.MethodGet, "/api/search"},
		{http.MethodGet, "/api/trending"},
		{http.MethodGet, "/api/popular"},
		{http.MethodPost, "/api/watchlist"},
		{http.MethodDelete, "/api/watchlist/:id"},
		{http.MethodPut, "/api/watchlist/:id/progress"},
		{http.MethodGet, "/api/notifications"},
		{http.MethodPost, "/api/notifications/check"},
		{http.MethodPost, "/api/notifications/:id/read"},
	}

	registered := make(map[string]bool)
	for _, route := range s.Echo().Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, w := range want {
		if !registered[w.method+" "+w.path] {
			t.Errorf("route %s %s not registered", w.method, w.path)
		}
	}
}
