package torrents

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func performSearch(t *testing.T, source Source, target string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	h := NewHandlers(newTestService(source))
	h.RegisterRoutes(e.Group("/api"))

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSearchTorrentsEndpoint(t *testing.T) {
	magnet := "magnet:?xt=urn:btih:abc"
	source := &fakeSource{
		listings: map[string][]CandidateListing{
			"[ASW] Dandadan - 5": {
				{
					Title:       "[ASW] Dandadan - 05 [1080p]",
					Size:        "1.4 GiB",
					Date:        "2026-08-01 12:00",
					Seeders:     120,
					Leechers:    4,
					DownloadURL: "https://nyaa.si/download/1.torrent",
					MagnetURL:   &magnet,
				},
			},
		},
	}

	rec := performSearch(t, source, "/api/torrents/Dandadan?episode=5")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var body []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not a JSON array: %v", err)
	}
	if len(body) != 1 {
		t.Fatalf("got %d results, want 1", len(body))
	}

	got := body[0]
	for _, field := range []string{"title", "size", "date", "seeds", "leeches", "downloadUrl", "magnetUrl"} {
		if _, ok := got[field]; !ok {
			t.Errorf("response missing field %q: %v", field, got)
		}
	}
	if got["seeds"] != float64(120) {
		t.Errorf("seeds = %v", got["seeds"])
	}
}

func TestSearchTorrentsNullMagnet(t *testing.T) {
	source := &fakeSource{
		listings: map[string][]CandidateListing{
			"[ASW] Dandadan - 5": {
				{Title: "[ASW] Dandadan - 05", DownloadURL: "https://nyaa.si/download/1.torrent"},
			},
		},
	}

	rec := performSearch(t, source, "/api/torrents/Dandadan?episode=5")

	var body []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v, ok := body[0]["magnetUrl"]; !ok || v != nil {
		t.Errorf("magnetUrl = %v, want explicit null", v)
	}
}

func TestSearchTorrentsBadEpisode(t *testing.T) {
	rec := performSearch(t, &fakeSource{}, "/api/torrents/Dandadan?episode=zero")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSearchTorrentsUpstreamFailureIsEmptyArray(t *testing.T) {
	source := &fakeSource{
		errs: map[string]error{},
	}
	for _, v := range BuildVariants("Dandadan", EpisodeSelector{Number: 5}) {
		source.errs[v] = ErrRateLimited
	}

	rec := performSearch(t, source, "/api/torrents/Dandadan?episode=5")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "[]\n" && rec.Body.String() != "[]" {
		t.Errorf("body = %q, want an empty JSON array", rec.Body.String())
	}
}
