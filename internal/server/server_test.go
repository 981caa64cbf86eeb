package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"codeberg.org/snonux/bgrhyme/internal/classify"
	"codeberg.org/snonux/bgrhyme/internal/logging"
	"codeberg.org/snonux/bgrhyme/internal/rhyme"
	"codeberg.org/snonux/bgrhyme/internal/transcribe"
)

func newTestServer() *Server {
	tr := transcribe.NewTranscriber(nil, transcribe.DefaultOptions())
	b := rhyme.NewBuilder(tr)
	classes := &classify.Classes{Buckets: map[string][]string{
		"a": {"вода`", "беда`", "среда`"},
	}}
	return New(tr, b, classes, logging.Discard())
}

func get(t *testing.T, h http.Handler, path string, params url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path+"?"+params.Encode(), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestTranscribeWord(t *testing.T) {
	h := newTestServer().Handler()

	tests := []struct {
		name   string
		word   string
		status int
		ipa    string
	}{
		{"stressed", "вода\u0301", http.StatusOK, "voˈda"},
		{"monosyllable", "как", http.StatusOK, "kak"},
		{"latin", "hello", http.StatusBadRequest, ""},
		{"grave only", "ра\u0300бота", http.StatusBadRequest, ""},
		{"missing", "", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := url.Values{}
			if tt.word != "" {
				params.Set("word", tt.word)
			}
			rec := get(t, h, "/api/transcribe", params)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body)
			}
			if tt.status != http.StatusOK {
				return
			}
			var got transcription
			if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got.IPA != tt.ipa {
				t.Errorf("ipa = %q, want %q", got.IPA, tt.ipa)
			}
		})
	}
}

func TestTranscribeBatch(t *testing.T) {
	h := newTestServer().Handler()

	body := `{"words":["зъб","ра\u0300бота"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/transcribe", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body)
	}
	var got batchResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(got.Results))
	}
	if got.Results[0].IPA != "zɤp" {
		t.Errorf("results[0].ipa = %q, want %q", got.Results[0].IPA, "zɤp")
	}
	if got.Results[1].Error == "" {
		t.Error("results[1] should carry an error")
	}

	req = httptest.NewRequest(http.MethodPost, "/api/transcribe", strings.NewReader(`{"words":[]}`))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty batch status = %d, want 400", rec.Code)
	}
}

func TestRhyme(t *testing.T) {
	h := newTestServer().Handler()

	rec := get(t, h, "/api/rhyme", url.Values{"word": {"беда`"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body)
	}
	var got rhymeResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Key != "a" {
		t.Errorf("key = %q, want %q", got.Key, "a")
	}
	if len(got.Rhymes) != 3 {
		t.Errorf("rhymes = %q, want 3 members", got.Rhymes)
	}

	rec = get(t, h, "/api/rhyme", url.Values{"word": {"вода"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("unstressed status = %d, want 422", rec.Code)
	}
}

func TestRequestIDAndCORS(t *testing.T) {
	h := newTestServer().Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://example.org")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("missing Access-Control-Allow-Origin header")
	}
}

func TestAllowOrigins(t *testing.T) {
	s := newTestServer()
	s.AllowOrigins("https://rhymes.example.org")
	h := s.Handler()

	tests := []struct {
		origin string
		want   string
	}{
		{"https://rhymes.example.org", "https://rhymes.example.org"},
		{"https://other.example.org", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("Origin", tt.origin)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
			t.Errorf("origin %s: Access-Control-Allow-Origin = %q, want %q", tt.origin, got, tt.want)
		}
	}
}

func TestTranscribeBatchBodyLimit(t *testing.T) {
	h := newTestServer().Handler()

	body := `{"words":["` + strings.Repeat("а", MaxBodyBytes) + `"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/transcribe", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}
