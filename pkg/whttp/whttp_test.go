package whttp

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func TestFetchDecodedWindows1254(t *testing.T) {
	page := `<html><head><title>Yemekhane</title></head><body>Ekşili Köfte çorbası ığüşöç</body></html>`
	encoded, err := charmap.Windows1254.NewEncoder().Bytes([]byte(page))
	if err != nil {
		t.Fatal(err)
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "Mozilla") {
			t.Errorf("expected a browser-like user agent, got %q", ua)
		}
		w.Write(encoded)
	}))
	defer ts.Close()

	res, err := FetchDecoded(&Request{URL: ts.URL}, ts.Client())
	if err != nil {
		t.Fatalf("FetchDecoded failed: %v", err)
	}

	if !strings.Contains(res.Body, "Ekşili Köfte çorbası ığüşöç") {
		t.Errorf("Turkish letters corrupted in decode:\n%s", res.Body)
	}
	if res.Title != "Yemekhane" {
		t.Errorf("title = %q", res.Title)
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("status = %d", res.StatusCode)
	}
}

func TestFetchDecodedNonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer ts.Close()

	_, err := FetchDecoded(&Request{URL: ts.URL}, ts.Client())
	var ferr *FetchError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if ferr.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", ferr.StatusCode)
	}
}
