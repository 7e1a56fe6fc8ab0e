package cmd

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/etnz/immosim"
)

const testPortfolio = `{"name":"Tour A","rent":100000,"purchaseCap":5,"exitCap":6,"ltv":60,"termYears":7,"occupancy":95,"indexation":2,"capex":50000}
`

func TestServe_Form(t *testing.T) {
	createTempPortfolio(t, testPortfolio)
	s := newServer(immosim.NewMemoryCache())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{`value="Tour A"`, "Results", "Portfolio Totals"} {
		if !strings.Contains(body, want) {
			t.Errorf("form page misses %q", want)
		}
	}
}

func TestServe_Recompute(t *testing.T) {
	createTempPortfolio(t, "")
	cache := immosim.NewMemoryCache()
	s := newServer(cache)

	form := url.Values{
		"name":        {"Tour A"},
		"rent":        {"100000"},
		"purchaseCap": {"5"},
		"exitCap":     {"6"},
		"ltv":         {"60"},
		"termYears":   {"7"},
		"occupancy":   {"95"},
	}

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		s.mux.ServeHTTP(w, req)
		return w
	}

	w := post()
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	// Acquisition at a 5% cap on 100,000 of rent is 2,000,000; at 60% LTV
	// the debt is 1,200,000.
	body := w.Body.String()
	if !strings.Contains(body, "1,200,000") {
		t.Errorf("results miss the debt figure:\n%s", body)
	}

	// The same submission is served from the cache.
	buildings, err := parseBuildings(form)
	if err != nil {
		t.Fatal(err)
	}
	key, err := immosim.CacheKey(immosim.DefaultConfig(), buildings)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.Get(key); !ok {
		t.Error("rendered results were not cached")
	}
	if w := post(); w.Code != http.StatusOK {
		t.Errorf("cached recompute expected 200, got %d", w.Code)
	}
}

func TestServe_BadForm(t *testing.T) {
	createTempPortfolio(t, "")
	s := newServer(immosim.NewMemoryCache())

	form := url.Values{
		"name": {"Tour A"},
		"rent": {"not-a-number"},
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestServe_MethodNotAllowed(t *testing.T) {
	createTempPortfolio(t, "")
	s := newServer(immosim.NewMemoryCache())

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestServe_ExportCSV(t *testing.T) {
	createTempPortfolio(t, testPortfolio)
	s := newServer(immosim.NewMemoryCache())

	req := httptest.NewRequest(http.MethodGet, "/export.csv", nil)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, "Name,TotalInvestment") {
		t.Errorf("csv misses its header row:\n%s", body)
	}
	if !strings.Contains(body, "Tour A") {
		t.Errorf("csv misses the building row:\n%s", body)
	}
}

func TestParseBuildings_Empty(t *testing.T) {
	if _, err := parseBuildings(url.Values{}); err == nil {
		t.Error("parseBuildings() on an empty form expected an error")
	}
}
