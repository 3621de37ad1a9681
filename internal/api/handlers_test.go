package api

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahil1290-cm/flightinsightdashboard/internal/config"
	"github.com/sahil1290-cm/flightinsightdashboard/internal/insights"
	"github.com/sahil1290-cm/flightinsightdashboard/internal/market"
	"github.com/sahil1290-cm/flightinsightdashboard/internal/storage/sqlite"
	"github.com/sahil1290-cm/flightinsightdashboard/pkg/logger"
)

func writeTestTemplates(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	index := `<html><body>{{if .Error}}error: {{.Error}}{{end}}search form</body></html>`
	dashboard := `<html><body>flights: {{len .Flights}} cheapest: {{.Insights.KeyStatistics.CheapestDay}}</body></html>`

	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte(index), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dashboard.html"), []byte(dashboard), 0o644))
	return dir
}

func testServer(t *testing.T, withTemplates bool) http.Handler {
	t.Helper()

	cfg := config.Default()
	cfg.Server.TemplatesDir = ""
	cfg.Server.StaticDir = ""
	if withTemplates {
		cfg.Server.TemplatesDir = writeTestTemplates(t)
	}

	catalog := market.NewCatalog(cfg.Market)
	generator := market.NewGenerator(catalog, rand.New(rand.NewSource(1)), logger.Nop())
	composer := insights.NewComposer(nil, logger.Nop())

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	searches, err := sqlite.NewSearchStorage(db, logger.Nop())
	require.NoError(t, err)

	router, err := NewRouter(generator, composer, searches, cfg, logger.Nop())
	require.NoError(t, err)
	return router.Routes()
}

func postJSON(t *testing.T, srv http.Handler, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestGenerateFlightsEndpoint(t *testing.T) {
	srv := testServer(t, false)

	rec := postJSON(t, srv, "/api/v1/flights", map[string]string{
		"from_city":  "Boston",
		"to_city":    "Denver",
		"start_date": "2026-03-02",
		"end_date":   "2026-03-08",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Flights []market.FlightRecord `json:"flights"`
		Count   int                   `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	days := 7
	assert.Equal(t, len(body.Flights), body.Count)
	assert.GreaterOrEqual(t, body.Count, 3*days)
	assert.LessOrEqual(t, body.Count, 8*days)
	for _, rec := range body.Flights {
		assert.Positive(t, rec.Price)
		assert.Equal(t, "Boston", rec.FromCity)
		assert.Equal(t, "Denver", rec.ToCity)
	}
}

func TestGenerateFlightsValidation(t *testing.T) {
	srv := testServer(t, false)

	for name, payload := range map[string]map[string]string{
		"missing fields": {"from_city": "Boston"},
		"bad date": {
			"from_city": "Boston", "to_city": "Denver",
			"start_date": "03/02/2026", "end_date": "2026-03-08",
		},
		"equal dates": {
			"from_city": "Boston", "to_city": "Denver",
			"start_date": "2026-03-02", "end_date": "2026-03-02",
		},
		"inverted range": {
			"from_city": "Boston", "to_city": "Denver",
			"start_date": "2026-03-08", "end_date": "2026-03-02",
		},
	} {
		rec := postJSON(t, srv, "/api/v1/flights", payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
}

func TestRefreshInsightsEndpoint(t *testing.T) {
	srv := testServer(t, false)

	flights := []market.FlightRecord{
		{Date: "2026-03-02", Price: 100, Route: "A → B", Airline: "x", DayOfWeek: "Monday"},
		{Date: "2026-03-09", Price: 200, Route: "A → B", Airline: "x", DayOfWeek: "Monday"},
		{Date: "2026-03-16", Price: 300, Route: "A → B", Airline: "x", DayOfWeek: "Monday"},
	}

	rec := postJSON(t, srv, "/api/v1/refresh-insights", map[string]interface{}{
		"flight_data": flights,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Insights insights.Insights `json:"insights"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 200.0, body.Insights.KeyStatistics.AvgPrice)
	assert.Equal(t, 3, body.Insights.KeyStatistics.TotalFlights)
}

func TestRefreshInsightsRejectsEmpty(t *testing.T) {
	srv := testServer(t, false)

	rec := postJSON(t, srv, "/api/v1/refresh-insights", map[string]interface{}{
		"flight_data": []market.FlightRecord{},
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "no flight data provided", body["error"])
}

func TestRecentSearchesAfterGeneration(t *testing.T) {
	srv := testServer(t, false)

	rec := postJSON(t, srv, "/api/v1/flights", map[string]string{
		"from_city":  "New York",
		"to_city":    "London",
		"start_date": "2026-03-02",
		"end_date":   "2026-03-04",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/searches/recent", nil)
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Searches []sqlite.SearchRecord `json:"searches"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Searches, 1)
	assert.Equal(t, "New York", body.Searches[0].FromCity)
	assert.Equal(t, "long_haul", body.Searches[0].RouteType)
	assert.Positive(t, body.Searches[0].FlightCount)
}

func TestDashboardRendersResults(t *testing.T) {
	srv := testServer(t, true)

	form := url.Values{
		"from_city":  {"Boston"},
		"to_city":    {"Denver"},
		"start_date": {"2026-03-02"},
		"end_date":   {"2026-03-08"},
	}
	req := httptest.NewRequest(http.MethodPost, "/dashboard", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "flights: ")
	assert.Contains(t, rec.Body.String(), "cheapest: ")
}

func TestDashboardRedirectsOnInvalidInput(t *testing.T) {
	srv := testServer(t, true)

	form := url.Values{
		"from_city":  {"Boston"},
		"to_city":    {"Denver"},
		"start_date": {"2026-03-08"},
		"end_date":   {"2026-03-02"},
	}
	req := httptest.NewRequest(http.MethodPost, "/dashboard", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "error=")
}

func TestIndexShowsError(t *testing.T) {
	srv := testServer(t, true)

	req := httptest.NewRequest(http.MethodGet, "/?error=invalid+date+format", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "error: invalid date format")
}
