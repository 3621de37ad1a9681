package api

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sahil1290-cm/flightinsightdashboard/internal/charts"
	"github.com/sahil1290-cm/flightinsightdashboard/internal/config"
	"github.com/sahil1290-cm/flightinsightdashboard/internal/insights"
	"github.com/sahil1290-cm/flightinsightdashboard/internal/market"
	"github.com/sahil1290-cm/flightinsightdashboard/internal/storage/sqlite"
	"github.com/sahil1290-cm/flightinsightdashboard/pkg/logger"
)

const recentSearchesDefault = 20

// Handler holds the API handler dependencies
type Handler struct {
	generator *market.Generator
	composer  *insights.Composer
	searches  *sqlite.SearchStorage // nil when storage is disabled
	config    *config.Config
	logger    *logger.Logger
	templates *template.Template
}

// NewHandler creates a new API handler. Templates are loaded from the
// configured directory; an empty directory disables the HTML pages (the JSON
// API keeps working), which the tests rely on.
func NewHandler(generator *market.Generator, composer *insights.Composer, searches *sqlite.SearchStorage, cfg *config.Config, log *logger.Logger) (*Handler, error) {
	h := &Handler{
		generator: generator,
		composer:  composer,
		searches:  searches,
		config:    cfg,
		logger:    log.Named("api-handler"),
	}

	if cfg.Server.TemplatesDir != "" {
		tmpl, err := template.ParseGlob(filepath.Join(cfg.Server.TemplatesDir, "*.html"))
		if err != nil {
			return nil, fmt.Errorf("failed to parse templates: %w", err)
		}
		h.templates = tmpl
	}

	return h, nil
}

// searchQuery is a validated dashboard search
type searchQuery struct {
	FromCity  string `json:"from_city"`
	ToCity    string `json:"to_city"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	start time.Time
	end   time.Time
}

// validate checks presence, date format and ordering. These checks live at
// the boundary; the generator itself never validates input.
func (q *searchQuery) validate() error {
	q.FromCity = strings.TrimSpace(q.FromCity)
	q.ToCity = strings.TrimSpace(q.ToCity)

	if q.FromCity == "" || q.ToCity == "" || q.StartDate == "" || q.EndDate == "" {
		return fmt.Errorf("please fill in all fields")
	}

	var err error
	q.start, err = time.Parse(market.DateLayout, q.StartDate)
	if err != nil {
		return fmt.Errorf("invalid date format")
	}
	q.end, err = time.Parse(market.DateLayout, q.EndDate)
	if err != nil {
		return fmt.Errorf("invalid date format")
	}

	if !q.start.Before(q.end) {
		return fmt.Errorf("end date must be after start date")
	}

	return nil
}

// dashboardData is the template context for the dashboard page
type dashboardData struct {
	Flights  []market.FlightRecord
	Insights insights.Insights
	Charts   charts.Dashboard
	Search   searchQuery
}

// Index renders the search form page
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if h.templates == nil {
		http.Error(w, "templates not configured", http.StatusInternalServerError)
		return
	}

	data := struct{ Error string }{Error: r.URL.Query().Get("error")}
	if err := h.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		h.logger.Error("failed to render index page", logger.Error(err))
	}
}

// Dashboard handles a dashboard search: validate, generate, summarize,
// compose, chart, render. Core failures degrade to a redirect with a
// message, never to a 500.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if h.templates == nil {
		http.Error(w, "templates not configured", http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.redirectWithError(w, r, "invalid form submission")
		return
	}

	query := searchQuery{
		FromCity:  r.PostFormValue("from_city"),
		ToCity:    r.PostFormValue("to_city"),
		StartDate: r.PostFormValue("start_date"),
		EndDate:   r.PostFormValue("end_date"),
	}
	if err := query.validate(); err != nil {
		h.redirectWithError(w, r, err.Error())
		return
	}

	h.logger.Info("generating flight data",
		logger.String("from", query.FromCity),
		logger.String("to", query.ToCity))

	flights := h.generator.Generate(query.FromCity, query.ToCity, query.start, query.end)
	if len(flights) == 0 {
		h.redirectWithError(w, r, "no flight data available for the selected criteria")
		return
	}

	flightInsights := h.composer.Compose(r.Context(), flights)

	dashboardCharts, err := charts.Build(flights)
	if err != nil {
		h.logger.Error("failed to build charts", logger.Error(err))
		h.redirectWithError(w, r, "an error occurred while processing your request")
		return
	}

	h.recordSearch(query, flights)

	data := dashboardData{
		Flights:  flights,
		Insights: flightInsights,
		Charts:   dashboardCharts,
		Search:   query,
	}
	if err := h.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		h.logger.Error("failed to render dashboard page", logger.Error(err))
	}
}

// GenerateFlights is the JSON variant of the dashboard search
func (h *Handler) GenerateFlights(w http.ResponseWriter, r *http.Request) {
	var query searchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := query.validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	flights := h.generator.Generate(query.FromCity, query.ToCity, query.start, query.end)
	h.recordSearch(query, flights)

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"flights": flights,
		"count":   len(flights),
	})
}

// RefreshInsights recomputes insights for a previously generated flight list
func (h *Handler) RefreshInsights(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FlightData []market.FlightRecord `json:"flight_data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(payload.FlightData) == 0 {
		h.respondError(w, http.StatusBadRequest, "no flight data provided")
		return
	}

	result := h.composer.Compose(r.Context(), payload.FlightData)
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"insights": result,
	})
}

// RecentSearches returns the most recent search history entries
func (h *Handler) RecentSearches(w http.ResponseWriter, r *http.Request) {
	if h.searches == nil {
		h.respondError(w, http.StatusNotFound, "search history is disabled")
		return
	}

	limit := recentSearchesDefault
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	records, err := h.searches.GetRecentSearches(limit)
	if err != nil {
		h.logger.Error("failed to load recent searches", logger.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to load recent searches")
		return
	}
	if records == nil {
		records = []*sqlite.SearchRecord{}
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"searches": records,
	})
}

// Health reports service liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// recordSearch persists search metadata; failures are logged, never surfaced
func (h *Handler) recordSearch(query searchQuery, flights []market.FlightRecord) {
	if h.searches == nil {
		return
	}

	record := &sqlite.SearchRecord{
		FromCity:    query.FromCity,
		ToCity:      query.ToCity,
		StartDate:   query.StartDate,
		EndDate:     query.EndDate,
		RouteType:   string(h.generator.Classify(query.FromCity, query.ToCity)),
		FlightCount: len(flights),
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := h.searches.StoreSearch(record); err != nil {
		h.logger.Error("failed to store search record", logger.Error(err))
	}
}

func (h *Handler) redirectWithError(w http.ResponseWriter, r *http.Request, message string) {
	http.Redirect(w, r, "/?error="+url.QueryEscape(message), http.StatusSeeOther)
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", logger.Error(err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
