package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	sloghttp "github.com/samber/slog-http"

	feedService "github.com/dailydonald/ragefeed/internal/modules/feed/service"
	"github.com/dailydonald/ragefeed/internal/modules/news/domain"
	newsService "github.com/dailydonald/ragefeed/internal/modules/news/service"
	"github.com/dailydonald/ragefeed/internal/shared/config"
)

// Server handles HTTP requests for aggregated news
type Server struct {
	cfg         *config.Config
	newsService *newsService.Service
	feedService *feedService.Service
	logger      *slog.Logger
}

// New creates a new HTTP server
func New(cfg *config.Config, news *newsService.Service, feed *feedService.Service) *Server {
	return &Server{
		cfg:         cfg,
		newsService: news,
		feedService: feed,
		logger:      slog.Default(),
	}
}

// SetLogger sets the logger
func (s *Server) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Start starts the HTTP server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	// News query endpoint
	mux.HandleFunc("GET /api/news", s.handleNews)
	mux.HandleFunc("OPTIONS /api/news", s.handlePreflight)

	// RSS re-export of the current snapshot
	mux.HandleFunc("GET /rss", s.handleRSS)

	// Health check endpoint
	mux.HandleFunc("GET /health", s.handleHealth)

	// Prometheus metrics
	mux.Handle("GET /metrics", promhttp.Handler())

	// Root endpoint with instructions
	mux.HandleFunc("GET /", s.handleRoot)

	addr := fmt.Sprintf(":%s", s.cfg.HTTPPort)
	s.logger.Info("News server starting", "addr", addr)

	// Rate limiting, then slog-http logging with recovery
	handler := RateLimit(s.cfg.RateLimitRPS, s.cfg.RateLimitBurst)(mux)
	handler = sloghttp.Recovery(handler)
	handler = sloghttp.New(s.logger)(handler)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server.ListenAndServe()
}

type response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	setAccessHeaders(w)

	snap, err := s.newsService.Fresh(r.Context())
	if err != nil {
		s.logger.Error("Error refreshing news", "error", err)
		writeJSON(w, http.StatusInternalServerError, response{Success: false, Error: err.Error()})
		return
	}

	result := s.newsService.Query(snap, queryFromRequest(r))
	writeJSON(w, http.StatusOK, response{Success: true, Data: result})
}

func (s *Server) handlePreflight(w http.ResponseWriter, r *http.Request) {
	setAccessHeaders(w)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleRSS(w http.ResponseWriter, r *http.Request) {
	baseURL := fmt.Sprintf("%s://%s", getScheme(r), r.Host)

	feed, err := s.feedService.Generate(r.Context(), baseURL)
	if err != nil {
		s.logger.Error("Error generating feed", "error", err)
		http.Error(w, "Failed to generate feed", http.StatusInternalServerError)
		return
	}

	rss, err := feed.ToRss()
	if err != nil {
		s.logger.Error("Error converting feed to RSS", "error", err)
		http.Error(w, "Failed to generate RSS", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=60")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(rss))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]any{
		"status": "ok",
		"feeds":  len(s.newsService.Sources()),
	}
	if snap, err := s.newsService.Current(); err == nil {
		health["items"] = snap.TotalCount
		health["lastUpdated"] = snap.FetchedAt
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(health); err != nil {
		s.logger.Error("Error encoding health response", "error", err)
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	html := `<!DOCTYPE html>
<html>
<head>
    <title>Rage Feed</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 800px; margin: 50px auto; padding: 20px; }
        h1 { color: #333; }
        .info { background: #f5f5f5; padding: 15px; border-radius: 5px; margin: 20px 0; }
        code { background: #e8e8e8; padding: 2px 6px; border-radius: 3px; }
    </style>
</head>
<body>
    <h1>Rage Feed News Aggregator</h1>
    <div class="info">
        <p>This service aggregates news feeds and scores each item's rage level (1-5).</p>
        <p>Query the API: <code>/api/news?page=1&amp;limit=20&amp;filter=all&amp;search=</code></p>
        <p>Filters: <code>all</code>, <code>breaking</code>, <code>4</code> (level &ge; 4), <code>5</code> (level 5 only)</p>
        <p>RSS export: <code>/rss</code></p>
    </div>
    <p><a href="/health">Health Check</a></p>
</body>
</html>`
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

// queryFromRequest parses the query parameters. Missing or malformed
// values fall back to defaults.
func queryFromRequest(r *http.Request) domain.Query {
	params := r.URL.Query()

	page, _ := strconv.Atoi(params.Get("page"))
	limit, _ := strconv.Atoi(params.Get("limit"))

	return domain.Query{
		Page:   page,
		Limit:  limit,
		Filter: params.Get("filter"),
		Search: params.Get("search"),
	}
}

// setAccessHeaders permits cross-origin GET access and advertises
// short-lived caching with stale-while-revalidate semantics.
func setAccessHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	h.Set("Cache-Control", "s-maxage=60, stale-while-revalidate=120")
}

func writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
