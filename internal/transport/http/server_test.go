package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	feedService "github.com/dailydonald/ragefeed/internal/modules/feed/service"
	"github.com/dailydonald/ragefeed/internal/modules/news/domain"
	"github.com/dailydonald/ragefeed/internal/modules/news/fetcher"
	newsService "github.com/dailydonald/ragefeed/internal/modules/news/service"
	"github.com/dailydonald/ragefeed/internal/shared/config"
)

func feedBody(titles ...string) string {
	doc := `<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>Test Feed</title><link>https://example.com</link>`
	pubDate := time.Now().UTC().Format(time.RFC1123Z)
	for _, title := range titles {
		doc += fmt.Sprintf(
			`<item><title>%s</title><link>https://example.com/a</link><pubDate>%s</pubDate></item>`,
			title, pubDate,
		)
	}
	return doc + `</channel></rss>`
}

func newTestServer(t *testing.T, upstream http.HandlerFunc) *Server {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		HTTPPort: "0",
		CacheTTL: 60,
		Feeds:    []domain.FeedSource{{Name: "Test", URL: srv.URL}},
	}
	news := newsService.New(cfg, fetcher.New(5*time.Second, "test-agent"))
	return New(cfg, news, feedService.New(news))
}

func serveFeed(titles ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, feedBody(titles...))
	}
}

type newsEnvelope struct {
	Success bool               `json:"success"`
	Error   string             `json:"error"`
	Data    domain.QueryResult `json:"data"`
}

func TestHandleNews(t *testing.T) {
	server := newTestServer(t, serveFeed("Trump announces plan", "TRUMP THREATENS INVASION!!!"))

	rec := httptest.NewRecorder()
	server.handleNews(rec, httptest.NewRequest(http.MethodGet, "/api/news", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "s-maxage=60, stale-while-revalidate=120", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body newsEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data.News, 2)
	assert.Equal(t, 2, body.Data.Stats.TotalNews)
	assert.Equal(t, 1, body.Data.Pagination.Page)
	require.Len(t, body.Data.Feeds, 1)
	assert.Equal(t, domain.StatusOK, body.Data.Feeds[0].Status)
}

func TestHandleNewsQueryParams(t *testing.T) {
	server := newTestServer(t, serveFeed(
		"TRUMP THREATENS INVASION!!!",
		"Trump meets advisors",
	))

	rec := httptest.NewRecorder()
	server.handleNews(rec, httptest.NewRequest(http.MethodGet, "/api/news?filter=5&page=1&limit=10", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body newsEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data.News, 1)
	assert.Equal(t, 5, body.Data.News[0].RageLevel)
	assert.Equal(t, 10, body.Data.Pagination.Limit)
	assert.Equal(t, 2, body.Data.Stats.TotalNews)
	assert.Equal(t, 1, body.Data.Stats.FilteredCount)
}

func TestHandleNewsColdStartFailure(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})

	rec := httptest.NewRecorder()
	server.handleNews(rec, httptest.NewRequest(http.MethodGet, "/api/news", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body newsEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.NotEmpty(t, body.Error)
}

func TestHandlePreflight(t *testing.T) {
	server := newTestServer(t, serveFeed())

	rec := httptest.NewRecorder()
	server.handlePreflight(rec, httptest.NewRequest(http.MethodOptions, "/api/news", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Body.String())
}

func TestHandleRSS(t *testing.T) {
	server := newTestServer(t, serveFeed("Trump announces plan"))

	rec := httptest.NewRecorder()
	server.handleRSS(rec, httptest.NewRequest(http.MethodGet, "/rss", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/rss+xml")
	assert.Contains(t, rec.Body.String(), "Trump announces plan")
	assert.Contains(t, rec.Body.String(), "<rss")
}

func TestHandleHealth(t *testing.T) {
	server := newTestServer(t, serveFeed("Trump announces plan"))

	rec := httptest.NewRecorder()
	server.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(1), body["feeds"])
	_, hasItems := body["items"]
	assert.False(t, hasItems, "no snapshot before the first aggregation")

	// Once a snapshot exists the health payload reports its size.
	_, err := server.newsService.Fresh(context.Background())
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	server.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(1), body["items"])
}

func TestRateLimit(t *testing.T) {
	handler := RateLimit(1, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	statuses := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/news", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		handler.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}

	assert.Equal(t, http.StatusOK, statuses[0])
	assert.Equal(t, http.StatusOK, statuses[1])
	assert.Equal(t, http.StatusTooManyRequests, statuses[2])
	assert.Equal(t, http.StatusTooManyRequests, statuses[3])
}

func TestRateLimitUsesFirstForwardedHop(t *testing.T) {
	handler := RateLimit(1, 1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Same originating client behind different proxy chains and remote
	// addresses: both requests share one limiter bucket.
	first := httptest.NewRequest(http.MethodGet, "/api/news", nil)
	first.RemoteAddr = "10.0.0.1:1000"
	first.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	second := httptest.NewRequest(http.MethodGet, "/api/news", nil)
	second.RemoteAddr = "10.0.0.2:2000"
	second.Header.Set("X-Forwarded-For", "203.0.113.7")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, second)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimitIgnoresClientPort(t *testing.T) {
	handler := RateLimit(1, 1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i, addr := range []string{"10.0.0.5:1111", "10.0.0.5:2222"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/news", nil)
		req.RemoteAddr = addr
		handler.ServeHTTP(rec, req)
		if i == 0 {
			assert.Equal(t, http.StatusOK, rec.Code)
		} else {
			assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		}
	}
}

func TestRateLimitSeparatesClients(t *testing.T) {
	handler := RateLimit(1, 1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i, addr := range []string{"10.0.0.1:1", "10.0.0.2:1", "10.0.0.3:1"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/news", nil)
		req.RemoteAddr = addr
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "client %d", i)
	}
}
