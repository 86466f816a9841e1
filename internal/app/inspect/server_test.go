package inspect

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/matchbook/internal/usecase/orderbook"
	"github.com/muhammadchandra19/matchbook/pkg/config"
	"github.com/muhammadchandra19/matchbook/pkg/httplib/healthcheck"
	"github.com/muhammadchandra19/matchbook/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookViewer struct {
	book *orderbook.Orderbook
}

func (v bookViewer) View(fn func(book orderbookv1.Orderbook, offset, sequence int64)) {
	fn(v.book, 12, 30)
}

func newTestServer(t *testing.T, checks map[string]healthcheck.Checker) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	book := orderbook.NewOrderbook(nil)
	book.Enter("B1", orderbookv1.SideBuy, 99, 3)
	book.Enter("B2", orderbookv1.SideBuy, 98, 1)
	book.Enter("B3", orderbookv1.SideBuy, 97, 2)
	book.Enter("S1", orderbookv1.SideSell, 101, 4)

	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "matchbook_test_total", Help: "test"})
	registry.MustRegister(counter)
	counter.Inc()

	return NewServer(
		config.HTTPConfig{Addr: ":0", MaxDepth: 2},
		"BTC-USD",
		bookViewer{book: book},
		registry,
		healthcheck.HealthCheck{Checks: checks},
		logger.NewNopLogger(),
	)
}

func serve(s *Server, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestServer_GetBook(t *testing.T) {
	testCases := []struct {
		name         string
		target       string
		expectedCode int
		expectedBids []int64
	}{
		{name: "default depth is capped", target: "/v1/book", expectedCode: http.StatusOK, expectedBids: []int64{99, 98}},
		{name: "explicit depth", target: "/v1/book?depth=1", expectedCode: http.StatusOK, expectedBids: []int64{99}},
		{name: "depth above max", target: "/v1/book?depth=50", expectedCode: http.StatusOK, expectedBids: []int64{99, 98}},
		{name: "invalid depth", target: "/v1/book?depth=abc", expectedCode: http.StatusBadRequest},
		{name: "zero depth", target: "/v1/book?depth=0", expectedCode: http.StatusBadRequest},
	}

	s := newTestServer(t, nil)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(s, http.MethodGet, tc.target)
			require.Equal(t, tc.expectedCode, rec.Code)
			if tc.expectedCode != http.StatusOK {
				return
			}

			var resp BookResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "BTC-USD", resp.Pair)
			assert.Equal(t, int64(12), resp.Offset)
			assert.Equal(t, int64(30), resp.Sequence)
			assert.Equal(t, 4, resp.Orders)
			require.NotNil(t, resp.BestBid)
			require.NotNil(t, resp.BestAsk)
			assert.Equal(t, int64(99), *resp.BestBid)
			assert.Equal(t, int64(101), *resp.BestAsk)

			bids := make([]int64, 0, len(resp.Bids))
			for _, level := range resp.Bids {
				bids = append(bids, level.Price)
			}
			assert.Equal(t, tc.expectedBids, bids)
			require.Len(t, resp.Asks, 1)
			assert.Equal(t, "S1", resp.Asks[0].Orders[0].ID)
		})
	}
}

func TestServer_GetOrder(t *testing.T) {
	s := newTestServer(t, nil)

	rec := serve(s, http.MethodGet, "/v1/orders/B2")
	require.Equal(t, http.StatusOK, rec.Code)

	var view orderbookv1.OrderView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, orderbookv1.OrderView{ID: "B2", Side: orderbookv1.SideBuy, Price: 98, RemainingQuantity: 1}, view)

	rec = serve(s, http.MethodGet, "/v1/orders/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Metrics(t *testing.T) {
	s := newTestServer(t, nil)

	rec := serve(s, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "matchbook_test_total 1"))
}

func TestServer_Health(t *testing.T) {
	testCases := []struct {
		name         string
		checks       map[string]healthcheck.Checker
		expectedCode int
		expectedBody string
	}{
		{
			name:         "healthy",
			checks:       map[string]healthcheck.Checker{"redis": func(context.Context) error { return nil }},
			expectedCode: http.StatusOK,
			expectedBody: "ok\n",
		},
		{
			name:         "unhealthy dependency",
			checks:       map[string]healthcheck.Checker{"redis": func(context.Context) error { return errors.New("connection refused") }},
			expectedCode: http.StatusServiceUnavailable,
			expectedBody: "redis: connection refused\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t, tc.checks)

			rec := serve(s, http.MethodGet, "/health")
			assert.Equal(t, tc.expectedCode, rec.Code)
			assert.Equal(t, tc.expectedBody, rec.Body.String())
		})
	}
}
