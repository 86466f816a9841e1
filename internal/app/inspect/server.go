package inspect

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/matchbook/pkg/config"
	"github.com/muhammadchandra19/matchbook/pkg/httplib/healthcheck"
	"github.com/muhammadchandra19/matchbook/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// BookViewer gives read access to a running book. offset and sequence
// describe the same state as book.
type BookViewer interface {
	View(fn func(book orderbookv1.Orderbook, offset, sequence int64))
}

// Server serves a read-only view of the book, its metrics and health.
type Server struct {
	router   *gin.Engine
	server   *http.Server
	viewer   BookViewer
	logger   *logger.Logger
	pair     string
	maxDepth int
}

// BookResponse is the body of GET /v1/book.
type BookResponse struct {
	Pair     string                  `json:"pair"`
	Offset   int64                   `json:"offset"`
	Sequence int64                   `json:"sequence"`
	Orders   int                     `json:"orders"`
	BestBid  *int64                  `json:"bestBid"`
	BestAsk  *int64                  `json:"bestAsk"`
	Bids     []orderbookv1.LevelView `json:"bids"`
	Asks     []orderbookv1.LevelView `json:"asks"`
}

// NewServer creates the inspection server. Nothing listens until Start.
func NewServer(
	cfg config.HTTPConfig,
	pair string,
	viewer BookViewer,
	registry *prometheus.Registry,
	health healthcheck.HealthCheck,
	log *logger.Logger,
) *Server {
	router := gin.New()
	router.Use(ginzap.Ginzap(log.GetZap(), time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(log.GetZap(), true))

	s := &Server{
		router:   router,
		viewer:   viewer,
		logger:   log,
		pair:     pair,
		maxDepth: cfg.MaxDepth,
	}

	v1 := router.Group("/v1")
	v1.GET("/book", s.getBook)
	v1.GET("/orders/:id", s.getOrder)

	if registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))
	}

	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           health.Handler(router),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	return s
}

// Handler returns the root handler, health check included.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start listens until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("Inspection server listening", logger.NewField("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) getBook(c *gin.Context) {
	depth, err := s.parseDepth(c.Query("depth"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := BookResponse{Pair: s.pair}
	s.viewer.View(func(book orderbookv1.Orderbook, offset, sequence int64) {
		resp.Offset, resp.Sequence = offset, sequence
		resp.Orders = book.Len()
		resp.Bids, resp.Asks = book.Depth(depth)
		if price, ok := book.BestBid(); ok {
			resp.BestBid = &price
		}
		if price, ok := book.BestAsk(); ok {
			resp.BestAsk = &price
		}
	})

	c.JSON(http.StatusOK, resp)
}

func (s *Server) getOrder(c *gin.Context) {
	var (
		view  orderbookv1.OrderView
		found bool
	)
	s.viewer.View(func(book orderbookv1.Orderbook, _, _ int64) {
		view, found = book.Order(c.Param("id"))
	})

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// parseDepth defaults to and caps at maxDepth.
func (s *Server) parseDepth(raw string) (int, error) {
	if raw == "" {
		return s.maxDepth, nil
	}

	depth, err := strconv.Atoi(raw)
	if err != nil || depth < 1 {
		return 0, errors.New("depth must be a positive integer")
	}
	if s.maxDepth > 0 && depth > s.maxDepth {
		depth = s.maxDepth
	}
	return depth, nil
}
