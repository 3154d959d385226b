// Package server exposes the inference engine over HTTP.
package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"spendmatch/internal/candidates"
	"spendmatch/internal/domain"
	"spendmatch/internal/generate"
	"spendmatch/internal/match"
	"spendmatch/internal/service"
)

const basePath = "/ai-api/v1"

// Server hosts the payments, profile and matching endpoints.
type Server struct {
	echo       *echo.Echo
	analyzer   *service.Analyzer
	matchOpts  match.Options
	store      *candidates.Store
	focusGroup string
	logger     *slog.Logger

	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// New assembles the HTTP server. The candidate store may be empty;
// match requests can carry their own candidate list.
func New(analyzer *service.Analyzer, matchOpts match.Options, store *candidates.Store, focusGroup string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	registry := prometheus.NewRegistry()
	s := &Server{
		echo:       echo.New(),
		analyzer:   analyzer,
		matchOpts:  matchOpts,
		store:      store,
		focusGroup: focusGroup,
		logger:     logger,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spendmatch_http_requests_total",
			Help: "HTTP requests by path and status.",
		}, []string{"path", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "spendmatch_http_request_seconds",
			Help:    "HTTP request latency by path.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path"}),
	}
	registry.MustRegister(s.requests, s.latency)

	e := s.echo
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(s.observe)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	g := e.Group(basePath)
	g.POST("/payments", s.handlePayments)
	g.POST("/profile/cosine", s.handleProfile)
	g.POST("/match/users", s.handleMatch)
	return s
}

// Start blocks serving HTTP on addr.
func (s *Server) Start(addr string) error {
	s.logger.Info("http server listening", "addr", addr)
	return s.echo.Start(addr)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler { return s.echo }

func (s *Server) observe(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		path := c.Path()
		status := strconv.Itoa(c.Response().Status)
		s.requests.WithLabelValues(path, status).Inc()
		s.latency.WithLabelValues(path).Observe(time.Since(start).Seconds())
		s.logger.Info("request",
			"method", c.Request().Method,
			"path", path,
			"status", status,
			"duration", time.Since(start),
		)
		return nil
	}
}

// handlePayments generates a synthetic payment history for one user.
// Per-payment user ids are stripped from the response; the identity
// lives in the payload's user block.
func (s *Server) handlePayments(c echo.Context) error {
	gender := c.QueryParam("gender")
	if gender == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "gender is required")
	}
	userID, err := strconv.Atoi(c.QueryParam("user_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}
	birthdate := c.QueryParam("birthdate")
	age := 0
	if v := c.QueryParam("age"); v != "" {
		if age, err = strconv.Atoi(v); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "age must be an integer")
		}
	}
	if birthdate == "" && age == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "birthdate or age is required")
	}
	months := 6
	if v := c.QueryParam("months"); v != "" {
		if months, err = strconv.Atoi(v); err != nil || months <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "months must be a positive integer")
		}
	}

	payload, err := generate.NewGenerator().GeneratePayload(birthdate, gender, age, months, time.Now(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	for i := range payload.Payments {
		payload.Payments[i].UserID = 0
	}
	return c.JSON(http.StatusOK, payload)
}

// handleProfile runs cosine inference over a payment payload and
// returns the condensed client shape.
func (s *Server) handleProfile(c echo.Context) error {
	var payload domain.Payload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed payload").SetInternal(err)
	}
	prof, err := s.analyzer.Analyze(payload)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "profile inference failed").SetInternal(err)
	}
	return c.JSON(http.StatusOK, service.PreferredShape(prof, s.focusGroup))
}

type matchRequest struct {
	Ref         *domain.Profile  `json:"ref"`
	Candidates  []domain.Profile `json:"candidates"`
	DatasetPath string           `json:"dataset_path"`
	ExcludeIDs  []int            `json:"exclude_ids"`
}

type matchResponse struct {
	UserID  int `json:"user_id"`
	Rank    int `json:"matching_rank"`
	Percent int `json:"matching_percent"`
}

// handleMatch ranks the reference profile against candidates given
// inline, loaded from a dataset path, or held in the preloaded store.
func (s *Server) handleMatch(c echo.Context) error {
	var req matchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body").SetInternal(err)
	}
	if req.Ref == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "ref profile is required")
	}
	cands := req.Candidates
	if cands == nil && req.DatasetPath != "" {
		loaded, err := candidates.LoadFile(req.DatasetPath)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "failed to load dataset").SetInternal(err)
		}
		cands = loaded
	}
	if cands == nil {
		cands = s.store.All()
	}
	if len(cands) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "candidates or dataset_path required")
	}

	opts := s.matchOpts
	excl := make([]int, 0, len(opts.ExcludeIDs)+len(req.ExcludeIDs))
	excl = append(excl, opts.ExcludeIDs...)
	excl = append(excl, req.ExcludeIDs...)
	opts.ExcludeIDs = excl
	results := match.OneToMany(*req.Ref, cands, opts)
	slim := make([]matchResponse, len(results))
	for i, r := range results {
		slim[i] = matchResponse{UserID: r.UserID, Rank: r.Rank, Percent: r.Percent}
	}
	return c.JSON(http.StatusOK, slim)
}
