// Package server exposes the projection engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rgehrsitz/readiness/internal/calculation"
	"github.com/rgehrsitz/readiness/internal/compare"
	"github.com/rgehrsitz/readiness/internal/domain"
)

const (
	defaultRequestTimeout = 10 * time.Second
	maxRequestBodySize    = 1 << 20
)

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// EvaluateRequest carries one working tuple plus the client's assets
type EvaluateRequest struct {
	domain.Scenario
	Assets []domain.Asset `json:"assets"`
}

// CompareRequest evaluates a base scenario against built-in templates
type CompareRequest struct {
	EvaluateRequest
	Templates []string `json:"templates"`
}

// ReadinessResponse is the score-only reply
type ReadinessResponse struct {
	Scenario       string `json:"scenario"`
	ReadinessScore int    `json:"readinessScore"`
	FundsEndAge    int    `json:"fundsEndAge"`
	RetirementAge  int    `json:"retirementAge"`
}

// ValidateResponse lists the advisory warnings for a plan
type ValidateResponse struct {
	Valid    bool             `json:"valid"`
	Warnings []domain.Warning `json:"warnings"`
}

// Options configure a Server. Zero values fall back to defaults.
type Options struct {
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	Logger         *zap.Logger
}

// Server routes HTTP requests to the calculation and compare engines
type Server struct {
	engine  *calculation.Engine
	compare *compare.CompareEngine
	limiter *RateLimiter
	logger  *zap.Logger
	timeout time.Duration
	baseCtx context.Context
}

// New builds a server around engine. Close must be called to stop the
// rate limiter.
func New(engine *calculation.Engine, opts Options) *Server {
	if opts.RateLimit <= 0 {
		opts.RateLimit = 60
	}
	if opts.RateWindow <= 0 {
		opts.RateWindow = time.Minute
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Server{
		engine:  engine,
		compare: compare.NewCompareEngine(engine),
		limiter: NewRateLimiter(opts.RateLimit, opts.RateWindow),
		logger:  opts.Logger,
		timeout: opts.RequestTimeout,
		baseCtx: context.Background(),
	}
}

// Close stops background work owned by the server
func (s *Server) Close() {
	s.limiter.Stop()
}

// ListenAndServe listens on addr and serves until ctx is done
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully. It does not call Close.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.baseCtx = ctx
	srv := &fasthttp.Server{
		Handler:            s.Handler(),
		Name:               "readiness",
		MaxRequestBodySize: maxRequestBodySize,
		ReadTimeout:        s.timeout,
		WriteTimeout:       s.timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil {
		return err
	}
	s.logger.Info("http server stopped")
	return nil
}

// Handler returns the routed, rate-limited and logged request handler
func (s *Server) Handler() fasthttp.RequestHandler {
	return s.logRequests(s.rateLimit(s.route))
}

func (s *Server) route(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	if path == "/healthz" {
		if !ctx.IsGet() {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
		return
	}

	var handle func(context.Context, *fasthttp.RequestCtx)
	switch path {
	case "/v1/projections":
		handle = s.handleProjection
	case "/v1/readiness":
		handle = s.handleReadiness
	case "/v1/validate":
		handle = s.handleValidate
	case "/v1/compare":
		handle = s.handleCompare
	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found: "+path)
		return
	}
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
		return
	}

	reqCtx, cancel := context.WithTimeout(s.baseCtx, s.timeout)
	defer cancel()
	handle(reqCtx, ctx)
}

func (s *Server) handleProjection(ctx context.Context, rc *fasthttp.RequestCtx) {
	var req EvaluateRequest
	if !decodeBody(rc, &req) {
		return
	}
	result, ok := s.evaluate(ctx, rc, &req)
	if !ok {
		return
	}
	writeJSON(rc, fasthttp.StatusOK, result)
}

func (s *Server) handleReadiness(ctx context.Context, rc *fasthttp.RequestCtx) {
	var req EvaluateRequest
	if !decodeBody(rc, &req) {
		return
	}
	result, ok := s.evaluate(ctx, rc, &req)
	if !ok {
		return
	}
	writeJSON(rc, fasthttp.StatusOK, ReadinessResponse{
		Scenario:       result.Scenario,
		ReadinessScore: result.ReadinessScore,
		FundsEndAge:    result.FundsEndAge,
		RetirementAge:  result.RetirementAge,
	})
}

func (s *Server) handleValidate(_ context.Context, rc *fasthttp.RequestCtx) {
	var req EvaluateRequest
	if !decodeBody(rc, &req) {
		return
	}
	warnings := calculation.Validate(req.Plan, req.Overlay, req.Assets)
	if warnings == nil {
		warnings = []domain.Warning{}
	}
	writeJSON(rc, fasthttp.StatusOK, ValidateResponse{
		Valid:    len(warnings) == 0,
		Warnings: warnings,
	})
}

func (s *Server) handleCompare(ctx context.Context, rc *fasthttp.RequestCtx) {
	var req CompareRequest
	if !decodeBody(rc, &req) {
		return
	}
	if len(req.Templates) == 0 {
		writeError(rc, fasthttp.StatusBadRequest, "at least one template is required")
		return
	}
	base := req.scenario()
	compSet, err := s.compare.Compare(ctx, base, req.Assets, req.Templates)
	if err != nil {
		if isContextErr(err) {
			s.writeContextError(rc, err)
			return
		}
		writeError(rc, fasthttp.StatusBadRequest, err.Error())
		return
	}
	writeJSON(rc, fasthttp.StatusOK, compSet)
}

func (s *Server) evaluate(ctx context.Context, rc *fasthttp.RequestCtx, req *EvaluateRequest) (*domain.ProjectionResult, bool) {
	result, err := s.engine.Evaluate(ctx, req.scenario(), req.Assets)
	if err != nil {
		if isContextErr(err) {
			s.writeContextError(rc, err)
			return nil, false
		}
		s.logger.Error("evaluate failed", zap.Error(err))
		writeError(rc, fasthttp.StatusInternalServerError, err.Error())
		return nil, false
	}
	return result, true
}

func (r *EvaluateRequest) scenario() *domain.Scenario {
	s := r.Scenario
	if s.Name == "" {
		s.Name = domain.BaseScenarioName
	}
	return &s
}

func (s *Server) writeContextError(rc *fasthttp.RequestCtx, err error) {
	s.logger.Warn("request aborted", zap.Error(err))
	writeError(rc, fasthttp.StatusServiceUnavailable, "request aborted: "+err.Error())
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func decodeBody(rc *fasthttp.RequestCtx, v any) bool {
	body := rc.PostBody()
	if len(body) == 0 {
		writeError(rc, fasthttp.StatusBadRequest, "request body is required")
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		writeError(rc, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(rc *fasthttp.RequestCtx, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		writeError(rc, fasthttp.StatusInternalServerError, "encode response: "+err.Error())
		return
	}
	rc.SetContentType("application/json")
	rc.SetStatusCode(status)
	rc.SetBody(data)
}

func writeError(rc *fasthttp.RequestCtx, status int, message string) {
	data, _ := json.Marshal(ErrorResponse{Status: status, Message: message})
	rc.SetContentType("application/json")
	rc.SetStatusCode(status)
	rc.SetBody(data)
}
