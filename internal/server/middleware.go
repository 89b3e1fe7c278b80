package server

import (
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

func (s *Server) rateLimit(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		client := ctx.RemoteIP().String()
		if !s.limiter.Allow(client) {
			writeError(ctx, fasthttp.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next(ctx)
	}
}

func (s *Server) logRequests(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		next(ctx)
		s.logger.Debug("request",
			zap.ByteString("method", ctx.Method()),
			zap.ByteString("path", ctx.Path()),
			zap.Int("status", ctx.Response.StatusCode()),
			zap.String("remote", ctx.RemoteIP().String()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}
