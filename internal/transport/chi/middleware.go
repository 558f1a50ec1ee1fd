package chi

import (
	"net/http"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kailas-cloud/docfind/internal/domain"
	logpkg "github.com/kailas-cloud/docfind/internal/logger"
)

const requestIDHeader = "X-Request-ID"

// accessLog emits one canonical line per request and puts a request-scoped
// logger and an empty search trace into the context. It expects
// chiMiddleware.RequestID to run first.
func accessLog(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqID := chiMiddleware.GetReqID(r.Context())
			if reqID != "" {
				w.Header().Set(requestIDHeader, reqID)
			}
			reqLogger := logger.With(zap.String("request_id", reqID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)
			ctx, trace := domain.NewContextWithTrace(ctx)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			fields := append(requestFields(r, ww, time.Since(start)), searchFields(trace)...)
			if ce := reqLogger.Check(accessLevel(ww.Status()), "http_request"); ce != nil {
				ce.Write(fields...)
			}
		})
	}
}

func requestFields(r *http.Request, ww chiMiddleware.WrapResponseWriter, elapsed time.Duration) []zap.Field {
	return []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", ww.Status()),
		zap.Duration("latency", elapsed),
		zap.String("ip", r.RemoteAddr),
		zap.String("user_agent", r.UserAgent()),
		zap.Int64("request_bytes", r.ContentLength),
		zap.Int("response_bytes", ww.BytesWritten()),
	}
}

// searchFields is empty unless a search ran during the request.
func searchFields(t *domain.SearchTrace) []zap.Field {
	if t == nil || !t.Used {
		return nil
	}
	return []zap.Field{
		zap.String("query", t.Query),
		zap.Int("hits", t.Hits),
		zap.Int("page", t.Page),
		zap.Bool("page_clamped", t.Clamped),
	}
}

func accessLevel(status int) zapcore.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status >= http.StatusBadRequest:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

// recoverJSON turns a handler panic into a 500 JSON error and logs it with
// the request-scoped logger. http.ErrAbortHandler is re-raised.
func recoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}
			logpkg.FromContext(r.Context()).Error("panic recovered",
				zap.Any("panic", rvr),
				zap.String("path", r.URL.Path),
				zap.Stack("stacktrace"),
			)
			writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
		}()
		next.ServeHTTP(w, r)
	})
}
