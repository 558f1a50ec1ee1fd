package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docfind/internal/domain"
	logpkg "github.com/kailas-cloud/docfind/internal/logger"
	"github.com/kailas-cloud/docfind/internal/metrics"
	documentuc "github.com/kailas-cloud/docfind/internal/usecase/document"
	healthuc "github.com/kailas-cloud/docfind/internal/usecase/health"
	searchuc "github.com/kailas-cloud/docfind/internal/usecase/search"
)

// Request body limits.
const (
	maxDocumentBody = 5 << 20
	maxImportBody   = 64 << 20
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the docfind HTTP API.
type Server struct {
	documents     *documentuc.Service
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	documents *documentuc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		documents: documents,
		search:    search,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		syntaxErrorHandler,
		paramErrorHandler,
		sentinelHandler(domain.ErrDocumentNotFound, http.StatusNotFound, CodeDocumentNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, CodeDocumentAlreadyExists),
		validationHandler(domain.ErrInvalidDocument),
		validationHandler(domain.ErrInvalidRequest),
		sentinelHandler(context.DeadlineExceeded, http.StatusGatewayTimeout, CodeTimeout),
	}
	return s
}

// NewRouter builds the chi router with the middleware chain and all routes.
func NewRouter(s *Server, apiKeys []string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(accessLog(logger))
	r.Use(recoverJSON)
	r.Use(BearerAuthMiddleware(apiKeys))
	r.Use(metrics.Middleware("/metrics"))
	s.Routes(r)
	return r
}

// Routes registers the API on r.
func (s *Server) Routes(r chi.Router) {
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/documents", func(r chi.Router) {
			r.Post("/", s.CreateDocument)
			r.Post("/import", s.ImportDocuments)
			r.Get("/{id}", s.GetDocument)
			r.Patch("/{id}", s.PatchDocument)
			r.Put("/{id}/body", s.UpdateDocumentBody)
			r.Delete("/{id}", s.DeleteDocument)
		})
		r.Get("/search", s.SearchDocuments)
		r.Get("/search/suggestions", s.Suggest)
		r.Get("/search/history", s.SearchHistory)
		r.Get("/stats", s.Stats)
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	latency := make(map[string]float64, len(report.Latency))
	for k, d := range report.Latency {
		latency[k] = float64(d.Microseconds()) / 1000
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:        string(report.Status),
		Checks:        checks,
		LatencyMS:     latency,
		Documents:     report.Documents,
		SearchesToday: report.SearchesToday,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// decodeJSON decodes a request body capped at limit bytes.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, dest any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, CodeBadRequest, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrDocumentNotFound,
		domain.ErrNotFound,
		domain.ErrAlreadyExists,
		domain.ErrInvalidDocument,
		domain.ErrInvalidRequest,
		domain.ErrQuerySyntax,
		context.DeadlineExceeded,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// validationHandler answers 400 with the validation detail. The detail only
// ever describes client input.
func validationHandler(sentinel error) errorHandler {
	return func(w http.ResponseWriter, err error, _ string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return true
	}
}

// syntaxErrorHandler reports where the query parser gave up.
func syntaxErrorHandler(w http.ResponseWriter, err error, _ string) bool {
	var se *domain.QuerySyntaxError
	if !errors.As(err, &se) {
		return false
	}
	pos, tok := se.Pos, se.Token
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Code:     CodeQuerySyntaxError,
		Message:  se.Error(),
		Position: &pos,
		Token:    &tok,
	})
	return true
}

func paramErrorHandler(w http.ResponseWriter, err error, _ string) bool {
	var pe *paramError
	if !errors.As(err, &pe) {
		return false
	}
	writeError(w, http.StatusBadRequest, CodeBadRequest, pe.Error())
	return true
}

// handleDomainError maps err through the handler chain. Unmapped errors
// become a 500 and are logged at error level.
func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContextOr(r.Context(), s.logger)
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Warn("request failed", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
