// Package chi implements the HTTP API handlers and middleware.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lang2lang/vocabd/internal/domain"
	healthuc "github.com/lang2lang/vocabd/internal/usecase/health"
	lookupuc "github.com/lang2lang/vocabd/internal/usecase/lookup"
	vocabularyuc "github.com/lang2lang/vocabd/internal/usecase/vocabulary"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP API handlers.
type Server struct {
	lookup        *lookupuc.Service
	vocabulary    *vocabularyuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	lookup *lookupuc.Service,
	vocabulary *vocabularyuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		lookup:     lookup,
		vocabulary: vocabulary,
		health:     health,
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEntryNotFound, http.StatusNotFound),
		sentinelHandler(domain.ErrGatewayUnavailable, http.StatusBadGateway),
		sentinelHandler(domain.ErrGatewayInvalidResponse, http.StatusBadGateway),
	}
	return s
}

// lookupRequest is the POST /api/vocabulary-lookup body.
type lookupRequest struct {
	NativeText     string `json:"nativeText"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
}

// vocabularyItem is the wire form of a lookup result or stored entry.
type vocabularyItem struct {
	Word           string `json:"word"`
	Translation    string `json:"translation"`
	PartOfSpeech   string `json:"partOfSpeech,omitempty"`
	Gender         string `json:"gender,omitempty"`
	SourceLanguage string `json:"sourceLanguage,omitempty"`
	TargetLanguage string `json:"targetLanguage,omitempty"`
}

// errorResponse is the wire form of an error reply.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// LookupVocabulary handles POST /api/vocabulary-lookup.
func (s *Server) LookupVocabulary(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if req.NativeText == "" || req.SourceLanguage == "" || req.TargetLanguage == "" {
		writeError(w, http.StatusBadRequest,
			"nativeText, sourceLanguage and targetLanguage are required", "")
		return
	}

	results, err := s.lookup.LookupPhrase(r.Context(), req.NativeText, req.SourceLanguage, req.TargetLanguage)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]vocabularyItem, len(results))
	for i, res := range results {
		items[i] = vocabularyItem{
			Word:           res.Word,
			Translation:    res.Translation,
			PartOfSpeech:   res.PartOfSpeech,
			Gender:         res.Gender,
			SourceLanguage: res.SourceLanguage,
			TargetLanguage: res.TargetLanguage,
		}
	}
	writeJSON(w, http.StatusOK, items)
}

// GetVocabulary handles GET /api/vocabulary?word=&targetLanguage=.
func (s *Server) GetVocabulary(w http.ResponseWriter, r *http.Request) {
	word := r.URL.Query().Get("word")
	targetLanguage := r.URL.Query().Get("targetLanguage")
	if word == "" || targetLanguage == "" {
		writeError(w, http.StatusBadRequest, "word and targetLanguage are required", "")
		return
	}

	entry, err := s.vocabulary.Get(r.Context(), word, targetLanguage)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entryToItem(entry))
}

// ListVocabularyByLanguage handles GET /api/vocabulary/language/{targetLanguage}.
func (s *Server) ListVocabularyByLanguage(w http.ResponseWriter, r *http.Request) {
	targetLanguage := r.PathValue("targetLanguage")
	if targetLanguage == "" {
		writeError(w, http.StatusBadRequest, "targetLanguage is required", "")
		return
	}

	entries, err := s.vocabulary.ListByLanguage(r.Context(), targetLanguage)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]vocabularyItem, len(entries))
	for i, e := range entries {
		items[i] = entryToItem(e)
	}
	writeJSON(w, http.StatusOK, items)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func entryToItem(e domain.VocabularyEntry) vocabularyItem {
	return vocabularyItem{
		Word:           e.Word,
		Translation:    e.Translation,
		PartOfSpeech:   e.PartOfSpeech,
		Gender:         e.Gender,
		SourceLanguage: e.SourceLanguage,
		TargetLanguage: e.TargetLanguage,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message, detail string) {
	writeJSON(w, status, errorResponse{
		Message: message,
		Error:   detail,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEntryNotFound,
		domain.ErrGatewayUnavailable,
		domain.ErrGatewayInvalidResponse,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg, "")
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "Internal server error", "internal error")
}
