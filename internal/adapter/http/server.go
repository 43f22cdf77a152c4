package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/akom-triage-service/internal/domain"
	"github.com/couchcryptid/akom-triage-service/internal/triage"
)

const (
	maxTextBody  = 64 << 10
	maxAudioBody = 25 << 20
)

// Server exposes the triage API alongside health, readiness, and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	service    *triage.Service
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the operational routes and the
// /v1 triage API.
func NewServer(addr string, ready sharedobs.ReadinessChecker, service *triage.Service, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 90 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		service: service,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /v1/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /v1/reports", s.handleSubmit)
	mux.HandleFunc("GET /v1/reports", s.handleList)
	mux.HandleFunc("POST /v1/reports/audio", s.handleAudio)
	mux.HandleFunc("POST /v1/reports/{id}/feedback", s.handleFeedback)
	mux.HandleFunc("GET /v1/feedback", s.handleListFeedback)
	mux.HandleFunc("GET /v1/stats", s.handleStats)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type analyzeRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, s.service.Analyze(req.Text))
}

// submitResponse is the stored report with the earlier report it likely
// duplicates, if any.
type submitResponse struct {
	domain.Report
	Duplicate *domain.Report `json:"duplicate,omitempty"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var sub domain.Submission
	if !decodeJSON(w, r, &sub) {
		return
	}
	res, err := s.service.Submit(r.Context(), sub)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	sharedobs.WriteJSON(w, submitStatus(res), submitResponse{Report: res.Report, Duplicate: res.Duplicate})
}

type audioResponse struct {
	Transcript string         `json:"transcript"`
	Report     domain.Report  `json:"report"`
	Duplicate  *domain.Report `json:"duplicate,omitempty"`
}

func (s *Server) handleAudio(w http.ResponseWriter, r *http.Request) {
	if !s.service.TranscriptionEnabled() {
		writeError(w, http.StatusServiceUnavailable, triage.ErrNoTranscriber.Error())
		return
	}

	audio, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxAudioBody))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "audio body too large")
		return
	}
	if len(audio) == 0 {
		writeError(w, http.StatusBadRequest, "audio body is empty")
		return
	}

	filename := filepath.Base(r.URL.Query().Get("filename"))
	if filename == "." || filename == "/" {
		filename = ""
	}

	res, err := s.service.SubmitAudio(r.Context(), audio, filename, r.URL.Query().Get("source"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	sharedobs.WriteJSON(w, submitStatus(res), audioResponse{
		Transcript: res.Transcript,
		Report:     res.Report,
		Duplicate:  res.Duplicate,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	reports, err := s.service.List(r.Context(), filter)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{"reports": reports, "count": len(reports)})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	stats, err := s.service.Stats(r.Context(), filter)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, stats)
}

// feedbackRequest carries the operator's labels as catalog strings.
type feedbackRequest struct {
	EventType string `json:"event_type"`
	Priority  string `json:"priority"`
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	event, err := domain.ParseEventType(req.EventType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	priority, err := domain.ParsePriority(req.Priority)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	f, err := s.service.SubmitFeedback(r.Context(), r.PathValue("id"), event, priority)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusCreated, f)
}

func (s *Server) handleListFeedback(w http.ResponseWriter, r *http.Request) {
	entries, err := s.service.Feedback(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{"feedback": entries, "count": len(entries)})
}

// parseFilter reads the event_type, priority and district query
// parameters. Labels must be exact catalog labels.
func parseFilter(q url.Values) (triage.ReportFilter, error) {
	filter := triage.ReportFilter{District: q.Get("district")}
	if v := q.Get("event_type"); v != "" {
		e, err := domain.ParseEventType(v)
		if err != nil {
			return triage.ReportFilter{}, err
		}
		filter.EventType = &e
	}
	if v := q.Get("priority"); v != "" {
		p, err := domain.ParsePriority(v)
		if err != nil {
			return triage.ReportFilter{}, err
		}
		filter.Priority = &p
	}
	return filter, nil
}

// submitStatus is 201 once the report is persisted and 202 when it was
// triaged but the store rejected it.
func submitStatus(res triage.Result) int {
	if res.StoreErr != nil {
		return http.StatusAccepted
	}
	return http.StatusCreated
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyText):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, triage.ErrNoSpeech):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, triage.ErrReportNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, triage.ErrNoTranscriber), errors.Is(err, triage.ErrNoStore), errors.Is(err, triage.ErrNoFeedbackStore):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, triage.ErrTranscription):
		s.logger.Error("transcription failed", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxTextBody))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, msg string) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": msg})
}
