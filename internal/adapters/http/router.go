package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/asingla/credscope/internal/core/domain"
	"github.com/asingla/credscope/internal/core/ports"
	"github.com/asingla/credscope/internal/observability/metrics"
)

// maxUploadBytes bounds one multipart submission. Bank statements run a few
// hundred KB; anything near this limit is not a statement.
const maxUploadBytes = 32 << 20

type Router struct {
	ingestor   ports.SubmissionIngestor
	reader     ports.SubmissionReader
	selfScorer ports.SelfReportedScorer

	rateLimitRPS   int
	rateLimitBurst int
	maxInFlight    int
	overloadWait   time.Duration

	metrics *metrics.HTTPServerMetrics
	service string
}

type RouterOptions struct {
	RateLimitRPS   int
	RateLimitBurst int
	MaxInFlight    int
	OverloadWait   time.Duration

	// Metrics is optional; a nil recorder disables instrumentation.
	Metrics *metrics.HTTPServerMetrics
	Service string
}

func NewRouter(
	ingestor ports.SubmissionIngestor,
	reader ports.SubmissionReader,
	selfScorer ports.SelfReportedScorer,
	opts RouterOptions,
) *Router {
	return &Router{
		ingestor:       ingestor,
		reader:         reader,
		selfScorer:     selfScorer,
		rateLimitRPS:   opts.RateLimitRPS,
		rateLimitBurst: opts.RateLimitBurst,
		maxInFlight:    opts.MaxInFlight,
		overloadWait:   opts.OverloadWait,
		metrics:        opts.Metrics,
		service:        opts.Service,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/submissions", rt.createSubmission)
	mux.HandleFunc("/v1/submissions/", rt.submissionSubresource)
	mux.HandleFunc("/v1/scores/self-reported", rt.scoreSelfReported)

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(rt.service, handler)
	}
	if rt.maxInFlight > 0 {
		handler = backpressureMiddleware(handler, rt.maxInFlight, rt.overloadWait)
	}
	if rt.rateLimitRPS > 0 {
		handler = rateLimitMiddleware(handler, rt.rateLimitRPS, rt.rateLimitBurst)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) createSubmission(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart form is required"})
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	userID := strings.TrimSpace(r.FormValue("user_id"))
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "form field 'user_id' is required"})
		return
	}
	loanType := domain.NormalizeLoanType(r.FormValue("loan_type"))

	uploads := make(map[domain.DocumentRole]ports.Upload)
	var openFiles []interface{ Close() error }
	defer func() {
		for _, f := range openFiles {
			_ = f.Close()
		}
	}()
	for _, role := range domain.Roles() {
		headers := r.MultipartForm.File[string(role)]
		if len(headers) == 0 {
			continue
		}
		file, err := headers[0].Open()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "could not read uploaded file for " + string(role)})
			return
		}
		openFiles = append(openFiles, file)
		uploads[role] = ports.Upload{
			Filename: headers[0].Filename,
			Body:     file,
		}
	}
	if len(uploads) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "at least one document file is required (cibil, bank, upi or salary)"})
		return
	}

	sub, err := rt.ingestor.Submit(r.Context(), userID, loanType, uploads)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordSubmission(rt.service, string(loanType))
	}
	writeJSON(w, http.StatusAccepted, sub)
}

// submissionSubresource dispatches /v1/submissions/{id} and its children:
// /result, /decision and /affordability.
func (rt *Router) submissionSubresource(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/v1/submissions/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "submission id is required"})
		return
	}

	switch sub {
	case "":
		rt.getSubmission(w, r, id)
	case "result":
		rt.getResult(w, r, id)
	case "decision":
		rt.getDecision(w, r, id)
	case "affordability":
		rt.getAffordability(w, r, id)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	}
}

func (rt *Router) getSubmission(w http.ResponseWriter, r *http.Request, id string) {
	sub, err := rt.reader.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (rt *Router) getResult(w http.ResponseWriter, r *http.Request, id string) {
	score, err := rt.reader.GetResult(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, score)
}

func (rt *Router) getDecision(w http.ResponseWriter, r *http.Request, id string) {
	loanType, err := loanTypeParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	decision, err := rt.reader.Decision(r.Context(), id, loanType)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordDecisionRequest(rt.service, string(loanType))
	}
	writeJSON(w, http.StatusOK, decision)
}

func (rt *Router) getAffordability(w http.ResponseWriter, r *http.Request, id string) {
	loanType, err := loanTypeParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	result, err := rt.reader.Affordability(r.Context(), id, loanType)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) scoreSelfReported(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var answers domain.SurveyAnswers
	if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	score, err := rt.selfScorer.Score(r.Context(), answers)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordSelfReported(rt.service, score.Fallback)
	}
	writeJSON(w, http.StatusOK, score)
}

func loanTypeParam(r *http.Request) (domain.LoanType, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("loan_type"))
	if raw == "" {
		return "", errors.New("query parameter 'loan_type' is required")
	}
	return domain.NormalizeLoanType(raw), nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToHTTPStatus(err)
	body := map[string]string{"error": err.Error()}
	if status == http.StatusInternalServerError {
		// Internals stay in the log; clients get a generic message.
		body["error"] = "internal server error"
	}
	if requestID := requestIDFromContext(r.Context()); requestID != "" {
		body["request_id"] = requestID
	}
	writeJSON(w, status, body)
}
