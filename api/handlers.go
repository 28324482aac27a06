/*
handlers.go - HTTP handlers for the timesheet engine

PURPOSE:
  Exposes the timesheet session via REST. Handlers parse and validate HTTP
  input, delegate to the session, and serialize results.

ENDPOINTS:
  GET  /api/projects                        Reference project list
  GET  /api/entries?year&month[&project]    Month's entries
  POST /api/entries                         Save (upsert) a day entry
  GET  /api/summary?year&month[&project]    Derived month summary
  GET  /api/reports/{year}/{month}          Report lifecycle record
  POST /api/reports/{year}/{month}/submit   Submit month for approval
  POST /api/reports/{year}/{month}/status   Approver decision (external)
  POST /api/autofill                        Backfill historical weekdays

ERROR HANDLING:
  - 400: Malformed input, validation failures
  - 409: Lifecycle conflicts (double submit, invalid transition)
  - 412: Shortfall submit without acknowledgment
  - 423: Save against a locked month or future date
  - 500: Internal errors

SEE ALSO:
  - dto.go: Wire types
  - server.go: Router and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/warp/timesheet-engine/timesheet"
)

// Handler holds the dependencies shared by all HTTP handlers.
type Handler struct {
	Session *timesheet.Session
	Log     *slog.Logger
}

func NewHandler(session *timesheet.Session, log *slog.Logger) *Handler {
	return &Handler{Session: session, Log: log}
}

// =============================================================================
// PROJECTS
// =============================================================================

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects := h.Session.Projects()
	dtos := make([]ProjectDTO, 0, len(projects))
	for _, p := range projects {
		dtos = append(dtos, ProjectDTO{ID: p.ID, Name: p.Name})
	}
	h.writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// ENTRIES
// =============================================================================

func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	year, month, err := monthFromQuery(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	project := r.URL.Query().Get("project")

	entries := h.Session.Entries(year, month, project)
	dtos := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, EntryDTO{
			Date:        e.Date.String(),
			Hours:       e.Hours.String(),
			Status:      string(e.Status),
			ProjectID:   e.ProjectID,
			ProjectName: e.ProjectName,
			Notes:       e.Notes,
			Editable:    h.Session.EntryEditable(e.Date),
		})
	}
	h.writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) SaveEntry(w http.ResponseWriter, r *http.Request) {
	var req SaveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	date, err := timesheet.ParseDate(req.Date)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	hours := decimal.Zero
	if req.Hours != "" {
		if hours, err = decimal.NewFromString(req.Hours); err != nil {
			h.writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	status, err := timesheet.ParseStatus(req.Status)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	entry := timesheet.DayEntry{
		Date:        date,
		Hours:       hours,
		Status:      status,
		ProjectID:   req.ProjectID,
		ProjectName: h.projectName(req.ProjectID),
		Notes:       req.Notes,
	}

	if err := h.Session.SaveEntry(r.Context(), entry); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// projectName resolves the denormalized display copy from reference data.
func (h *Handler) projectName(projectID string) string {
	for _, p := range h.Session.Projects() {
		if p.ID == projectID {
			return p.Name
		}
	}
	return projectID
}

// =============================================================================
// SUMMARY
// =============================================================================

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	year, month, err := monthFromQuery(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	project := r.URL.Query().Get("project")

	summary := h.Session.Summary(year, month, project)
	h.writeJSON(w, http.StatusOK, summaryDTO(year, int(month), summary))
}

// =============================================================================
// REPORTS
// =============================================================================

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	year, month, err := monthFromPath(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	h.writeJSON(w, http.StatusOK, reportDTO(h.Session.Report(year, month)))
}

func (h *Handler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	year, month, err := monthFromPath(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	var req SubmitReportRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	rec, err := h.Session.SubmitReport(r.Context(), year, month, req.AcknowledgeShortfall)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, reportDTO(rec))
}

func (h *Handler) SetReportStatus(w http.ResponseWriter, r *http.Request) {
	year, month, err := monthFromPath(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	var req SetReportStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	status, err := timesheet.ParseReportStatus(req.Status)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Session.SetReportStatus(r.Context(), year, month, status); err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, reportDTO(h.Session.Report(year, month)))
}

// =============================================================================
// AUTOFILL
// =============================================================================

func (h *Handler) RunAutofill(w http.ResponseWriter, r *http.Request) {
	created, err := h.Session.Autofill(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, AutofillResponse{Created: created})
}

// =============================================================================
// HELPERS
// =============================================================================

func monthFromQuery(r *http.Request) (int, time.Month, error) {
	return parseMonth(r.URL.Query().Get("year"), r.URL.Query().Get("month"))
}

func monthFromPath(r *http.Request) (int, time.Month, error) {
	return parseMonth(chi.URLParam(r, "year"), chi.URLParam(r, "month"))
}

func parseMonth(yearStr, monthStr string) (int, time.Month, error) {
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 1000 || year > 9999 {
		return 0, 0, errors.New("year must be a four-digit number")
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, errors.New("month must be between 1 and 12")
	}
	return year, time.Month(month), nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Log.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

// writeDomainError maps the domain taxonomy onto HTTP statuses.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, timesheet.ErrEntryLocked), errors.Is(err, timesheet.ErrFutureDate):
		h.writeError(w, http.StatusLocked, err)
	case errors.Is(err, timesheet.ErrShortfallUnacknowledged):
		h.writeError(w, http.StatusPreconditionFailed, err)
	case errors.Is(err, timesheet.ErrAlreadySubmitted), errors.Is(err, timesheet.ErrInvalidTransition):
		h.writeError(w, http.StatusConflict, err)
	case timesheet.IsClientError(err):
		h.writeError(w, http.StatusBadRequest, err)
	default:
		h.Log.Error("internal error", "error", err)
		h.writeError(w, http.StatusInternalServerError, err)
	}
}
