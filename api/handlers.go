/*
handlers.go - HTTP API handlers for the rotation schedule system

PURPOSE:
  Exposes the rotation engine via REST. Handles HTTP request/response, JSON
  serialization, and the session plumbing; all schedule decisions are
  delegated to the rotation/payroll/session packages.

ENDPOINTS:
  Auth:
    POST   /api/auth/register        Create account, start session
    POST   /api/auth/login           Start session
    POST   /api/auth/logout          End session
    GET    /api/auth/me              Current account email

  Schedule (session required):
    GET    /api/schedule/selection   Current rotation selection
    PUT    /api/schedule/selection   Replace rotation selection
    GET    /api/schedule/week        One week (?start=YYYY-MM-DD)
    GET    /api/schedule/year        Weeks through Dec 31 (?anchor=YYYY-MM-DD)
    GET    /api/schedule/summary     Weekly pay summary (?week_start=...)

  Payroll (session required):
    GET    /api/payroll/summary      Payroll summary (?week_start=...)
    GET    /api/payroll/report.csv   CSV download (?week_start=...)

  Employee (session required):
    GET    /api/employee             Session employee reference data

SESSION MODEL:
  One session.Store per authenticated user, created lazily from persistence
  on first schedule call and cached for the life of the process. Selection
  updates write through to sqlite so the next session starts from the saved
  value.

ERROR HANDLING:
  Errors come back as JSON {"error": ...} with the appropriate status:
  400 for invalid input (including the invalid-rotation-configuration
  class), 401 for missing/expired sessions, 409 for duplicate email,
  500 for storage failures.
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/warp/rotation-engine/account"
	"github.com/warp/rotation-engine/factory"
	"github.com/warp/rotation-engine/payroll"
	"github.com/warp/rotation-engine/rotation"
	"github.com/warp/rotation-engine/session"
	"github.com/warp/rotation-engine/store/sqlite"
)

const sessionCookie = "daysoff_session"

type contextKey string

const userIDKey contextKey = "user_id"

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    *sqlite.Store
	Accounts *account.Service

	mu       sync.Mutex
	sessions map[string]*session.Store
}

// NewHandler creates a handler backed by the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Store:    store,
		Accounts: account.NewService(store),
		sessions: make(map[string]*session.Store),
	}
}

// sessionFor returns the cached session store for a user, creating it from
// persistence on first use.
func (h *Handler) sessionFor(ctx context.Context, userID string) (*session.Store, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if s, ok := h.sessions[userID]; ok {
		return s, nil
	}

	employees, err := h.Store.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	var employee payroll.Employee
	if len(employees) > 0 {
		employee = employees[0]
	}

	entries, err := h.Store.ListDifferentials(ctx)
	if err != nil {
		return nil, err
	}

	sel := sqlite.DefaultSelection()
	if rec, err := h.Store.LoadSelection(ctx, userID); err == nil {
		sel = rec.Selection
	} else if !errors.Is(err, sqlite.ErrNotFound) {
		return nil, err
	}

	s := session.New(employee, payroll.NewDifferentialTable(entries), sel)
	h.sessions[userID] = s
	return s, nil
}

// =============================================================================
// AUTH HANDLERS
// =============================================================================

// Register creates an account and starts a session.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	userID, err := h.Accounts.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrEmailTaken):
			writeError(w, http.StatusConflict, "Email already registered", err)
		case errors.Is(err, account.ErrWeakPassword), errors.Is(err, account.ErrMissingFields):
			writeError(w, http.StatusBadRequest, err.Error(), err)
		default:
			writeError(w, http.StatusInternalServerError, "Registration failed", err)
		}
		return
	}

	h.startSession(w, r, userID)
}

// Login authenticates and starts a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	userID, err := h.Accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) || errors.Is(err, account.ErrMissingFields) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Login failed", err)
		return
	}

	h.startSession(w, r, userID)
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, userID string) {
	token, err := h.Accounts.StartSession(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to start session", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
	writeJSON(w, http.StatusOK, map[string]string{"user_id": userID})
}

// Logout ends the current session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if err := h.Accounts.EndSession(r.Context(), cookie.Value); err != nil {
			writeError(w, http.StatusInternalServerError, "Logout failed", err)
			return
		}
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the current account.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.Store.GetUser(r.Context(), userIDFrom(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load account", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"user_id": user.ID, "email": user.Email})
}

// =============================================================================
// SELECTION HANDLERS
// =============================================================================

// GetSelection returns the current rotation selection.
func (h *Handler) GetSelection(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r)
	sess, err := h.sessionFor(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load session", err)
		return
	}

	wire := factory.FormatSelection(sess.Selection())
	wire.PreferredView = factory.ViewWeek
	if rec, err := h.Store.LoadSelection(r.Context(), userID); err == nil {
		wire.PreferredView = rec.PreferredView
	}
	writeJSON(w, http.StatusOK, wire)
}

// UpdateSelection replaces the rotation selection wholesale and persists it.
func (h *Handler) UpdateSelection(w http.ResponseWriter, r *http.Request) {
	var wire factory.SelectionJSON
	if err := json.NewDecoder(r.Body).Decode(&wire); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	sel, err := factory.ParseSelection(wire)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid rotation configuration", err)
		return
	}
	view, err := factory.ParsePreferredView(wire.PreferredView)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid rotation configuration", err)
		return
	}

	userID := userIDFrom(r)
	sess, err := h.sessionFor(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load session", err)
		return
	}

	sess.Update(sel)
	rec := sqlite.SelectionRecord{Selection: sel, PreferredView: view, UpdatedAt: time.Now()}
	if err := h.Store.SaveSelection(r.Context(), userID, rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save selection", err)
		return
	}

	out := factory.FormatSelection(sel)
	out.PreferredView = view
	writeJSON(w, http.StatusOK, out)
}

// =============================================================================
// SCHEDULE HANDLERS
// =============================================================================

// GetWeek returns the week starting at ?start (passed to the core unchanged).
func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	start, ok := h.dateParam(w, r, "start")
	if !ok {
		return
	}
	sess, err := h.sessionFor(r.Context(), userIDFrom(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load session", err)
		return
	}
	writeJSON(w, http.StatusOK, toWeekScheduleDTO(sess.Week(start)))
}

// GetYear returns weekly schedules from the week containing ?anchor through
// December 31 of the anchor's year.
func (h *Handler) GetYear(w http.ResponseWriter, r *http.Request) {
	anchor, ok := h.dateParam(w, r, "anchor")
	if !ok {
		return
	}
	sess, err := h.sessionFor(r.Context(), userIDFrom(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load session", err)
		return
	}

	weeks := sess.Year(anchor)
	dtos := make([]WeekScheduleDTO, len(weeks))
	for i, wk := range weeks {
		dtos[i] = toWeekScheduleDTO(wk)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetWeeklySummary returns the aggregated summary for ?week_start.
func (h *Handler) GetWeeklySummary(w http.ResponseWriter, r *http.Request) {
	weekStart, ok := h.dateParam(w, r, "week_start")
	if !ok {
		return
	}
	sess, err := h.sessionFor(r.Context(), userIDFrom(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load session", err)
		return
	}
	writeJSON(w, http.StatusOK, toWeeklySummaryDTO(sess.WeeklySummary(weekStart)))
}

// =============================================================================
// PAYROLL HANDLERS
// =============================================================================

// GetPayrollSummary returns the payroll summary for ?week_start.
func (h *Handler) GetPayrollSummary(w http.ResponseWriter, r *http.Request) {
	weekStart, ok := h.dateParam(w, r, "week_start")
	if !ok {
		return
	}
	sess, err := h.sessionFor(r.Context(), userIDFrom(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load session", err)
		return
	}
	writeJSON(w, http.StatusOK, toPayrollSummaryDTO(sess.PayrollSummary(weekStart)))
}

// DownloadPayrollCSV streams the payroll CSV for ?week_start as a download.
func (h *Handler) DownloadPayrollCSV(w http.ResponseWriter, r *http.Request) {
	weekStart, ok := h.dateParam(w, r, "week_start")
	if !ok {
		return
	}
	sess, err := h.sessionFor(r.Context(), userIDFrom(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load session", err)
		return
	}

	doc := sess.PayrollCSV(weekStart)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="payroll-`+weekStart.String()+`.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(doc))
}

// =============================================================================
// EMPLOYEE HANDLER
// =============================================================================

// GetEmployee returns the session's employee reference data.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessionFor(r.Context(), userIDFrom(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load session", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(sess.Employee()))
}

// =============================================================================
// MIDDLEWARE & HELPERS
// =============================================================================

// RequireSession resolves the session cookie and injects the user id into
// the request context. 401 on missing or expired tokens.
func (h *Handler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Not signed in", err)
			return
		}

		userID, err := h.Accounts.ResolveSession(r.Context(), cookie.Value)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Session expired", err)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userIDFrom(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

func (h *Handler) dateParam(w http.ResponseWriter, r *http.Request, name string) (rotation.Date, bool) {
	raw := r.URL.Query().Get(name)
	date, err := rotation.ParseDate(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid "+name+" date", err)
		return rotation.Date{}, false
	}
	return date, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	writeJSON(w, status, map[string]string{"error": message, "detail": detail})
}
