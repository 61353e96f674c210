// Package handler exposes the toggle admin surface over HTTP. All routes
// expect to be mounted behind the admin auth middleware.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"campus/internal/waffle/admin"
	"campus/internal/waffle/models"
	id "campus/pkg/domain"
	dErrors "campus/pkg/domain-errors"
	audit "campus/pkg/platform/audit"
	"campus/pkg/platform/httputil"
)

// Handler is the thin HTTP layer over the admin service. It parses and
// validates transport input, then delegates; business rules live in the
// service.
type Handler struct {
	service  *admin.Service
	auditLog *audit.Publisher
	logger   *slog.Logger
}

func New(service *admin.Service, auditLog *audit.Publisher, logger *slog.Logger) *Handler {
	return &Handler{service: service, auditLog: auditLog, logger: logger}
}

// Routes wires the admin endpoints. Flag keys contain dots, so record
// identity travels in query parameters rather than path segments.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/course-overrides", h.searchOverrides)
	r.Put("/course-overrides", h.setOverride)
	r.Get("/course-override", h.getOverride)
	r.Delete("/course-override", h.deleteOverride)
	r.Put("/switches/{name}", h.setSwitch)
	r.Put("/flags/{name}", h.setFlag)
	r.Get("/audit", h.listAudit)
	return r
}

type setOverrideRequest struct {
	FlagKey  string `json:"flag_key"`
	CourseID string `json:"course_id"`
	Force    string `json:"force"`
	Enabled  *bool  `json:"enabled,omitempty"`
}

func (h *Handler) setOverride(w http.ResponseWriter, r *http.Request) {
	var req setOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid JSON body"))
		return
	}

	courseID, err := id.ParseCourseKey(req.CourseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	force, err := models.ParseForceState(req.Force)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	record, err := h.service.SetOverride(r.Context(), req.FlagKey, courseID, force, enabled)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) getOverride(w http.ResponseWriter, r *http.Request) {
	flagKey, courseID, err := recordIdentity(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, err := h.service.GetOverride(r.Context(), flagKey, courseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) deleteOverride(w http.ResponseWriter, r *http.Request) {
	flagKey, courseID, err := recordIdentity(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.DeleteOverride(r.Context(), flagKey, courseID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) searchOverrides(w http.ResponseWriter, r *http.Request) {
	filter := models.SearchFilter{Flag: r.URL.Query().Get("flag")}

	if raw := r.URL.Query().Get("course_id"); raw != "" {
		courseID, err := id.ParseCourseKey(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		filter.CourseID = courseID
	}

	records, err := h.service.Search(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"overrides": records})
}

type setToggleRequest struct {
	Active bool `json:"active"`
}

func (h *Handler) setSwitch(w http.ResponseWriter, r *http.Request) {
	h.setToggle(w, r, h.service.SetSwitch)
}

func (h *Handler) setFlag(w http.ResponseWriter, r *http.Request) {
	h.setToggle(w, r, h.service.SetFlag)
}

func (h *Handler) setToggle(w http.ResponseWriter, r *http.Request, set func(context.Context, string, bool) error) {
	key := chi.URLParam(r, "name")

	var req setToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid JSON body"))
		return
	}

	if err := set(r.Context(), key, req.Active); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"key": key, "active": req.Active})
}

func (h *Handler) listAudit(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	events, err := h.auditLog.ListRecent(r.Context(), limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"events": events})
}

func recordIdentity(r *http.Request) (string, id.CourseKey, error) {
	flagKey := r.URL.Query().Get("flag_key")
	if flagKey == "" {
		return "", id.CourseKey{}, dErrors.New(dErrors.CodeInvalidInput, "flag_key query parameter is required")
	}
	courseID, err := id.ParseCourseKey(r.URL.Query().Get("course_id"))
	if err != nil {
		return "", id.CourseKey{}, err
	}
	return flagKey, courseID, nil
}
