// Package handler exposes the course bookmarks views. Routes are mounted
// under an authenticated course scope: /courses/{courseID}/bookmarks.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"campus/internal/bookmarks"
	id "campus/pkg/domain"
	dErrors "campus/pkg/domain-errors"
	"campus/pkg/platform/httputil"
)

// Route names, stable identifiers for the two bookmark views. Other modules
// reference views by name rather than by path.
const (
	RouteCourseBookmarks         = "course_bookmarks.home"
	RouteCourseBookmarksFragment = "course_bookmarks.fragment"
)

// Handler serves the bookmarks page and fragment views.
type Handler struct {
	service *bookmarks.Service
}

func New(service *bookmarks.Service) *Handler {
	return &Handler{service: service}
}

// Routes wires the bookmark views for one course. Mount under
// /courses/{courseID}/bookmarks.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.page)
	r.Get("/fragment", h.fragment)
	r.Post("/", h.add)
	r.Delete("/{usageKey}", h.remove)
	return r
}

// page is the full bookmarks page view: fragment payload plus page metadata.
func (h *Handler) page(w http.ResponseWriter, r *http.Request) {
	courseID, err := courseKey(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	items, err := h.service.List(r.Context(), courseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"route":     RouteCourseBookmarks,
		"course_id": courseID.String(),
		"count":     len(items),
		"bookmarks": items,
	})
}

// fragment is the embeddable view: the bookmark list without page metadata.
func (h *Handler) fragment(w http.ResponseWriter, r *http.Request) {
	courseID, err := courseKey(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	items, err := h.service.List(r.Context(), courseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"route":     RouteCourseBookmarksFragment,
		"bookmarks": items,
	})
}

type addBookmarkRequest struct {
	UsageKey    string `json:"usage_key"`
	DisplayName string `json:"display_name"`
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	courseID, err := courseKey(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req addBookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid JSON body"))
		return
	}

	bookmark, err := h.service.Add(r.Context(), courseID, req.UsageKey, req.DisplayName)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, bookmark)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Remove(r.Context(), chi.URLParam(r, "usageKey")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func courseKey(r *http.Request) (id.CourseKey, error) {
	return id.ParseCourseKey(chi.URLParam(r, "courseID"))
}
