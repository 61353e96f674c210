package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"campus/internal/bookmarks"
	"campus/internal/bookmarks/store"
	id "campus/pkg/domain"
	"campus/pkg/testutil"
)

const courseID = "course-v1:MITx+6.00x+2026"

func newBookmarksRouter(t *testing.T) chi.Router {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service, err := bookmarks.New(store.NewInMemory(), bookmarks.WithLogger(logger))
	if err != nil {
		t.Fatalf("failed to build bookmarks service: %v", err)
	}

	router := chi.NewRouter()
	router.Mount("/courses/{courseID}/bookmarks", New(service).Routes())
	return router
}

func addBookmark(t *testing.T, router chi.Router, userID id.UserID, usageKey, displayName string) {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"usage_key": usageKey, "display_name": displayName})
	req := httptest.NewRequest(http.MethodPost, "/courses/"+courseID+"/bookmarks/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.WithUser(req, userID))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 adding bookmark, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPageView(t *testing.T) {
	router := newBookmarksRouter(t)
	userID := id.UserID(uuid.New())
	addBookmark(t, router, userID, "block-v1:intro", "Intro")

	req := httptest.NewRequest(http.MethodGet, "/courses/"+courseID+"/bookmarks/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.WithUser(req, userID))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for page view, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Route     string            `json:"route"`
		CourseID  string            `json:"course_id"`
		Count     int               `json:"count"`
		Bookmarks []json.RawMessage `json:"bookmarks"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode page response: %v", err)
	}
	if resp.Route != RouteCourseBookmarks || resp.CourseID != courseID || resp.Count != 1 {
		t.Fatalf("unexpected page payload: %+v", resp)
	}
}

func TestFragmentView(t *testing.T) {
	router := newBookmarksRouter(t)
	userID := id.UserID(uuid.New())
	addBookmark(t, router, userID, "block-v1:intro", "Intro")

	req := httptest.NewRequest(http.MethodGet, "/courses/"+courseID+"/bookmarks/fragment", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.WithUser(req, userID))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for fragment view, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Route     string            `json:"route"`
		Bookmarks []json.RawMessage `json:"bookmarks"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode fragment response: %v", err)
	}
	if resp.Route != RouteCourseBookmarksFragment || len(resp.Bookmarks) != 1 {
		t.Fatalf("unexpected fragment payload: %+v", resp)
	}
}

func TestViewsRequireAuth(t *testing.T) {
	router := newBookmarksRouter(t)

	for _, path := range []string{
		"/courses/" + courseID + "/bookmarks/",
		"/courses/" + courseID + "/bookmarks/fragment",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403 for %s without auth, got %d", path, rec.Code)
		}
	}
}

func TestBadCourseKey(t *testing.T) {
	router := newBookmarksRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/courses/not-a-course/bookmarks/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.WithUser(req, id.UserID(uuid.New())))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed course key, got %d", rec.Code)
	}
}

func TestRemoveBookmark(t *testing.T) {
	router := newBookmarksRouter(t)
	userID := id.UserID(uuid.New())
	addBookmark(t, router, userID, "block-v1:intro", "Intro")

	req := httptest.NewRequest(http.MethodDelete, "/courses/"+courseID+"/bookmarks/block-v1:intro", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.WithUser(req, userID))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 removing bookmark, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/courses/"+courseID+"/bookmarks/", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.WithUser(req, userID))

	var resp struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode page response: %v", err)
	}
	if resp.Count != 0 {
		t.Fatalf("expected 0 bookmarks after removal, got %d", resp.Count)
	}
}
