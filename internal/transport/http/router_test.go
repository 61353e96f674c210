package httptransport

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"campus/internal/bookmarks"
	bookmarkshandler "campus/internal/bookmarks/handler"
	bookmarkstore "campus/internal/bookmarks/store"
	"campus/internal/courseexperience"
	jwttoken "campus/internal/jwt_token"
	"campus/internal/langpref"
	"campus/internal/siteconfig"
	"campus/internal/siteconfig/store/darklang"
	"campus/internal/siteconfig/store/ratelimit"
	"campus/internal/waffle/admin"
	wafflehandler "campus/internal/waffle/handler"
	"campus/internal/waffle/store/global"
	"campus/internal/waffle/store/override"
	audit "campus/pkg/platform/audit"
	auditmem "campus/pkg/platform/audit/store/memory"
)

func newTestRouter(t *testing.T) (http.Handler, *jwttoken.JWTService) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtService := jwttoken.NewJWTService("test-signing-key", "campus", "campus-api")

	publisher := audit.NewPublisher(auditmem.NewInMemoryStore(), audit.WithLogger(logger))
	t.Cleanup(publisher.Close)

	globalStore := global.NewInMemory()
	overrides := override.NewInMemory()

	adminService, err := admin.New(overrides, globalStore,
		admin.WithLogger(logger),
		admin.WithAuditPublisher(publisher),
	)
	require.NoError(t, err)

	courseFlags, err := courseexperience.New(globalStore, overrides)
	require.NoError(t, err)

	bookmarksService, err := bookmarks.New(bookmarkstore.NewInMemory(), bookmarks.WithLogger(logger))
	require.NoError(t, err)

	siteConfig, err := siteconfig.New(ratelimit.NewInMemory(), darklang.NewInMemory(),
		siteconfig.WithLogger(logger))
	require.NoError(t, err)

	catalog, err := langpref.LoadCatalog(filepath.Join("..", "..", "langpref", "testdata", "languages.yaml"))
	require.NoError(t, err)
	languages, err := langpref.New(catalog, siteConfig, "en", langpref.SelectorSettings{}, langpref.WithLogger(logger))
	require.NoError(t, err)

	router := NewRouter(Deps{
		Logger:           logger,
		TokenValidator:   jwttoken.NewJWTServiceAdapter(jwtService),
		WaffleAdmin:      wafflehandler.New(adminService, publisher, logger),
		Bookmarks:        bookmarkshandler.New(bookmarksService),
		Languages:        langpref.NewHandler(languages),
		CourseExperience: courseFlags,
	})
	return router, jwtService
}

func bearer(t *testing.T, jwtService *jwttoken.JWTService, staff bool) string {
	t.Helper()
	token, err := jwtService.GenerateAccessToken(uuid.New(), "", staff, time.Minute)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLanguagesAreOpen(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/languages/released", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Languages []langpref.Language `json:"languages"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	// Only the default language is released before dark-lang rows exist.
	require.Equal(t, []langpref.Language{{Code: "en", Name: "English"}}, resp.Languages)
}

func TestAdminRequiresStaffToken(t *testing.T) {
	router, jwtService := newTestRouter(t)

	body, _ := json.Marshal(map[string]any{"active": true})

	req := httptest.NewRequest(http.MethodPut, "/admin/waffle/switches/grades.rounding", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPut, "/admin/waffle/switches/grades.rounding", bytes.NewReader(body))
	req.Header.Set("Authorization", bearer(t, jwtService, false))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodPut, "/admin/waffle/switches/grades.rounding", bytes.NewReader(body))
	req.Header.Set("Authorization", bearer(t, jwtService, true))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestBookmarksRequireAuth(t *testing.T) {
	router, jwtService := newTestRouter(t)
	path := "/courses/course-v1:MITx+6.00x+2026/bookmarks/"

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", bearer(t, jwtService, false))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCourseHomeRoute(t *testing.T) {
	router, jwtService := newTestRouter(t)
	path := "/api/courses/course-v1:MITx+6.00x+2026/home"

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		URLName string `json:"url_name"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, courseexperience.RouteLegacyCourseHome, resp.URLName)

	// Flip the flag through the admin surface; the next request sees it.
	body, _ := json.Marshal(map[string]any{"active": true})
	adminReq := httptest.NewRequest(http.MethodPut,
		"/admin/waffle/flags/course_experience.unified_course_experience", bytes.NewReader(body))
	adminReq.Header.Set("Authorization", bearer(t, jwtService, true))
	adminRec := httptest.NewRecorder()
	router.ServeHTTP(adminRec, adminReq)
	require.Equal(t, http.StatusOK, adminRec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, courseexperience.RouteUnifiedCourseHome, resp.URLName)
}

func TestRequestIDEchoed(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "test-correlation-id")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, "test-correlation-id", rec.Header().Get("X-Request-ID"))
}
