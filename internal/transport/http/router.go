// Package httptransport assembles the HTTP surface: platform middleware,
// health and metrics endpoints, and the per-module route trees.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bookmarkshandler "campus/internal/bookmarks/handler"
	"campus/internal/courseexperience"
	"campus/internal/langpref"
	platformmetrics "campus/internal/platform/metrics"
	"campus/internal/ratelimit"
	wafflehandler "campus/internal/waffle/handler"
	id "campus/pkg/domain"
	"campus/pkg/platform/httputil"
	authmw "campus/pkg/platform/middleware/auth"
	localemw "campus/pkg/platform/middleware/locale"
	"campus/pkg/platform/middleware/requestid"
	"campus/pkg/platform/middleware/requesttime"
	"campus/pkg/requestcache"
)

// Deps are the collaborators the router mounts.
type Deps struct {
	Logger         *slog.Logger
	Metrics        *platformmetrics.Metrics
	RateLimit      *ratelimit.Middleware
	TokenValidator authmw.TokenValidator

	WaffleAdmin      *wafflehandler.Handler
	Bookmarks        *bookmarkshandler.Handler
	Languages        *langpref.Handler
	CourseExperience *courseexperience.Flags

	// HealthCheck reports readiness of backing stores; nil means always ready.
	HealthCheck func(r *http.Request) error
}

// NewRouter wires the full route tree. Admin routes sit behind JWT auth plus
// the staff claim; bookmark routes require any authenticated user.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(localemw.Middleware)
	r.Use(requestcache.Middleware)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}
	if deps.RateLimit != nil {
		r.Use(deps.RateLimit.Handler)
	}

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if deps.HealthCheck != nil {
			if err := deps.HealthCheck(req); err != nil {
				deps.Logger.ErrorContext(req.Context(), "health check failed", "error", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"status":"unavailable"}`))
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Mount("/api/languages", deps.Languages.Routes())

	// Course home resolution: which generation of the course home a course
	// uses, decided by the unified_course_experience flag.
	r.Get("/api/courses/{courseID}/home", func(w http.ResponseWriter, req *http.Request) {
		courseID, err := id.ParseCourseKey(chi.URLParam(req, "courseID"))
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		urlName, err := deps.CourseExperience.CourseHomeURLName(req.Context(), courseID)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{
			"course_id": courseID.String(),
			"url_name":  urlName,
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth(deps.TokenValidator, deps.Logger))
		r.Mount("/courses/{courseID}/bookmarks", deps.Bookmarks.Routes())
	})

	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth(deps.TokenValidator, deps.Logger))
		r.Use(authmw.RequireStaff(deps.Logger))
		r.Mount("/admin/waffle", deps.WaffleAdmin.Routes())
	})

	return r
}
