// Package testutil provides common helpers for handler and integration tests.
package testutil

import (
	"net/http"

	id "campus/pkg/domain"
	"campus/pkg/requestcontext"
)

// WithUser stamps an authenticated user on the request, simulating what the
// auth middleware does for real requests.
func WithUser(req *http.Request, userID id.UserID) *http.Request {
	return req.WithContext(requestcontext.WithUserID(req.Context(), userID))
}

// WithLocale sets the request locale the way the locale middleware does.
func WithLocale(req *http.Request, locale string) *http.Request {
	return req.WithContext(requestcontext.WithLocale(req.Context(), locale))
}
