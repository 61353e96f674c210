// Package locale resolves the request locale from the Accept-Language
// header. Authenticated requests may later override it from the token claim.
package locale

import (
	"net/http"
	"strings"

	"campus/pkg/requestcontext"
)

// Middleware installs the first Accept-Language tag, reduced to its primary
// subtag ("fr-CA" reads as "fr"), into the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if code := primaryTag(r.Header.Get("Accept-Language")); code != "" {
			ctx := requestcontext.WithLocale(r.Context(), code)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

func primaryTag(header string) string {
	first, _, _ := strings.Cut(header, ",")
	first, _, _ = strings.Cut(first, ";")
	first = strings.TrimSpace(first)
	if first == "" || first == "*" {
		return ""
	}
	primary, _, _ := strings.Cut(first, "-")
	return strings.ToLower(primary)
}
