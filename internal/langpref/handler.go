package langpref

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"campus/pkg/platform/httputil"
)

// Handler exposes the language listings over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.allLanguages)
	r.Get("/released", h.releasedLanguages)
	r.Get("/settings", h.selectorSettings)
	return r
}

func (h *Handler) allLanguages(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"languages": h.service.AllLanguages(r.Context()),
	})
}

func (h *Handler) releasedLanguages(w http.ResponseWriter, r *http.Request) {
	languages, err := h.service.ReleasedLanguages(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"languages": languages})
}

func (h *Handler) selectorSettings(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"header_selector_enabled": h.service.HeaderLanguageSelectorEnabled(),
		"footer_selector_enabled": h.service.FooterLanguageSelectorEnabled(),
	})
}
