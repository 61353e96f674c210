package langpref

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"campus/pkg/testutil"
)

func newLanguagesHandler(t *testing.T) *Handler {
	t.Helper()

	catalog, err := LoadCatalog(filepath.Join("testdata", "languages.yaml"))
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service, err := New(catalog, &stubReleased{codes: []string{"fr"}}, "en",
		SelectorSettings{HeaderEnabled: true}, WithLogger(logger))
	require.NoError(t, err)

	return NewHandler(service)
}

func TestAllLanguagesTranslatedForRequestLocale(t *testing.T) {
	handler := newLanguagesHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, testutil.WithLocale(req, "fr"))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Languages []Language `json:"languages"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, []Language{
		{Code: "de", Name: "Allemand"},
		{Code: "en", Name: "Anglais"},
		{Code: "fr", Name: "Français"},
	}, resp.Languages)
}

func TestReleasedLanguagesEndpoint(t *testing.T) {
	handler := newLanguagesHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/released", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Languages []Language `json:"languages"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, []Language{
		{Code: "en", Name: "English"},
		{Code: "fr", Name: "Français"},
	}, resp.Languages)
}

func TestSelectorSettingsEndpoint(t *testing.T) {
	handler := newLanguagesHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Header bool `json:"header_selector_enabled"`
		Footer bool `json:"footer_selector_enabled"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Header)
	require.False(t, resp.Footer)
}
