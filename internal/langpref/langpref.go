// Package langpref lists the languages a learner can choose from. The
// catalog says which languages exist; the dark-lang configuration says which
// of them are released; site settings say where the selector is shown.
package langpref

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"

	"campus/pkg/requestcontext"
)

// ReleasedSource supplies the released language codes from the dark-lang
// configuration.
type ReleasedSource interface {
	ReleasedLanguageCodes(ctx context.Context) ([]string, error)
}

// SelectorSettings controls where the language selector is rendered.
// ShowLanguageSelector is the deprecated spelling of the header toggle,
// still honored for installations that have not migrated.
type SelectorSettings struct {
	HeaderEnabled        bool
	FooterEnabled        bool
	ShowLanguageSelector bool
}

// Service answers language listing queries.
type Service struct {
	catalog     *Catalog
	released    ReleasedSource
	defaultCode string
	settings    SelectorSettings
	logger      *slog.Logger
}

// Option configures optional service collaborators.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func New(catalog *Catalog, released ReleasedSource, defaultCode string, settings SelectorSettings, opts ...Option) (*Service, error) {
	if catalog == nil {
		return nil, fmt.Errorf("language catalog is required")
	}
	if released == nil {
		return nil, fmt.Errorf("released language source is required")
	}
	if defaultCode == "" {
		return nil, fmt.Errorf("default language code is required")
	}
	if !catalog.Contains(defaultCode) {
		return nil, fmt.Errorf("default language %q is not in the catalog", defaultCode)
	}
	s := &Service{
		catalog:     catalog,
		released:    released,
		defaultCode: defaultCode,
		settings:    settings,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ReleasedLanguages returns the catalog languages whose codes are released,
// in catalog order. The default language is always released: if the
// dark-lang list omits it, the code is added and the code list re-sorted
// before filtering.
func (s *Service) ReleasedLanguages(ctx context.Context) ([]Language, error) {
	codes, err := s.released.ReleasedLanguageCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load released language codes: %w", err)
	}

	if !slices.Contains(codes, s.defaultCode) {
		codes = append(slices.Clone(codes), s.defaultCode)
		sort.Strings(codes)
	}

	releasedSet := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		releasedSet[code] = struct{}{}
	}

	languages := make([]Language, 0, len(codes))
	for _, lang := range s.catalog.Languages {
		if _, ok := releasedSet[lang.Code]; ok {
			languages = append(languages, lang)
		}
	}
	return languages, nil
}

// AllLanguages returns every catalog language with its display name
// translated into the request locale, sorted by translated name. Untranslated
// names pass through unchanged.
func (s *Service) AllLanguages(ctx context.Context) []Language {
	locale := requestcontext.Locale(ctx)

	languages := make([]Language, 0, len(s.catalog.Languages))
	for _, lang := range s.catalog.Languages {
		languages = append(languages, Language{
			Code: lang.Code,
			Name: s.catalog.DisplayName(lang.Code, locale),
		})
	}
	sort.Slice(languages, func(i, j int) bool {
		return strings.Compare(languages[i].Name, languages[j].Name) < 0
	})
	return languages
}

// HeaderLanguageSelectorEnabled reports whether the header selector is shown.
// The deprecated ShowLanguageSelector setting also turns it on.
func (s *Service) HeaderLanguageSelectorEnabled() bool {
	return s.settings.HeaderEnabled || s.settings.ShowLanguageSelector
}

// FooterLanguageSelectorEnabled reports whether the footer selector is shown.
func (s *Service) FooterLanguageSelectorEnabled() bool {
	return s.settings.FooterEnabled
}
