// Package siteconfig manages the singleton configuration rows: the platform
// rate-limit toggle and the dark-launch language list. Configuration is
// append-only; the newest row wins, and startup seeding guarantees a sane
// default exists without ever rewriting history.
package siteconfig

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"campus/internal/siteconfig/store/darklang"
	"campus/internal/siteconfig/store/ratelimit"
	dErrors "campus/pkg/domain-errors"
	audit "campus/pkg/platform/audit"
	"campus/pkg/platform/sentinel"
	pstrings "campus/pkg/platform/strings"
	"campus/pkg/requestcontext"
)

// AuditPublisher records configuration changes.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service is the read/seed surface over the singleton configuration rows.
type Service struct {
	rateLimits     ratelimit.Store
	darkLang       darklang.Store
	logger         *slog.Logger
	auditPublisher AuditPublisher
}

// Option configures optional service collaborators.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) { s.auditPublisher = publisher }
}

func New(rateLimits ratelimit.Store, darkLang darklang.Store, opts ...Option) (*Service, error) {
	if rateLimits == nil {
		return nil, fmt.Errorf("rate limit store is required")
	}
	if darkLang == nil {
		return nil, fmt.Errorf("dark lang store is required")
	}
	s := &Service{
		rateLimits: rateLimits,
		darkLang:   darkLang,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// EnsureDefaults seeds each configuration table that has no rows yet. Rate
// limiting defaults to enabled; the dark-lang list defaults to empty. Tables
// that already hold rows are left untouched, including any duplicates an
// operator may have created.
func (s *Service) EnsureDefaults(ctx context.Context) error {
	count, err := s.rateLimits.Count(ctx)
	if err != nil {
		return fmt.Errorf("check rate limit config: %w", err)
	}
	if count == 0 {
		if _, err := s.rateLimits.Insert(ctx, true); err != nil {
			return fmt.Errorf("seed rate limit config: %w", err)
		}
		s.logger.InfoContext(ctx, "seeded default rate limit config", "enabled", true)
		s.emit(ctx, audit.Event{
			Action: audit.ActionConfigSeeded,
			Key:    "rate_limit_config",
			Detail: "enabled=true",
		})
	}

	count, err = s.darkLang.Count(ctx)
	if err != nil {
		return fmt.Errorf("check dark lang config: %w", err)
	}
	if count == 0 {
		if _, err := s.darkLang.Insert(ctx, true, nil); err != nil {
			return fmt.Errorf("seed dark lang config: %w", err)
		}
		s.logger.InfoContext(ctx, "seeded default dark lang config")
		s.emit(ctx, audit.Event{
			Action: audit.ActionConfigSeeded,
			Key:    "dark_lang_config",
			Detail: "released_languages=",
		})
	}
	return nil
}

// RateLimitingEnabled reports the current rate-limit toggle. An unseeded
// table reads as disabled.
func (s *Service) RateLimitingEnabled(ctx context.Context) (bool, error) {
	row, err := s.rateLimits.Latest(ctx)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return row.Enabled, nil
}

// ReleasedLanguageCodes returns the released language codes from the current
// dark-lang row. A missing or disabled row releases nothing.
func (s *Service) ReleasedLanguageCodes(ctx context.Context) ([]string, error) {
	row, err := s.darkLang.Latest(ctx)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !row.Enabled {
		return nil, nil
	}
	return row.ReleasedLanguages, nil
}

// SetReleasedLanguages appends a new dark-lang row with the given codes,
// normalized to lowercase and deduplicated.
func (s *Service) SetReleasedLanguages(ctx context.Context, codes []string) error {
	normalized := pstrings.DedupeAndTrimLower(codes)
	if len(normalized) == 0 && len(codes) > 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "language codes must be non-empty")
	}

	row, err := s.darkLang.Insert(ctx, true, normalized)
	if err != nil {
		return fmt.Errorf("set released languages: %w", err)
	}

	s.logger.InfoContext(ctx, "released languages updated", "codes", row.ReleasedLanguages)
	s.emit(ctx, audit.Event{
		Action:  audit.ActionConfigSeeded,
		ActorID: requestcontext.UserID(ctx),
		Key:     "dark_lang_config",
		Detail:  fmt.Sprintf("released_languages=%v", row.ReleasedLanguages),
	})
	return nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", string(event.Action),
			"key", event.Key,
			"error", err,
		)
	}
}
