// Package admin manages course override records and global toggle values.
// It validates input, persists through the stores, and emits audit events on
// every mutation. The flag name itself is deliberately not validated against
// any registry of flags — an override may be staged before code referencing
// the flag ships.
package admin

//go:generate mockgen -source=admin.go -destination=mocks/mocks.go -package=mocks OverrideStore,GlobalStore,AuditPublisher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"campus/internal/waffle/metrics"
	"campus/internal/waffle/models"
	id "campus/pkg/domain"
	dErrors "campus/pkg/domain-errors"
	audit "campus/pkg/platform/audit"
	"campus/pkg/platform/sentinel"
	"campus/pkg/requestcontext"
)

// OverrideStore is the slice of the override store the admin service needs.
type OverrideStore interface {
	Upsert(ctx context.Context, record *models.CourseOverride) error
	Get(ctx context.Context, flagKey string, courseID id.CourseKey) (*models.CourseOverride, error)
	Delete(ctx context.Context, flagKey string, courseID id.CourseKey) error
	List(ctx context.Context, filter models.SearchFilter) ([]*models.CourseOverride, error)
}

// GlobalStore is the writable slice of the global toggle store.
type GlobalStore interface {
	SetSwitch(ctx context.Context, key string, active bool) error
	SetFlag(ctx context.Context, key string, active bool) error
}

// AuditPublisher records admin mutations.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service is the admin surface over toggle configuration.
type Service struct {
	overrides      OverrideStore
	global         GlobalStore
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
}

// Option configures optional service collaborators.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) { s.auditPublisher = publisher }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(overrides OverrideStore, global GlobalStore, opts ...Option) (*Service, error) {
	if overrides == nil {
		return nil, fmt.Errorf("override store is required")
	}
	if global == nil {
		return nil, fmt.Errorf("global store is required")
	}
	s := &Service{
		overrides: overrides,
		global:    global,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SetOverride creates or updates the override record for (flagKey, courseID).
// Identity and creation metadata of an existing record are preserved.
func (s *Service) SetOverride(ctx context.Context, flagKey string, courseID id.CourseKey, force models.ForceState, enabled bool) (*models.CourseOverride, error) {
	if flagKey == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "flag key is required")
	}
	if courseID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "course id is required")
	}
	if !force.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "invalid force state %q", force)
	}

	now := requestcontext.Now(ctx)
	actor := requestcontext.UserID(ctx)

	record, err := s.overrides.Get(ctx, flagKey, courseID)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		record = &models.CourseOverride{
			ID:        uuid.New(),
			FlagKey:   flagKey,
			CourseID:  courseID,
			CreatedBy: actor,
			CreatedAt: now,
		}
	case err != nil:
		return nil, fmt.Errorf("load existing override: %w", err)
	}

	record.Force = force
	record.Enabled = enabled
	record.UpdatedAt = now

	if err := s.overrides.Upsert(ctx, record); err != nil {
		return nil, err
	}

	s.metrics.OverrideChanged()
	s.logger.InfoContext(ctx, "course override set",
		"flag", flagKey,
		"course", courseID.String(),
		"force", force.String(),
		"enabled", enabled,
	)
	s.emit(ctx, audit.Event{
		Action:   audit.ActionOverrideSet,
		ActorID:  actor,
		Key:      flagKey,
		CourseID: courseID.String(),
		Detail:   fmt.Sprintf("force=%s enabled=%t", force, enabled),
	})
	return record, nil
}

// GetOverride returns the record for (flagKey, courseID), or
// sentinel.ErrNotFound.
func (s *Service) GetOverride(ctx context.Context, flagKey string, courseID id.CourseKey) (*models.CourseOverride, error) {
	if flagKey == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "flag key is required")
	}
	if courseID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "course id is required")
	}
	return s.overrides.Get(ctx, flagKey, courseID)
}

// DeleteOverride removes the record for (flagKey, courseID).
func (s *Service) DeleteOverride(ctx context.Context, flagKey string, courseID id.CourseKey) error {
	if flagKey == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "flag key is required")
	}
	if courseID.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "course id is required")
	}

	if err := s.overrides.Delete(ctx, flagKey, courseID); err != nil {
		return err
	}

	s.metrics.OverrideChanged()
	s.emit(ctx, audit.Event{
		Action:   audit.ActionOverrideDeleted,
		ActorID:  requestcontext.UserID(ctx),
		Key:      flagKey,
		CourseID: courseID.String(),
	})
	return nil
}

// Search lists override records matching the filter, in stable order.
func (s *Service) Search(ctx context.Context, filter models.SearchFilter) ([]*models.CourseOverride, error) {
	return s.overrides.List(ctx, filter)
}

// SetSwitch writes the global switch value.
func (s *Service) SetSwitch(ctx context.Context, key string, active bool) error {
	return s.setToggle(ctx, key, active, s.global.SetSwitch, audit.ActionSwitchSet)
}

// SetFlag writes the global flag value.
func (s *Service) SetFlag(ctx context.Context, key string, active bool) error {
	return s.setToggle(ctx, key, active, s.global.SetFlag, audit.ActionFlagSet)
}

func (s *Service) setToggle(ctx context.Context, key string, active bool, set func(context.Context, string, bool) error, action audit.Action) error {
	if key == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "toggle key is required")
	}
	if err := set(ctx, key, active); err != nil {
		return err
	}
	s.emit(ctx, audit.Event{
		Action:  action,
		ActorID: requestcontext.UserID(ctx),
		Key:     key,
		Detail:  fmt.Sprintf("active=%t", active),
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
