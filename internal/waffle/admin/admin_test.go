package admin

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"campus/internal/waffle/admin/mocks"
	"campus/internal/waffle/models"
	id "campus/pkg/domain"
	dErrors "campus/pkg/domain-errors"
	audit "campus/pkg/platform/audit"
	"campus/pkg/platform/sentinel"
)

// =============================================================================
// Admin Service Test Suite
// =============================================================================
// Justification for unit tests: The admin service manages course override
// records and global toggle writes. Tests verify constructor invariants,
// input validation, error propagation, and audit event emission.

type AdminServiceSuite struct {
	suite.Suite
	ctrl               *gomock.Controller
	mockOverrides      *mocks.MockOverrideStore
	mockGlobal         *mocks.MockGlobalStore
	mockAuditPublisher *mocks.MockAuditPublisher
	service            *Service
	ctx                context.Context
}

func TestAdminServiceSuite(t *testing.T) {
	suite.Run(t, new(AdminServiceSuite))
}

func (s *AdminServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockOverrides = mocks.NewMockOverrideStore(s.ctrl)
	s.mockGlobal = mocks.NewMockGlobalStore(s.ctrl)
	s.mockAuditPublisher = mocks.NewMockAuditPublisher(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service, _ = New(
		s.mockOverrides,
		s.mockGlobal,
		WithLogger(logger),
		WithAuditPublisher(s.mockAuditPublisher),
	)
	s.ctx = context.Background()
}

func (s *AdminServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func course() id.CourseKey {
	return id.CourseKey{Org: "MITx", Course: "6.00x", Run: "2026"}
}

// =============================================================================
// Constructor Tests (Invariant Enforcement)
// =============================================================================

func (s *AdminServiceSuite) TestNew() {
	s.Run("nil override store returns error", func() {
		_, err := New(nil, s.mockGlobal)
		s.Error(err)
		s.Contains(err.Error(), "override store is required")
	})

	s.Run("nil global store returns error", func() {
		_, err := New(s.mockOverrides, nil)
		s.Error(err)
		s.Contains(err.Error(), "global store is required")
	})

	s.Run("valid stores returns configured service", func() {
		svc, err := New(s.mockOverrides, s.mockGlobal)
		s.NoError(err)
		s.NotNil(svc)
	})

	s.Run("with options applies options", func() {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc, err := New(
			s.mockOverrides,
			s.mockGlobal,
			WithLogger(logger),
			WithAuditPublisher(s.mockAuditPublisher),
		)
		s.NoError(err)
		s.Equal(logger, svc.logger)
		s.Equal(s.mockAuditPublisher, svc.auditPublisher)
	})
}

// =============================================================================
// SetOverride
// =============================================================================

func (s *AdminServiceSuite) TestSetOverride() {
	s.Run("rejects empty flag key", func() {
		_, err := s.service.SetOverride(s.ctx, "", course(), models.ForcedOn, true)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("rejects zero course key", func() {
		_, err := s.service.SetOverride(s.ctx, "grades.rounding", id.CourseKey{}, models.ForcedOn, true)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("rejects invalid force state", func() {
		_, err := s.service.SetOverride(s.ctx, "grades.rounding", course(), models.ForceState("maybe"), true)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("creates new record and emits audit event", func() {
		s.mockOverrides.EXPECT().
			Get(gomock.Any(), "grades.rounding", course()).
			Return(nil, sentinel.ErrNotFound)
		s.mockOverrides.EXPECT().
			Upsert(gomock.Any(), gomock.Any()).
			Return(nil)
		s.mockAuditPublisher.EXPECT().
			Emit(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, event audit.Event) error {
				s.Equal(audit.ActionOverrideSet, event.Action)
				s.Equal("grades.rounding", event.Key)
				s.Equal(course().String(), event.CourseID)
				return nil
			})

		record, err := s.service.SetOverride(s.ctx, "grades.rounding", course(), models.ForcedOn, true)
		s.Require().NoError(err)
		s.Equal(models.ForcedOn, record.Force)
		s.True(record.Enabled)
		s.NotZero(record.ID)
	})

	s.Run("preserves identity of existing record", func() {
		existing := &models.CourseOverride{
			FlagKey:  "grades.rounding",
			CourseID: course(),
			Force:    models.ForcedOn,
			Enabled:  true,
		}
		s.mockOverrides.EXPECT().
			Get(gomock.Any(), "grades.rounding", course()).
			Return(existing, nil)
		s.mockOverrides.EXPECT().
			Upsert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, record *models.CourseOverride) error {
				s.Equal(existing.ID, record.ID)
				s.Equal(models.ForcedOff, record.Force)
				return nil
			})
		s.mockAuditPublisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		_, err := s.service.SetOverride(s.ctx, "grades.rounding", course(), models.ForcedOff, true)
		s.Require().NoError(err)
	})

	s.Run("propagates store errors", func() {
		s.mockOverrides.EXPECT().
			Get(gomock.Any(), "grades.rounding", course()).
			Return(nil, sentinel.ErrUnavailable)

		_, err := s.service.SetOverride(s.ctx, "grades.rounding", course(), models.ForcedOn, true)
		s.Require().ErrorIs(err, sentinel.ErrUnavailable)
	})
}

// =============================================================================
// DeleteOverride
// =============================================================================

func (s *AdminServiceSuite) TestDeleteOverride() {
	s.Run("deletes and emits audit event", func() {
		s.mockOverrides.EXPECT().
			Delete(gomock.Any(), "grades.rounding", course()).
			Return(nil)
		s.mockAuditPublisher.EXPECT().
			Emit(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, event audit.Event) error {
				s.Equal(audit.ActionOverrideDeleted, event.Action)
				return nil
			})

		s.Require().NoError(s.service.DeleteOverride(s.ctx, "grades.rounding", course()))
	})

	s.Run("propagates not found without auditing", func() {
		s.mockOverrides.EXPECT().
			Delete(gomock.Any(), "grades.rounding", course()).
			Return(sentinel.ErrNotFound)

		err := s.service.DeleteOverride(s.ctx, "grades.rounding", course())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("rejects empty flag key", func() {
		err := s.service.DeleteOverride(s.ctx, "", course())
		s.Require().Error(err)
	})
}

// =============================================================================
// Global toggle writes
// =============================================================================

func (s *AdminServiceSuite) TestSetToggles() {
	s.Run("set switch writes store and audits", func() {
		s.mockGlobal.EXPECT().SetSwitch(gomock.Any(), "grades.rounding", true).Return(nil)
		s.mockAuditPublisher.EXPECT().
			Emit(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, event audit.Event) error {
				s.Equal(audit.ActionSwitchSet, event.Action)
				return nil
			})

		s.Require().NoError(s.service.SetSwitch(s.ctx, "grades.rounding", true))
	})

	s.Run("set flag writes store and audits", func() {
		s.mockGlobal.EXPECT().SetFlag(gomock.Any(), "grades.rounding", false).Return(nil)
		s.mockAuditPublisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		s.Require().NoError(s.service.SetFlag(s.ctx, "grades.rounding", false))
	})

	s.Run("rejects empty key", func() {
		s.Require().Error(s.service.SetSwitch(s.ctx, "", true))
		s.Require().Error(s.service.SetFlag(s.ctx, "", true))
	})

	s.Run("audit failure does not fail the write", func() {
		s.mockGlobal.EXPECT().SetFlag(gomock.Any(), "grades.rounding", true).Return(nil)
		s.mockAuditPublisher.EXPECT().
			Emit(gomock.Any(), gomock.Any()).
			Return(sentinel.ErrUnavailable)

		s.Require().NoError(s.service.SetFlag(s.ctx, "grades.rounding", true))
	})
}
