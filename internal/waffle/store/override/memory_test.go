package override

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"campus/internal/waffle/models"
	id "campus/pkg/domain"
	"campus/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *InMemoryStoreSuite) newOverride(flagKey string, courseID id.CourseKey, force models.ForceState) *models.CourseOverride {
	now := time.Now()
	return &models.CourseOverride{
		ID:        uuid.New(),
		FlagKey:   flagKey,
		CourseID:  courseID,
		Force:     force,
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func courseKey(org string) id.CourseKey {
	return id.CourseKey{Org: org, Course: "CS101", Run: "2026"}
}

func (s *InMemoryStoreSuite) TestValue() {
	s.Run("unset when nothing on file", func() {
		state, err := s.store.Value(s.ctx, "grades.flag", courseKey("MITx"))
		s.Require().NoError(err)
		s.Equal(models.Unset, state)
	})

	s.Run("returns stored force state", func() {
		s.Require().NoError(s.store.Upsert(s.ctx, s.newOverride("grades.flag", courseKey("MITx"), models.ForcedOn)))

		state, err := s.store.Value(s.ctx, "grades.flag", courseKey("MITx"))
		s.Require().NoError(err)
		s.Equal(models.ForcedOn, state)
	})

	s.Run("disabled record reads as unset", func() {
		record := s.newOverride("grades.flag", courseKey("HarvardX"), models.ForcedOff)
		record.Enabled = false
		s.Require().NoError(s.store.Upsert(s.ctx, record))

		state, err := s.store.Value(s.ctx, "grades.flag", courseKey("HarvardX"))
		s.Require().NoError(err)
		s.Equal(models.Unset, state)
	})

	s.Run("scoped to the exact course", func() {
		s.Require().NoError(s.store.Upsert(s.ctx, s.newOverride("grades.flag", courseKey("MITx"), models.ForcedOn)))

		state, err := s.store.Value(s.ctx, "grades.flag", courseKey("StanfordX"))
		s.Require().NoError(err)
		s.Equal(models.Unset, state)
	})
}

func (s *InMemoryStoreSuite) TestUpsertReplacesExisting() {
	first := s.newOverride("grades.flag", courseKey("MITx"), models.ForcedOn)
	s.Require().NoError(s.store.Upsert(s.ctx, first))

	second := s.newOverride("grades.flag", courseKey("MITx"), models.ForcedOff)
	s.Require().NoError(s.store.Upsert(s.ctx, second))

	state, err := s.store.Value(s.ctx, "grades.flag", courseKey("MITx"))
	s.Require().NoError(err)
	s.Equal(models.ForcedOff, state)

	records, err := s.store.List(s.ctx, models.SearchFilter{})
	s.Require().NoError(err)
	s.Len(records, 1, "upsert must not create a second record for the same key pair")
}

func (s *InMemoryStoreSuite) TestGetAndDelete() {
	s.Run("get returns not found for absent record", func() {
		_, err := s.store.Get(s.ctx, "grades.flag", courseKey("MITx"))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("delete removes the record", func() {
		s.Require().NoError(s.store.Upsert(s.ctx, s.newOverride("grades.flag", courseKey("MITx"), models.ForcedOn)))
		s.Require().NoError(s.store.Delete(s.ctx, "grades.flag", courseKey("MITx")))

		_, err := s.store.Get(s.ctx, "grades.flag", courseKey("MITx"))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("delete of absent record returns not found", func() {
		err := s.store.Delete(s.ctx, "grades.flag", courseKey("StanfordX"))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryStoreSuite) TestListFilters() {
	s.Require().NoError(s.store.Upsert(s.ctx, s.newOverride("grades.rounding", courseKey("MITx"), models.ForcedOn)))
	s.Require().NoError(s.store.Upsert(s.ctx, s.newOverride("grades.rounding", courseKey("HarvardX"), models.ForcedOff)))
	s.Require().NoError(s.store.Upsert(s.ctx, s.newOverride("proctoring.strict", courseKey("MITx"), models.ForcedOn)))

	s.Run("no filter lists everything in stable order", func() {
		records, err := s.store.List(s.ctx, models.SearchFilter{})
		s.Require().NoError(err)
		s.Require().Len(records, 3)
		s.Equal("grades.rounding", records[0].FlagKey)
		s.Equal("proctoring.strict", records[2].FlagKey)
	})

	s.Run("filter by course", func() {
		records, err := s.store.List(s.ctx, models.SearchFilter{CourseID: courseKey("MITx")})
		s.Require().NoError(err)
		s.Len(records, 2)
	})

	s.Run("filter by flag substring", func() {
		records, err := s.store.List(s.ctx, models.SearchFilter{Flag: "rounding"})
		s.Require().NoError(err)
		s.Len(records, 2)
	})

	s.Run("combined filters intersect", func() {
		records, err := s.store.List(s.ctx, models.SearchFilter{CourseID: courseKey("HarvardX"), Flag: "rounding"})
		s.Require().NoError(err)
		s.Require().Len(records, 1)
		s.Equal(models.ForcedOff, records[0].Force)
	})
}
