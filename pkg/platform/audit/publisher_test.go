package audit_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "campus/pkg/domain"
	audit "campus/pkg/platform/audit"
	"campus/pkg/platform/audit/store/memory"
)

func TestPublisher_SyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := audit.NewPublisher(store)
	defer pub.Close()

	event := audit.Event{
		Action:  audit.ActionOverrideSet,
		ActorID: id.UserID(uuid.New()),
		Key:     "grades.rounding",
	}

	err := pub.Emit(context.Background(), event)
	require.NoError(t, err)

	events, err := pub.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, audit.ActionOverrideSet, events[0].Action)
	assert.NotEqual(t, uuid.Nil, events[0].ID, "emit must stamp an event ID")
	assert.False(t, events[0].Timestamp.IsZero(), "emit must stamp a timestamp")
}

func TestPublisher_AsyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := audit.NewPublisher(store, audit.WithAsyncBuffer(10))

	err := pub.Emit(context.Background(), audit.Event{
		Action: audit.ActionSwitchSet,
		Key:    "grades.rounding",
	})
	require.NoError(t, err)

	// Close drains the buffer before returning.
	pub.Close()

	events, err := store.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
}

type recordingSink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *recordingSink) Publish(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *recordingSink) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestPublisher_FansOutToSink(t *testing.T) {
	store := memory.NewInMemoryStore()
	sink := &recordingSink{}
	pub := audit.NewPublisher(store, audit.WithSink(sink))
	defer pub.Close()

	err := pub.Emit(context.Background(), audit.Event{
		Action: audit.ActionOverrideDeleted,
		Key:    "grades.rounding",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, sink.len())
}

func TestInMemoryStore_ListRecentOrdersNewestFirst(t *testing.T) {
	store := memory.NewInMemoryStore()
	base := time.Now()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Append(context.Background(), audit.Event{
			ID:        uuid.New(),
			Timestamp: base.Add(time.Duration(i) * time.Second),
			Action:    audit.ActionFlagSet,
		}))
	}

	events, err := store.ListRecent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.True(t, events[0].Timestamp.After(events[1].Timestamp))
}
