package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowhealth/backend/internal/domain/entities"
)

func TestCacheInvalidationService_DropsCachedTargetEntries(t *testing.T) {
	cache := &stubCacheProvider{}
	service := NewCacheInvalidationService(cache, &stubEventBus{})

	ch := make(chan *entities.ModerationEvent, 1)
	ch <- &entities.ModerationEvent{
		ID:         "evt-1",
		ReviewID:   "rev-1",
		TargetID:   "prov-1",
		TargetType: entities.TargetTypeProvider,
		EventType:  entities.ModerationEventReported,
		OccurredAt: time.Now().UTC(),
	}
	close(ch)

	service.processEvents(ch)

	patterns := cache.deletedPatterns()
	require.Len(t, patterns, 2)
	assert.Contains(t, patterns[0], "prov-1")
	assert.Contains(t, patterns[1], "reviews")
}

func TestCacheInvalidationService_ReturnsWhenChannelCloses(t *testing.T) {
	service := NewCacheInvalidationService(&stubCacheProvider{}, &stubEventBus{})

	ch := make(chan *entities.ModerationEvent)
	done := make(chan struct{})
	go func() {
		service.processEvents(ch)
		close(done)
	}()

	close(ch)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("processEvents kept running after the event channel closed")
	}
}
