package events

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEventPublisher_RecordsEvents(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	publisher := NewMockEventPublisher(logger)
	ctx := context.Background()

	event := NewEvent(EventPracticeCreated, map[string]string{"practice_id": "p1", "teacher_id": "t1"})
	require.NoError(t, publisher.Publish(ctx, event))

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 1)

	got := published[0]
	assert.Equal(t, EventPracticeCreated, got.Type)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, EventSource, got.Source)
	assert.Equal(t, EventVersion, got.Version)
	assert.False(t, got.Timestamp.IsZero())

	publisher.ClearEvents()
	assert.Empty(t, publisher.GetPublishedEvents())
}
