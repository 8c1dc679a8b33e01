package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"motormarket/marketplace-service/internal/app/marketplace/entity"
	"motormarket/marketplace-service/internal/app/marketplace/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestIngest_Success(t *testing.T) {
	producer := &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}
	service := NewAnalyticsService(producer)

	ctx := context.Background()
	producer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	eventID, err := service.Ingest(ctx, "user-123", &entity.AnalyticsEventRequest{
		EventType: "vehicle_view",
		VehicleID: "vehicle-456",
		Metadata:  map[string]string{"source": "search"},
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, eventID)

	require.Len(t, producer.Messages, 1)
	var event entity.AnalyticsEvent
	require.NoError(t, json.Unmarshal(producer.Messages[0], &event))
	assert.Equal(t, eventID, event.EventID)
	assert.Equal(t, "vehicle_view", event.EventType)
	assert.Equal(t, "user-123", event.UserID)
	assert.Equal(t, "search", event.Metadata["source"])
	assert.False(t, event.Timestamp.IsZero())
}

func TestIngest_AnonymousUser(t *testing.T) {
	producer := &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}
	service := NewAnalyticsService(producer)

	ctx := context.Background()
	producer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	eventID, err := service.Ingest(ctx, "", &entity.AnalyticsEventRequest{EventType: "page_view"})

	assert.NoError(t, err)
	assert.NotEmpty(t, eventID)

	var event entity.AnalyticsEvent
	require.NoError(t, json.Unmarshal(producer.Messages[0], &event))
	assert.Empty(t, event.UserID)
}

func TestIngest_PublishError(t *testing.T) {
	producer := &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}
	service := NewAnalyticsService(producer)

	ctx := context.Background()
	producer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(errors.New("kafka error"))

	eventID, err := service.Ingest(ctx, "user-123", &entity.AnalyticsEventRequest{EventType: "page_view"})

	assert.Error(t, err)
	assert.Empty(t, eventID)
}
