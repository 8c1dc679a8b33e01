package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"motormarket/background-worker-service/internal/app/background-worker/entity"
	"motormarket/background-worker-service/internal/app/background-worker/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testResetURL = "https://motormarket.test/reset-password"

func approvedEventJSON(t *testing.T) []byte {
	t.Helper()
	data, err := json.Marshal(entity.NotificationEvent{
		EventType:   entity.EventVehicleApproved,
		VehicleID:   "665f1c2b9d3e4a0001b2c3d4",
		SellerEmail: "maria@example.com",
		SellerName:  "Maria",
		Brand:       "Toyota",
		Model:       "Corolla",
		Timestamp:   time.Now(),
	})
	assert.NoError(t, err)
	return data
}

// ===================== VEHICLE_APPROVED Tests =====================

func TestHandleMessage_VehicleApproved_SendsEmail(t *testing.T) {
	sender := new(mocks.MockEmailSender)
	service := NewNotificationService(sender, testResetURL)

	ctx := context.Background()

	var sentTo, sentSubject, sentBody string
	sender.On("Send", ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			sentTo = args.String(1)
			sentSubject = args.String(2)
			sentBody = args.String(3)
		}).Return(nil)

	err := service.HandleMessage(ctx, approvedEventJSON(t))

	assert.NoError(t, err)
	assert.Equal(t, "maria@example.com", sentTo)
	assert.Contains(t, sentSubject, "aprobado")
	assert.Contains(t, sentBody, "Maria")
	assert.Contains(t, sentBody, "Toyota")
	assert.Contains(t, sentBody, "Corolla")
}

// ===================== VEHICLE_REJECTED Tests =====================

func TestHandleMessage_VehicleRejected_EmailContainsReason(t *testing.T) {
	sender := new(mocks.MockEmailSender)
	service := NewNotificationService(sender, testResetURL)

	ctx := context.Background()

	event := entity.NotificationEvent{
		EventType:   entity.EventVehicleRejected,
		VehicleID:   "665f1c2b9d3e4a0001b2c3d4",
		SellerEmail: "carlos@example.com",
		SellerName:  "Carlos",
		Brand:       "Honda",
		Model:       "Civic",
		Reason:      "fotos borrosas",
		Timestamp:   time.Now(),
	}
	data, _ := json.Marshal(event)

	var sentBody string
	sender.On("Send", ctx, "carlos@example.com", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			sentBody = args.String(3)
		}).Return(nil)

	err := service.HandleMessage(ctx, data)

	assert.NoError(t, err)
	// Причина отклонения обязана попасть в тело письма
	assert.Contains(t, sentBody, "fotos borrosas")
	sender.AssertExpectations(t)
}

func TestHandleMessage_VehicleRejected_SendFailure(t *testing.T) {
	sender := new(mocks.MockEmailSender)
	service := NewNotificationService(sender, testResetURL)

	ctx := context.Background()

	event := entity.NotificationEvent{
		EventType:   entity.EventVehicleRejected,
		SellerEmail: "carlos@example.com",
		Reason:      "precio incorrecto",
	}
	data, _ := json.Marshal(event)

	sender.On("Send", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp unavailable"))

	err := service.HandleMessage(ctx, data)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send moderation email")
}

func TestHandleMessage_MissingSellerEmail_Skipped(t *testing.T) {
	sender := new(mocks.MockEmailSender)
	service := NewNotificationService(sender, testResetURL)

	ctx := context.Background()

	event := entity.NotificationEvent{
		EventType: entity.EventVehicleApproved,
		VehicleID: "665f1c2b9d3e4a0001b2c3d4",
	}
	data, _ := json.Marshal(event)

	err := service.HandleMessage(ctx, data)

	assert.NoError(t, err)
	sender.AssertNotCalled(t, "Send")
}

// ===================== PASSWORD_RESET Tests =====================

func TestHandleMessage_PasswordReset_EmailContainsLink(t *testing.T) {
	sender := new(mocks.MockEmailSender)
	service := NewNotificationService(sender, testResetURL)

	ctx := context.Background()

	event := entity.PasswordResetEvent{
		EventType:  entity.EventPasswordReset,
		Email:      "ana@example.com",
		Name:       "Ana",
		ResetToken: "abc123token",
		Timestamp:  time.Now(),
	}
	data, _ := json.Marshal(event)

	var sentTo, sentBody string
	sender.On("Send", ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			sentTo = args.String(1)
			sentBody = args.String(3)
		}).Return(nil)

	err := service.HandleMessage(ctx, data)

	assert.NoError(t, err)
	assert.Equal(t, "ana@example.com", sentTo)
	assert.Contains(t, sentBody, testResetURL+"?token=abc123token")
	assert.Contains(t, sentBody, "Ana")
}

func TestHandleMessage_PasswordReset_SendFailure(t *testing.T) {
	sender := new(mocks.MockEmailSender)
	service := NewNotificationService(sender, testResetURL)

	ctx := context.Background()

	event := entity.PasswordResetEvent{
		EventType:  entity.EventPasswordReset,
		Email:      "ana@example.com",
		ResetToken: "abc123token",
	}
	data, _ := json.Marshal(event)

	sender.On("Send", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp unavailable"))

	err := service.HandleMessage(ctx, data)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send password reset email")
}

// ===================== Envelope Tests =====================

func TestHandleMessage_UnknownEventType_Skipped(t *testing.T) {
	sender := new(mocks.MockEmailSender)
	service := NewNotificationService(sender, testResetURL)

	ctx := context.Background()

	data := []byte(`{"event_type":"VEHICLE_CREATED","vehicle_id":"x"}`)

	err := service.HandleMessage(ctx, data)

	assert.NoError(t, err)
	sender.AssertNotCalled(t, "Send")
}

func TestHandleMessage_InvalidJSON(t *testing.T) {
	sender := new(mocks.MockEmailSender)
	service := NewNotificationService(sender, testResetURL)

	ctx := context.Background()

	err := service.HandleMessage(ctx, []byte("invalid json {{{"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal")
	sender.AssertNotCalled(t, "Send")
}
