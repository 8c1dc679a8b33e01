package service

import (
	"context"
	"encoding/json"
	"fmt"

	"motormarket/background-worker-service/internal/app/background-worker/entity"
	"motormarket/background-worker-service/internal/app/background-worker/infrastructure"
	"motormarket/pkg/logger"
	"motormarket/pkg/metrics"
)

// NotificationService превращает события из топика notification_events
// в письма продавцам и пользователям
type NotificationService struct {
	sender       infrastructure.EmailSender
	resetBaseURL string // Базовый URL страницы сброса пароля
}

// NewNotificationService создает сервис email-уведомлений
func NewNotificationService(sender infrastructure.EmailSender, resetBaseURL string) *NotificationService {
	return &NotificationService{
		sender:       sender,
		resetBaseURL: resetBaseURL,
	}
}

// HandleMessage разбирает событие по event_type и отправляет письмо
// Неизвестные типы событий пропускаются без ошибки
func (s *NotificationService) HandleMessage(ctx context.Context, value []byte) error {
	var envelope entity.EventEnvelope
	if err := json.Unmarshal(value, &envelope); err != nil {
		return fmt.Errorf("failed to unmarshal event envelope: %w", err)
	}

	var err error
	switch envelope.EventType {
	case entity.EventVehicleApproved:
		err = s.processModerationEvent(ctx, value, true)
	case entity.EventVehicleRejected:
		err = s.processModerationEvent(ctx, value, false)
	case entity.EventPasswordReset:
		err = s.processPasswordReset(ctx, value)
	default:
		logger.Debug().Str("event_type", envelope.EventType).Msg("skipping unknown notification event")
		return nil
	}

	status := "success"
	if err != nil {
		status = "failed"
	}
	metrics.WorkerEventsProcessed.WithLabelValues(envelope.EventType, status).Inc()

	return err
}

// processModerationEvent отправляет продавцу письмо о решении модератора
func (s *NotificationService) processModerationEvent(ctx context.Context, value []byte, approved bool) error {
	var event entity.NotificationEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal notification event: %w", err)
	}

	if event.SellerEmail == "" {
		logger.Warn().Str("vehicle_id", event.VehicleID).Msg("notification event without seller email, skipping")
		return nil
	}

	var subject, body, kind string
	if approved {
		kind = "approved"
		subject = fmt.Sprintf("Tu anuncio %s %s fue aprobado", event.Brand, event.Model)
		body = fmt.Sprintf(
			"Hola %s,\n\n"+
				"Tu anuncio %s %s ya esta publicado y visible para los compradores.\n\n"+
				"Gracias por usar MotorMarket.",
			event.SellerName, event.Brand, event.Model,
		)
	} else {
		kind = "rejected"
		subject = fmt.Sprintf("Tu anuncio %s %s fue rechazado", event.Brand, event.Model)
		// Причина отклонения всегда включается в тело письма
		body = fmt.Sprintf(
			"Hola %s,\n\n"+
				"Tu anuncio %s %s fue rechazado por el siguiente motivo:\n\n"+
				"    %s\n\n"+
				"Puedes corregir el anuncio y enviarlo de nuevo a revision.\n\n"+
				"Gracias por usar MotorMarket.",
			event.SellerName, event.Brand, event.Model, event.Reason,
		)
	}

	if err := s.sender.Send(ctx, event.SellerEmail, subject, body); err != nil {
		metrics.WorkerEmailsSent.WithLabelValues(kind, "failed").Inc()
		return fmt.Errorf("failed to send moderation email: %w", err)
	}

	metrics.WorkerEmailsSent.WithLabelValues(kind, "success").Inc()
	logger.Info().
		Str("vehicle_id", event.VehicleID).
		Str("kind", kind).
		Msg("moderation email sent")

	return nil
}

// processPasswordReset отправляет письмо со ссылкой для сброса пароля
func (s *NotificationService) processPasswordReset(ctx context.Context, value []byte) error {
	var event entity.PasswordResetEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal password reset event: %w", err)
	}

	resetLink := fmt.Sprintf("%s?token=%s", s.resetBaseURL, event.ResetToken)

	subject := "Restablece tu contrasena de MotorMarket"
	body := fmt.Sprintf(
		"Hola %s,\n\n"+
			"Recibimos una solicitud para restablecer tu contrasena.\n"+
			"Abre el siguiente enlace para continuar (valido por 1 hora):\n\n"+
			"    %s\n\n"+
			"Si no solicitaste el cambio, ignora este mensaje.",
		event.Name, resetLink,
	)

	if err := s.sender.Send(ctx, event.Email, subject, body); err != nil {
		metrics.WorkerEmailsSent.WithLabelValues("password_reset", "failed").Inc()
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	metrics.WorkerEmailsSent.WithLabelValues("password_reset", "success").Inc()
	logger.Info().Msg("password reset email sent")

	return nil
}
