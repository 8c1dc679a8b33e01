package infrastructure

import "context"

// EmailSender интерфейс для отправки писем
// Позволяет подменять SMTP в тестах
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}
