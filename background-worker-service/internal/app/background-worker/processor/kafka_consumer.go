package processor

import (
	"context"
	"time"

	"motormarket/background-worker-service/internal/app/background-worker/service"
	"motormarket/pkg/logger"
	"motormarket/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

const serviceName = "background-worker"

// KafkaConsumer читает сообщения одного топика и передает их обработчику
// Для notification_events и analytics_events создаются отдельные экземпляры
type KafkaConsumer struct {
	reader   *kafka.Reader
	handler  service.EventHandler
	topic    string
	groupID  string
	stopChan chan struct{}
	doneChan chan struct{}
}

// NewKafkaConsumer создает новый Kafka consumer
func NewKafkaConsumer(
	brokers []string,
	topic string,
	groupID string,
	minBytes int,
	maxBytes int,
	handler service.EventHandler,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       minBytes,
		MaxBytes:       maxBytes,
		StartOffset:    kafka.LastOffset,
		CommitInterval: time.Second,
		ReadBackoffMin: 100 * time.Millisecond,
		ReadBackoffMax: 1 * time.Second,
	})

	return &KafkaConsumer{
		reader:   reader,
		handler:  handler,
		topic:    topic,
		groupID:  groupID,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Start запускает consumer в отдельной горутине
func (c *KafkaConsumer) Start(ctx context.Context) {
	logger.Info().Str("topic", c.topic).Str("group", c.groupID).Msg("starting kafka consumer")
	go c.consume(ctx)
}

// Stop останавливает consumer и закрывает reader
func (c *KafkaConsumer) Stop() {
	close(c.stopChan)
	<-c.doneChan
	c.reader.Close()
	logger.Info().Str("topic", c.topic).Msg("kafka consumer stopped")
}

// consume читает и обрабатывает сообщения из Kafka
func (c *KafkaConsumer) consume(ctx context.Context) {
	defer close(c.doneChan)

	for {
		select {
		case <-c.stopChan:
			return
		default:
			readCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			message, err := c.reader.FetchMessage(readCtx)
			cancel()

			if err != nil {
				if ctx.Err() != nil {
					return
				}

				logger.Debug().Err(err).Str("topic", c.topic).Msg("error fetching message")
				time.Sleep(time.Second)
				continue
			}

			if err := c.processMessage(ctx, message); err != nil {
				// Offset не коммитится - сообщение будет обработано повторно
				logger.Error().
					Err(err).
					Str("topic", c.topic).
					Int64("offset", message.Offset).
					Msg("error processing message")
			} else {
				if err := c.reader.CommitMessages(ctx, message); err != nil {
					logger.Error().Err(err).Str("topic", c.topic).Msg("error committing message")
				}
			}
		}
	}
}

// processMessage передает одно сообщение обработчику
func (c *KafkaConsumer) processMessage(ctx context.Context, message kafka.Message) error {
	start := time.Now()

	if err := c.handler.HandleMessage(ctx, message.Value); err != nil {
		return err
	}

	metrics.RecordKafkaMessageConsumed(serviceName, c.topic, c.groupID, time.Since(start))
	return nil
}

// GetStats возвращает статистику reader'а
func (c *KafkaConsumer) GetStats() kafka.ReaderStats {
	return c.reader.Stats()
}
