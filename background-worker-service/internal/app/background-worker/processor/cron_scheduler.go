package processor

import (
	"context"

	"motormarket/background-worker-service/internal/app/background-worker/service"
	"motormarket/pkg/logger"

	"github.com/robfig/cron/v3"
)

// CronScheduler периодически обновляет курсы валют
type CronScheduler struct {
	cron        *cron.Cron
	exchangeSvc service.ExchangeRateServiceInterface
}

func NewCronScheduler(exchangeSvc service.ExchangeRateServiceInterface) *CronScheduler {
	return &CronScheduler{
		cron:        cron.New(),
		exchangeSvc: exchangeSvc,
	}
}

// Start регистрирует задачу обновления курсов и сразу выполняет её один раз,
// чтобы курсы были доступны до первого срабатывания расписания
func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if err := s.exchangeSvc.FetchAndStoreRates(ctx); err != nil {
			logger.Error().Err(err).Msg("failed to update exchange rates")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logger.Info().Str("schedule", schedule).Msg("cron scheduler started")

	if err := s.exchangeSvc.FetchAndStoreRates(ctx); err != nil {
		logger.Warn().Err(err).Msg("initial exchange rates update failed")
	}

	return nil
}

func (s *CronScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("cron scheduler stopped")
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
