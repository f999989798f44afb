package kafka

import (
	"context"

	"github.com/MarcJHerz/hoodfy-payments-service/config"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/infrastructure/metrics"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

var Module = fx.Module(
	"kafka",
	fx.Provide(
		NewProducer,
		NewAdapter,
	),
)

func NewProducer(lc fx.Lifecycle, cfg *config.KafkaConfig, m *metrics.Metrics, log zerolog.Logger) (*Producer, error) {
	producer, err := NewKafkaProducer(cfg.Brokers, m, log)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("closing kafka producer...")
			return producer.Close()
		},
	})

	return producer, nil
}

func NewAdapter(producer *Producer, cfg *config.KafkaConfig) *NotificationAdapter {
	return NewNotificationAdapter(producer, cfg.NotificationsTopic)
}
