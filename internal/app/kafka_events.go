package app

import (
	"context"

	"go.uber.org/dig"

	"github.com/mjperez2704/deli-back-office/internal/config"
	"github.com/mjperez2704/deli-back-office/internal/logx"
	"github.com/mjperez2704/deli-back-office/internal/service/dispatch"
	"github.com/mjperez2704/deli-back-office/internal/transport/kafka"
)

func makeDispatchKafka(e *dispatch.Engine) kafka.HandleFunc {
	return func(ctx context.Context, ev dispatch.Event) error {
		return e.HandleOrderEvent(ctx, ev)
	}
}

func newKafkaConsumer(cfg *config.Config, logger logx.Logger, h kafka.HandleFunc) (*kafka.Consumer, error) {
	return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, h)
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		makeDispatchKafka,
		newKafkaConsumer,
	)
}
