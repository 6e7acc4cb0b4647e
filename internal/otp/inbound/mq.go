package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/shandysiswandi/astra/internal/pkg/config"
	"github.com/shandysiswandi/astra/internal/pkg/goroutine"
	"github.com/shandysiswandi/astra/internal/pkg/idempotency"
	"github.com/shandysiswandi/astra/internal/pkg/instrument"
	"github.com/shandysiswandi/astra/internal/pkg/messaging"
	"github.com/shandysiswandi/astra/internal/pkg/uid"
	"github.com/shandysiswandi/astra/internal/shared/event"
)

type MQDependency struct {
	Config      config.Config
	Goroutine   *goroutine.Manager
	Messaging   messaging.Messaging
	Idempotency idempotency.Idempotency
	UUID        uid.StringID
	Instrument  instrument.Instrumentation
}

func RegisterMQConsumer(ctx context.Context, dep MQDependency, uc ucConsumer) {
	mqHandler := &MQHandler{uc: uc, uuid: dep.UUID, idem: dep.Idempotency, ins: dep.Instrument}

	enableConsumerNames := dep.Config.GetArray("modules.otp.consumer_names")

	var consumers = []struct {
		name               string
		topic              string // destination where publisher sent message
		nsqConsumerName    string // for nsq
		natsConsumerName   string // for nats
		kafkaConsumerName  string // for kafka
		pubsubConsumerName string // for google pubsub
		handler            messaging.Handler
	}{
		{
			name:               event.UserRegisteredConsumerOTP,
			topic:              event.UserRegisteredDestination,
			nsqConsumerName:    event.UserRegisteredConsumerOTP,
			natsConsumerName:   event.UserRegisteredConsumerOTP,
			kafkaConsumerName:  event.UserRegisteredConsumerOTP,
			pubsubConsumerName: event.UserRegisteredConsumerOTP,
			handler:            mqHandler.UserRegistered,
		},
	}

	for _, consumer := range consumers {
		if !slices.Contains(enableConsumerNames, consumer.name) {
			continue
		}

		err := dep.Goroutine.Go(ctx, func(pCtx context.Context) error {
			slog.InfoContext(ctx, "Running job for handling consumer", "consumer", consumer.name)
			return dep.Messaging.Consume(pCtx,
				consumer.topic,
				consumer.handler,
				messaging.WithChannel(consumer.nsqConsumerName),
				messaging.WithQueueGroup(consumer.natsConsumerName),
				messaging.WithGroup(consumer.kafkaConsumerName),
				messaging.WithSubscription(consumer.pubsubConsumerName),
				messaging.WithAutoAck(true),
				messaging.WithConcurrency(10),
				messaging.WithMaxInFlight(10),
			)
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to start consumer", "consumer", consumer.name, "error", err)
		}
	}
}
