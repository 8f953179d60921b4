package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/shandysiswandi/otpentry/internal/pkg/config"
	"github.com/shandysiswandi/otpentry/internal/pkg/goroutine"
	"github.com/shandysiswandi/otpentry/internal/pkg/instrument"
	"github.com/shandysiswandi/otpentry/internal/pkg/messaging"
	"github.com/shandysiswandi/otpentry/internal/pkg/uid"
	"github.com/shandysiswandi/otpentry/internal/shared/event"
)

// RegisterMQConsumer starts the consumers listed in modules.otpentry.consumer_names.
func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Consumer,
	uuid uid.StringID,
	codes CodeSource,
	ins instrument.Instrumentation,
) {
	mqHandler := &MQHandler{codes: codes, uuid: uuid, ins: ins}

	enableConsumerNames := cfg.GetArray("modules.otpentry.consumer_names")

	var consumers = []struct {
		name             string
		topic            string // destination where publisher sent message
		nsqConsumerName  string
		natsConsumerName string
		handler          messaging.Handler
	}{
		{
			name:             event.OTPResendConsumerDelivery,
			topic:            event.OTPResendDestination,
			nsqConsumerName:  event.OTPResendConsumerDelivery,
			natsConsumerName: event.OTPResendConsumerDelivery,
			handler:          mqHandler.OTPResendDelivery,
		},
	}

	for _, consumer := range consumers {
		if len(enableConsumerNames) > 0 && slices.Contains(enableConsumerNames, consumer.name) {
			started := routine.Go(ctx, func(pCtx context.Context) error {
				slog.InfoContext(ctx, "Running job for handling consumer", "consumer", consumer.name)
				return messenger.Consume(pCtx,
					consumer.topic,
					consumer.handler,
					messaging.WithChannel(consumer.nsqConsumerName),
					messaging.WithQueueGroup(consumer.natsConsumerName),
					messaging.WithAutoAck(true),
					messaging.WithConcurrency(10),
					messaging.WithMaxInFlight(10),
				)
			})
			if !started {
				slog.ErrorContext(ctx, "consumer not started", "consumer", consumer.name)
			}
		}
	}
}
