package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/shandysiswandi/astra/internal/otp/usecase"
	"github.com/shandysiswandi/astra/internal/pkg/idempotency"
	"github.com/shandysiswandi/astra/internal/pkg/instrument"
	"github.com/shandysiswandi/astra/internal/pkg/messaging"
	"github.com/shandysiswandi/astra/internal/pkg/uid"
	"github.com/shandysiswandi/astra/internal/shared/event"
)

const (
	keyOfCorrelationID string = "cID"

	dedupeLockDuration = 30 * time.Second
	dedupeStateTTL     = 24 * time.Hour
)

type MQHandler struct {
	uc   ucConsumer
	uuid uid.StringID
	idem idempotency.Idempotency
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

// dedupe runs fn once per key. A redelivery of a message that is in flight or
// already handled is acknowledged without running fn again.
func (h *MQHandler) dedupe(ctx context.Context, key string, fn func(context.Context) error) error {
	if h.idem == nil {
		return fn(ctx)
	}

	err := h.idem.Exec(ctx, key, fn,
		idempotency.WithLockDuration(dedupeLockDuration),
		idempotency.WithStateTTL(dedupeStateTTL),
		idempotency.WithRetryFailed(),
	)
	if errors.Is(err, idempotency.ErrAlreadyCompleted) || errors.Is(err, idempotency.ErrAlreadyInProgress) {
		slog.InfoContext(ctx, "skip duplicate message", "key", key, "reason", err.Error())
		return nil
	}
	return err
}

func (h *MQHandler) UserRegistered(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("otp.inbound.mq").Start(ctx, "UserRegistered")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: user registered", "msg_id", msg.ID(), "msg_body", string(body))

	var payload event.UserRegisteredMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of user registered", "msg_body", string(body), "error", err)
		return nil
	}

	key := "otp:user_registered:" + msg.ID()
	if msg.ID() == "" {
		key = "otp:user_registered:user:" + strconv.FormatInt(payload.UserID, 10)
	}

	err := h.dedupe(ctx, key, func(ctx context.Context) error {
		return h.uc.ConsumeUserRegistered(ctx, usecase.ConsumeUserRegisteredInput{
			UserID: payload.UserID,
			Email:  payload.Email,
		})
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to consume user registered", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}
