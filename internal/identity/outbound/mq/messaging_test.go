package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shandysiswandi/astra/internal/identity/usecase"
	"github.com/shandysiswandi/astra/internal/pkg/instrument"
	"github.com/shandysiswandi/astra/internal/pkg/messaging"
	"github.com/shandysiswandi/astra/internal/shared/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	destination string
	msg         messaging.OutgoingMessage
	err         error
}

func (p *capturePublisher) Publish(_ context.Context, destination string, msg messaging.OutgoingMessage) (messaging.PublishResult, error) {
	p.destination = destination
	p.msg = msg
	return messaging.PublishResult{}, p.err
}

func TestPublishUserRegistered(t *testing.T) {
	pub := &capturePublisher{}
	m := NewMessaging(pub, instrument.NewNoop())
	ctx := instrument.SetCorrelationID(context.Background(), "cid-7")

	require.NoError(t, m.PublishUserRegistered(ctx, usecase.UserRegisteredEvent{UserID: 1890123456789012345, Email: "ada@example.com"}))

	assert.Equal(t, event.UserRegisteredDestination, pub.destination)
	assert.Equal(t, []byte("1890123456789012345"), pub.msg.Key)
	assert.Equal(t, []messaging.Header{{Key: "cID", Value: []byte("cid-7")}}, pub.msg.Headers)
	assert.JSONEq(t, `{"user_id":"1890123456789012345","email":"ada@example.com"}`, string(pub.msg.Body))

	var decoded event.UserRegisteredMessage
	require.NoError(t, json.Unmarshal(pub.msg.Body, &decoded))
	assert.Equal(t, int64(1890123456789012345), decoded.UserID)
}

func TestPublishUserRegistered_BrokerError(t *testing.T) {
	pub := &capturePublisher{err: errors.New("nats: no responders")}
	m := NewMessaging(pub, instrument.NewNoop())

	err := m.PublishUserRegistered(context.Background(), usecase.UserRegisteredEvent{UserID: 1, Email: "a@b.co"})
	assert.ErrorIs(t, err, pub.err)
}
