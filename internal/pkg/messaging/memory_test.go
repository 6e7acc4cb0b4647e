package messaging

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitSubscribed(t *testing.T, m *Memory, topic string) {
	t.Helper()
	require.Eventually(t, func() bool { return m.Subscribed(topic) > 0 }, time.Second, 5*time.Millisecond)
}

func TestMemory_PublishConsume(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var got []string
	done := make(chan error, 1)

	go func() {
		done <- m.Consume(ctx, "identity.user_registered", func(_ context.Context, msg Message) error {
			mu.Lock()
			got = append(got, string(msg.Body())+"|"+msg.Header("cid"))
			mu.Unlock()
			return nil
		}, WithAutoAck(true))
	}()
	waitSubscribed(t, m, "identity.user_registered")

	res, err := m.Publish(ctx, "identity.user_registered", OutgoingMessage{
		Body:    []byte(`{"user_id":"1"}`),
		Headers: []Header{{Key: "cID", Value: []byte("abc")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "1", res.MessageID)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, `{"user_id":"1"}|abc`, got[0])

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Zero(t, m.Subscribed("identity.user_registered"))
}

func TestMemory_HandlerPanicIsRecovered(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan struct{}, 2)
	go func() {
		_ = m.Consume(ctx, "t", func(context.Context, Message) error {
			calls <- struct{}{}
			panic("handler bug")
		}, WithAutoAck(true))
	}()
	waitSubscribed(t, m, "t")

	_, err := m.Publish(ctx, "t", OutgoingMessage{Body: []byte("a")})
	require.NoError(t, err)
	_, err = m.Publish(ctx, "t", OutgoingMessage{Body: []byte("b")})
	require.NoError(t, err)

	for range 2 {
		select {
		case <-calls:
		case <-time.After(time.Second):
			t.Fatal("consumer stopped after panic")
		}
	}
}

func TestMemory_Validation(t *testing.T) {
	m := NewMemory()
	_, err := m.Publish(context.Background(), "", OutgoingMessage{})
	assert.ErrorIs(t, err, ErrDestinationRequired)
	assert.ErrorIs(t, m.Consume(context.Background(), "t", nil), ErrHandlerRequired)

	require.NoError(t, m.Close())
	_, err = m.Publish(context.Background(), "t", OutgoingMessage{})
	assert.True(t, errors.Is(err, ErrClosed))
}

func TestDelivery_AckOnce(t *testing.T) {
	acks, nacks := 0, 0
	d := &delivery{
		ack:  func(context.Context) error { acks++; return nil },
		nack: func(context.Context) error { nacks++; return nil },
	}

	dispatch(context.Background(), "test", func(ctx context.Context, msg Message) error {
		return msg.Ack(ctx)
	}, d, true)

	assert.Equal(t, 1, acks)
	assert.Zero(t, nacks)

	d2 := &delivery{
		ack:  func(context.Context) error { acks++; return nil },
		nack: func(context.Context) error { nacks++; return nil },
	}
	dispatch(context.Background(), "test", func(context.Context, Message) error { return errors.New("x") }, d2, true)
	assert.Equal(t, 1, nacks)
}

func TestNewFromDriver(t *testing.T) {
	msg, err := NewFromDriver(context.Background(), " Memory ", FactoryOptions{})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, msg)

	_, err = NewFromDriver(context.Background(), "rabbitmq", FactoryOptions{})
	assert.ErrorIs(t, err, ErrUnknownDriver)

	_, err = NewFromDriver(context.Background(), DriverKafka, FactoryOptions{})
	assert.ErrorIs(t, err, ErrKafkaBrokersRequired)
}
