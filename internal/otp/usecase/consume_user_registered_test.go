package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shandysiswandi/astra/internal/otp/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsecase_ConsumeUserRegistered(t *testing.T) {
	t.Run("pending user gets an email code", func(t *testing.T) {
		f := newFixture(t)
		f.dir.add(7, true)

		require.NoError(t, f.uc.ConsumeUserRegistered(context.Background(), ConsumeUserRegisteredInput{UserID: 7, Email: "user@example.com"}))
		assert.Len(t, f.repo.live(7, entity.ChannelEmail), 1)
		assert.Len(t, f.notifier.sent, 1)
	})

	t.Run("verified user is skipped", func(t *testing.T) {
		f := newFixture(t)
		f.dir.add(7, false)

		require.NoError(t, f.uc.ConsumeUserRegistered(context.Background(), ConsumeUserRegisteredInput{UserID: 7, Email: "user@example.com"}))
		assert.Empty(t, f.repo.records)
	})

	t.Run("invalid payload is dropped", func(t *testing.T) {
		f := newFixture(t)

		require.NoError(t, f.uc.ConsumeUserRegistered(context.Background(), ConsumeUserRegisteredInput{UserID: 7, Email: "nope"}))
		assert.Empty(t, f.repo.records)
	})

	t.Run("store failure is returned for redelivery", func(t *testing.T) {
		f := newFixture(t)
		f.dir.add(7, true)
		f.repo.err = errors.New("connection reset")

		assert.Error(t, f.uc.ConsumeUserRegistered(context.Background(), ConsumeUserRegisteredInput{UserID: 7, Email: "user@example.com"}))
	})

	t.Run("directory failure is returned for redelivery", func(t *testing.T) {
		f := newFixture(t)
		f.dir.err = errors.New("connection reset")

		assert.Error(t, f.uc.ConsumeUserRegistered(context.Background(), ConsumeUserRegisteredInput{UserID: 7, Email: "user@example.com"}))
	})
}
