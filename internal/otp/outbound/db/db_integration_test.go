//go:build integration

package db

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/astra/internal/otp/entity"
	"github.com/shandysiswandi/astra/internal/otp/outbound/directory"
	"github.com/shandysiswandi/astra/internal/pkg/goerror"
	"github.com/shandysiswandi/astra/internal/pkg/instrument"
	"github.com/shandysiswandi/astra/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func newPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("astra"),
		postgres.WithUsername("astra"),
		postgres.WithPassword("astra"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = migrations.Apply(ctx, pool)
	require.NoError(t, err)

	return pool
}

func insertUser(t *testing.T, pool *pgxpool.Pool, id int64, status int16) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, full_name, password, status) VALUES ($1, $2, 'Test User', 'x', $3)`,
		id, uuid.NewString()+"@example.com", status)
	require.NoError(t, err)
}

func newRecord(userID int64, createdAt time.Time) entity.OTP {
	return entity.OTP{
		Token:       uuid.NewString(),
		UserID:      userID,
		CodeDigest:  "digest",
		Channel:     entity.ChannelEmail,
		CreatedAt:   createdAt,
		ExpiresIn:   5 * time.Minute,
		MaxAttempts: 3,
	}
}

func TestDB_Integration(t *testing.T) {
	pool := newPool(t)
	store := NewDB(pool, instrument.NewNoop())
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("issue supersedes the live record", func(t *testing.T) {
		insertUser(t, pool, 100, 1)

		first := newRecord(100, now)
		n, err := store.CreateOTP(ctx, first)
		require.NoError(t, err)
		assert.Zero(t, n)

		second := newRecord(100, now)
		n, err = store.CreateOTP(ctx, second)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		got, err := store.GetOTP(ctx, first.Token)
		require.NoError(t, err)
		assert.True(t, got.Consumed)

		got, err = store.GetOTP(ctx, second.Token)
		require.NoError(t, err)
		assert.False(t, got.Consumed)
		assert.Equal(t, 5*time.Minute, got.ExpiresIn)
	})

	t.Run("issue for a missing user", func(t *testing.T) {
		_, err := store.CreateOTP(ctx, newRecord(999, now))
		assert.ErrorIs(t, err, goerror.ErrNotFound)
	})

	t.Run("wrong codes exhaust the record", func(t *testing.T) {
		insertUser(t, pool, 200, 1)
		rec := newRecord(200, now)
		_, err := store.CreateOTP(ctx, rec)
		require.NoError(t, err)

		mismatch := func(entity.OTP) entity.Verdict { return entity.VerdictMismatch }
		for i := 1; i <= 3; i++ {
			got, verdict, err := store.VerifyOTP(ctx, 200, entity.ChannelEmail, mismatch)
			require.NoError(t, err)
			assert.Equal(t, entity.VerdictMismatch, verdict)
			assert.EqualValues(t, i, got.AttemptCount)
			assert.Equal(t, i == 3, got.Consumed)
		}

		_, _, err = store.VerifyOTP(ctx, 200, entity.ChannelEmail, mismatch)
		assert.ErrorIs(t, err, goerror.ErrNotFound)
	})

	t.Run("match consumes", func(t *testing.T) {
		insertUser(t, pool, 300, 1)
		rec := newRecord(300, now)
		_, err := store.CreateOTP(ctx, rec)
		require.NoError(t, err)

		got, verdict, err := store.VerifyOTP(ctx, 300, entity.ChannelEmail, func(entity.OTP) entity.Verdict {
			return entity.VerdictMatch
		})
		require.NoError(t, err)
		assert.Equal(t, entity.VerdictMatch, verdict)
		assert.True(t, got.Consumed)

		stats, err := store.GetStats(ctx, 300, now)
		require.NoError(t, err)
		assert.EqualValues(t, 1, stats.Total)
		assert.EqualValues(t, 1, stats.Used)
		assert.EqualValues(t, 0, stats.Active)
	})

	t.Run("list filters by user", func(t *testing.T) {
		uid := int64(100)
		rows, total, err := store.ListOTP(ctx, entity.ListFilter{UserID: &uid, Limit: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Len(t, rows, 2)
	})

	t.Run("delete by token", func(t *testing.T) {
		insertUser(t, pool, 400, 1)
		rec := newRecord(400, now)
		_, err := store.CreateOTP(ctx, rec)
		require.NoError(t, err)

		require.NoError(t, store.DeleteOTP(ctx, rec.Token))
		assert.ErrorIs(t, store.DeleteOTP(ctx, rec.Token), goerror.ErrNotFound)
	})
}

func TestCleanup_Integration(t *testing.T) {
	pool := newPool(t)
	store := NewDB(pool, instrument.NewNoop())
	dir := directory.New(pool, instrument.NewNoop())
	ctx := context.Background()
	now := time.Now().UTC()

	insertUser(t, pool, 1, 1) // pending, only an old code
	insertUser(t, pool, 2, 1) // pending, live code
	insertUser(t, pool, 3, 2) // active

	_, err := store.CreateOTP(ctx, newRecord(1, now.Add(-25*time.Hour)))
	require.NoError(t, err)
	_, err = store.CreateOTP(ctx, newRecord(2, now))
	require.NoError(t, err)

	cutoff := now.Add(-entity.RetentionWindow)
	n, err := store.CountOTPsBefore(ctx, cutoff)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	var archived []entity.OTP
	n, err = store.DeleteOTPsBefore(ctx, cutoff, func(_ context.Context, rows []entity.OTP) error {
		archived = rows
		return nil
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	require.Len(t, archived, 1)
	assert.EqualValues(t, 1, archived[0].UserID)

	pending, err := dir.PendingVerificationUserIDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2}, pending)

	live, err := store.UserIDsWithUnexpiredOTP(ctx, pending, now)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, live)

	deleted, err := dir.DeleteUnverified(ctx, pending, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	exists, err := dir.Exists(ctx, 2)
	require.NoError(t, err)
	assert.True(t, exists)

	activated, err := dir.Activate(ctx, 2)
	require.NoError(t, err)
	assert.True(t, activated)

	activated, err = dir.Activate(ctx, 3)
	require.NoError(t, err)
	assert.False(t, activated)

	t.Run("delete unverified judges liveness at the given time", func(t *testing.T) {
		insertUser(t, pool, 4, 1)
		_, err := store.CreateOTP(ctx, newRecord(4, now.Add(-10*time.Minute)))
		require.NoError(t, err)

		// live at now-8m, expired by the database clock
		deleted, err := dir.DeleteUnverified(ctx, []int64{4}, now.Add(-8*time.Minute))
		require.NoError(t, err)
		assert.Zero(t, deleted)

		deleted, err = dir.DeleteUnverified(ctx, []int64{4}, now)
		require.NoError(t, err)
		assert.EqualValues(t, 1, deleted)
	})
}

func TestConcurrency_Integration(t *testing.T) {
	pool := newPool(t)
	store := NewDB(pool, instrument.NewNoop())
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	const workers = 8

	t.Run("concurrent issuance leaves one live record", func(t *testing.T) {
		insertUser(t, pool, 500, 1)

		var (
			wg         sync.WaitGroup
			mu         sync.Mutex
			errs       []error
			superseded int64
		)
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				n, err := store.CreateOTP(ctx, newRecord(500, now))
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					errs = append(errs, err)
					return
				}
				superseded += n
			}()
		}
		wg.Wait()

		require.Empty(t, errs)
		assert.EqualValues(t, workers-1, superseded)

		live := false
		rows, total, err := store.ListOTP(ctx, entity.ListFilter{UserID: int64Ptr(500), Consumed: &live, Limit: workers})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Len(t, rows, 1)

		_, total, err = store.ListOTP(ctx, entity.ListFilter{UserID: int64Ptr(500), Limit: workers})
		require.NoError(t, err)
		assert.EqualValues(t, workers, total)
	})

	t.Run("concurrent wrong codes count every attempt once", func(t *testing.T) {
		insertUser(t, pool, 600, 1)
		rec := newRecord(600, now)
		_, err := store.CreateOTP(ctx, rec)
		require.NoError(t, err)

		mismatch := func(entity.OTP) entity.Verdict { return entity.VerdictMismatch }

		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			counts   []int32
			notFound int
			errs     []error
		)
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				got, _, err := store.VerifyOTP(ctx, 600, entity.ChannelEmail, mismatch)
				mu.Lock()
				defer mu.Unlock()
				switch {
				case errors.Is(err, goerror.ErrNotFound):
					notFound++
				case err != nil:
					errs = append(errs, err)
				default:
					counts = append(counts, got.AttemptCount)
				}
			}()
		}
		wg.Wait()

		require.Empty(t, errs)
		assert.ElementsMatch(t, []int32{1, 2, 3}, counts)
		assert.Equal(t, workers-int(rec.MaxAttempts), notFound)

		got, err := store.GetOTP(ctx, rec.Token)
		require.NoError(t, err)
		assert.EqualValues(t, min(workers, int(rec.MaxAttempts)), got.AttemptCount)
		assert.True(t, got.Consumed)
	})
}

func int64Ptr(v int64) *int64 { return &v }
