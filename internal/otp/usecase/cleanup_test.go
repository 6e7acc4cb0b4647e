package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/astra/internal/otp/entity"
	"github.com/shandysiswandi/astra/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCleanup(f *fixture) {
	f.dir.add(1, false) // active account, old records only
	f.dir.add(2, true)  // pending, live record
	f.dir.add(3, true)  // pending, only an expired record
	f.dir.add(4, true)  // pending, nothing at all

	f.repo.records = []entity.OTP{
		{Token: "old-1", UserID: 1, CreatedAt: t0.Add(-25 * time.Hour), ExpiresIn: 5 * time.Minute, MaxAttempts: 3},
		{Token: "recent-1", UserID: 1, CreatedAt: t0.Add(-time.Hour), ExpiresIn: 5 * time.Minute, MaxAttempts: 3, Consumed: true},
		{Token: "live-2", UserID: 2, CreatedAt: t0.Add(-time.Minute), ExpiresIn: 5 * time.Minute, MaxAttempts: 3},
		{Token: "expired-3", UserID: 3, CreatedAt: t0.Add(-10 * time.Minute), ExpiresIn: 5 * time.Minute, MaxAttempts: 3},
	}
}

func TestUsecase_Cleanup(t *testing.T) {
	f := newFixture(t)
	seedCleanup(f)
	ctx := context.Background()

	res, err := f.uc.Cleanup(ctx, CleanupInput{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.RecordsDeleted)
	assert.EqualValues(t, 2, res.AccountsDeleted)
	assert.EqualValues(t, 3, res.Total())

	_, err = f.repo.GetOTP(ctx, "recent-1")
	require.NoError(t, err)
	_, err = f.repo.GetOTP(ctx, "old-1")
	require.ErrorIs(t, err, goerror.ErrNotFound)

	for id, want := range map[int64]bool{1: true, 2: true, 3: false, 4: false} {
		exists, err := f.dir.Exists(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, exists, "user %d", id)
	}

	again, err := f.uc.Cleanup(ctx, CleanupInput{})
	require.NoError(t, err)
	assert.Zero(t, again.Total())
	assert.Equal(t, []time.Time{t0}, f.dir.deletedAt)
}

func TestUsecase_Cleanup_DryRun(t *testing.T) {
	f := newFixture(t)
	seedCleanup(f)
	ctx := context.Background()

	res, err := f.uc.Cleanup(ctx, CleanupInput{DryRun: true})
	require.NoError(t, err)
	assert.True(t, res.DryRun)
	assert.EqualValues(t, 1, res.RecordsDeleted)
	assert.EqualValues(t, 2, res.AccountsDeleted)

	assert.Len(t, f.repo.records, 4)
	exists, err := f.dir.Exists(ctx, 4)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Empty(t, f.dir.deletedAt)
}

func TestUsecase_Cleanup_Archive(t *testing.T) {
	f := newFixture(t)
	seedCleanup(f)
	arch := &fakeArchiver{}
	f.uc.archiver = arch

	_, err := f.uc.Cleanup(context.Background(), CleanupInput{})
	require.NoError(t, err)
	require.Len(t, arch.calls, 1)
	require.Len(t, arch.calls[0], 1)
	assert.Equal(t, "old-1", arch.calls[0][0].Token)
}

func TestUsecase_Cleanup_ArchiveFailureKeepsRecords(t *testing.T) {
	f := newFixture(t)
	seedCleanup(f)
	f.uc.archiver = &fakeArchiver{err: errors.New("bucket unavailable")}

	_, err := f.uc.Cleanup(context.Background(), CleanupInput{})
	requireGoError(t, err, goerror.CodeInternal)
	assert.Len(t, f.repo.records, 4)

	exists, err := f.dir.Exists(context.Background(), 4)
	require.NoError(t, err)
	assert.True(t, exists)
}
