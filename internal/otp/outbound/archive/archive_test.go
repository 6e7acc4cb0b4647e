package archive

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shandysiswandi/astra/internal/otp/entity"
	"github.com/shandysiswandi/astra/internal/pkg/instrument"
	"github.com/shandysiswandi/astra/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchive(t *testing.T) {
	store := storage.NewMemory()
	a := New(store, "astra-archive", "/otps/", instrument.NewNoop())
	at := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

	records := []entity.OTP{
		{Token: "0b7f6c3e-2f51-4d8a-9a57-4f1f2a0d7d11", UserID: 7, CodeDigest: "secret-digest", Channel: entity.ChannelEmail, CreatedAt: at.Add(-25 * time.Hour), ExpiresIn: 5 * time.Minute, Consumed: true, AttemptCount: 1, MaxAttempts: 3},
		{Token: "5d0f1a66-0c55-4d55-8f3e-0b7e2b3a9e01", UserID: 8, Channel: entity.ChannelSMS, CreatedAt: at.Add(-30 * time.Hour), ExpiresIn: time.Minute, MaxAttempts: 3},
	}

	require.NoError(t, a.Archive(context.Background(), records, at))

	key := "otps/2026/10/15/20261015T093000Z.jsonl"
	assert.Equal(t, key, a.Key(at))

	info, err := store.StatObject(context.Background(), "astra-archive", key)
	require.NoError(t, err)
	assert.Equal(t, "application/x-ndjson", info.ContentType)
	assert.Equal(t, "2", info.Metadata["records"])

	data, err := store.Read("astra-archive", key)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret-digest")

	var lines []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		lines = append(lines, m)
	}
	require.Len(t, lines, 2)
	assert.Equal(t, "7", lines[0]["user_id"])
	assert.Equal(t, "email", lines[0]["channel"])
	assert.EqualValues(t, 300, lines[0]["expires_in"])
	assert.Equal(t, "sms", lines[1]["channel"])
}

func TestArchive_Empty(t *testing.T) {
	store := storage.NewMemory()
	a := New(store, "b", "", instrument.NewNoop())
	at := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

	require.NoError(t, a.Archive(context.Background(), nil, at))
	_, err := store.StatObject(context.Background(), "b", a.Key(at))
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
}
