package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_PutStatDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	info, err := m.PutObject(ctx, "archive", "otps/2026-10-15.jsonl", strings.NewReader("{}\n{}\n"), PutOptions{
		ContentType: "application/x-ndjson",
		Metadata:    map[string]string{"records": "2"},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 6, info.Size)
	assert.NotEmpty(t, info.ETag)

	stat, err := m.StatObject(ctx, "archive", "otps/2026-10-15.jsonl")
	require.NoError(t, err)
	assert.Equal(t, "2", stat.Metadata["records"])

	data, err := m.Read("archive", "otps/2026-10-15.jsonl")
	require.NoError(t, err)
	assert.Equal(t, "{}\n{}\n", string(data))

	require.NoError(t, m.DeleteObject(ctx, "archive", "otps/2026-10-15.jsonl"))
	_, err = m.StatObject(ctx, "archive", "otps/2026-10-15.jsonl")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestNewFromDriver(t *testing.T) {
	s, err := NewFromDriver(context.Background(), "MEMORY", FactoryOptions{})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	_, err = NewFromDriver(context.Background(), "ftp", FactoryOptions{})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}
