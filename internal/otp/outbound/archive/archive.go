// Package archive writes records removed by retention to object storage as
// JSON lines, one object per cleanup run.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shandysiswandi/astra/internal/otp/entity"
	"github.com/shandysiswandi/astra/internal/pkg/instrument"
	"github.com/shandysiswandi/astra/internal/pkg/storage"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const contentType = "application/x-ndjson"

// record is the archived shape. The code digest is not archived.
type record struct {
	Token        string    `json:"token"`
	UserID       int64     `json:"user_id,string"`
	Channel      string    `json:"channel"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresIn    int64     `json:"expires_in"`
	Consumed     bool      `json:"consumed"`
	AttemptCount int32     `json:"attempt_count"`
	MaxAttempts  int32     `json:"max_attempts"`
}

type Archive struct {
	store  storage.Storage
	bucket string
	prefix string
	ins    instrument.Instrumentation
}

func New(store storage.Storage, bucket, prefix string, ins instrument.Instrumentation) *Archive {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		prefix = "otps"
	}
	return &Archive{store: store, bucket: bucket, prefix: prefix, ins: ins}
}

// Key is the object key for a run at the given instant, e.g.
// otps/2026/10/15/20261015T090000Z.jsonl.
func (a *Archive) Key(at time.Time) string {
	at = at.UTC()
	return a.prefix + "/" + at.Format("2006/01/02") + "/" + at.Format("20060102T150405Z") + ".jsonl"
}

func (a *Archive) Archive(ctx context.Context, records []entity.OTP, at time.Time) (err error) {
	ctx, span := a.ins.Tracer("otp.outbound.archive").Start(ctx, "Archive")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if len(records) == 0 {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, r := range records {
		if err := enc.Encode(record{
			Token:        r.Token,
			UserID:       r.UserID,
			Channel:      r.Channel.String(),
			CreatedAt:    r.CreatedAt.UTC(),
			ExpiresIn:    int64(r.ExpiresIn / time.Second),
			Consumed:     r.Consumed,
			AttemptCount: r.AttemptCount,
			MaxAttempts:  r.MaxAttempts,
		}); err != nil {
			return err
		}
	}

	key := a.Key(at)
	span.SetAttributes(attribute.String("storage.key", key), attribute.Int("otp.count", len(records)))

	_, err = a.store.PutObject(ctx, a.bucket, key, &buf, storage.PutOptions{
		Size:        int64(buf.Len()),
		ContentType: contentType,
		Metadata:    map[string]string{"records": strconv.Itoa(len(records))},
	})
	return err
}
