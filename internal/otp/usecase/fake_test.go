package usecase

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/astra/internal/otp/entity"
	"github.com/shandysiswandi/astra/internal/pkg/clock"
	"github.com/shandysiswandi/astra/internal/pkg/config"
	"github.com/shandysiswandi/astra/internal/pkg/goerror"
	"github.com/shandysiswandi/astra/internal/pkg/hash"
	"github.com/shandysiswandi/astra/internal/pkg/instrument"
	"github.com/shandysiswandi/astra/internal/pkg/uid"
	"github.com/shandysiswandi/astra/internal/pkg/validator"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

// fakeRepo mirrors the transactional semantics of the postgres adapter.
type fakeRepo struct {
	mu        sync.Mutex
	records   []entity.OTP
	conflicts int
	getCalls  int
	err       error
	archived  []entity.OTP
}

func (f *fakeRepo) CreateOTP(_ context.Context, in entity.OTP) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return 0, f.err
	}
	if f.conflicts > 0 {
		f.conflicts--
		return 0, goerror.ErrConflict
	}

	var superseded int64
	for i := range f.records {
		r := &f.records[i]
		if r.UserID == in.UserID && r.Channel == in.Channel && !r.Consumed {
			r.Consumed = true
			superseded++
		}
	}
	f.records = append(f.records, in)
	return superseded, nil
}

func (f *fakeRepo) VerifyOTP(_ context.Context, userID int64, ch entity.Channel, judge func(entity.OTP) entity.Verdict) (*entity.OTP, entity.Verdict, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, 0, f.err
	}

	for i := range f.records {
		r := &f.records[i]
		if r.UserID != userID || r.Channel != ch || r.Consumed {
			continue
		}

		verdict := judge(*r)
		switch verdict {
		case entity.VerdictMatch, entity.VerdictExhausted:
			r.Consumed = true
		case entity.VerdictMismatch:
			r.AttemptCount++
			if r.AttemptCount >= r.MaxAttempts {
				r.Consumed = true
			}
		}
		out := *r
		return &out, verdict, nil
	}

	return nil, 0, goerror.ErrNotFound
}

func (f *fakeRepo) GetOTP(_ context.Context, token string) (*entity.OTP, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.getCalls++
	if f.err != nil {
		return nil, f.err
	}
	for _, r := range f.records {
		if r.Token == token {
			return &r, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepo) ListOTP(_ context.Context, filter entity.ListFilter) ([]entity.OTP, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []entity.OTP
	for i := len(f.records) - 1; i >= 0; i-- {
		r := f.records[i]
		if filter.UserID != nil && r.UserID != *filter.UserID {
			continue
		}
		if filter.Channel != nil && r.Channel != *filter.Channel {
			continue
		}
		if filter.Consumed != nil && r.Consumed != *filter.Consumed {
			continue
		}
		out = append(out, r)
	}

	total := int64(len(out))
	start := min(int(filter.Offset), len(out))
	end := min(start+int(filter.Limit), len(out))
	return out[start:end], total, nil
}

func (f *fakeRepo) DeleteOTP(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, r := range f.records {
		if r.Token == token {
			f.records = slices.Delete(f.records, i, i+1)
			return nil
		}
	}
	return goerror.ErrNotFound
}

func (f *fakeRepo) CountOTPsBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	for _, r := range f.records {
		if r.CreatedAt.Before(cutoff) {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) DeleteOTPsBefore(ctx context.Context, cutoff time.Time, archive func(context.Context, []entity.OTP) error) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return 0, f.err
	}

	var old, kept []entity.OTP
	for _, r := range f.records {
		if r.CreatedAt.Before(cutoff) {
			old = append(old, r)
		} else {
			kept = append(kept, r)
		}
	}

	if archive != nil && len(old) > 0 {
		if err := archive(ctx, old); err != nil {
			return 0, err
		}
	}

	f.records = kept
	return int64(len(old)), nil
}

func (f *fakeRepo) UserIDsWithUnexpiredOTP(_ context.Context, userIDs []int64, now time.Time) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []int64
	for _, r := range f.records {
		if slices.Contains(userIDs, r.UserID) && !r.Consumed && !r.IsExpired(now) && !slices.Contains(out, r.UserID) {
			out = append(out, r.UserID)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetStats(_ context.Context, userID int64, now time.Time) (*entity.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	st := &entity.Stats{}
	for _, r := range f.records {
		if r.UserID != userID {
			continue
		}
		st.Total++
		if r.Consumed {
			st.Used++
		}
		if r.IsActive(now) {
			st.Active++
		}
		if !r.CreatedAt.Before(now.Add(-24 * time.Hour)) {
			st.Last24h++
		}
		if !r.CreatedAt.Before(now.Add(-7 * 24 * time.Hour)) {
			st.Last7d++
		}
	}
	return st, nil
}

func (f *fakeRepo) live(userID int64, ch entity.Channel) []entity.OTP {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []entity.OTP
	for _, r := range f.records {
		if r.UserID == userID && r.Channel == ch && !r.Consumed {
			out = append(out, r)
		}
	}
	return out
}

type fakeUser struct {
	contact entity.Contact
	pending bool
}

type fakeDirectory struct {
	mu        sync.Mutex
	users     map[int64]*fakeUser
	err       error
	deletedAt []time.Time
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{users: map[int64]*fakeUser{}}
}

func (d *fakeDirectory) add(id int64, pending bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[id] = &fakeUser{contact: entity.Contact{UserID: id, Email: "user@example.com", Name: "Jane Doe"}, pending: pending}
}

func (d *fakeDirectory) Exists(_ context.Context, userID int64) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return false, d.err
	}
	_, ok := d.users[userID]
	return ok, nil
}

func (d *fakeDirectory) GetContact(_ context.Context, userID int64) (*entity.Contact, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[userID]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	c := u.contact
	return &c, nil
}

func (d *fakeDirectory) Activate(_ context.Context, userID int64) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[userID]
	if !ok || !u.pending {
		return false, nil
	}
	u.pending = false
	return true, nil
}

func (d *fakeDirectory) IsPendingVerification(_ context.Context, userID int64) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return false, d.err
	}
	u, ok := d.users[userID]
	return ok && u.pending, nil
}

func (d *fakeDirectory) PendingVerificationUserIDs(context.Context) ([]int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var ids []int64
	for id, u := range d.users {
		if u.pending {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

func (d *fakeDirectory) DeleteUnverified(_ context.Context, userIDs []int64, now time.Time) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deletedAt = append(d.deletedAt, now)
	var n int64
	for _, id := range userIDs {
		if u, ok := d.users[id]; ok && u.pending {
			delete(d.users, id)
			n++
		}
	}
	return n, nil
}

type sentOTP struct {
	to        entity.Contact
	code      string
	channel   entity.Channel
	expiresAt time.Time
}

type fakeNotifier struct {
	mu   sync.Mutex
	ok   bool
	sent []sentOTP
}

func (n *fakeNotifier) Send(_ context.Context, to entity.Contact, code string, ch entity.Channel, expiresAt time.Time) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentOTP{to: to, code: code, channel: ch, expiresAt: expiresAt})
	return n.ok
}

type fakeArchiver struct {
	err   error
	calls [][]entity.OTP
}

func (a *fakeArchiver) Archive(_ context.Context, records []entity.OTP, _ time.Time) error {
	a.calls = append(a.calls, records)
	return a.err
}

// seqCodes hands out codes in order, repeating the last one.
type seqCodes struct {
	codes []string
	i     int
}

func (g *seqCodes) Generate() (string, error) {
	if len(g.codes) == 0 {
		return "", errors.New("no codes")
	}
	c := g.codes[min(g.i, len(g.codes)-1)]
	g.i++
	return c, nil
}

type fixture struct {
	uc       *Usecase
	repo     *fakeRepo
	dir      *fakeDirectory
	notifier *fakeNotifier
	clock    *clock.Frozen
	codes    *seqCodes
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	cfg, err := config.NewViperFromBytes("yaml", []byte("modules:\n  otp:\n    max_attempts: 3\n"))
	require.NoError(t, err)

	f := &fixture{
		repo:     &fakeRepo{},
		dir:      newFakeDirectory(),
		notifier: &fakeNotifier{ok: true},
		clock:    clock.NewFrozen(t0),
		codes:    &seqCodes{codes: []string{"123456", "654321", "111111"}},
	}
	f.uc = New(Dependency{
		RepoDB:     f.repo,
		Directory:  f.dir,
		Notifier:   f.notifier,
		Validator:  v,
		Config:     cfg,
		HMAC:       hash.NewHMACSHA256("test-secret"),
		CodeGen:    f.codes,
		TokenID:    uid.NewRandomUUID(),
		Clock:      f.clock,
		Instrument: instrument.NewNoop(),
	})

	return f
}

func requireGoError(t *testing.T, err error, code goerror.Code) *goerror.Error {
	t.Helper()

	var gerr *goerror.Error
	require.True(t, errors.As(err, &gerr), "expected *goerror.Error, got %v", err)
	require.Equal(t, code, gerr.Code(), gerr.String())
	return gerr
}
