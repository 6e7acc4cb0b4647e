package inbound

import (
	"context"
	"time"

	"github.com/shandysiswandi/astra/internal/otp/entity"
	"github.com/shandysiswandi/astra/internal/otp/usecase"
	"github.com/shandysiswandi/astra/internal/pkg/idempotency"
	"github.com/shandysiswandi/astra/internal/pkg/instrument"
	"github.com/shandysiswandi/astra/internal/pkg/messaging"
)

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func sampleOTP() entity.OTP {
	return entity.OTP{
		Token:        "0b5c2f7e-3d4a-4c1b-9f0e-2a6b8c9d1e3f",
		UserID:       42,
		Channel:      entity.ChannelEmail,
		CreatedAt:    t0,
		ExpiresIn:    5 * time.Minute,
		AttemptCount: 1,
		MaxAttempts:  3,
	}
}

type fakeUC struct {
	err error

	issueIn    usecase.IssueInput
	verifyIn   usecase.VerifyInput
	listIn     usecase.ListInput
	statsIn    usecase.StatsInput
	cleanupIn  usecase.CleanupInput
	consumeIn  []usecase.ConsumeUserRegisteredInput
	consumeCID string
	token      string
	cleanupRun int
}

func (f *fakeUC) Issue(_ context.Context, in usecase.IssueInput) (*usecase.IssueOutput, error) {
	f.issueIn = in
	if f.err != nil {
		return nil, f.err
	}
	return &usecase.IssueOutput{Record: sampleOTP(), Code: "123456", Superseded: 2, NotificationSent: true}, nil
}

func (f *fakeUC) Verify(_ context.Context, in usecase.VerifyInput) (*usecase.VerifyOutput, error) {
	f.verifyIn = in
	if f.err != nil {
		return nil, f.err
	}
	rec := sampleOTP()
	rec.Consumed = true
	return &usecase.VerifyOutput{Record: rec, UserActivated: true, AttemptsUsed: 2, VerifiedAt: t0.Add(time.Minute)}, nil
}

func (f *fakeUC) Status(_ context.Context, token string) (*usecase.StatusOutput, error) {
	f.token = token
	if f.err != nil {
		return nil, f.err
	}
	rec := sampleOTP()
	return &usecase.StatusOutput{
		Record:            rec,
		State:             entity.StateActive,
		ExpiresAt:         rec.ExpiresAt(),
		RemainingSeconds:  240,
		RemainingAttempts: 2,
	}, nil
}

func (f *fakeUC) Stats(_ context.Context, in usecase.StatsInput) (*entity.Stats, error) {
	f.statsIn = in
	if f.err != nil {
		return nil, f.err
	}
	return &entity.Stats{Total: 5, Used: 3, Active: 1, Last24h: 2, Last7d: 4}, nil
}

func (f *fakeUC) List(_ context.Context, in usecase.ListInput) (*usecase.ListOutput, error) {
	f.listIn = in
	if f.err != nil {
		return nil, f.err
	}
	return &usecase.ListOutput{Items: []entity.OTP{sampleOTP()}, Total: 1, Limit: 20}, nil
}

func (f *fakeUC) Get(_ context.Context, token string) (*entity.OTP, error) {
	f.token = token
	if f.err != nil {
		return nil, f.err
	}
	rec := sampleOTP()
	return &rec, nil
}

func (f *fakeUC) Delete(_ context.Context, token string) error {
	f.token = token
	return f.err
}

func (f *fakeUC) Cleanup(_ context.Context, in usecase.CleanupInput) (*entity.CleanupResult, error) {
	f.cleanupIn = in
	f.cleanupRun++
	if f.err != nil {
		return nil, f.err
	}
	return &entity.CleanupResult{RecordsDeleted: 4, AccountsDeleted: 1, DryRun: in.DryRun}, nil
}

func (f *fakeUC) ConsumeUserRegistered(ctx context.Context, in usecase.ConsumeUserRegisteredInput) error {
	f.consumeIn = append(f.consumeIn, in)
	f.consumeCID = instrument.GetCorrelationID(ctx)
	return f.err
}

// fakeIdem keeps completed keys in memory and reports in-progress keys.
type fakeIdem struct {
	done       map[string]bool
	inProgress map[string]bool
	keys       []string
}

func newFakeIdem() *fakeIdem {
	return &fakeIdem{done: map[string]bool{}, inProgress: map[string]bool{}}
}

func (f *fakeIdem) Acquire(context.Context, string, time.Duration) (idempotency.State, error) {
	return idempotency.StateNone, nil
}

func (f *fakeIdem) MarkCompleted(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdem) MarkFailed(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdem) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	f.keys = append(f.keys, key)
	if f.inProgress[key] {
		return idempotency.ErrAlreadyInProgress
	}
	if f.done[key] {
		return idempotency.ErrAlreadyCompleted
	}
	if err := fn(ctx); err != nil {
		return err
	}
	f.done[key] = true
	return nil
}

type fakeMessage struct {
	id      string
	body    []byte
	headers []messaging.Header
}

func (m fakeMessage) Body() []byte                { return m.body }
func (m fakeMessage) Key() []byte                 { return nil }
func (m fakeMessage) Headers() []messaging.Header { return m.headers }
func (m fakeMessage) ID() string                  { return m.id }
func (m fakeMessage) Topic() string               { return "identity.user_registered" }
func (m fakeMessage) Timestamp() time.Time        { return t0 }
func (m fakeMessage) Ack(context.Context) error   { return nil }
func (m fakeMessage) Nack(context.Context) error  { return nil }

func (m fakeMessage) Header(key string) string {
	for _, h := range m.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

type staticID string

func (s staticID) Generate() string { return string(s) }
