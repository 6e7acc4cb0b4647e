package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/astra/internal/identity/entity"
	"github.com/shandysiswandi/astra/internal/pkg/clock"
	"github.com/shandysiswandi/astra/internal/pkg/goerror"
	"github.com/shandysiswandi/astra/internal/pkg/hash"
	"github.com/shandysiswandi/astra/internal/pkg/instrument"
	"github.com/shandysiswandi/astra/internal/pkg/jwt"
	"github.com/shandysiswandi/astra/internal/pkg/validator"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type fakeRepo struct {
	users map[int64]entity.UserCredential
	err   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[int64]entity.UserCredential{}}
}

func (r *fakeRepo) CreateUser(_ context.Context, u entity.NewUser) error {
	if r.err != nil {
		return r.err
	}
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return goerror.ErrConflict
		}
	}
	r.users[u.ID] = entity.UserCredential{
		User: entity.User{
			ID:        u.ID,
			Email:     u.Email,
			Phone:     u.Phone,
			FullName:  u.FullName,
			Status:    u.Status,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.CreatedAt,
		},
		Password: u.Password,
	}
	return nil
}

func (r *fakeRepo) GetUserCredentialByEmail(_ context.Context, email string) (*entity.UserCredential, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (r *fakeRepo) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &u.User, nil
}

func (r *fakeRepo) setStatus(id int64, st entity.UserStatus) {
	u := r.users[id]
	u.Status = st
	r.users[id] = u
}

type fakePublisher struct {
	events []UserRegisteredEvent
	err    error
}

func (p *fakePublisher) PublishUserRegistered(_ context.Context, msg UserRegisteredEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, msg)
	return nil
}

type seqID struct{ next int64 }

func (s *seqID) Generate() int64 {
	s.next++
	return s.next
}

type fixture struct {
	uc   *Usecase
	repo *fakeRepo
	pub  *fakePublisher
	jwt  *jwt.HS512
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	clk := clock.NewFrozen(t0)
	issuer, err := jwt.NewHS512(jwt.Config{
		Secret: []byte(strings.Repeat("s", 64)),
		Issuer: "astra",
		TTL:    time.Hour,
		Clock:  clk,
	})
	require.NoError(t, err)

	f := &fixture{repo: newFakeRepo(), pub: &fakePublisher{}, jwt: issuer}
	f.uc = New(Dependency{
		RepoDB:        f.repo,
		RepoMessaging: f.pub,
		Validator:     v,
		Password:      hash.NewBcrypt(4, "pepper"),
		UID:           &seqID{next: 1000},
		Clock:         clk,
		JWT:           issuer,
		Instrument:    instrument.NewNoop(),
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
