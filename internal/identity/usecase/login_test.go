package usecase

import (
	"context"
	"testing"

	"github.com/shandysiswandi/astra/internal/identity/entity"
	"github.com/shandysiswandi/astra/internal/pkg/goerror"
	"github.com/shandysiswandi/astra/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedUp(t *testing.T, f *fixture, status entity.UserStatus) int64 {
	t.Helper()
	out, err := f.uc.Signup(context.Background(), validSignup())
	require.NoError(t, err)
	f.repo.setStatus(out.User.ID, status)
	return out.User.ID
}

func TestLogin_ActiveUserGetsToken(t *testing.T) {
	f := newFixture(t)
	id := signedUp(t, f, entity.UserStatusActive)

	out, err := f.uc.Login(context.Background(), LoginInput{Email: "ADA@example.com", Password: "correct horse battery"})
	require.NoError(t, err)

	claims, err := f.jwt.Verify(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "ada@example.com", claims.UserEmail)
	assert.Equal(t, id, out.User.ID)
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name     string
		status   entity.UserStatus
		email    string
		password string
		code     goerror.Code
		msg      string
	}{
		{name: "unknown email", status: entity.UserStatusActive, email: "bob@example.com", password: "correct horse battery", code: goerror.CodeUnauthorized, msg: msgInvalidCredentials},
		{name: "wrong password", status: entity.UserStatusActive, email: "ada@example.com", password: "wrong horse battery", code: goerror.CodeUnauthorized, msg: msgInvalidCredentials},
		{name: "pending", status: entity.UserStatusPending, email: "ada@example.com", password: "correct horse battery", code: goerror.CodeForbidden, msg: msgAccountPending},
		{name: "banned", status: entity.UserStatusBanned, email: "ada@example.com", password: "correct horse battery", code: goerror.CodeForbidden, msg: msgAccountBanned},
		{name: "pending with wrong password", status: entity.UserStatusPending, email: "ada@example.com", password: "nope nope nope", code: goerror.CodeUnauthorized, msg: msgInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			signedUp(t, f, tt.status)

			_, err := f.uc.Login(context.Background(), LoginInput{Email: tt.email, Password: tt.password})
			gerr := requireGoError(t, err, tt.code)
			assert.Equal(t, tt.msg, gerr.Msg())
		})
	}
}

func TestMe(t *testing.T) {
	f := newFixture(t)
	id := signedUp(t, f, entity.UserStatusActive)

	user, err := f.uc.Me(jwt.SetAuth(context.Background(), jwt.Claims{UserID: id}))
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "+6281234567890", user.Phone)
}

func TestMe_RequiresAuth(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Me(context.Background())
	requireGoError(t, err, goerror.CodeUnauthorized)

	_, err = f.uc.Me(jwt.SetAuth(context.Background(), jwt.Claims{UserID: 99}))
	requireGoError(t, err, goerror.CodeUnauthorized)
}
