package app

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shandysiswandi/astra/internal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const libraryConfig = `
app:
  node_id: 1
  server:
    max_goroutine: 2
hash:
  hmac:
    secret: test-secret
  password:
    algorithm: bcrypt
    bcrypt_cost: 4
`

func newLibraryApp(t *testing.T) *App {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(libraryConfig))
	require.NoError(t, err)

	a := newApp()
	t.Cleanup(a.cancel)
	a.config = cfg
	a.initLibraries()

	return a
}

func TestOTPDependency_TokenIDIsRandomV4(t *testing.T) {
	a := newLibraryApp(t)
	dep := a.otpDependency()
	require.NotNil(t, dep.TokenID)

	first, err := uuid.Parse(dep.TokenID.Generate())
	require.NoError(t, err)
	second, err := uuid.Parse(dep.TokenID.Generate())
	require.NoError(t, err)

	assert.Equal(t, uuid.Version(4), first.Version())
	assert.Equal(t, uuid.Version(4), second.Version())
	assert.NotEqual(t, first.String()[:13], second.String()[:13])
}

func TestOTPDependency_CorrelationIDsStayTimeOrdered(t *testing.T) {
	a := newLibraryApp(t)
	dep := a.otpDependency()

	id, err := uuid.Parse(dep.UUID.Generate())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}

func TestOTPDependency_WithoutRouterHasNoBackgroundContext(t *testing.T) {
	a := newLibraryApp(t)
	dep := a.otpDependency()

	assert.Nil(t, dep.Ctx)
	assert.Nil(t, dep.Router)
}
