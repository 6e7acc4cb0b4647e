package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
app:
  name: astra
modules:
  otp:
    max_attempts: 3
    cleanup:
      interval: 15
instrument:
  log_mask_fields: "password, otp_code,,authorization"
cors:
  origins:
    - http://localhost:3000
    - https://app.example.com
smtp:
  secret: c2VjcmV0
headers: "a:1,b:2"
`

func TestViper_Get(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "astra", cfg.GetString("app.name"))
	assert.Equal(t, 3, cfg.GetInt("modules.otp.max_attempts"))
	assert.Equal(t, 15*time.Minute, cfg.GetMinute("modules.otp.cleanup.interval"))
	assert.Equal(t, []string{"password", "otp_code", "authorization"}, cfg.GetArray("instrument.log_mask_fields"))
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.GetArray("cors.origins"))
	assert.Nil(t, cfg.GetArray("missing.key"))
	assert.Equal(t, []byte("secret"), cfg.GetBinary("smtp.secret"))
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, cfg.GetMap("headers"))
	assert.NoError(t, cfg.Close())
}

func TestViper_EnvOverride(t *testing.T) {
	t.Setenv("ASTRA_MODULES_OTP_MAX_ATTEMPTS", "5")

	cfg, err := NewViperFromBytes("yaml", []byte(sample))
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.GetInt("modules.otp.max_attempts"))
}

func TestOrHelpers(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte(sample))
	require.NoError(t, err)

	assert.Equal(t, 3, IntOr(cfg, "modules.otp.max_attempts", 9))
	assert.Equal(t, 300, IntOr(cfg, "modules.otp.default_expiry", 300))
	assert.Equal(t, "astra", StringOr(cfg, "app.name", "x"))
	assert.Equal(t, "x", StringOr(cfg, "app.missing", "x"))
}

func TestNewViperFromBytes_RequiresType(t *testing.T) {
	_, err := NewViperFromBytes(" ", nil)
	assert.Error(t, err)
}
