package config

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com/api/v1")
	t.Setenv("GATEWAY_CHECKOUT_URL", "https://pay.example.com/checkout")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/api/v1", cfg.APIBaseURL)
	assert.Equal(t, 30, cfg.APITimeoutSeconds)
	assert.Equal(t, 43117, cfg.CallbackPort)
	assert.Equal(t, ".jobtrack/session.json", cfg.SessionFile)
	assert.Equal(t, "debug", cfg.LogMode)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("GATEWAY_CHECKOUT_URL", "https://pay.example.com/checkout")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_BASE_URL")

	t.Setenv("API_BASE_URL", "https://api.example.com/api/v1")
	t.Setenv("GATEWAY_CHECKOUT_URL", "")

	_, err = LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GATEWAY_CHECKOUT_URL")
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com/api/v1")
	t.Setenv("GATEWAY_CHECKOUT_URL", "https://pay.example.com/checkout")
	t.Setenv("API_TIMEOUT_SECONDS", "5")
	t.Setenv("CALLBACK_PORT", "50000")
	t.Setenv("LOG_MODE", "production")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.APITimeoutSeconds)
	assert.Equal(t, 50000, cfg.CallbackPort)
	assert.Equal(t, "production", cfg.LogMode)
}

func TestConfig_SessionKey(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, 32)

	cfg := &Config{SessionKeyBase64: base64.StdEncoding.EncodeToString(key)}
	decoded, err := cfg.SessionKey()
	require.NoError(t, err)
	assert.Equal(t, key, decoded)

	cfg = &Config{}
	decoded, err = cfg.SessionKey()
	require.NoError(t, err)
	assert.Nil(t, decoded)

	cfg = &Config{SessionKeyBase64: "!!not base64!!"}
	_, err = cfg.SessionKey()
	assert.Error(t, err)

	cfg = &Config{SessionKeyBase64: base64.StdEncoding.EncodeToString([]byte("short"))}
	_, err = cfg.SessionKey()
	assert.Error(t, err)
}

func TestLoadConfig_RejectsBadSessionKey(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com/api/v1")
	t.Setenv("GATEWAY_CHECKOUT_URL", "https://pay.example.com/checkout")
	t.Setenv("SESSION_KEY", "too-short")

	_, err := LoadConfig()
	assert.Error(t, err)
}
