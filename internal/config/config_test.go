package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "data/transactions.db", cfg.DBPath)
	assert.Empty(t, cfg.PublicURL)
}

func TestLoad_File(t *testing.T) {
	content := `
listen_addr: ":9090"
public_url: https://ivr.example.com
db_path: /var/lib/ivr/transactions.db
twilio:
  account_sid: AC123
  auth_token: secret
  from_number: "+911234567890"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "https://ivr.example.com", cfg.PublicURL)
	assert.Equal(t, "/var/lib/ivr/transactions.db", cfg.DBPath)
	assert.Equal(t, "AC123", cfg.Twilio.AccountSID)
	assert.Equal(t, "secret", cfg.Twilio.AuthToken)
	assert.Equal(t, "+911234567890", cfg.Twilio.FromNumber)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("IVR_PUBLIC_URL", "https://env.example.com")
	t.Setenv("IVR_TWILIO_ACCOUNT_SID", "AC999")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.PublicURL)
	assert.Equal(t, "AC999", cfg.Twilio.AccountSID)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateForDialing(t *testing.T) {
	cfg := Default()
	err := cfg.ValidateForDialing()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "public_url")
	assert.Contains(t, err.Error(), "twilio.account_sid")

	cfg.PublicURL = "https://ivr.example.com"
	cfg.Twilio = TwilioConfig{AccountSID: "AC123", AuthToken: "secret", FromNumber: "+911234567890"}
	assert.NoError(t, cfg.ValidateForDialing())
}
