package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default().Currency, cfg.Currency)
	assert.Equal(t, "0 8 * * *", cfg.Remind.Schedule)
	assert.Equal(t, 60, cfg.Remind.HorizonDays)
	assert.False(t, cfg.CanMail())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rbk.yaml")
	content := `
store:
  dsn: sqlite:book.db
currency: EUR
log:
  level: debug
  format: json
smtp:
  host: smtp.example.com
  port: 2525
  from: landlord@example.com
remind:
  to: [me@example.com]
  schedule: "30 7 * * 1"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite:book.db", cfg.Store.DSN)
	assert.Empty(t, cfg.Store.Path)
	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "smtp.example.com:2525", cfg.SMTP.Addr())
	assert.Equal(t, "30 7 * * 1", cfg.Remind.Schedule)
	assert.True(t, cfg.CanMail())
}

func TestLoad_InvalidFile(t *testing.T) {
	testCases := map[string]string{
		"syntax":   "store: [",
		"schedule": "remind:\n  schedule: every day\n",
		"format":   "log:\n  format: xml\n",
		"dsn":      "store:\n  dsn: mysql://x\n",
		"currency": "currency: dollars\n",
	}
	for name, content := range testCases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "rbk.yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvStore:        "postgres://user@localhost/rent",
		EnvCurrency:     "GBP",
		EnvSMTPPort:     "465",
		EnvRemindTo:     " a@example.com, ,b@example.com ",
		EnvSMTPHost:     "mail",
		EnvSMTPFrom:     "rbk@example.com",
		EnvLogLevel:     "warn",
		EnvSMTPPassword: "secret",
	}
	cfg := &Config{Store: StoreConfig{Path: "book.json"}}
	require.NoError(t, cfg.applyEnv(func(k string) string { return env[k] }))

	assert.Equal(t, StoreConfig{DSN: "postgres://user@localhost/rent"}, cfg.Store)
	assert.Equal(t, "GBP", cfg.Currency)
	assert.Equal(t, 465, cfg.SMTP.Port)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.Remind.To)
	assert.Equal(t, "secret", cfg.SMTP.Password)

	cfg = &Config{}
	err := cfg.applyEnv(func(k string) string {
		if k == EnvSMTPPort {
			return "smtp"
		}
		return ""
	})
	assert.Error(t, err)
}

func TestIsDSN(t *testing.T) {
	assert.True(t, IsDSN("sqlite:file.db"))
	assert.True(t, IsDSN("postgres://localhost/db"))
	assert.False(t, IsDSN("rentbook.json"))
}
