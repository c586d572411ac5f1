package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tim-element/element-nutrients-automation/internal/ledger"
	"github.com/Tim-element/element-nutrients-automation/internal/notify"
)

func TestStripLineComments(t *testing.T) {
	in := "// header\n{\n  // inside\n  \"a\": 1 // trailing stays\n}\n"
	got := string(stripLineComments([]byte(in)))
	assert.NotContains(t, got, "header")
	assert.NotContains(t, got, "inside")
	assert.Contains(t, got, "trailing stays")
}

func TestLoad_FirstRunWritesTemplate(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load("", dir)
	require.NoError(t, err)
	assert.FileExists(t, Path(dir))

	assert.Equal(t, DefaultPollInterval, cfg.PollInterval)
	assert.True(t, cfg.AssumeFutureOnPastTime)
	assert.Equal(t, ledger.BackendMemory, cfg.Ledger.Backend)
	assert.Equal(t, ledger.DefaultRetention, cfg.Ledger.Retention)
	assert.Equal(t, notify.KindConsole, cfg.Sink.Kind)
	assert.Equal(t, DefaultTenantID, cfg.Outlook.TenantID)
	assert.Equal(t, DefaultClientID, cfg.Outlook.ClientID)
	assert.Equal(t, DefaultLeadMinutes, cfg.Outlook.LeadMinutes)
	assert.Equal(t, filepath.Join(dir, "household.yaml"), cfg.HouseholdFile)
	assert.Equal(t, filepath.Join(dir, "custom_reminders.json"), cfg.CustomStoreFile)

	// The written template must parse to the same settings.
	again, err := Load("", dir)
	require.NoError(t, err)
	assert.Equal(t, cfg.PollInterval, again.PollInterval)
	assert.Equal(t, cfg.Ledger, again.Ledger)
	assert.Equal(t, cfg.Outlook, again.Outlook)
	assert.Equal(t, cfg.Sink.Kind, again.Sink.Kind)
	assert.Empty(t, again.Sink.Args)

	_, err = cfg.Validate()
	assert.NoError(t, err)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.json")
	require.NoError(t, os.WriteFile(path, []byte(`// my settings
{
  "poll_interval": "2m",
  "assume_future_on_past_time": false,
  // persistent ledger
  "ledger": {"backend": "sqlite", "retention": "72h"},
  "sink": {"kind": "command", "command": "imsg", "args": ["send", "--to", "{to}", "--text", "{message}"], "to": "+15550100"}
}
`), 0o600))

	t.Setenv("HEARTH_METRICS_ADDR", ":9464")
	t.Setenv("HEARTH_OUTLOOK_LEAD_MINUTES", "20")

	cfg, err := Load(path, dir)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Minute, cfg.PollInterval)
	assert.False(t, cfg.AssumeFutureOnPastTime)
	assert.Equal(t, ledger.BackendSQLite, cfg.Ledger.Backend)
	assert.Equal(t, 72*time.Hour, cfg.Ledger.Retention)
	assert.Equal(t, filepath.Join(dir, "delivered.db"), cfg.Ledger.Path)
	assert.Equal(t, "localhost:6379", cfg.Ledger.RedisAddr, "unset keys keep defaults")
	assert.Equal(t, []string{"send", "--to", "{to}", "--text", "{message}"}, cfg.Sink.Args)
	assert.Equal(t, ":9464", cfg.MetricsAddr)
	assert.Equal(t, 20, cfg.Outlook.LeadMinutes)

	opts := cfg.SinkOptions()
	assert.Equal(t, "imsg", opts.Program)
	assert.Equal(t, "+15550100", opts.To)
	assert.Equal(t, cfg.Ledger.Path, cfg.LedgerOptions().Path)
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(Path(dir), []byte("{ not json"), 0o600))

	_, err := Load("", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete the file")
}

func TestValidate(t *testing.T) {
	base, err := Load("", t.TempDir())
	require.NoError(t, err)

	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     string
		wantWarning bool
	}{
		{"defaults", func(*Config) {}, "", false},
		{"unknown backend", func(c *Config) { c.Ledger.Backend = "etcd" }, "unknown backend", false},
		{"unknown sink", func(c *Config) { c.Sink.Kind = "pigeon" }, "unknown kind", false},
		{"command without program", func(c *Config) { c.Sink.Kind = notify.KindCommand }, "sink.command", false},
		{"webhook without url", func(c *Config) { c.Sink.Kind = notify.KindWebhook }, "webhook_url", false},
		{"zero poll interval", func(c *Config) { c.PollInterval = 0 }, "poll_interval", false},
		{"sub-second poll interval", func(c *Config) { c.PollInterval = 500 * time.Millisecond }, "poll_interval", false},
		{"poll interval at due window", func(c *Config) { c.PollInterval = 5 * time.Minute }, "", false},
		{"poll interval past due window", func(c *Config) { c.PollInterval = 7 * time.Minute }, "", true},
		{"slow poll interval", func(c *Config) { c.PollInterval = 15 * time.Minute }, "", true},
		{"negative lead", func(c *Config) { c.Outlook.LeadMinutes = -1 }, "lead_minutes", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			warnings, err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
			assert.Equal(t, tt.wantWarning, len(warnings) > 0)
		})
	}
}
