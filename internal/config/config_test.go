package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func validYAML() string {
	return `
typeform:
  api_key: tf-key
  form_id: form-1
profile:
  api_key: pc-key
db:
  dsn: postgres://localhost:5432/dealflow
`
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML()))
	require.NoError(t, err)

	assert.Equal(t, "https://api.typeform.com", cfg.Typeform.BaseURL)
	assert.Equal(t, 100, cfg.Typeform.PageSize)
	assert.Equal(t, "https://nubela.co/proxycurl/api/v2", cfg.Profile.BaseURL)
	assert.Contains(t, cfg.Site.UserAgent, "Mozilla/5.0")
	assert.Equal(t, "noop", cfg.Notify.Provider)
	assert.True(t, cfg.Ops.Enabled)
	assert.Equal(t, 8080, cfg.Ops.Port)
	assert.Equal(t, int32(4), cfg.DB.MaxConns)

	assert.Equal(t, 15*time.Second, cfg.TypeformTimeout())
	assert.Equal(t, 15*time.Second, cfg.ProfileTimeout())
	assert.Equal(t, 10*time.Second, cfg.SiteTimeout())
}

func TestLoadOverridesFromFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML()+`
site:
  timeout_seconds: 30
notify:
  provider: pubsub
  project_id: proj-1
  topic_id: commits
`))
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.SiteTimeout())
	assert.Equal(t, "pubsub", cfg.Notify.Provider)
	assert.Equal(t, "proj-1", cfg.Notify.ProjectID)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Typeform: TypeformConfig{
				APIKey: "tf-key", FormID: "form-1", PageSize: 100, TimeoutSeconds: 15,
			},
			Profile: ProfileConfig{TimeoutSeconds: 15},
			Site:    SiteConfig{TimeoutSeconds: 10},
			DB:      DBConfig{DSN: "postgres://localhost/dealflow"},
			Notify:  NotifyConfig{Provider: "noop"},
			Ops:     OpsConfig{Enabled: true, Port: 8080},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing form api key", func(c *Config) { c.Typeform.APIKey = "" }, "typeform.api_key"},
		{"missing form id", func(c *Config) { c.Typeform.FormID = "" }, "typeform.form_id"},
		{"page size too large", func(c *Config) { c.Typeform.PageSize = 2000 }, "typeform.page_size"},
		{"zero site timeout", func(c *Config) { c.Site.TimeoutSeconds = 0 }, "site.timeout_seconds"},
		{"missing dsn", func(c *Config) { c.DB.DSN = "" }, "db.dsn"},
		{"unknown notifier", func(c *Config) { c.Notify.Provider = "kafka" }, "unknown notify.provider"},
		{
			"pubsub without topic",
			func(c *Config) { c.Notify = NotifyConfig{Provider: "pubsub", ProjectID: "proj-1"} },
			"notify.project_id and notify.topic_id",
		},
		{"ops enabled without port", func(c *Config) { c.Ops.Port = 0 }, "ops.port"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
