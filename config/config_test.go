package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Listener.Addr)
	assert.Equal(t, "rosterd", cfg.Monitoring.MetricsPrefix)
	assert.Equal(t, "*/5 * * * *", cfg.Monitoring.PushSchedule)
	assert.Equal(t, 500, cfg.MaxAuditEvents)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "stdout", cfg.Logging.Output)
	assert.Empty(t, cfg.SeedFile)
}

func TestLoadConfig(t *testing.T) {
	content := `
listener:
  addr: ":9090"
logging:
  level: debug
  format: text
monitoring:
  victoriametrics_url: http://vm.local:8428
  metrics_prefix: school
  push_schedule: "0 * * * *"
seed_file: /etc/rosterd/activities.yaml
max_audit_events: 100
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Listener.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "stdout", cfg.Logging.Output) // defaulted
	assert.Equal(t, "http://vm.local:8428", cfg.Monitoring.VictoriaMetricsURL)
	assert.Equal(t, "school", cfg.Monitoring.MetricsPrefix)
	assert.Equal(t, "0 * * * *", cfg.Monitoring.PushSchedule)
	assert.Equal(t, "/etc/rosterd/activities.yaml", cfg.SeedFile)
	assert.Equal(t, 100, cfg.MaxAuditEvents)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listener: ["), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate_TLSPair(t *testing.T) {
	cfg := Default()
	cfg.Listener.TLSCert = "/etc/rosterd/cert.pem"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tls_cert and tls_key")

	cfg.Listener.TLSKey = "/etc/rosterd/key.pem"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_NegativeAuditCap(t *testing.T) {
	cfg := Default()
	cfg.MaxAuditEvents = -1
	assert.Error(t, cfg.Validate())
}
