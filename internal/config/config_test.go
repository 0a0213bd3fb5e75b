package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfigPath(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		envValue string
		want     string
	}{
		{"flag takes precedence", "/path/from/flag", "/path/from/env", "/path/from/flag"},
		{"env when no flag", "", "/path/from/env", "/path/from/env"},
		{"empty when neither", "", "", ""},
		{"whitespace flag", "  ", "/path/from/env", "/path/from/env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DNSDIG_CONFIG", tt.envValue)
			got := ResolveConfigPath(tt.flag)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Resolver.Server)
	assert.Equal(t, "5s", cfg.Resolver.Timeout)
	assert.Equal(t, 2, cfg.Resolver.Retries)
	assert.Equal(t, "udp", cfg.Resolver.Mode)
	assert.Equal(t, 1232, cfg.Resolver.EDNSUDPSize)
	assert.True(t, cfg.Defaults.RecursionDesired)
	assert.Equal(t, "text", cfg.Defaults.Format)
	assert.Equal(t, 30, cfg.Trace.MaxHops)
}

func TestLoadFromFile(t *testing.T) {
	content := `
resolver:
  server: "1.1.1.1"
  timeout: "2s"
  retries: 0
  mode: "tcp"
  edns_bufsize: 4096

defaults:
  dnssec_ok: true
  format: "json"

logging:
  level: "DEBUG"
  structured: true
  structured_format: "json"
`
	dir := t.TempDir()
	path := filepath.Join(dir, "test-config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "1.1.1.1", cfg.Resolver.Server)
	assert.Equal(t, "2s", cfg.Resolver.Timeout)
	assert.Equal(t, 0, cfg.Resolver.Retries)
	assert.Equal(t, "tcp", cfg.Resolver.Mode)
	assert.Equal(t, 4096, cfg.Resolver.EDNSUDPSize)
	assert.True(t, cfg.Defaults.DNSSECOK)
	assert.Equal(t, "json", cfg.Defaults.Format)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Structured)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path/to/config.yaml")
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("resolver:\n  retries: [invalid"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestNormalizeInvalidMode(t *testing.T) {
	content := `
resolver:
  mode: "quic"
`
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestNormalizeInvalidEDNSSize(t *testing.T) {
	content := `
resolver:
  edns_bufsize: 100
`
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestNormalizeInvalidFormat(t *testing.T) {
	content := `
defaults:
  format: "xml"
`
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DNSDIG_RESOLVER_SERVER", "9.9.9.9")
	t.Setenv("DNSDIG_RESOLVER_MODE", "doh")
	t.Setenv("DNSDIG_RESOLVER_RETRIES", "5")
	t.Setenv("DNSDIG_DEFAULTS_DNSSEC_OK", "true")
	t.Setenv("DNSDIG_LOGGING_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9.9.9.9", cfg.Resolver.Server)
	assert.Equal(t, "doh", cfg.Resolver.Mode)
	assert.Equal(t, 5, cfg.Resolver.Retries)
	assert.True(t, cfg.Defaults.DNSSECOK)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
}
