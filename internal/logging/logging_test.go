package logging

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{
			name: "default config",
			cfg:  Config{Level: "INFO"},
		},
		{
			name: "debug level",
			cfg:  Config{Level: "DEBUG"},
		},
		{
			name: "structured JSON",
			cfg:  Config{Level: "INFO", Structured: true, StructuredFormat: "json"},
		},
		{
			name: "structured text",
			cfg:  Config{Level: "INFO", Structured: true, StructuredFormat: "keyvalue"},
		},
		{
			name: "with extra fields",
			cfg: Config{
				Level:       "INFO",
				ExtraFields: map[string]string{"service": "test", "env": "test"},
			},
		},
		{
			name: "with PID",
			cfg:  Config{Level: "INFO", IncludePID: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := Configure(tt.cfg)
			require.NotNil(t, logger)
		})
	}
}

func TestNewRunIDIsUnique(t *testing.T) {
	a := NewRunID()
	b := NewRunID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestConfigureMintsRunIDWhenAbsent(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	stderr := os.Stderr
	os.Stderr = w
	logger := Configure(Config{Level: "INFO"})
	os.Stderr = stderr
	require.NotNil(t, logger)

	logger.Info("probe")
	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), "run_id=")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"DEBUG", "DEBUG"},
		{"debug", "DEBUG"},
		{"INFO", "INFO"},
		{"info", "INFO"},
		{"WARN", "WARN"},
		{"warn", "WARN"},
		{"WARNING", "WARN"},
		{"ERROR", "ERROR"},
		{"error", "ERROR"},
		{"invalid", "INFO"}, // default
		{"", "INFO"},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level := parseLevel(tt.input)
			assert.Equal(t, tt.want, level.String())
		})
	}
}
