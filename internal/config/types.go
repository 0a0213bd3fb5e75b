// Package config provides configuration loading for dnsdig using Viper.
// Configuration is loaded from a YAML file with automatic environment
// variable binding.
//
// Environment variables use the DNSDIG_ prefix and underscore-separated
// keys:
//   - DNSDIG_RESOLVER_SERVER -> resolver.server
//   - DNSDIG_RESOLVER_TIMEOUT -> resolver.timeout
//   - DNSDIG_LOGGING_LEVEL -> logging.level
package config

import (
	"os"
	"strings"
)

// ResolverConfig holds the resolver settings loaded from the config file and
// environment. cmd/dnsdig applies only Server (when --server is not given);
// Port, Timeout, Retries, Mode, EDNSUDPSize and DoHPath are loaded and
// validated but the command-line flags and their defaults are used instead.
type ResolverConfig struct {
	Server      string `yaml:"server"       mapstructure:"server"`
	Port        int    `yaml:"port"         mapstructure:"port"`
	Timeout     string `yaml:"timeout"      mapstructure:"timeout"`
	Retries     int    `yaml:"retries"      mapstructure:"retries"`
	Mode        string `yaml:"mode"         mapstructure:"mode"` // udp, tcp, dot, doh
	EDNSUDPSize int    `yaml:"edns_bufsize" mapstructure:"edns_bufsize"`
	DoHPath     string `yaml:"doh_path"     mapstructure:"doh_path"`
}

// DefaultsConfig holds the header-flag and output defaults applied when the
// corresponding flag is not given on the command line.
type DefaultsConfig struct {
	RecursionDesired bool   `yaml:"recursion_desired" mapstructure:"recursion_desired"`
	DNSSECOK         bool   `yaml:"dnssec_ok"         mapstructure:"dnssec_ok"`
	IgnoreTC         bool   `yaml:"ignore_tc"         mapstructure:"ignore_tc"`
	Format           string `yaml:"format"            mapstructure:"format"` // text, json, short
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level            string            `yaml:"level"             mapstructure:"level"             json:"level"`
	Structured       bool              `yaml:"structured"        mapstructure:"structured"        json:"structured"`
	StructuredFormat string            `yaml:"structured_format" mapstructure:"structured_format" json:"structured_format"`
	IncludePID       bool              `yaml:"include_pid"       mapstructure:"include_pid"       json:"include_pid"`
	ExtraFields      map[string]string `yaml:"extra_fields"      mapstructure:"extra_fields"      json:"extra_fields,omitempty"`
}

// TraceConfig controls the iterative resolution walk (--trace).
type TraceConfig struct {
	MaxHops int `yaml:"max_hops" mapstructure:"max_hops"`
}

// Config is the root configuration structure.
type Config struct {
	Resolver ResolverConfig `yaml:"resolver" mapstructure:"resolver"`
	Defaults DefaultsConfig `yaml:"defaults" mapstructure:"defaults"`
	Logging  LoggingConfig  `yaml:"logging"  mapstructure:"logging"`
	Trace    TraceConfig    `yaml:"trace"    mapstructure:"trace"`
}

// ResolveConfigPath determines the config file path from flag or
// environment.
func ResolveConfigPath(flagValue string) string {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue
	}
	if v := strings.TrimSpace(os.Getenv("DNSDIG_CONFIG")); v != "" {
		return v
	}
	return ""
}

// Load loads configuration from a YAML file with environment variable
// overrides. This is the main entry point for loading configuration.
//
// Configuration priority (highest to lowest):
//  1. Environment variables (DNSDIG_*)
//  2. Config file values
//  3. Default values
func Load(path string) (*Config, error) {
	return loadFromSource(path)
}
