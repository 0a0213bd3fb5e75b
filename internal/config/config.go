// Package config loads dnsdig's configuration with the following priority
// (highest to lowest):
//  1. Command-line flags (not handled here, see cmd/dnsdig/main.go)
//  2. Environment variables (DNSDIG_* prefix)
//  3. YAML config file (if specified with --config)
//  4. Hardcoded defaults
//
// Environment variables are mapped from DNSDIG_CATEGORY_SETTING format,
// e.g., DNSDIG_RESOLVER_SERVER maps to resolver.server in YAML.
//
// All configuration is validated during Load() to ensure correctness early.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// initConfig sets up the config loader with defaults, env binding, and config file.
func initConfig(configPath string) (*viper.Viper, error) {
	v := viper.New()

	setDefaults(v)

	// Uses DNSDIG_ prefix: DNSDIG_RESOLVER_SERVER -> resolver.server
	v.SetEnvPrefix("DNSDIG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return v, nil
}

// setDefaults configures all default values.
func setDefaults(v *viper.Viper) {
	// Resolver defaults
	v.SetDefault("resolver.server", "")
	v.SetDefault("resolver.port", 0)
	v.SetDefault("resolver.timeout", "5s")
	v.SetDefault("resolver.retries", 2)
	v.SetDefault("resolver.mode", "udp")
	v.SetDefault("resolver.edns_bufsize", 1232)
	v.SetDefault("resolver.doh_path", "/dns-query")

	// Header flag / output defaults
	v.SetDefault("defaults.recursion_desired", true)
	v.SetDefault("defaults.dnssec_ok", false)
	v.SetDefault("defaults.ignore_tc", false)
	v.SetDefault("defaults.format", "text")

	// Logging defaults
	v.SetDefault("logging.level", "INFO")
	v.SetDefault("logging.structured", false)
	v.SetDefault("logging.structured_format", "json")
	v.SetDefault("logging.include_pid", false)
	v.SetDefault("logging.extra_fields", map[string]string{})

	// Trace defaults
	v.SetDefault("trace.max_hops", 30)
}

// loadFromSource loads configuration from file and environment.
func loadFromSource(configPath string) (*Config, error) {
	v, err := initConfig(configPath)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}

	loadResolverConfig(v, cfg)
	loadDefaultsConfig(v, cfg)
	loadLoggingConfig(v, cfg)
	loadTraceConfig(v, cfg)

	if err := normalizeConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadResolverConfig(v *viper.Viper, cfg *Config) {
	cfg.Resolver.Server = v.GetString("resolver.server")
	cfg.Resolver.Port = v.GetInt("resolver.port")
	cfg.Resolver.Timeout = v.GetString("resolver.timeout")
	cfg.Resolver.Retries = v.GetInt("resolver.retries")
	cfg.Resolver.Mode = strings.ToLower(v.GetString("resolver.mode"))
	cfg.Resolver.EDNSUDPSize = v.GetInt("resolver.edns_bufsize")
	cfg.Resolver.DoHPath = v.GetString("resolver.doh_path")
}

func loadDefaultsConfig(v *viper.Viper, cfg *Config) {
	cfg.Defaults.RecursionDesired = v.GetBool("defaults.recursion_desired")
	cfg.Defaults.DNSSECOK = v.GetBool("defaults.dnssec_ok")
	cfg.Defaults.IgnoreTC = v.GetBool("defaults.ignore_tc")
	cfg.Defaults.Format = strings.ToLower(v.GetString("defaults.format"))
}

func loadLoggingConfig(v *viper.Viper, cfg *Config) {
	cfg.Logging.Level = strings.ToUpper(v.GetString("logging.level"))
	cfg.Logging.Structured = v.GetBool("logging.structured")
	cfg.Logging.StructuredFormat = v.GetString("logging.structured_format")
	cfg.Logging.IncludePID = v.GetBool("logging.include_pid")
	cfg.Logging.ExtraFields = v.GetStringMapString("logging.extra_fields")
}

func loadTraceConfig(v *viper.Viper, cfg *Config) {
	cfg.Trace.MaxHops = v.GetInt("trace.max_hops")
}

// normalizeConfig validates and normalizes the configuration.
func normalizeConfig(cfg *Config) error {
	if cfg.Resolver.Port < 0 || cfg.Resolver.Port > 65535 {
		return errors.New("resolver.port must be 0..65535")
	}
	if cfg.Resolver.Retries < 0 {
		return errors.New("resolver.retries must be non-negative")
	}
	switch cfg.Resolver.Mode {
	case "udp", "tcp", "dot", "doh":
	default:
		return fmt.Errorf("resolver.mode must be one of udp, tcp, dot, doh: got %q", cfg.Resolver.Mode)
	}
	if cfg.Resolver.EDNSUDPSize != 0 && cfg.Resolver.EDNSUDPSize < 512 {
		return errors.New("resolver.edns_bufsize must be 0 or >= 512")
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	if cfg.Logging.StructuredFormat == "" {
		cfg.Logging.StructuredFormat = "json"
	}
	if cfg.Logging.ExtraFields == nil {
		cfg.Logging.ExtraFields = map[string]string{}
	}

	switch cfg.Defaults.Format {
	case "", "text":
		cfg.Defaults.Format = "text"
	case "json", "short":
	default:
		return fmt.Errorf("defaults.format must be one of text, json, short: got %q", cfg.Defaults.Format)
	}

	if cfg.Trace.MaxHops <= 0 {
		cfg.Trace.MaxHops = 30
	}

	return nil
}
