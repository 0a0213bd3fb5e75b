// Package sysresolv reads the platform's default resolver configuration
// (/etc/resolv.conf on Unix) so a query with no explicit --server can fall
// back to whatever nameserver the host is already configured to use.
package sysresolv

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DefaultResolvConfPath is the conventional location consulted when the
// caller does not override it (tests pass an alternate path).
const DefaultResolvConfPath = "/etc/resolv.conf"

// Config is the subset of resolv.conf(5) this codebase understands:
// nameservers, search domains, and the "ndots" ndots option.
type Config struct {
	Nameservers []string
	Search      []string
	Ndots       int
}

// Read parses resolv.conf at path. When the file does not exist it returns
// a Config with no nameservers (Ndots 1) and no error, so FirstNameserver
// then reports ok=false.
func Read(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{Ndots: 1}, nil
		}
		return Config{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	cfg := Config{Ndots: 1}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "nameserver":
			cfg.Nameservers = append(cfg.Nameservers, fields[1])
		case "search", "domain":
			cfg.Search = append(cfg.Search, fields[1:]...)
		case "options":
			for _, opt := range fields[1:] {
				if n, ok := strings.CutPrefix(opt, "ndots:"); ok {
					fmt.Sscanf(n, "%d", &cfg.Ndots)
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Config{}, fmt.Errorf("scan %s: %w", path, err)
	}
	return cfg, nil
}

// Default reads the platform's default resolver configuration.
func Default() (Config, error) { return Read(DefaultResolvConfPath) }

// FirstNameserver returns the first configured nameserver, or ok=false if
// none were found.
func (c Config) FirstNameserver() (string, bool) {
	if len(c.Nameservers) == 0 {
		return "", false
	}
	return c.Nameservers[0], true
}
