// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the service access token goes to
// the OS keychain.
package config

import (
	"encoding/json"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"wstl/notebook/internal/xdg"
)

// Environment variables honored by the notebook tools. The names predate this
// CLI and are shared with the notebook extension deployments.
const (
	EnvGRPCHost    = "NOTEBOOK_GRPC_HOST"
	EnvGRPCPort    = "NOTEBOOK_GRPC_PORT"
	EnvGRPCTimeout = "NOTEBOOK_GRPC_TIMEOUT"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	GRPCHost       string `json:"grpc_host"`
	GRPCPort       string `json:"grpc_port"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	UseTLS         bool   `json:"use_tls"`
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; missing file returns defaults. Environment
// variables override whatever the file holds.
func Load() (Config, error) {
	c := Config{
		GRPCHost:       "localhost",
		GRPCPort:       "50051",
		TimeoutSeconds: 10,
	}
	p, err := path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &c); err != nil {
			return c, err
		}
	case errors.Is(err, os.ErrNotExist):
		// keep defaults
	default:
		return c, err
	}
	c.applyEnv()
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvGRPCHost); v != "" {
		c.GRPCHost = v
	}
	if v := os.Getenv(EnvGRPCPort); v != "" {
		c.GRPCPort = v
	}
	if v := os.Getenv(EnvGRPCTimeout); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.TimeoutSeconds = secs
		}
	}
}

// Target returns the host:port the whistle service listens on.
func (c Config) Target() string {
	return net.JoinHostPort(c.GRPCHost, c.GRPCPort)
}

// Timeout returns the per-RPC deadline.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}
