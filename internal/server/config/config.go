// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/gophlock/internal/common"
	"github.com/dmitrijs2005/gophlock/internal/cryptox"
)

// Config holds runtime settings for the gophlock server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the public gRPC endpoint.
//   - EndpointAddrMetrics: bind address for /metrics and /healthz.
//   - LockoutThreshold: consecutive failed logins that lock an account.
//   - LogLevel: debug, info, warn or error.
//   - ShutdownTimeout: how long servers may drain on shutdown.
//   - Argon2: cost parameters for new password hashes.
type Config struct {
	EndpointAddrGRPC    string
	EndpointAddrMetrics string
	LockoutThreshold    int
	LogLevel            string
	ShutdownTimeout     time.Duration
	Argon2              cryptox.Params
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.EndpointAddrMetrics = ":9100"
	c.LockoutThreshold = common.DefaultLockoutThreshold
	c.LogLevel = "info"
	c.ShutdownTimeout = 5 * time.Second
	c.Argon2 = cryptox.DefaultParams()
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
