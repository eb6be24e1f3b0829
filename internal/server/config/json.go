package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophlock/internal/flagx"
	"github.com/dmitrijs2005/gophlock/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration. Pointer
// fields distinguish "absent" from zero so a partial file only overrides
// what it names.
type JsonConfig struct {
	EndpointAddrGRPC    *string         `json:"endpoint_addr_grpc"`
	EndpointAddrMetrics *string         `json:"endpoint_addr_metrics"`
	LockoutThreshold    *int            `json:"lockout_threshold"`
	LogLevel            *string         `json:"log_level"`
	ShutdownTimeout     *timex.Duration `json:"shutdown_timeout"`
	Argon2Time          *uint32         `json:"argon2_time"`
	Argon2Memory        *uint32         `json:"argon2_memory"`
	Argon2Threads       *uint8          `json:"argon2_threads"`
}

// parseJson overlays config with the JSON file named by -c/-config in args.
// Nothing happens without the flag. An unreadable or invalid file panics.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigFile(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var c JsonConfig
	if err := json.Unmarshal(data, &c); err != nil {
		panic(err)
	}

	if c.EndpointAddrGRPC != nil {
		config.EndpointAddrGRPC = *c.EndpointAddrGRPC
	}
	if c.EndpointAddrMetrics != nil {
		config.EndpointAddrMetrics = *c.EndpointAddrMetrics
	}
	if c.LockoutThreshold != nil {
		config.LockoutThreshold = *c.LockoutThreshold
	}
	if c.LogLevel != nil {
		config.LogLevel = *c.LogLevel
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.Argon2Time != nil {
		config.Argon2.Time = *c.Argon2Time
	}
	if c.Argon2Memory != nil {
		config.Argon2.Memory = *c.Argon2Memory
	}
	if c.Argon2Threads != nil {
		config.Argon2.Threads = *c.Argon2Threads
	}
}
