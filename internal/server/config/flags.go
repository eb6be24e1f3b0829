package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/gophlock/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-m string   metrics/health bind address (e.g., ":9100")
//	-n int      failed logins before an account locks
//	-l string   log level
//	-s int      shutdown timeout, seconds
//
// Unknown arguments are filtered out with flagx.FilterArgs first, so the
// -c/-config flag handled by parseJson does not break parsing.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-m", "-n", "-l", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run gRPC server")
	fs.StringVar(&config.EndpointAddrMetrics, "m", config.EndpointAddrMetrics, "address and port to serve metrics")
	fs.IntVar(&config.LockoutThreshold, "n", config.LockoutThreshold, "failed login attempts before lockout")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level (debug, info, warn, error)")
	shutdownTimeout := fs.Int("s", int(config.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.ShutdownTimeout = time.Duration(*shutdownTimeout) * time.Second
}
