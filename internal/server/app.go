// Package server assembles the account service: it builds the logger,
// metrics registry and account directory from config, then runs the gRPC
// and metrics servers until a signal or context cancellation stops them.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gophlock/internal/cryptox"
	"github.com/dmitrijs2005/gophlock/internal/logging"
	"github.com/dmitrijs2005/gophlock/internal/server/config"
	"github.com/dmitrijs2005/gophlock/internal/server/metrics"
	"github.com/dmitrijs2005/gophlock/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/gophlock/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"

	gs "github.com/dmitrijs2005/gophlock/internal/server/grpc"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	registry       *prometheus.Registry
	accountService *services.AccountService
}

// NewApp logs to stdout.
func NewApp(c *config.Config) (*App, error) {
	return newApp(c, os.Stdout)
}

func newApp(c *config.Config, out io.Writer) (*App, error) {

	logger, err := logging.NewJSONLogger(out, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	registry := metrics.NewRegistry()
	m := metrics.NewMetrics(registry)

	as := services.NewAccountService(
		accounts.NewInMemoryRepository(),
		cryptox.NewHasher(c.Argon2),
		c,
		logger,
		m,
	)

	return &App{config: c, logger: logger, registry: registry, accountService: as}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Signal received", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.accountService)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) startMetricsServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := metrics.NewHTTPServer(app.config.EndpointAddrMetrics, app.registry, app.logger, app.config.ShutdownTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until both servers have stopped. A failure of either server
// stops the other.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "lockout_threshold", app.accountService.LockoutThreshold())

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startMetricsServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
}
