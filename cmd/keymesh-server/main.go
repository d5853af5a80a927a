// Package main provides the entry point for keymesh-server.
//
// keymesh-server is a network-accessible in-memory key-value store
// with a Redis-compatible command vocabulary. Every key is backed by
// its own actor, so operations on distinct keys run in parallel while
// operations on one key stay serialized without locks.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/yndnr/keymesh-go/internal/core/node"
	"github.com/yndnr/keymesh-go/internal/infra/buildinfo"
	"github.com/yndnr/keymesh-go/internal/infra/confloader"
	"github.com/yndnr/keymesh-go/internal/infra/shutdown"
	"github.com/yndnr/keymesh-go/internal/server/adminserver"
	"github.com/yndnr/keymesh-go/internal/server/config"
	"github.com/yndnr/keymesh-go/internal/server/tcpserver"
	"github.com/yndnr/keymesh-go/internal/telemetry/logger"
	"github.com/yndnr/keymesh-go/internal/telemetry/metric"
	"github.com/yndnr/keymesh-go/pkg/actor"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("keymesh-server %s\n", buildinfo.String())
		return nil
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	log.Info("starting keymesh-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"config", *configFile)

	// Actor runtime and keyspace.
	system := actor.NewSystem(actor.WithMailboxDepth(cfg.Actor.MailboxDepth))
	space := node.NewSpace(system, node.WithAskTimeout(cfg.Actor.AskTimeout))

	metrics := metric.NewRegistry(system.Count)

	// TCP front end.
	tcpSrv := tcpserver.New(&tcpserver.Config{
		Addr:           cfg.Server.TCP.Addr,
		ReadTimeout:    cfg.Server.TCP.ReadTimeout,
		WriteTimeout:   cfg.Server.TCP.WriteTimeout,
		IdleTimeout:    cfg.Server.TCP.IdleTimeout,
		RateLimit:      cfg.Server.TCP.RateLimit,
		SessionTimeout: cfg.Actor.SessionTimeout,
	}, space, log, metrics)

	ctx := context.Background()
	if err := tcpSrv.Start(ctx); err != nil {
		return fmt.Errorf("start tcp server: %w", err)
	}

	// Admin endpoint (health, metrics), if enabled.
	var adminSrv *adminserver.Server
	if cfg.Server.Admin.Enabled {
		adminSrv = adminserver.New(&adminserver.Config{Addr: cfg.Server.Admin.Addr}, log, metrics, system.Count)
		if err := adminSrv.Start(ctx); err != nil {
			return fmt.Errorf("start admin server: %w", err)
		}
	}

	// Reload the log level when the config file changes.
	var watcher *confloader.Watcher
	if *configFile != "" {
		watcher, err = startConfigWatcher(*configFile, log)
		if err != nil {
			log.Warn("config watcher disabled", "error", err)
			watcher = nil
		}
	}

	// Shutdown hooks run in reverse order of startup.
	shutdownHandler := shutdown.NewHandler(30 * time.Second)

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down actor system")
		return system.Shutdown(ctx)
	})
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down tcp server")
		return tcpSrv.Shutdown(ctx)
	})
	if adminSrv != nil {
		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			log.Info("shutting down admin server")
			return adminSrv.Shutdown(ctx)
		})
	}
	if watcher != nil {
		shutdownHandler.OnShutdown(func(_ context.Context) error {
			return watcher.Stop()
		})
	}

	log.Info("server started, press Ctrl+C to stop", "address", cfg.Server.TCP.Addr)
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig loads configuration from file and environment.
func loadConfig(configFile string) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initLogger initializes the structured logger and installs it as the
// process default.
func initLogger(cfg *config.ServerConfig) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return nil, err
	}

	logger.SetDefault(log)
	return log, nil
}

// startConfigWatcher re-reads the config file on change and applies
// the settings that can take effect at runtime. Today that is the log
// level; endpoint changes still need a restart.
func startConfigWatcher(configFile string, log logger.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(configFile); err != nil {
		_ = watcher.Stop()
		return nil, err
	}

	watcher.OnChange(func(_ string) {
		cfg, err := loadConfig(configFile)
		if err != nil {
			log.Warn("config reload failed", "error", err)
			return
		}
		if cfg.Log.Level != logger.GetLevel() {
			logger.SetLevel(cfg.Log.Level)
			log.Info("log level changed", "level", cfg.Log.Level)
		}
	})

	watcher.StartAsync()
	return watcher, nil
}
