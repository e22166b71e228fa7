package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/yndnr/yggauth-go/internal/core/service"
	"github.com/yndnr/yggauth-go/internal/infra/buildinfo"
	"github.com/yndnr/yggauth-go/internal/infra/confloader"
	"github.com/yndnr/yggauth-go/internal/infra/shutdown"
	"github.com/yndnr/yggauth-go/internal/infra/tlsroots"
	"github.com/yndnr/yggauth-go/internal/server/config"
	"github.com/yndnr/yggauth-go/internal/server/httpserver"
	"github.com/yndnr/yggauth-go/internal/server/httpserver/handler"
	"github.com/yndnr/yggauth-go/internal/storage"
	"github.com/yndnr/yggauth-go/internal/storage/memory"
	"github.com/yndnr/yggauth-go/internal/telemetry/logger"
	"github.com/yndnr/yggauth-go/internal/telemetry/metric"
	"github.com/yndnr/yggauth-go/pkg/password"
	"github.com/yndnr/yggauth-go/pkg/token"
)

const appName = "yggauth-server"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    appName,
		Usage:   "Mock Yggdrasil authentication server",
		Version: buildinfo.String(),
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run the server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						EnvVars: []string{"YGGAUTH_CONFIG"},
					},
					&cli.StringFlag{
						Name:  "addr",
						Usage: "HTTP listen address (overrides server.http.addr)",
					},
					&cli.StringFlag{
						Name:  "log-level",
						Usage: "Log level: debug, info, warn, error",
					},
				},
				Action: func(c *cli.Context) error {
					return run(c.Context, c.String("config"), map[string]any{
						"server.http.addr": c.String("addr"),
						"log.level":        c.String("log-level"),
					})
				},
			},
			{
				Name:  "version",
				Usage: "Show version information",
				Action: func(c *cli.Context) error {
					fmt.Fprintf(c.App.Writer, "%s %s\n", appName, buildinfo.String())
					return nil
				},
			},
		},
	}
}

func run(ctx context.Context, configFile string, overrides map[string]any) error {
	cfg, err := loadConfig(configFile, overrides)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, slogLogger, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	info := buildinfo.Get()
	log.Info("starting "+appName,
		"version", info.Version,
		"commit", info.Commit,
		"config", configFile)
	log.Debug("effective configuration", "config", config.Sanitize(cfg))

	engine, err := storage.Open(ctx, storage.Config{
		DataDir: cfg.Storage.DataDir,
		Badger: storage.BadgerOptions{
			GCInterval:   cfg.Storage.GCInterval,
			DiscardRatio: storage.DefaultBadgerOptions("").DiscardRatio,
			SyncWrites:   cfg.Storage.SyncWrites,
		},
		SessionShards: cfg.Session.Shards,
		Logger:        slogLogger,
	})
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	var registry *metric.Registry
	if cfg.Telemetry.MetricsEnabled {
		registry = metric.NewRegistry()
		registry.MustRegister(metric.NewCollector(engine.Store()))
		if kv := engine.KV(); kv != nil {
			registry.MustRegister(kv.Collector())
		}
	}

	services := initServices(cfg, engine.Store(), registry)

	if cfg.Seed.Enabled {
		created, err := services.Accounts.Seed(ctx, &service.SeedRequest{
			Username:    cfg.Seed.Username,
			Email:       cfg.Seed.Email,
			Password:    cfg.Seed.Password,
			ProfileName: cfg.Seed.ProfileName,
		})
		if err != nil {
			_ = engine.Close()
			return fmt.Errorf("seed account: %w", err)
		}
		log.Info("seed account checked", "username", cfg.Seed.Username, "created", created)
	}

	httpOpts := httpserver.Options{
		Addr:         cfg.Server.HTTP.Addr,
		TLSCertFile:  cfg.Server.HTTP.TLSCertFile,
		TLSKeyFile:   cfg.Server.HTTP.TLSKeyFile,
		ReadTimeout:  cfg.Server.HTTP.ReadTimeout,
		WriteTimeout: cfg.Server.HTTP.WriteTimeout,
		IdleTimeout:  cfg.Server.HTTP.IdleTimeout,
	}
	var keyPair *tlsroots.KeyPair
	if httpOpts.TLSCertFile != "" {
		keyPair, err = tlsroots.LoadKeyPair(httpOpts.TLSCertFile, httpOpts.TLSKeyFile, tlsroots.WithLogger(slogLogger))
		if err != nil {
			_ = engine.Close()
			return fmt.Errorf("load tls key pair: %w", err)
		}
		httpOpts.TLSConfig = keyPair.ServerConfig()
	}
	httpServer := httpserver.New(httpOpts, newRouter(cfg, engine.Store(), services, registry, slogLogger))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		log.Info("HTTP server listening", "addr", cfg.Server.HTTP.Addr, "tls", httpServer.TLS())
		if err := httpServer.ListenAndServe(); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return services.Sweeper.Run(gctx)
	})

	var watcher *confloader.Watcher
	if configFile != "" || keyPair != nil {
		watcher, err = watchFiles(configFile, overrides, keyPair, slogLogger)
		if err != nil {
			log.Warn("file hot reload disabled", "error", err)
		} else {
			g.Go(func() error { return watcher.Run(gctx) })
		}
	}

	// Hooks run in reverse registration order.
	sh := shutdown.NewHandler(cfg.Server.HTTP.ShutdownTimeout, shutdown.WithLogger(slogLogger))
	sh.OnShutdown("storage", func(context.Context) error {
		return engine.Close()
	})
	sh.OnShutdown("workers", func(context.Context) error {
		cancel()
		if watcher != nil {
			_ = watcher.Stop()
		}
		return g.Wait()
	})
	sh.OnShutdown("http", func(ctx context.Context) error {
		return httpServer.Shutdown(ctx)
	})

	log.Info("server started, press Ctrl+C to stop")
	if err := sh.Wait(gctx); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig layers defaults, file, environment and flag overrides, then
// verifies the result.
func loadConfig(configFile string, overrides map[string]any) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{confloader.WithOverrides(overrides)}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	if err := confloader.NewLoader(opts...).Load(cfg); err != nil {
		return nil, err
	}
	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// initLogger installs the process-wide logger.
func initLogger(cfg *config.ServerConfig) (logger.Logger, *slog.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		Output:    os.Stdout,
		AddSource: cfg.Log.AddSource,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.SetDefault(log)
	return log, logger.Slog(log), nil
}

// Services holds all initialized services.
type Services struct {
	Auth          *service.AuthService
	Accounts      *service.AccountService
	Textures      *service.TextureService
	SessionServer *service.SessionServerService
	Sweeper       *service.Sweeper
}

// initServices wires the domain services over store.
func initServices(cfg *config.ServerConfig, store *memory.Store, registry *metric.Registry) *Services {
	repos := service.Repositories{
		Accounts: store.Accounts,
		Profiles: store.Profiles,
		Sessions: store.Sessions,
		Textures: store.Textures,
	}
	hasher := password.NewHasher(cfg.Auth.BcryptCost)
	issuer := token.Issuer{}

	sessionServer := service.NewSessionServerService(repos, &service.SessionServerConfig{
		JoinTTL:         cfg.Session.JoinTTL,
		JanitorInterval: service.DefaultSessionServerConfig().JanitorInterval,
		DefaultSkinURL:  cfg.Texture.DefaultSkinURL,
	})

	sweeperCfg := &service.SweeperConfig{
		Interval: cfg.Session.SweepInterval,
		Also:     []func(){sessionServer.PurgeTickets},
	}
	if registry != nil {
		sweeperCfg.OnSweep = func(removed, _ int) { registry.AddSwept(removed) }
	}

	return &Services{
		Auth: service.NewAuthService(repos, issuer, hasher, &service.AuthServiceConfig{
			TokenTTL: cfg.Auth.TokenTTL,
		}),
		Accounts:      service.NewAccountService(repos, issuer, hasher),
		Textures:      service.NewTextureService(repos),
		SessionServer: sessionServer,
		Sweeper:       service.NewSweeper(store.Sessions, sweeperCfg),
	}
}

// newRouter builds the handler and wraps it in the middleware chain.
func newRouter(cfg *config.ServerConfig, store *memory.Store, svc *Services, registry *metric.Registry, log *slog.Logger) http.Handler {
	hcfg := &handler.Config{
		Auth:          svc.Auth,
		Accounts:      svc.Accounts,
		Textures:      svc.Textures,
		SessionServer: svc.SessionServer,
		Status:        store,
		Sweeper:       svc.Sweeper,
		AdminToken:    cfg.Server.AdminToken,
		Logger:        log,
	}
	rcfg := &httpserver.RouterConfig{
		Logger:             log,
		CORSAllowedOrigins: cfg.Server.CORSOrigins,
		MaxBodyBytes:       cfg.Server.HTTP.MaxBodyBytes,
		EnableAudit:        true,
	}
	if registry != nil {
		hcfg.Metrics = registry.Handler()
		hcfg.Observer = registry
		rcfg.Metrics = registry
	}
	rcfg.Handler = handler.New(hcfg)
	return httpserver.NewRouter(rcfg)
}

// watchFiles starts one watcher for the configuration file and the TLS
// key pair, either of which may be absent.
func watchFiles(configFile string, overrides map[string]any, keyPair *tlsroots.KeyPair, log *slog.Logger) (*confloader.Watcher, error) {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if configFile != "" {
		if err := watchLogLevel(w, configFile, overrides, log); err != nil {
			_ = w.Stop()
			return nil, err
		}
	}
	if keyPair != nil {
		if err := watchKeyPair(w, keyPair, log); err != nil {
			_ = w.Stop()
			return nil, err
		}
	}
	return w, nil
}

// watchLogLevel re-reads configFile on change and applies log.level.
func watchLogLevel(w *confloader.Watcher, configFile string, overrides map[string]any, log *slog.Logger) error {
	return w.Watch(configFile, func(path string) {
		cfg, err := loadConfig(path, overrides)
		if err != nil {
			log.Warn("ignoring invalid configuration change", "file", path, "error", err)
			return
		}
		if cfg.Log.Level != logger.GetLevel() {
			logger.SetLevel(cfg.Log.Level)
			log.Info("log level changed", "level", cfg.Log.Level)
		}
	})
}

// watchKeyPair reloads the serving certificate when either file changes.
func watchKeyPair(w *confloader.Watcher, keyPair *tlsroots.KeyPair, log *slog.Logger) error {
	reload := func(path string) {
		if err := keyPair.Reload(); err != nil {
			log.Error("certificate reload failed", "file", path, "error", err)
		}
	}
	certFile, keyFile := keyPair.Files()
	if err := w.Watch(certFile, reload); err != nil {
		return err
	}
	return w.Watch(keyFile, reload)
}
