package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"endpointd/internal/config"
	"endpointd/internal/httpapi"
	"endpointd/internal/manager"
)

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	var (
		cfgPath     string
		addr        string
		cacheDir    string
		queueDepth  int
		maxWaitSec  int
		drainSec    int
		logLevel    string
		corsEnabled bool
		corsOrigins []string
	)

	root := &cobra.Command{
		Use:           "endpointd",
		Short:         "Local-mode model endpoint platform: deploy, invoke, delete",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Config{
				Addr:             addr,
				ArtifactCacheDir: cacheDir,
				MaxQueueDepth:    queueDepth,
				MaxWaitSeconds:   maxWaitSec,
				DrainSeconds:     drainSec,
				LogLevel:         logLevel,
				CORSEnabled:      corsEnabled,
				CORSOrigins:      corsOrigins,
			}
			if cfgPath != "" {
				fileCfg, err := config.Load(cfgPath)
				if err != nil {
					return err
				}
				// flags win over the file; fill only unset values
				cfg = mergeConfig(fileCfg, cfg)
			}
			return run(cfg)
		},
	}

	defaultAddr := ":8080"
	if v := os.Getenv("ENDPOINTD_ADDR"); v != "" {
		defaultAddr = v
	}
	root.Flags().StringVar(&cfgPath, "config", "", "Optional config file (.yaml/.json/.toml)")
	root.Flags().StringVar(&addr, "addr", defaultAddr, "HTTP listen address, e.g. :8080")
	root.Flags().StringVar(&cacheDir, "artifact-cache", "~/.endpointd/artifacts", "Directory for downloaded model artifacts")
	root.Flags().IntVar(&queueDepth, "max-queue-depth", 0, "Max queued invocations per endpoint (0=default)")
	root.Flags().IntVar(&maxWaitSec, "max-wait", 0, "Max seconds an invocation waits for admission (0=default)")
	root.Flags().IntVar(&drainSec, "drain-timeout", 0, "Max seconds a delete waits for in-flight work (0=default)")
	root.Flags().StringVar(&logLevel, "log-level", os.Getenv("ENDPOINTD_LOG_LEVEL"), "Log level: debug|info|warn|error")
	root.Flags().BoolVar(&corsEnabled, "cors", false, "Enable CORS")
	root.Flags().StringSliceVar(&corsOrigins, "cors-origin", nil, "Allowed CORS origins (repeatable)")
	return root
}

// mergeConfig overlays flag values on top of a file config.
func mergeConfig(file, flags config.Config) config.Config {
	out := file
	if flags.Addr != "" {
		out.Addr = flags.Addr
	}
	if flags.ArtifactCacheDir != "" {
		out.ArtifactCacheDir = flags.ArtifactCacheDir
	}
	if flags.MaxQueueDepth != 0 {
		out.MaxQueueDepth = flags.MaxQueueDepth
	}
	if flags.MaxWaitSeconds != 0 {
		out.MaxWaitSeconds = flags.MaxWaitSeconds
	}
	if flags.DrainSeconds != 0 {
		out.DrainSeconds = flags.DrainSeconds
	}
	if flags.LogLevel != "" {
		out.LogLevel = flags.LogLevel
	}
	if flags.CORSEnabled {
		out.CORSEnabled = true
	}
	if len(flags.CORSOrigins) > 0 {
		out.CORSOrigins = flags.CORSOrigins
	}
	return out
}

func run(cfg config.Config) error {
	logger := newLogger(cfg.LogLevel)
	httpapi.SetLogger(logger)
	if cfg.CORSEnabled {
		httpapi.SetCORSOptions(true, cfg.CORSOrigins,
			[]string{"GET", "POST", "DELETE"},
			[]string{"Accept", "Content-Type", "X-Log-Level"})
	}

	mgr := manager.NewWithConfig(manager.ManagerConfig{
		ArtifactCacheDir: cfg.ArtifactCacheDir,
		MaxQueueDepth:    cfg.MaxQueueDepth,
		MaxWait:          time.Duration(cfg.MaxWaitSeconds) * time.Second,
		DrainTimeout:     time.Duration(cfg.DrainSeconds) * time.Second,
	})

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	mux := httpapi.NewMux(mgr)
	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Str("artifact_cache", cfg.ArtifactCacheDir).Msg("endpointd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-stop:
	}
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	if err := mgr.Close(ctx); err != nil {
		logger.Error().Err(err).Msg("endpoint teardown error")
	}
	return nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
