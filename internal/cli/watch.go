package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/aretw0/alttab"
	httpAdapter "github.com/aretw0/alttab/internal/adapters/http"
	"github.com/aretw0/alttab/internal/adapters/i3"
	"github.com/aretw0/alttab/internal/adapters/redis"
	"github.com/aretw0/alttab/internal/config"
	"github.com/aretw0/alttab/internal/metrics"
	"github.com/aretw0/alttab/internal/presentation/tui"
	"github.com/aretw0/alttab/pkg/domain"
	"github.com/aretw0/alttab/pkg/ports"
)

// RunWatch runs the daemon for the configured mode until SIGINT or SIGTERM.
func RunWatch(opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger, err := createLogger(cfg.Log)
	if err != nil {
		return err
	}

	if !opts.Quiet && tui.IsTerminal() {
		tui.PrintBanner(os.Stdout, alttab.Version, cfg.Mode, cfg.Socket)
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	ipc := i3.NewIPC()
	gwOpts := []i3.Option{i3.WithReleaseKeys(cfg.ReleaseKeys...), i3.WithLogger(logger)}

	logger.Info("Starting Watcher", "mode", cfg.Mode, "socket", cfg.Socket, "release_keys", cfg.ReleaseKeys)
	switch cfg.Mode {
	case config.ModeWorkspaces:
		err = runDaemon[string](sigCtx, cfg, logger, i3.NewWorkspaceGateway(ipc, gwOpts...))
	default:
		err = runDaemon[i3.NodeID](sigCtx, cfg, logger, i3.NewWindowGateway(ipc, gwOpts...))
	}

	if sig := sigCtx.Signal(); sig != nil && !opts.Quiet {
		printSystemMessage("Stopped (%s).", sig)
	}
	return err
}

func runDaemon[T comparable](ctx context.Context, cfg *config.Config, logger *slog.Logger, gw ports.Gateway[T]) error {
	hooks := []domain.LifecycleHooks{createDebugHooks(logger)}
	opts := []alttab.Option{
		alttab.WithSocketPath(cfg.Socket),
		alttab.WithCapacity(cfg.Capacity),
		alttab.WithLogger(logger),
	}

	if cfg.Redis.Addr != "" {
		pub := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithChannel(cfg.Redis.Channel),
			redis.WithLogger(logger),
		)
		defer pub.Close()
		if err := pub.Ping(ctx); err != nil {
			logger.Warn("Redis unreachable, events are dropped until it recovers", "addr", cfg.Redis.Addr, "err", err)
		}
		hooks = append(hooks, pub.Hooks())
		opts = append(opts, alttab.WithService(pub.Run))
	}

	var d *alttab.Daemon[T]
	if cfg.HTTP.Addr != "" {
		m := metrics.New()
		hooks = append(hooks, m.Hooks())
		info := httpAdapter.Info{Mode: cfg.Mode, Socket: cfg.Socket}
		opts = append(opts, alttab.WithService(func(ctx context.Context) error {
			srv := &http.Server{
				Addr:    cfg.HTTP.Addr,
				Handler: httpAdapter.NewHandler(d.Engine(), info, m.Handler()),
			}
			return httpAdapter.Serve(ctx, srv, logger)
		}))
	}

	opts = append(opts, alttab.WithLifecycleHooks(domain.ComposeHooks(hooks...)))
	d = alttab.New[T](gw, opts...)
	return d.Run(ctx)
}
