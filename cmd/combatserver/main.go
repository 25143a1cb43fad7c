package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/akorchagin/mobd/internal/bestiary"
	"github.com/akorchagin/mobd/internal/combat"
	"github.com/akorchagin/mobd/internal/config"
	"github.com/akorchagin/mobd/internal/db"
	"github.com/akorchagin/mobd/internal/feed"
	"github.com/akorchagin/mobd/internal/journal"
	"github.com/akorchagin/mobd/internal/spawn"
	"github.com/akorchagin/mobd/internal/world"
)

const defaultConfigPath = "config/combatserver.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := defaultConfigPath
	if p := os.Getenv("MOBD_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("combat server starting", "log_level", cfg.LogLevel)

	// Bestiary is loaded exactly once; any ConfigError aborts startup.
	var catalog *bestiary.Catalog
	if cfg.BestiaryPath != "" {
		catalog, err = bestiary.Load(cfg.BestiaryPath)
	} else {
		catalog, err = bestiary.LoadDefault()
	}
	if err != nil {
		return fmt.Errorf("loading bestiary: %w", err)
	}

	targetPolicy, err := combat.ParseTargetPolicy(cfg.TargetPolicy)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	attackPolicy, err := combat.ParseAttackPolicy(cfg.AttackPolicy)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	weaponKind, err := combat.ParseWeaponKind(cfg.WeaponKind)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	worldInstance := world.New()
	if err := spawn.Populate(worldInstance, catalog, cfg.Spawns); err != nil {
		return fmt.Errorf("populating world: %w", err)
	}
	slog.Info("world populated", "agents", worldInstance.Count())

	director := combat.NewDirector(
		worldInstance,
		combat.StaticDurations(cfg.ClipDurations),
		combat.Config{
			WeaponRange:  cfg.WeaponRange,
			Weapon:       weaponKind,
			TargetPolicy: targetPolicy,
			AttackPolicy: attackPolicy,
		},
	)

	g, gctx := errgroup.WithContext(ctx)

	if cfg.JournalDir != "" {
		journalWriter := journal.NewWriter(cfg.JournalDir, "combat")
		defer journalWriter.Close()
		director.AddSink(journalWriter)
		slog.Info("event journal enabled", "dir", cfg.JournalDir)
	}

	if cfg.FeedBind != "" {
		feedServer := feed.NewServer(cfg.FeedBind)
		director.AddSink(feedServer)
		g.Go(func() error {
			if err := feedServer.Run(gctx); err != nil {
				return fmt.Errorf("event feed: %w", err)
			}
			return nil
		})
	}

	if cfg.Database.Enabled {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database connected, migrations applied")

		killSink := db.NewKillLogSink(
			db.NewKillLogRepository(database.Pool()),
			catalog.Fingerprint(),
			0,
		)
		director.AddSink(killSink)
		g.Go(func() error {
			if err := killSink.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("kill log sink: %w", err)
			}
			return nil
		})
	}

	if cfg.WatchBestiary && cfg.BestiaryPath != "" {
		bestiaryPath := cfg.BestiaryPath
		g.Go(func() error {
			if err := bestiary.WatchFile(gctx, bestiaryPath); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("bestiary watcher: %w", err)
			}
			return nil
		})
	}

	runner := combat.NewRunner(director, time.Duration(cfg.TickMillis)*time.Millisecond)
	g.Go(func() error {
		if err := runner.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("combat runner: %w", err)
		}
		return nil
	})

	slog.Info("combat server started",
		"tick_millis", cfg.TickMillis,
		"archetypes", catalog.Count(),
		"bestiary_fingerprint", catalog.Fingerprint())

	return g.Wait()
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
