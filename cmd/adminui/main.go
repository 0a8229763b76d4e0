package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/adminui/internal/config"
	"github.com/jask/adminui/internal/database"
	"github.com/jask/adminui/internal/database/repository"
	"github.com/jask/adminui/internal/fixtures"
	"github.com/jask/adminui/internal/listview"
	"github.com/jask/adminui/internal/logging"
	"github.com/jask/adminui/internal/service"
	"github.com/jask/adminui/internal/source"
	"github.com/jask/adminui/internal/tui"
)

func main() {
	resetCache := flag.Bool("reset-cache", false, "delete cached member snapshots and exit")
	sourceURL := flag.String("source", "", "member list URL or JSON file (overrides source.url)")
	seedDemo := flag.Int("seed-demo", 0, "cache N generated members as the offline snapshot for the source and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *sourceURL != "" {
		cfg.Source.URL = *sourceURL
	}

	logger, logFile, err := logging.Open(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer logFile.Close()

	fetcher, err := source.New(cfg.Source.URL, cfg.Source.Timeout)
	if err != nil {
		log.Fatalf("source: %v", err)
	}

	loader := &service.Loader{Source: fetcher, Keep: cfg.Cache.Keep, Logger: logger}
	if cfg.Cache.Enabled {
		db, err := openCache(cfg.Cache.Path)
		if err != nil {
			log.Fatalf("cache: %v", err)
		}
		defer db.Close()

		if *resetCache {
			if err := (&service.MaintenanceService{DB: db}).Reset(ctx); err != nil {
				log.Fatalf("reset cache: %v", err)
			}
			fmt.Println("cache cleared")
			return
		}
		snaps := repository.NewSnapshotRepo(db)
		loader.Snapshots = snaps

		if *seedDemo > 0 {
			snap, err := fixtures.Seed(ctx, snaps, fetcher.Origin(), *seedDemo)
			if err != nil {
				log.Fatalf("seed demo: %v", err)
			}
			total, err := snaps.Count(ctx)
			if err != nil {
				log.Fatalf("count snapshots: %v", err)
			}
			logger.Info("seeded demo snapshot", "origin", snap.Origin, "members", len(snap.Members), "snapshots", total)
			fmt.Printf("cached %d demo members for %s (%d snapshots stored)\n", len(snap.Members), snap.Origin, total)
			return
		}
	} else if *resetCache || *seedDemo > 0 {
		fmt.Println("cache disabled, nothing to do")
		return
	}

	logger.Info("starting", "source", fetcher.Origin(), "page_size", cfg.List.PageSize, "cache", cfg.Cache.Enabled)

	model := tui.New(ctx, loader, tui.Options{
		List: listview.Options{
			PageSize:      cfg.List.PageSize,
			PreserveEdits: cfg.List.PreserveEdits,
			DarkMode:      cfg.UI.DarkMode,
		},
		SavePrefs: config.SaveDarkMode,
		Logger:    logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", slog.Any("err", err))
		fmt.Printf("error: %v\n", err)
	}
}

func openCache(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir cache dir: %w", err)
	}
	if err := database.RunMigrations(path); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return database.Open(path)
}
