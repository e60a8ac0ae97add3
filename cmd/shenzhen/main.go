package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/shenzhen/internal/config"
	"github.com/jask/shenzhen/internal/database"
	"github.com/jask/shenzhen/internal/database/repository"
	"github.com/jask/shenzhen/internal/keys"
	"github.com/jask/shenzhen/internal/logging"
	"github.com/jask/shenzhen/internal/service"
	"github.com/jask/shenzhen/internal/tui"
)

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "usage: %s [-seed N]\n", os.Args[0])
	fmt.Fprintf(out, "       %s stats [-n N] [-reset]\n", os.Args[0])
	fmt.Fprintf(out, "       %s keys\n\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	seed := flag.Uint64("seed", 0, "deal the board for this seed (0 picks one at random)")
	flag.Usage = usage
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	registry := keys.NewRegistry()
	if err := registry.ApplyOverrides(cfg.Overrides()); err != nil {
		log.Fatalf("keybindings: %v", err)
	}

	switch flag.Arg(0) {
	case "":
	case "stats":
		if err := runStats(ctx, cfg, flag.Args()[1:]); err != nil {
			log.Fatalf("stats: %v", err)
		}
		return
	case "keys":
		if err := printKeys(os.Stdout, registry); err != nil {
			log.Fatalf("keys: %v", err)
		}
		return
	default:
		usage()
		os.Exit(2)
	}

	logger, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer logCloser.Close()

	var history tui.History
	if cfg.Stats.Enabled {
		db, err := openHistory(cfg.Stats.Path)
		if err != nil {
			log.Fatalf("stats db: %v", err)
		}
		defer db.Close()
		history = &service.HistoryService{Games: repository.NewGameRepo(db)}
	}

	if *seed == 0 {
		*seed = cfg.Game.Seed
	}
	app := tui.New(ctx, cfg, tui.Deps{
		Keys:    registry,
		History: history,
		Log:     logger,
		Seed:    *seed,
	})
	logger.Info("starting", "seed", *seed, "stats", cfg.Stats.Enabled)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", "err", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		exit(logCloser, 1)
	}
}

// exit flushes the log file before leaving, since deferred closes are skipped.
func exit(c io.Closer, code int) {
	_ = c.Close()
	os.Exit(code)
}

func openHistory(path string) (*sql.DB, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}
