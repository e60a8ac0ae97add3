package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/jask/shenzhen/internal/config"
	"github.com/jask/shenzhen/internal/database/repository"
	"github.com/jask/shenzhen/internal/keys"
	"github.com/jask/shenzhen/internal/service"
)

func runStats(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	limit := fs.Int("n", 10, "number of recent games to list")
	reset := fs.Bool("reset", false, "delete all recorded games")
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := openHistory(cfg.Stats.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if *reset {
		if err := (&service.MaintenanceService{DB: db}).Reset(ctx); err != nil {
			return err
		}
		pterm.Success.Println("game history cleared")
		return nil
	}

	history := &service.HistoryService{Games: repository.NewGameRepo(db)}
	sum, err := history.Summary(ctx)
	if err != nil {
		return err
	}
	recent, err := history.Recent(ctx, *limit)
	if err != nil {
		return err
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(summaryTable(sum)).Render(); err != nil {
		return err
	}
	if len(recent) == 0 {
		pterm.Info.Println("no games recorded yet")
		return nil
	}
	pterm.Println()
	return pterm.DefaultTable.WithHasHeader().WithData(gamesTable(recent)).Render()
}

func summaryTable(s service.Summary) pterm.TableData {
	best, fewest := "-", "-"
	if s.Won > 0 {
		best = formatDuration(s.BestWin)
		fewest = strconv.Itoa(s.FewestWin)
	}
	return pterm.TableData{
		{"Played", "Won", "Abandoned", "Win rate", "Best time", "Fewest moves"},
		{
			strconv.Itoa(s.Played),
			strconv.Itoa(s.Won),
			strconv.Itoa(s.Abandoned),
			fmt.Sprintf("%.0f%%", s.WinRate*100),
			best,
			fewest,
		},
	}
}

func gamesTable(games []repository.Game) pterm.TableData {
	data := pterm.TableData{{"Started", "Seed", "Outcome", "Moves", "Left", "Time"}}
	for _, g := range games {
		took := "-"
		if g.FinishedAt != nil {
			took = formatDuration(g.Duration())
		}
		data = append(data, []string{
			g.StartedAt.Local().Format("2006-01-02 15:04"),
			strconv.FormatUint(g.Seed, 10),
			g.Outcome,
			strconv.Itoa(g.Moves),
			strconv.Itoa(g.Remaining),
			took,
		})
	}
	return data
}

func formatDuration(d time.Duration) string {
	d = d.Truncate(time.Second)
	return fmt.Sprintf("%d:%02d", int(d/time.Minute), int(d%time.Minute/time.Second))
}

// printKeys writes the effective bindings in config file form.
func printKeys(w io.Writer, r *keys.Registry) error {
	for _, o := range r.ExportOverrides() {
		quoted := make([]string, 0, len(o.Keys))
		for _, k := range o.Keys {
			quoted = append(quoted, strconv.Quote(k))
		}
		if _, err := fmt.Fprintf(w, "[[keybindings]]\nscope = %q\naction = %q\nkeys = [%s]\n\n",
			o.Scope, o.Action, strings.Join(quoted, ", ")); err != nil {
			return err
		}
	}
	return nil
}
