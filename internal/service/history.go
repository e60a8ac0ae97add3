package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jask/shenzhen/internal/database"
	"github.com/jask/shenzhen/internal/database/repository"
	"github.com/jask/shenzhen/internal/solitaire"
)

// HistoryService records one row per dealt game.
type HistoryService struct {
	Games *repository.GameRepo
	Now   func() time.Time
}

// Summary is the aggregate shown by the stats command.
type Summary struct {
	repository.Totals
	WinRate float64
}

func (s *HistoryService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return database.Now()
}

// Start records a freshly dealt game under id.
func (s *HistoryService) Start(ctx context.Context, id string, seed uint64) error {
	if s.Games == nil {
		return fmt.Errorf("history: games repo not configured")
	}
	if id == "" {
		return fmt.Errorf("start game: empty id")
	}
	g := repository.Game{
		ID:        id,
		Seed:      seed,
		StartedAt: s.now(),
		Outcome:   repository.OutcomePlaying,
		Remaining: solitaire.DeckSize,
	}
	if err := s.Games.Insert(ctx, g); err != nil {
		return fmt.Errorf("start game: %w", err)
	}
	return nil
}

// Won closes the game as a win.
func (s *HistoryService) Won(ctx context.Context, id string, moves int) error {
	return s.finish(ctx, id, repository.OutcomeWon, moves, 0)
}

// Abandon closes the game with cards still in play.
func (s *HistoryService) Abandon(ctx context.Context, id string, moves, remaining int) error {
	return s.finish(ctx, id, repository.OutcomeAbandoned, moves, remaining)
}

func (s *HistoryService) finish(ctx context.Context, id, outcome string, moves, remaining int) error {
	if s.Games == nil {
		return fmt.Errorf("history: games repo not configured")
	}
	return s.Games.Finish(ctx, id, outcome, moves, remaining, s.now())
}

// Recent lists the latest games, newest first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]repository.Game, error) {
	if s.Games == nil {
		return nil, fmt.Errorf("history: games repo not configured")
	}
	return s.Games.List(ctx, limit)
}

// Summary aggregates every finished game.
func (s *HistoryService) Summary(ctx context.Context) (Summary, error) {
	if s.Games == nil {
		return Summary{}, fmt.Errorf("history: games repo not configured")
	}
	t, err := s.Games.Totals(ctx)
	if err != nil {
		return Summary{}, err
	}
	out := Summary{Totals: t}
	if t.Played > 0 {
		out.WinRate = float64(t.Won) / float64(t.Played)
	}
	return out, nil
}
