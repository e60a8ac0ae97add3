package repository

import "time"

// Outcome values stored in games.outcome.
const (
	OutcomePlaying   = "playing"
	OutcomeWon       = "won"
	OutcomeAbandoned = "abandoned"
)

// Game represents a games row. The board itself is never stored; the seed is
// enough to deal it again.
type Game struct {
	ID         string
	Seed       uint64
	StartedAt  time.Time
	FinishedAt *time.Time
	Outcome    string
	Moves      int
	Remaining  int
}

// Duration is the wall time between start and finish, or zero while playing.
func (g Game) Duration() time.Duration {
	if g.FinishedAt == nil {
		return 0
	}
	return g.FinishedAt.Sub(g.StartedAt)
}

// Totals aggregates finished games.
type Totals struct {
	Played    int
	Won       int
	Abandoned int
	BestWin   time.Duration
	FewestWin int
}
