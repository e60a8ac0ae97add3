package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrGameNotActive is returned when finishing a game that is unknown or already finished.
var ErrGameNotActive = errors.New("game not active")

// GameRepo handles games.
type GameRepo struct {
	db *sql.DB
}

func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{db: db}
}

func (r *GameRepo) Insert(ctx context.Context, g Game) error {
	if g.Outcome == "" {
		g.Outcome = OutcomePlaying
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO games(id, seed, started_at, outcome, moves, remaining)
	VALUES (?, ?, ?, ?, ?, ?)
	`, g.ID, int64(g.Seed), g.StartedAt, g.Outcome, g.Moves, g.Remaining)
	return err
}

// Finish closes a playing game. Finished games are never rewritten.
func (r *GameRepo) Finish(ctx context.Context, id, outcome string, moves, remaining int, at time.Time) error {
	if outcome != OutcomeWon && outcome != OutcomeAbandoned {
		return fmt.Errorf("finish game %s: invalid outcome %q", id, outcome)
	}
	res, err := r.db.ExecContext(ctx, `
	UPDATE games SET finished_at=?, outcome=?, moves=?, remaining=?
	WHERE id=? AND outcome=?
	`, at, outcome, moves, remaining, id, OutcomePlaying)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("finish game %s: %w", id, ErrGameNotActive)
	}
	return nil
}

func (r *GameRepo) Get(ctx context.Context, id string) (Game, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, seed, started_at, finished_at, outcome, moves, remaining FROM games WHERE id=?`, id)
	return scanGame(row)
}

// List returns the most recent games first. limit <= 0 returns all of them.
func (r *GameRepo) List(ctx context.Context, limit int) ([]Game, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, seed, started_at, finished_at, outcome, moves, remaining
	FROM games ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Totals counts finished games and finds the quickest win.
func (r *GameRepo) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	err := r.db.QueryRowContext(ctx, `
	SELECT
	 COUNT(*),
	 COALESCE(SUM(CASE WHEN outcome=? THEN 1 ELSE 0 END), 0),
	 COALESCE(SUM(CASE WHEN outcome=? THEN 1 ELSE 0 END), 0)
	FROM games WHERE outcome != ?`, OutcomeWon, OutcomeAbandoned, OutcomePlaying).Scan(&t.Played, &t.Won, &t.Abandoned)
	if err != nil {
		return Totals{}, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT started_at, finished_at, moves FROM games WHERE outcome=?`, OutcomeWon)
	if err != nil {
		return Totals{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var started time.Time
		var finished sql.NullTime
		var moves int
		if err := rows.Scan(&started, &finished, &moves); err != nil {
			return Totals{}, err
		}
		if finished.Valid {
			if d := finished.Time.Sub(started); t.BestWin == 0 || d < t.BestWin {
				t.BestWin = d
			}
		}
		if t.FewestWin == 0 || moves < t.FewestWin {
			t.FewestWin = moves
		}
	}
	return t, rows.Err()
}

// DeleteAll wipes the history.
func (r *GameRepo) DeleteAll(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM games`)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(s rowScanner) (Game, error) {
	var g Game
	var seed int64
	var finished sql.NullTime
	if err := s.Scan(&g.ID, &seed, &g.StartedAt, &finished, &g.Outcome, &g.Moves, &g.Remaining); err != nil {
		return Game{}, err
	}
	g.Seed = uint64(seed)
	if finished.Valid {
		t := finished.Time
		g.FinishedAt = &t
	}
	return g, nil
}
