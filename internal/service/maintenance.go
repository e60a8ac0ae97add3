package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/shenzhen/internal/database"
	"github.com/jask/shenzhen/internal/database/repository"
)

// MaintenanceService houses destructive actions surfaced through the stats command.
type MaintenanceService struct {
	DB *sql.DB
}

// Reset wipes the game history. It keeps the schema intact.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	games := repository.NewGameRepo(s.DB)
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		if err := games.DeleteAll(ctx, tx); err != nil {
			return fmt.Errorf("reset games: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return nil
}
