package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mgi25/chess/models"
)

var ErrPlayerNotFound = errors.New("player not found")

type PlayerRepository interface {
	Create(ctx context.Context, exec SQLExecutor, player *models.Player) error
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Player, error)
	UpdateAddScore(ctx context.Context, exec SQLExecutor, tournamentID, playerID int, addScore float64) error
	ResetAddScores(ctx context.Context, exec SQLExecutor, tournamentID int) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, exec SQLExecutor, player *models.Player) error {
	query := `
		INSERT INTO players
			(tournament_id, name, full_name, contact, department, register_number, seed, add_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err := exec.QueryRowContext(ctx, query,
		player.TournamentID,
		player.Name,
		player.FullName,
		player.Contact,
		player.Department,
		player.RegisterNumber,
		player.Seed,
		player.AddScore,
	).Scan(&player.ID)
	if err != nil {
		return fmt.Errorf("failed to create player %q: %w", player.Name, err)
	}
	return nil
}

func (r *postgresPlayerRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Player, error) {
	query := `
		SELECT id, tournament_id, name, full_name, contact, department, register_number, seed, add_score
		FROM players
		WHERE tournament_id = $1
		ORDER BY id ASC`

	rows, err := exec.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query players for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var player models.Player
		if scanErr := rows.Scan(
			&player.ID,
			&player.TournamentID,
			&player.Name,
			&player.FullName,
			&player.Contact,
			&player.Department,
			&player.RegisterNumber,
			&player.Seed,
			&player.AddScore,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", scanErr)
		}
		players = append(players, player)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during player rows iteration: %w", err)
	}
	return players, nil
}

func (r *postgresPlayerRepository) UpdateAddScore(ctx context.Context, exec SQLExecutor, tournamentID, playerID int, addScore float64) error {
	query := `UPDATE players SET add_score = $1 WHERE id = $2 AND tournament_id = $3`

	result, err := exec.ExecContext(ctx, query, addScore, playerID, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to update add_score for player %d: %w", playerID, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) ResetAddScores(ctx context.Context, exec SQLExecutor, tournamentID int) error {
	query := `UPDATE players SET add_score = 0 WHERE tournament_id = $1`

	if _, err := exec.ExecContext(ctx, query, tournamentID); err != nil {
		return fmt.Errorf("failed to reset add_score for tournament %d: %w", tournamentID, err)
	}
	return nil
}
