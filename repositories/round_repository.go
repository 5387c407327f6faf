package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/mgi25/chess/models"
)

var (
	ErrMatchNotFound      = errors.New("match not found")
	ErrRoundNumberTaken   = errors.New("round number already exists for this tournament")
	ErrRoundPlayerInvalid = errors.New("round references an unknown player")
)

type RoundRepository interface {
	// ListByTournament returns rounds in play order with their pairings in
	// table order. Passing a transaction as exec gives the caller a
	// consistent snapshot for validation.
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Round, error)
	CreateRound(ctx context.Context, exec SQLExecutor, round *models.Round) error
	GetMatch(ctx context.Context, exec SQLExecutor, tournamentID, matchID int) (*models.Pairing, error)
	UpdateMatchResult(ctx context.Context, exec SQLExecutor, matchID int, result models.Result) error
	DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error
}

type postgresRoundRepository struct {
	db *sql.DB
}

func NewPostgresRoundRepository(db *sql.DB) RoundRepository {
	return &postgresRoundRepository{db: db}
}

func (r *postgresRoundRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Round, error) {
	query := `
		SELECT r.id, r.round_number, m.id, m.table_number, m.player1_id, m.player2_id, m.result
		FROM rounds r
		LEFT JOIN matches m ON m.round_id = r.id
		WHERE r.tournament_id = $1
		ORDER BY r.round_number ASC, m.table_number ASC`

	rows, err := exec.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rounds for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	rounds := make([]models.Round, 0)
	indexByID := make(map[int]int)
	for rows.Next() {
		var (
			roundID     int
			roundNumber int
			matchID     sql.NullInt64
			tableNumber sql.NullInt64
			player1     sql.NullInt64
			player2     sql.NullInt64
			result      sql.NullString
		)
		if scanErr := rows.Scan(&roundID, &roundNumber, &matchID, &tableNumber, &player1, &player2, &result); scanErr != nil {
			return nil, fmt.Errorf("failed to scan round row: %w", scanErr)
		}

		idx, ok := indexByID[roundID]
		if !ok {
			rounds = append(rounds, models.Round{
				ID:           roundID,
				TournamentID: tournamentID,
				RoundNumber:  roundNumber,
				Pairings:     []models.Pairing{},
			})
			idx = len(rounds) - 1
			indexByID[roundID] = idx
		}

		if !matchID.Valid {
			continue
		}
		pairing := models.Pairing{
			ID:      int(matchID.Int64),
			RoundID: roundID,
			Table:   int(tableNumber.Int64),
			Player1: int(player1.Int64),
			Result:  models.Result(result.String),
		}
		if player2.Valid {
			p2 := int(player2.Int64)
			pairing.Player2 = &p2
		}
		rounds[idx].Pairings = append(rounds[idx].Pairings, pairing)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during round rows iteration: %w", err)
	}
	return rounds, nil
}

// CreateRound inserts the round and all of its pairings. Callers are
// expected to run it inside a transaction holding the tournament lock.
func (r *postgresRoundRepository) CreateRound(ctx context.Context, exec SQLExecutor, round *models.Round) error {
	query := `
		INSERT INTO rounds (tournament_id, round_number)
		VALUES ($1, $2)
		RETURNING id`

	err := exec.QueryRowContext(ctx, query, round.TournamentID, round.RoundNumber).Scan(&round.ID)
	if err != nil {
		return r.handleRoundError(err)
	}

	matchQuery := `
		INSERT INTO matches (round_id, table_number, player1_id, player2_id, result)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	for i := range round.Pairings {
		pairing := &round.Pairings[i]
		pairing.RoundID = round.ID
		err := exec.QueryRowContext(ctx, matchQuery,
			round.ID,
			pairing.Table,
			pairing.Player1,
			pairing.Player2,
			pairing.Result,
		).Scan(&pairing.ID)
		if err != nil {
			return r.handleRoundError(err)
		}
	}
	return nil
}

func (r *postgresRoundRepository) GetMatch(ctx context.Context, exec SQLExecutor, tournamentID, matchID int) (*models.Pairing, error) {
	query := `
		SELECT m.id, m.round_id, m.table_number, m.player1_id, m.player2_id, m.result
		FROM matches m
		JOIN rounds r ON r.id = m.round_id
		WHERE m.id = $1 AND r.tournament_id = $2`

	pairing := &models.Pairing{}
	var player2 sql.NullInt64
	err := exec.QueryRowContext(ctx, query, matchID, tournamentID).Scan(
		&pairing.ID,
		&pairing.RoundID,
		&pairing.Table,
		&pairing.Player1,
		&player2,
		&pairing.Result,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match %d: %w", matchID, err)
	}
	if player2.Valid {
		p2 := int(player2.Int64)
		pairing.Player2 = &p2
	}
	return pairing, nil
}

func (r *postgresRoundRepository) UpdateMatchResult(ctx context.Context, exec SQLExecutor, matchID int, result models.Result) error {
	query := `UPDATE matches SET result = $1 WHERE id = $2`

	res, err := exec.ExecContext(ctx, query, result, matchID)
	if err != nil {
		return fmt.Errorf("failed to update result for match %d: %w", matchID, err)
	}
	return checkAffectedRows(res, ErrMatchNotFound)
}

func (r *postgresRoundRepository) DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error {
	// matches go with their rounds via ON DELETE CASCADE
	if _, err := exec.ExecContext(ctx, `DELETE FROM rounds WHERE tournament_id = $1`, tournamentID); err != nil {
		return fmt.Errorf("failed to delete rounds for tournament %d: %w", tournamentID, err)
	}
	return nil
}

func (r *postgresRoundRepository) handleRoundError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Constraint {
		case "rounds_tournament_id_round_number_key":
			return ErrRoundNumberTaken
		case "matches_player1_id_fkey", "matches_player2_id_fkey":
			return ErrRoundPlayerInvalid
		}
	}
	return fmt.Errorf("failed to persist round: %w", err)
}
