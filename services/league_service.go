package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mgi25/chess/db"
	"github.com/mgi25/chess/live"
	"github.com/mgi25/chess/models"
	"github.com/mgi25/chess/repositories"
	"github.com/mgi25/chess/swiss"
)

// LeagueState is the full read model handed to the presentation layer.
// Standings and canGenerateNextRound are recomputed from stored history on
// every call, never cached.
type LeagueState struct {
	Tournament           *models.Tournament `json:"tournament"`
	Rules                []string           `json:"rules"`
	Players              []models.Player    `json:"players"`
	Rounds               []models.Round     `json:"rounds"`
	Standings            []models.Standing  `json:"standings"`
	CanGenerateNextRound bool               `json:"canGenerateNextRound"`
}

// GeneratedRound reports a freshly created round. RematchesAllowed is true
// when only the relaxed pairing pass could complete the round, so it may
// contain repeat matchups.
type GeneratedRound struct {
	Round            models.Round `json:"round"`
	RematchesAllowed bool         `json:"rematchesAllowed"`
}

type LeagueService interface {
	GetState(ctx context.Context, tournamentID int) (*LeagueState, error)
	GetStandings(ctx context.Context, tournamentID int) ([]models.Standing, error)
	SetMatchResult(ctx context.Context, tournamentID, matchID int, rawResult string) error
	SetAdjustment(ctx context.Context, tournamentID, playerID int, rawAddScore json.RawMessage) (float64, error)
	GenerateNextRound(ctx context.Context, tournamentID int) (*GeneratedRound, error)
	Reset(ctx context.Context, tournamentID int) error
}

type leagueService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	roundRepo      repositories.RoundRepository
	hub            *live.Hub
	logger         *slog.Logger
}

func NewLeagueService(
	database *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	roundRepo repositories.RoundRepository,
	hub *live.Hub,
	logger *slog.Logger,
) LeagueService {
	return &leagueService{
		db:             database,
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		roundRepo:      roundRepo,
		hub:            hub,
		logger:         logger,
	}
}

func (s *leagueService) GetState(ctx context.Context, tournamentID int) (*LeagueState, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	var (
		players []models.Player
		rounds  []models.Round
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var loadErr error
		players, loadErr = s.playerRepo.ListByTournament(gCtx, s.db, tournamentID)
		return loadErr
	})
	g.Go(func() error {
		var loadErr error
		rounds, loadErr = s.roundRepo.ListByTournament(gCtx, s.db, tournamentID)
		return loadErr
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load state for tournament %d: %w", tournamentID, err)
	}

	populatePairingNames(rounds, players)

	return &LeagueState{
		Tournament:           tournament,
		Rules:                RulesText,
		Players:              players,
		Rounds:               rounds,
		Standings:            swiss.Standings(players, rounds),
		CanGenerateNextRound: swiss.CanGenerateNextRound(rounds),
	}, nil
}

func (s *leagueService) GetStandings(ctx context.Context, tournamentID int) ([]models.Standing, error) {
	state, err := s.GetState(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return state.Standings, nil
}

func (s *leagueService) SetMatchResult(ctx context.Context, tournamentID, matchID int, rawResult string) error {
	result, err := models.ParseResult(rawResult)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidResult, rawResult)
	}

	err = s.inTournamentTx(ctx, tournamentID, func(tx *sql.Tx) error {
		match, err := s.roundRepo.GetMatch(ctx, tx, tournamentID, matchID)
		if err != nil {
			return mapRepositoryError(err)
		}
		// Bye pairings stay BYE and real pairings never become BYE.
		if match.IsBye() != (result == models.ResultBye) {
			return ErrByeResultImmutable
		}
		return mapRepositoryError(s.roundRepo.UpdateMatchResult(ctx, tx, matchID, result))
	})
	if err != nil {
		return err
	}

	s.hub.BroadcastToRoom(live.RoomID(tournamentID), live.Event{
		Type:    live.EventResultUpdated,
		Payload: map[string]interface{}{"matchId": matchID, "result": result},
	})
	return nil
}

// SetAdjustment stores the organizer's manual correction. JSON numbers and
// numeric strings are accepted; anything non-numeric is coerced to 0.
func (s *leagueService) SetAdjustment(ctx context.Context, tournamentID, playerID int, rawAddScore json.RawMessage) (float64, error) {
	addScore := coerceAddScore(rawAddScore)

	err := s.inTournamentTx(ctx, tournamentID, func(tx *sql.Tx) error {
		return mapRepositoryError(s.playerRepo.UpdateAddScore(ctx, tx, tournamentID, playerID, addScore))
	})
	if err != nil {
		return 0, err
	}

	s.hub.BroadcastToRoom(live.RoomID(tournamentID), live.Event{
		Type:    live.EventAdjustmentUpdated,
		Payload: map[string]interface{}{"playerId": playerID, "addScore": addScore},
	})
	return addScore, nil
}

// GenerateNextRound runs the read-validate-compute-append sequence as one
// transaction holding the tournament row lock. A concurrent generator for
// the same tournament blocks on the lock, then sees the appended round and
// fails the completeness check instead of double-inserting.
func (s *leagueService) GenerateNextRound(ctx context.Context, tournamentID int) (*GeneratedRound, error) {
	var generated GeneratedRound

	err := s.inTournamentTx(ctx, tournamentID, func(tx *sql.Tx) error {
		rounds, err := s.roundRepo.ListByTournament(ctx, tx, tournamentID)
		if err != nil {
			return err
		}
		// Re-validated inside the transaction regardless of any gating the
		// caller did against canGenerateNextRound.
		if !swiss.CanGenerateNextRound(rounds) {
			return ErrRoundsIncomplete
		}

		players, err := s.playerRepo.ListByTournament(ctx, tx, tournamentID)
		if err != nil {
			return err
		}

		standings := swiss.Standings(players, rounds)
		rankedIDs := make([]int, 0, len(standings))
		for _, entry := range standings {
			rankedIDs = append(rankedIDs, entry.PlayerID)
		}

		matching, err := swiss.Pairings(rankedIDs, swiss.OpponentHistory(players, rounds), swiss.ByeCounts(rounds))
		if err != nil {
			return err
		}

		round := models.Round{
			TournamentID: tournamentID,
			RoundNumber:  len(rounds) + 1,
			Pairings:     matchingToPairings(matching),
		}
		if err := s.roundRepo.CreateRound(ctx, tx, &round); err != nil {
			return err
		}

		populatePairingNames([]models.Round{round}, players)
		generated = GeneratedRound{Round: round, RematchesAllowed: matching.RematchesAllowed}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if generated.RematchesAllowed {
		s.logger.Warn("round generated with rematches allowed",
			slog.Int("tournament_id", tournamentID),
			slog.Int("round_number", generated.Round.RoundNumber))
	}
	s.hub.BroadcastToRoom(live.RoomID(tournamentID), live.Event{
		Type:    live.EventRoundGenerated,
		Payload: generated,
	})
	return &generated, nil
}

// Reset restores the seeded state: every addScore back to 0 and the round
// history truncated to the original first round (real matches UNPLAYED,
// the seeded bye fixed at BYE).
func (s *leagueService) Reset(ctx context.Context, tournamentID int) error {
	err := s.inTournamentTx(ctx, tournamentID, func(tx *sql.Tx) error {
		if err := s.playerRepo.ResetAddScores(ctx, tx, tournamentID); err != nil {
			return err
		}
		if err := s.roundRepo.DeleteByTournament(ctx, tx, tournamentID); err != nil {
			return err
		}
		players, err := s.playerRepo.ListByTournament(ctx, tx, tournamentID)
		if err != nil {
			return err
		}
		round := models.Round{
			TournamentID: tournamentID,
			RoundNumber:  1,
			Pairings:     db.InitialPairings(players),
		}
		return s.roundRepo.CreateRound(ctx, tx, &round)
	})
	if err != nil {
		return err
	}

	s.logger.Info("tournament reset to seeded state", slog.Int("tournament_id", tournamentID))
	s.hub.BroadcastToRoom(live.RoomID(tournamentID), live.Event{Type: live.EventTournamentReset})
	return nil
}

// inTournamentTx begins a transaction, takes the tournament row lock and
// runs fn. Commit only happens when fn succeeds; everything else rolls
// back, so callers observe all-or-nothing behavior.
func (s *leagueService) inTournamentTx(ctx context.Context, tournamentID int, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := s.tournamentRepo.LockForUpdate(ctx, tx, tournamentID); err != nil {
		return mapRepositoryError(err)
	}
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// matchingToPairings lays the engine output onto tables 1..N, bye last.
func matchingToPairings(matching *swiss.Matching) []models.Pairing {
	pairings := make([]models.Pairing, 0, len(matching.Pairs)+1)
	for i, pair := range matching.Pairs {
		p2 := pair[1]
		pairings = append(pairings, models.Pairing{
			Table:   i + 1,
			Player1: pair[0],
			Player2: &p2,
			Result:  models.ResultUnplayed,
		})
	}
	if matching.ByePlayer != nil {
		pairings = append(pairings, models.Pairing{
			Table:   len(matching.Pairs) + 1,
			Player1: *matching.ByePlayer,
			Result:  models.ResultBye,
		})
	}
	return pairings
}

func populatePairingNames(rounds []models.Round, players []models.Player) {
	namesByID := make(map[int]string, len(players))
	for _, player := range players {
		namesByID[player.ID] = player.Name
	}
	for ri := range rounds {
		for pi := range rounds[ri].Pairings {
			pairing := &rounds[ri].Pairings[pi]
			pairing.Player1Name = namesByID[pairing.Player1]
			if pairing.Player2 != nil {
				pairing.Player2Name = namesByID[*pairing.Player2]
			} else {
				pairing.Player2Name = "Bye"
			}
		}
	}
}

// coerceAddScore mirrors the forgiving float() parse the adjustment input
// has always had: JSON numbers pass through, numeric strings are parsed,
// anything else becomes 0.
func coerceAddScore(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		return number
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if parsed, parseErr := strconv.ParseFloat(strings.TrimSpace(text), 64); parseErr == nil {
			return parsed
		}
	}
	return 0
}

func mapRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrPlayerNotFound):
		return ErrPlayerNotFound
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	default:
		return err
	}
}
