package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mgi25/chess/storage"
)

// ExportService renders the current league state as a CSV snapshot and,
// when object storage is configured, publishes it to the bucket.
type ExportService interface {
	BuildSnapshotCSV(ctx context.Context, tournamentID int) ([]byte, string, error)
	UploadSnapshot(ctx context.Context, tournamentID int) (*storage.UploadResult, error)
}

type exportService struct {
	league   LeagueService
	uploader storage.SnapshotUploader
	logger   *slog.Logger

	mu       sync.Mutex
	lastKeys map[int]string
}

// NewExportService wires the export layer. uploader may be nil when no
// bucket credentials were supplied; UploadSnapshot then reports
// ErrExportUnavailable while CSV downloads keep working.
func NewExportService(league LeagueService, uploader storage.SnapshotUploader, logger *slog.Logger) ExportService {
	return &exportService{
		league:   league,
		uploader: uploader,
		logger:   logger,
		lastKeys: make(map[int]string),
	}
}

// BuildSnapshotCSV returns the snapshot body and a suggested file name.
func (s *exportService) BuildSnapshotCSV(ctx context.Context, tournamentID int) ([]byte, string, error) {
	state, err := s.league.GetState(ctx, tournamentID)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	writeSection(writer, "Players", [][]string{{"ID", "Seed", "Name", "Department", "Register Number", "Adjustment"}})
	for _, player := range state.Players {
		writeRow(writer,
			strconv.Itoa(player.ID),
			strconv.Itoa(player.Seed),
			player.Name,
			player.Department,
			player.RegisterNumber,
			formatScore(player.AddScore),
		)
	}

	writeSection(writer, "Rounds", [][]string{{"Round", "Table", "Player 1", "Player 2", "Result"}})
	for _, round := range state.Rounds {
		for _, pairing := range round.Pairings {
			writeRow(writer,
				strconv.Itoa(round.RoundNumber),
				strconv.Itoa(pairing.Table),
				pairing.Player1Name,
				pairing.Player2Name,
				string(pairing.Result),
			)
		}
	}

	writeSection(writer, "Standings", [][]string{{"Rank", "Player", "Wins", "Losses", "Draws", "Byes", "Played", "Base Points", "Adjustment", "Total Points", "Win %"}})
	for rank, entry := range state.Standings {
		writeRow(writer,
			strconv.Itoa(rank+1),
			entry.DisplayName,
			strconv.Itoa(entry.Wins),
			strconv.Itoa(entry.Losses),
			strconv.Itoa(entry.Draws),
			strconv.Itoa(entry.Byes),
			strconv.Itoa(entry.GamesPlayed),
			formatScore(entry.BasePoints),
			formatScore(entry.AddScore),
			formatScore(entry.TotalPoints),
			fmt.Sprintf("%.1f", entry.WinPercent),
		)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", fmt.Errorf("failed to write snapshot csv: %w", err)
	}

	name := fmt.Sprintf("league-snapshot-%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), name, nil
}

// UploadSnapshot pushes a fresh CSV to the bucket and removes the previous
// snapshot object for the same tournament, keeping exactly one live copy.
func (s *exportService) UploadSnapshot(ctx context.Context, tournamentID int) (*storage.UploadResult, error) {
	if s.uploader == nil {
		return nil, ErrExportUnavailable
	}

	body, _, err := s.BuildSnapshotCSV(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("snapshots/tournament-%d/%s.csv", tournamentID, uuid.NewString())
	result, err := s.uploader.Upload(ctx, key, "text/csv", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to upload snapshot: %w", err)
	}

	s.mu.Lock()
	previous := s.lastKeys[tournamentID]
	s.lastKeys[tournamentID] = key
	s.mu.Unlock()

	if previous != "" && previous != key {
		if err := s.uploader.Delete(ctx, previous); err != nil {
			s.logger.Warn("failed to delete previous snapshot",
				slog.String("key", previous), slog.String("error", err.Error()))
		}
	}

	s.logger.Info("snapshot uploaded",
		slog.Int("tournament_id", tournamentID),
		slog.String("key", result.Key),
		slog.String("location", result.Location))
	return result, nil
}

func writeSection(writer *csv.Writer, title string, header [][]string) {
	_ = writer.Write([]string{title})
	for _, row := range header {
		_ = writer.Write(row)
	}
}

func writeRow(writer *csv.Writer, fields ...string) {
	_ = writer.Write(fields)
}

func formatScore(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
