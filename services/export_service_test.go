package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgi25/chess/models"
	"github.com/mgi25/chess/storage"
)

type stubLeague struct {
	state *LeagueState
	err   error
}

func (s *stubLeague) GetState(ctx context.Context, tournamentID int) (*LeagueState, error) {
	return s.state, s.err
}

func (s *stubLeague) GetStandings(ctx context.Context, tournamentID int) ([]models.Standing, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.state.Standings, nil
}

func (s *stubLeague) SetMatchResult(ctx context.Context, tournamentID, matchID int, rawResult string) error {
	return s.err
}

func (s *stubLeague) SetAdjustment(ctx context.Context, tournamentID, playerID int, rawAddScore json.RawMessage) (float64, error) {
	return 0, s.err
}

func (s *stubLeague) GenerateNextRound(ctx context.Context, tournamentID int) (*GeneratedRound, error) {
	return nil, s.err
}

func (s *stubLeague) Reset(ctx context.Context, tournamentID int) error {
	return s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&strings.Builder{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

func snapshotState() *LeagueState {
	p2 := 2
	return &LeagueState{
		Players: []models.Player{
			{ID: 1, Seed: 1, Name: "Arjun", Department: "CSE", RegisterNumber: "21CS001", AddScore: 0.5},
			{ID: 2, Seed: 2, Name: "Blessy", Department: "ECE", RegisterNumber: "21EC014"},
		},
		Rounds: []models.Round{{
			RoundNumber: 1,
			Pairings: []models.Pairing{{
				Table: 1, Player1: 1, Player2: &p2, Result: models.ResultPlayer1,
				Player1Name: "Arjun", Player2Name: "Blessy",
			}},
		}},
		Standings: []models.Standing{
			{PlayerID: 1, DisplayName: "Arjun (#1)", Wins: 1, GamesPlayed: 1, BasePoints: 1, AddScore: 0.5, TotalPoints: 1.5, WinPercent: 100},
			{PlayerID: 2, DisplayName: "Blessy (#2)", Losses: 1, GamesPlayed: 1},
		},
		CanGenerateNextRound: true,
	}
}

func TestBuildSnapshotCSV(t *testing.T) {
	svc := NewExportService(&stubLeague{state: snapshotState()}, nil, discardLogger())

	body, name, err := svc.BuildSnapshotCSV(context.Background(), 1)
	require.NoError(t, err)

	csv := string(body)
	assert.True(t, strings.HasPrefix(name, "league-snapshot-"))
	assert.True(t, strings.HasSuffix(name, ".csv"))
	assert.Contains(t, csv, "Players\n")
	assert.Contains(t, csv, "1,1,Arjun,CSE,21CS001,0.5\n")
	assert.Contains(t, csv, "Rounds\n")
	assert.Contains(t, csv, "1,1,Arjun,Blessy,PLAYER1\n")
	assert.Contains(t, csv, "Standings\n")
	assert.Contains(t, csv, "1,Arjun (#1),1,0,0,0,1,1,0.5,1.5,100.0\n")
	assert.Contains(t, csv, "2,Blessy (#2),0,1,0,0,1,0,0,0,0.0\n")
}

func TestBuildSnapshotCSVPropagatesStateError(t *testing.T) {
	svc := NewExportService(&stubLeague{err: ErrTournamentNotFound}, nil, discardLogger())

	_, _, err := svc.BuildSnapshotCSV(context.Background(), 42)
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

type fakeUploader struct {
	uploaded []string
	deleted  []string
}

func (f *fakeUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	f.uploaded = append(f.uploaded, key)
	return &storage.UploadResult{Key: key, Location: "https://snapshots.example/" + key}, nil
}

func (f *fakeUploader) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeUploader) GetPublicURL(key string) string {
	return "https://snapshots.example/" + key
}

func TestUploadSnapshotReplacesPreviousObject(t *testing.T) {
	uploader := &fakeUploader{}
	svc := NewExportService(&stubLeague{state: snapshotState()}, uploader, discardLogger())

	first, err := svc.UploadSnapshot(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first.Key, "snapshots/tournament-1/"))
	assert.Equal(t, "https://snapshots.example/"+first.Key, first.Location)
	assert.Empty(t, uploader.deleted)

	second, err := svc.UploadSnapshot(context.Background(), 1)
	require.NoError(t, err)
	assert.NotEqual(t, first.Key, second.Key)

	// Only the superseded object is removed, and only after the new upload.
	require.Len(t, uploader.uploaded, 2)
	require.Len(t, uploader.deleted, 1)
	assert.Equal(t, first.Key, uploader.deleted[0])
}

func TestUploadSnapshotWithoutUploader(t *testing.T) {
	svc := NewExportService(&stubLeague{state: snapshotState()}, nil, discardLogger())

	_, err := svc.UploadSnapshot(context.Background(), 1)
	assert.ErrorIs(t, err, ErrExportUnavailable)
}
