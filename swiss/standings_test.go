package swiss_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgi25/chess/models"
	"github.com/mgi25/chess/swiss"
)

// Scenario: A beats B, C draws D in round one. A leads with a full point,
// C edges D on the seed tie-break, B trails.
func TestStandingsAfterFirstRound(t *testing.T) {
	players := seedPlayers(4)
	rounds := []models.Round{
		round(1,
			pairing(1, 1, intPtr(2), models.ResultPlayer1),
			pairing(2, 3, intPtr(4), models.ResultDraw),
		),
	}

	standings := swiss.Standings(players, rounds)
	require.Len(t, standings, 4)

	assert.Equal(t, []int{1, 3, 4, 2}, rankedIDs(standings))

	top := standings[0]
	assert.Equal(t, 1.0, top.BasePoints)
	assert.Equal(t, 1, top.GamesPlayed)
	assert.Equal(t, 100.0, top.WinPercent)
	assert.Equal(t, 1, top.Wins)

	drawC := standings[1]
	assert.Equal(t, 0.5, drawC.BasePoints)
	assert.Equal(t, 50.0, drawC.WinPercent)
	assert.Equal(t, 1, drawC.Draws)

	loser := standings[3]
	assert.Equal(t, 0.0, loser.BasePoints)
	assert.Equal(t, 0.0, loser.WinPercent)
	assert.Equal(t, 1, loser.Losses)
}

func TestStandingsTotalPointsIncludeAdjustment(t *testing.T) {
	players := seedPlayers(2)
	players[1].AddScore = 1.5
	rounds := []models.Round{
		round(1, pairing(1, 1, intPtr(2), models.ResultPlayer1)),
	}

	standings := swiss.Standings(players, rounds)

	// The adjustment lifts player 2 past the game winner on total points,
	// but the win percent column is untouched by it.
	assert.Equal(t, []int{2, 1}, rankedIDs(standings))
	adjusted := standings[0]
	assert.Equal(t, 0.0, adjusted.BasePoints)
	assert.Equal(t, 1.5, adjusted.TotalPoints)
	assert.Equal(t, 0.0, adjusted.WinPercent)

	for _, entry := range standings {
		assert.Equal(t, entry.BasePoints+entry.AddScore, entry.TotalPoints)
	}
}

func TestStandingsUnplayedGamesHaveNoEffect(t *testing.T) {
	players := seedPlayers(2)
	rounds := []models.Round{
		round(1, pairing(1, 1, intPtr(2), models.ResultUnplayed)),
	}

	standings := swiss.Standings(players, rounds)

	for _, entry := range standings {
		assert.Zero(t, entry.GamesPlayed)
		assert.Equal(t, 0.0, entry.BasePoints)
		assert.Equal(t, 0.0, entry.WinPercent, "win percent is zero with no games played")
	}
}

func TestStandingsByeScoring(t *testing.T) {
	players := seedPlayers(3)
	rounds := []models.Round{
		round(1,
			pairing(1, 1, intPtr(2), models.ResultDraw),
			pairing(2, 3, nil, models.ResultBye),
		),
	}

	standings := swiss.Standings(players, rounds)

	byWinner := standingFor(t, standings, 3)
	assert.Equal(t, 1.0, byWinner.BasePoints)
	assert.Equal(t, 1, byWinner.Byes)
	assert.Equal(t, 1, byWinner.GamesPlayed)
	assert.Equal(t, []string{"Bye"}, byWinner.OpponentSummaries)
}

func TestStandingsOpponentSummaries(t *testing.T) {
	players := seedPlayers(3)
	rounds := []models.Round{
		round(1,
			pairing(1, 1, intPtr(2), models.ResultPlayer2),
			pairing(2, 3, nil, models.ResultBye),
		),
		round(2,
			pairing(1, 1, intPtr(3), models.ResultDraw),
			pairing(2, 2, nil, models.ResultBye),
		),
	}

	standings := swiss.Standings(players, rounds)

	first := standingFor(t, standings, 1)
	require.Len(t, first.OpponentSummaries, 2)
	assert.Equal(t, "Blessy (#2)", first.OpponentSummaries[0])
	assert.Equal(t, "Chris (#3)", first.OpponentSummaries[1])
}

func TestStandingsEqualSeedsOrderedByID(t *testing.T) {
	players := []models.Player{
		{ID: 7, Name: "Late", Seed: 3},
		{ID: 2, Name: "Early", Seed: 3},
	}

	standings := swiss.Standings(players, nil)

	assert.Equal(t, []int{2, 7}, rankedIDs(standings))
}

func rankedIDs(standings []models.Standing) []int {
	ids := make([]int, 0, len(standings))
	for _, entry := range standings {
		ids = append(ids, entry.PlayerID)
	}
	return ids
}

func standingFor(t *testing.T, standings []models.Standing, playerID int) models.Standing {
	t.Helper()
	for _, entry := range standings {
		if entry.PlayerID == playerID {
			return entry
		}
	}
	t.Fatalf("no standing entry for player %d", playerID)
	return models.Standing{}
}
