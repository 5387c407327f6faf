package swiss_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgi25/chess/models"
	"github.com/mgi25/chess/swiss"
)

func seedPlayers(n int) []models.Player {
	players := make([]models.Player, 0, n)
	for i := 1; i <= n; i++ {
		players = append(players, models.Player{ID: i, Name: playerName(i), Seed: i})
	}
	return players
}

func playerName(i int) string {
	names := []string{"", "Arjun", "Blessy", "Chris", "Devika", "Evan", "Farhan", "Gita", "Hari", "Irene"}
	if i < len(names) {
		return names[i]
	}
	return "Player" + string(rune('A'+i))
}

func intPtr(v int) *int { return &v }

func pairing(table, p1 int, p2 *int, result models.Result) models.Pairing {
	return models.Pairing{Table: table, Player1: p1, Player2: p2, Result: result}
}

func round(number int, pairings ...models.Pairing) models.Round {
	return models.Round{RoundNumber: number, Pairings: pairings}
}

func TestOpponentHistoryIsSymmetric(t *testing.T) {
	players := seedPlayers(4)
	rounds := []models.Round{
		round(1,
			pairing(1, 1, intPtr(2), models.ResultPlayer1),
			pairing(2, 3, intPtr(4), models.ResultDraw),
		),
		round(2,
			pairing(1, 1, intPtr(3), models.ResultUnplayed),
			pairing(2, 2, intPtr(4), models.ResultUnplayed),
		),
	}

	history := swiss.OpponentHistory(players, rounds)

	require.Len(t, history, 4)
	assert.Contains(t, history[1], 2)
	assert.Contains(t, history[2], 1)
	assert.Contains(t, history[1], 3)
	assert.Contains(t, history[3], 1)
	assert.Contains(t, history[2], 4)
	assert.NotContains(t, history[1], 4)
}

func TestOpponentHistoryIgnoresByes(t *testing.T) {
	players := seedPlayers(3)
	rounds := []models.Round{
		round(1,
			pairing(1, 1, intPtr(2), models.ResultPlayer1),
			pairing(2, 3, nil, models.ResultBye),
		),
	}

	history := swiss.OpponentHistory(players, rounds)

	assert.Empty(t, history[3], "a bye is not an opponent")
	assert.Len(t, history[1], 1)
}

func TestOpponentHistoryEmptyWithoutRounds(t *testing.T) {
	history := swiss.OpponentHistory(seedPlayers(2), nil)

	require.Len(t, history, 2)
	assert.Empty(t, history[1])
	assert.Empty(t, history[2])
}

func TestByeCounts(t *testing.T) {
	rounds := []models.Round{
		round(1,
			pairing(1, 1, intPtr(2), models.ResultPlayer1),
			pairing(2, 3, nil, models.ResultBye),
		),
		round(2,
			pairing(1, 1, intPtr(3), models.ResultDraw),
			pairing(2, 2, nil, models.ResultBye),
		),
	}

	counts := swiss.ByeCounts(rounds)

	assert.Equal(t, 1, counts[3])
	assert.Equal(t, 1, counts[2])
	assert.Zero(t, counts[1])
}
