package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgi25/chess/db"
	"github.com/mgi25/chess/models"
)

func seededField(n int) []models.Player {
	players := make([]models.Player, 0, n)
	for i := 1; i <= n; i++ {
		players = append(players, models.Player{ID: 100 + i, Seed: i})
	}
	return players
}

func TestInitialPairingsTopHalfMeetsBottomHalf(t *testing.T) {
	players := seededField(8)

	pairings := db.InitialPairings(players)

	require.Len(t, pairings, 4)
	for i, pairing := range pairings {
		assert.Equal(t, i+1, pairing.Table)
		require.NotNil(t, pairing.Player2)
		// Seed i meets seed i+4: 1v5, 2v6, 3v7, 4v8.
		assert.Equal(t, players[i].ID, pairing.Player1)
		assert.Equal(t, players[i+4].ID, *pairing.Player2)
		assert.Equal(t, models.ResultUnplayed, pairing.Result)
	}
}

func TestInitialPairingsOddPoolEndsWithBye(t *testing.T) {
	players := seededField(9)

	pairings := db.InitialPairings(players)

	require.Len(t, pairings, 5)
	for _, pairing := range pairings[:4] {
		require.NotNil(t, pairing.Player2)
		assert.Equal(t, models.ResultUnplayed, pairing.Result)
	}

	bye := pairings[4]
	assert.Equal(t, 5, bye.Table)
	assert.Nil(t, bye.Player2)
	assert.Equal(t, models.ResultBye, bye.Result)
	// The lowest seed starts with the bye.
	assert.Equal(t, players[8].ID, bye.Player1)
}

func TestInitialPairingsEachPlayerAppearsOnce(t *testing.T) {
	players := seededField(9)

	pairings := db.InitialPairings(players)

	seen := make(map[int]int)
	for _, pairing := range pairings {
		seen[pairing.Player1]++
		if pairing.Player2 != nil {
			seen[*pairing.Player2]++
		}
	}
	require.Len(t, seen, len(players))
	for id, n := range seen {
		assert.Equalf(t, 1, n, "player %d seated %d times", id, n)
	}
}

func TestInitialPairingsDeterministicUnderEqualSeeds(t *testing.T) {
	players := []models.Player{
		{ID: 4, Seed: 2},
		{ID: 1, Seed: 1},
		{ID: 3, Seed: 2},
		{ID: 2, Seed: 1},
		{ID: 5, Seed: 3},
	}
	reversed := []models.Player{players[4], players[3], players[2], players[1], players[0]}

	first := db.InitialPairings(players)
	second := db.InitialPairings(reversed)

	// Equal seeds fall back to the id order, so input order never matters.
	require.Equal(t, first, second)
	require.Len(t, first, 3)
	assert.Equal(t, 1, first[0].Player1)
	assert.Equal(t, 3, *first[0].Player2)
	assert.Equal(t, 2, first[1].Player1)
	assert.Equal(t, 4, *first[1].Player2)
	assert.Equal(t, 5, first[2].Player1)
	assert.Nil(t, first[2].Player2)
}

func TestInitialPairingsLeavesInputUnsorted(t *testing.T) {
	players := []models.Player{
		{ID: 2, Seed: 2},
		{ID: 1, Seed: 1},
	}

	db.InitialPairings(players)

	assert.Equal(t, 2, players[0].ID)
	assert.Equal(t, 1, players[1].ID)
}
