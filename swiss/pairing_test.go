package swiss_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgi25/chess/swiss"
)

func historyOf(pairs ...[2]int) map[int]map[int]struct{} {
	history := make(map[int]map[int]struct{})
	add := func(a, b int) {
		if history[a] == nil {
			history[a] = make(map[int]struct{})
		}
		history[a][b] = struct{}{}
	}
	for _, p := range pairs {
		add(p[0], p[1])
		add(p[1], p[0])
	}
	return history
}

func TestPairingsAvoidRematches(t *testing.T) {
	// After round one (1v2, 3v4) the standings order is 1, 3, 4, 2.
	ranked := []int{1, 3, 4, 2}
	history := historyOf([2]int{1, 2}, [2]int{3, 4})

	matching, err := swiss.Pairings(ranked, history, nil)
	require.NoError(t, err)
	require.Len(t, matching.Pairs, 2)
	assert.Nil(t, matching.ByePlayer)
	assert.False(t, matching.RematchesAllowed)

	for _, pair := range matching.Pairs {
		_, played := history[pair[0]][pair[1]]
		assert.False(t, played, "pair %v repeats a previous matchup", pair)
	}
}

func TestPairingsFirstFeasibleInRankOrder(t *testing.T) {
	matching, err := swiss.Pairings([]int{1, 2, 3, 4, 5, 6}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, [][2]int{{1, 2}, {3, 4}, {5, 6}}, matching.Pairs)
}

func TestPairingsBacktrackPastDeadEnd(t *testing.T) {
	// 1v2 is blocked, so the search first tries 1v3, which strands the
	// blocked 2v4 tail. It must unwind and settle on {1,4},{2,3}.
	history := historyOf([2]int{1, 2}, [2]int{3, 4}, [2]int{2, 4})

	matching, err := swiss.Pairings([]int{1, 2, 3, 4}, history, nil)
	require.NoError(t, err)
	assert.False(t, matching.RematchesAllowed)
	assert.Equal(t, [][2]int{{1, 4}, {2, 3}}, matching.Pairs)
}

func TestPairingsOddPoolAssignsOneBye(t *testing.T) {
	matching, err := swiss.Pairings([]int{1, 2, 3, 4, 5}, nil, nil)
	require.NoError(t, err)

	require.NotNil(t, matching.ByePlayer)
	assert.Equal(t, 5, *matching.ByePlayer, "lowest-ranked player sits out")
	require.Len(t, matching.Pairs, 2)
	for _, pair := range matching.Pairs {
		assert.NotEqual(t, 5, pair[0])
		assert.NotEqual(t, 5, pair[1])
	}
}

func TestPairingsByeSkipsPlayersWithPriorBye(t *testing.T) {
	byeCounts := map[int]int{5: 1}

	matching, err := swiss.Pairings([]int{1, 2, 3, 4, 5}, nil, byeCounts)
	require.NoError(t, err)

	require.NotNil(t, matching.ByePlayer)
	assert.Equal(t, 4, *matching.ByePlayer, "next-lowest without a prior bye sits out")
}

func TestPairingsByeFallsThroughWhenEveryoneHadOne(t *testing.T) {
	byeCounts := map[int]int{1: 1, 2: 1, 3: 1, 4: 1, 5: 1}

	matching, err := swiss.Pairings([]int{1, 2, 3, 4, 5}, nil, byeCounts)
	require.NoError(t, err)

	require.NotNil(t, matching.ByePlayer)
	assert.Equal(t, 5, *matching.ByePlayer)
}

func TestPairingsRelaxedFallbackIsGlobalAndFlagged(t *testing.T) {
	// Complete round robin for four players: no rematch-free matching
	// exists, so the relaxed pass must produce the round and flag it.
	history := historyOf(
		[2]int{1, 2}, [2]int{1, 3}, [2]int{1, 4},
		[2]int{2, 3}, [2]int{2, 4}, [2]int{3, 4},
	)

	matching, err := swiss.Pairings([]int{1, 2, 3, 4}, history, nil)
	require.NoError(t, err)
	assert.True(t, matching.RematchesAllowed)
	require.Len(t, matching.Pairs, 2)
}

func TestPairingsDeterministic(t *testing.T) {
	ranked := []int{1, 3, 4, 2, 5, 6}
	history := historyOf([2]int{1, 2}, [2]int{3, 4}, [2]int{5, 6})

	first, err := swiss.Pairings(ranked, history, nil)
	require.NoError(t, err)
	second, err := swiss.Pairings(ranked, history, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPairingsDoesNotMutateInput(t *testing.T) {
	ranked := []int{1, 2, 3, 4, 5}
	_, err := swiss.Pairings(ranked, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 4, 5}, ranked)
}

func TestPairingsRejectsOversizedField(t *testing.T) {
	ranked := make([]int, swiss.MaxFieldSize+1)
	for i := range ranked {
		ranked[i] = i + 1
	}

	_, err := swiss.Pairings(ranked, nil, nil)
	require.Error(t, err)
}
