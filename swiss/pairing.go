package swiss

import (
	"errors"
	"fmt"
)

// MaxFieldSize bounds the pairing pool. The search is exponential in the
// worst case; history constraints prune heavily after round one, which keeps
// tournament-scale fields (tens to low hundreds of players) cheap, but a
// hard ceiling protects the process from pathological input.
const MaxFieldSize = 512

// ErrPairingImpossible is fatal: neither the strict pass nor the relaxed
// fallback could complete a matching. No partial round is ever produced.
var ErrPairingImpossible = errors.New("unable to create swiss pairings without conflicts")

// Matching is the output of the pairing engine: ordered pairs plus at most
// one bye. Table numbers follow pair order, with the bye taking the last
// table.
type Matching struct {
	Pairs [][2]int

	// ByePlayer is set when the pool size was odd.
	ByePlayer *int

	// RematchesAllowed flags that the strict pass exhausted every
	// possibility and the round was built by the relaxed fallback,
	// so it may contain repeat matchups.
	RematchesAllowed bool
}

// Pairings produces a rematch-free matching for the next round.
//
// rankedIDs must be the player ids in standings rank order, best first. The
// matcher walks the pool top-down: the highest-ranked unpaired player tries
// candidates in rank order, skipping anyone already in its opponent-history
// set, and recurses on the remainder. The first complete matching wins: it
// is "first feasible", not optimal.
//
// If the strict search fails for the entire pool, one global relaxed pass
// reruns the search with the history check disabled. The fallback is never
// applied pair-by-pair.
//
// For an odd pool one player sits out first: the lowest-ranked player who
// has not yet received a bye, or the plain lowest-ranked once everyone has
// had one.
func Pairings(rankedIDs []int, history map[int]map[int]struct{}, byeCounts map[int]int) (*Matching, error) {
	if len(rankedIDs) > MaxFieldSize {
		return nil, fmt.Errorf("field of %d players exceeds the supported maximum of %d", len(rankedIDs), MaxFieldSize)
	}

	pool := make([]int, len(rankedIDs))
	copy(pool, rankedIDs)

	matching := &Matching{}
	if len(pool)%2 == 1 {
		var bye int
		bye, pool = removeByePlayer(pool, byeCounts)
		matching.ByePlayer = &bye
	}

	pairs, ok := match(pool, history, false)
	if !ok {
		pairs, ok = match(pool, history, true)
		matching.RematchesAllowed = ok
	}
	if !ok {
		return nil, ErrPairingImpossible
	}

	matching.Pairs = pairs
	return matching, nil
}

// removeByePlayer picks the sitting-out player from an odd pool and returns
// the even remainder. Candidates are scanned from the bottom of the ranking;
// players with a prior bye are passed over until none are left.
func removeByePlayer(pool []int, byeCounts map[int]int) (int, []int) {
	idx := len(pool) - 1
	for i := len(pool) - 1; i >= 0; i-- {
		if byeCounts[pool[i]] == 0 {
			idx = i
			break
		}
	}
	bye := pool[idx]
	rest := make([]int, 0, len(pool)-1)
	rest = append(rest, pool[:idx]...)
	rest = append(rest, pool[idx+1:]...)
	return bye, rest
}

// match runs the depth-first backtracking search over an even-sized,
// rank-ordered pool. Each branch works on its own copy of the remaining
// candidates, so repeated or concurrent invocations never observe partially
// mutated shared state.
func match(pool []int, history map[int]map[int]struct{}, allowRematches bool) ([][2]int, bool) {
	if len(pool) == 0 {
		return nil, true
	}

	player := pool[0]
	rest := pool[1:]

	for i, opponent := range rest {
		if !allowRematches {
			if _, played := history[player][opponent]; played {
				continue
			}
		}

		remaining := make([]int, 0, len(rest)-1)
		remaining = append(remaining, rest[:i]...)
		remaining = append(remaining, rest[i+1:]...)

		if tail, ok := match(remaining, history, allowRematches); ok {
			pairs := make([][2]int, 0, len(pool)/2)
			pairs = append(pairs, [2]int{player, opponent})
			pairs = append(pairs, tail...)
			return pairs, true
		}
	}
	return nil, false
}
