package swiss

import "github.com/mgi25/chess/models"

// OpponentHistory derives, from the full round history, the set of real
// opponents every player has already faced. The mapping is symmetric: if A
// faced B, both sets contain the other id. Bye pairings never contribute,
// since a bye is not an opponent for rematch purposes.
//
// Pure function, recomputed per call; no state is kept between invocations.
func OpponentHistory(players []models.Player, rounds []models.Round) map[int]map[int]struct{} {
	history := make(map[int]map[int]struct{}, len(players))
	for _, player := range players {
		history[player.ID] = make(map[int]struct{})
	}

	for _, round := range rounds {
		for _, pairing := range round.Pairings {
			if pairing.Player2 == nil {
				continue
			}
			p1, p2 := pairing.Player1, *pairing.Player2
			if _, ok := history[p1]; !ok {
				history[p1] = make(map[int]struct{})
			}
			if _, ok := history[p2]; !ok {
				history[p2] = make(map[int]struct{})
			}
			history[p1][p2] = struct{}{}
			history[p2][p1] = struct{}{}
		}
	}
	return history
}

// ByeCounts derives how many byes each player has received so far.
// Used by the pairing engine to avoid awarding a second bye while
// anyone is still without one.
func ByeCounts(rounds []models.Round) map[int]int {
	counts := make(map[int]int)
	for _, round := range rounds {
		for _, pairing := range round.Pairings {
			if pairing.Player2 == nil {
				counts[pairing.Player1]++
			}
		}
	}
	return counts
}
