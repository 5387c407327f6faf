package swiss

import "github.com/mgi25/chess/models"

// CanGenerateNextRound gates round generation: every pairing in every
// existing round must carry a decided result (byes count as decided).
// A tournament with no rounds at all is not ready either: round one is
// seeded at initialization, so its absence means broken state.
//
// The check is read-only. Callers that go on to create a round must
// re-evaluate it inside the same transaction to avoid racing a concurrent
// generation request.
func CanGenerateNextRound(rounds []models.Round) bool {
	if len(rounds) == 0 {
		return false
	}
	for _, round := range rounds {
		for _, pairing := range round.Pairings {
			if !pairing.Result.Decided() {
				return false
			}
		}
	}
	return true
}
