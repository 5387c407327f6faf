package swiss

import (
	"fmt"
	"sort"

	"github.com/mgi25/chess/models"
)

type playerStats struct {
	player     models.Player
	wins       int
	losses     int
	draws      int
	byes       int
	basePoints float64
	opponents  []int // in encounter order, -1 marks a bye
	met        map[int]struct{}
}

const byeOpponentMarker = -1

// Standings recomputes the full ranked table from the player list and the
// ordered round history. Nothing is cached: the result is a pure function of
// stored state, so manual corrections and result edits are always reflected.
//
// Ranking order: totalPoints desc, basePoints desc, winPercent desc, seed asc,
// then player id asc. Seeds are not guaranteed unique in the source data, so
// the id key is what makes the order strict and reproducible.
func Standings(players []models.Player, rounds []models.Round) []models.Standing {
	stats := make(map[int]*playerStats, len(players))
	order := make([]int, 0, len(players))
	for _, player := range players {
		stats[player.ID] = &playerStats{
			player: player,
			met:    make(map[int]struct{}),
		}
		order = append(order, player.ID)
	}

	for _, round := range rounds {
		for _, pairing := range round.Pairings {
			p1, ok := stats[pairing.Player1]
			if !ok {
				continue
			}
			var p2 *playerStats
			if pairing.Player2 != nil {
				p2 = stats[*pairing.Player2]
				p1.recordOpponent(*pairing.Player2)
				if p2 != nil {
					p2.recordOpponent(pairing.Player1)
				}
			}

			switch pairing.Result {
			case models.ResultPlayer1:
				p1.wins++
				p1.basePoints++
				if p2 != nil {
					p2.losses++
				}
			case models.ResultPlayer2:
				p1.losses++
				if p2 != nil {
					p2.wins++
					p2.basePoints++
				}
			case models.ResultDraw:
				p1.draws++
				p1.basePoints += 0.5
				if p2 != nil {
					p2.draws++
					p2.basePoints += 0.5
				}
			case models.ResultBye:
				p1.byes++
				p1.basePoints++
				p1.recordOpponent(byeOpponentMarker)
			case models.ResultUnplayed:
				// pending games carry no effect and are excluded from gamesPlayed
			}
		}
	}

	playersByID := make(map[int]models.Player, len(players))
	for _, player := range players {
		playersByID[player.ID] = player
	}

	standings := make([]models.Standing, 0, len(players))
	for _, id := range order {
		st := stats[id]
		gamesPlayed := st.wins + st.losses + st.draws + st.byes
		totalPoints := st.basePoints + st.player.AddScore

		// Win percent comes from base points only: organizer adjustments
		// must not distort the efficiency metric.
		winPercent := 0.0
		if gamesPlayed > 0 {
			winPercent = st.basePoints / float64(gamesPlayed) * 100
		}

		name := st.player.FullName
		if name == "" {
			name = st.player.Name
		}

		standings = append(standings, models.Standing{
			PlayerID:          id,
			Seed:              st.player.Seed,
			Name:              name,
			DisplayName:       st.player.Name,
			Wins:              st.wins,
			Losses:            st.losses,
			Draws:             st.draws,
			Byes:              st.byes,
			GamesPlayed:       gamesPlayed,
			BasePoints:        st.basePoints,
			AddScore:          st.player.AddScore,
			TotalPoints:       totalPoints,
			WinPercent:        winPercent,
			OpponentSummaries: summarizeOpponents(st.opponents, playersByID),
		})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if a.BasePoints != b.BasePoints {
			return a.BasePoints > b.BasePoints
		}
		if a.WinPercent != b.WinPercent {
			return a.WinPercent > b.WinPercent
		}
		if a.Seed != b.Seed {
			return a.Seed < b.Seed
		}
		return a.PlayerID < b.PlayerID
	})

	return standings
}

func (s *playerStats) recordOpponent(id int) {
	if id != byeOpponentMarker {
		if _, seen := s.met[id]; seen {
			return
		}
		s.met[id] = struct{}{}
	}
	s.opponents = append(s.opponents, id)
}

// summarizeOpponents renders the faced-opponents column. The "Bye" marker is
// display only and plays no part in rematch checks.
func summarizeOpponents(opponents []int, playersByID map[int]models.Player) []string {
	summaries := make([]string, 0, len(opponents))
	for _, id := range opponents {
		if id == byeOpponentMarker {
			summaries = append(summaries, "Bye")
			continue
		}
		opponent, ok := playersByID[id]
		if !ok {
			summaries = append(summaries, fmt.Sprintf("#%d", id))
			continue
		}
		name := opponent.Name
		if name == "" {
			name = opponent.FullName
		}
		if name == "" {
			name = "Unknown"
		}
		summaries = append(summaries, fmt.Sprintf("%s (#%d)", name, id))
	}
	return summaries
}
