package db

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/mgi25/chess/models"
	"github.com/mgi25/chess/repositories"
)

// DefaultTournamentName is the league created by the initial seed.
const DefaultTournamentName = "Inter-Department Chess League"

// seedPlayers is the fixed entry list of the initial league. Nine players
// keep the pool odd, so the seeded first round carries a bye.
var seedPlayers = []models.Player{
	{Name: "Arjun", FullName: "Arjun Menon", Contact: "arjun.menon@college.edu", Department: "CSE", RegisterNumber: "21CSE014", Seed: 1},
	{Name: "Blessy", FullName: "Blessy Thomas", Contact: "blessy.thomas@college.edu", Department: "ECE", RegisterNumber: "21ECE042", Seed: 2},
	{Name: "Chris", FullName: "Chris Varghese", Contact: "chris.varghese@college.edu", Department: "MECH", RegisterNumber: "21MEC007", Seed: 3},
	{Name: "Devika", FullName: "Devika Nair", Contact: "devika.nair@college.edu", Department: "CSE", RegisterNumber: "21CSE029", Seed: 4},
	{Name: "Evan", FullName: "Evan D'Souza", Contact: "evan.dsouza@college.edu", Department: "CIVIL", RegisterNumber: "21CIV018", Seed: 5},
	{Name: "Farhan", FullName: "Farhan Ali", Contact: "farhan.ali@college.edu", Department: "EEE", RegisterNumber: "21EEE003", Seed: 6},
	{Name: "Gita", FullName: "Gita Ramesh", Contact: "gita.ramesh@college.edu", Department: "ECE", RegisterNumber: "21ECE055", Seed: 7},
	{Name: "Hari", FullName: "Hari Prasad", Contact: "hari.prasad@college.edu", Department: "MECH", RegisterNumber: "21MEC031", Seed: 8},
	{Name: "Irene", FullName: "Irene Joseph", Contact: "irene.joseph@college.edu", Department: "CSE", RegisterNumber: "21CSE047", Seed: 9},
}

// InitialPairings builds the seeded first round for a player list: the top
// half of the seeding meets the bottom half table by table, and with an odd
// pool the lowest seed starts with the bye on the last table. Real matches
// start UNPLAYED, the bye is fixed at BYE.
//
// Reset recomputes this from the stored players, so the restored round one
// is always identical to the seeded one.
func InitialPairings(players []models.Player) []models.Pairing {
	bySeed := make([]models.Player, len(players))
	copy(bySeed, players)
	sort.Slice(bySeed, func(i, j int) bool {
		if bySeed[i].Seed != bySeed[j].Seed {
			return bySeed[i].Seed < bySeed[j].Seed
		}
		return bySeed[i].ID < bySeed[j].ID
	})

	numPairs := len(bySeed) / 2
	pairings := make([]models.Pairing, 0, numPairs+1)
	for i := 0; i < numPairs; i++ {
		p2 := bySeed[i+numPairs].ID
		pairings = append(pairings, models.Pairing{
			Table:   i + 1,
			Player1: bySeed[i].ID,
			Player2: &p2,
			Result:  models.ResultUnplayed,
		})
	}
	if len(bySeed)%2 == 1 {
		pairings = append(pairings, models.Pairing{
			Table:   numPairs + 1,
			Player1: bySeed[len(bySeed)-1].ID,
			Result:  models.ResultBye,
		})
	}
	return pairings
}

// Seed creates the default tournament with its player list and seeded first
// round, going through the same repositories the services use. It is a
// no-op when any tournament already exists.
func Seed(ctx context.Context, database *sql.DB) error {
	tournamentRepo := repositories.NewPostgresTournamentRepository(database)
	playerRepo := repositories.NewPostgresPlayerRepository(database)
	roundRepo := repositories.NewPostgresRoundRepository(database)

	count, err := tournamentRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for existing tournaments: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	tournament := &models.Tournament{Name: DefaultTournamentName}
	if err := tournamentRepo.Create(ctx, tx, tournament); err != nil {
		return fmt.Errorf("failed to seed tournament: %w", err)
	}

	players := make([]models.Player, len(seedPlayers))
	copy(players, seedPlayers)
	for i := range players {
		players[i].TournamentID = tournament.ID
		if err := playerRepo.Create(ctx, tx, &players[i]); err != nil {
			return fmt.Errorf("failed to seed player %q: %w", players[i].Name, err)
		}
	}

	round := models.Round{
		TournamentID: tournament.ID,
		RoundNumber:  1,
		Pairings:     InitialPairings(players),
	}
	if err := roundRepo.CreateRound(ctx, tx, &round); err != nil {
		return fmt.Errorf("failed to seed first round: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}
	return nil
}
