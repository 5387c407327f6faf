package models

// Pairing — одна партия раунда. Player2 == nil означает bye,
// и тогда Result всегда BYE.
type Pairing struct {
	ID          int    `json:"id"`
	RoundID     int    `json:"-"`
	Table       int    `json:"table"`
	Player1     int    `json:"player1"`
	Player2     *int   `json:"player2"`
	Result      Result `json:"result"`
	Player1Name string `json:"player1Name,omitempty"`
	Player2Name string `json:"player2Name,omitempty"`
}

// IsBye reports whether the pairing is an unopposed slot.
func (p Pairing) IsBye() bool {
	return p.Player2 == nil
}

type Round struct {
	ID           int       `json:"id"`
	TournamentID int       `json:"-"`
	RoundNumber  int       `json:"roundNumber"`
	Pairings     []Pairing `json:"pairings"`
}
