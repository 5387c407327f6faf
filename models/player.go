package models

// Player — участник лиги. Все поля кроме AddScore неизменяемы после посева.
type Player struct {
	ID             int     `json:"id"`
	TournamentID   int     `json:"tournament_id"`
	Name           string  `json:"name"`
	FullName       string  `json:"fullName"`
	Contact        string  `json:"contact"`
	Department     string  `json:"department"`
	RegisterNumber string  `json:"registerNumber"`
	Seed           int     `json:"seed"`
	AddScore       float64 `json:"addScore"`
}
