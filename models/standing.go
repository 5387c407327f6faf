package models

// Standing — производная строка турнирной таблицы. Никогда не сохраняется:
// пересчитывается из истории раундов при каждом запросе.
type Standing struct {
	PlayerID          int      `json:"id"`
	Seed              int      `json:"seed"`
	Name              string   `json:"name"`
	DisplayName       string   `json:"displayName"`
	Wins              int      `json:"wins"`
	Losses            int      `json:"losses"`
	Draws             int      `json:"draws"`
	Byes              int      `json:"byes"`
	GamesPlayed       int      `json:"gamesPlayed"`
	BasePoints        float64  `json:"basePoints"`
	AddScore          float64  `json:"addScore"`
	TotalPoints       float64  `json:"totalPoints"`
	WinPercent        float64  `json:"winPercent"`
	OpponentSummaries []string `json:"opponentSummaries"`
}
