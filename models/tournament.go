package models

import "time"

// Tournament — агрегат лиги: владеет своими игроками и раундами.
// Межтурнирного общего состояния нет. Игроки и раунды отдаются
// отдельными полями state-ответа, а не вкладываются сюда.
type Tournament struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
