package services

import (
	"errors"

	"github.com/mgi25/chess/swiss"
)

// Общие ошибки, используемые в сервисах и маппинге HTTP.
var (
	// Ресурсы
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrMatchNotFound      = errors.New("match not found")

	// Ошибки валидации и бизнес-правил
	ErrInvalidResult      = errors.New("invalid result value")
	ErrByeResultImmutable = errors.New("bye matches must remain BYE")

	// Прекондиция генерации раунда
	ErrRoundsIncomplete = errors.New("all matches must be completed before generating the next round")

	// Ошибка подбора пар пробрасывается из движка как есть
	ErrPairingImpossible = swiss.ErrPairingImpossible

	// Экспорт снапшотов
	ErrExportUnavailable = errors.New("snapshot upload is not configured")
)
