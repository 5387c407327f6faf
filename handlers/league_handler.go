package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mgi25/chess/services"
)

type LeagueHandler struct {
	leagueService services.LeagueService
}

func NewLeagueHandler(ls services.LeagueService) *LeagueHandler {
	return &LeagueHandler{
		leagueService: ls,
	}
}

// GetStateHandler обрабатывает GET /api/tournaments/{tournamentID}/state.
// Возвращает полный снимок лиги за один запрос: правила, игроки, раунды,
// таблица и флаг canGenerateNextRound.
func (h *LeagueHandler) GetStateHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	state, err := h.leagueService.GetState(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, state, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetPlayersHandler обрабатывает GET /api/tournaments/{tournamentID}/players
func (h *LeagueHandler) GetPlayersHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	state, err := h.leagueService.GetState(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": state.Players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetRoundsHandler обрабатывает GET /api/tournaments/{tournamentID}/rounds
func (h *LeagueHandler) GetRoundsHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	state, err := h.leagueService.GetState(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"rounds":               state.Rounds,
		"canGenerateNextRound": state.CanGenerateNextRound,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetStandingsHandler обрабатывает GET /api/tournaments/{tournamentID}/standings
func (h *LeagueHandler) GetStandingsHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.leagueService.GetStandings(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetRulesHandler обрабатывает GET /api/rules
func (h *LeagueHandler) GetRulesHandler(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"rules": services.RulesText}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SetMatchResultHandler обрабатывает PUT /api/tournaments/{tournamentID}/matches/{matchID}
func (h *LeagueHandler) SetMatchResultHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Result string `json:"result"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.leagueService.SetMatchResult(r.Context(), tournamentID, matchID, input.Result); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "ok"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SetAdjustmentHandler обрабатывает PUT /api/tournaments/{tournamentID}/players/{playerID}/adjustment.
// Поле addScore принимает число или числовую строку; мусор превращается в 0.
func (h *LeagueHandler) SetAdjustmentHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		AddScore json.RawMessage `json:"addScore"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	addScore, err := h.leagueService.SetAdjustment(r.Context(), tournamentID, playerID, input.AddScore)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"playerId": playerID, "addScore": addScore}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GenerateNextRoundHandler обрабатывает POST /api/tournaments/{tournamentID}/rounds
func (h *LeagueHandler) GenerateNextRoundHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	generated, err := h.leagueService.GenerateNextRound(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, generated, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ResetHandler обрабатывает POST /api/tournaments/{tournamentID}/reset
func (h *LeagueHandler) ResetHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.leagueService.Reset(r.Context(), tournamentID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "reset"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
