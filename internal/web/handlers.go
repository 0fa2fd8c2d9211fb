package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"mission-board/internal/board"

	"github.com/go-chi/chi/v5"
)

// handleGetBoard returns the user's board, creating it on first access
func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.getUserID(r)

	snap, err := s.engine.Board(userID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

type selectMissionRequest struct {
	ProposalID string `json:"proposal_id"`
}

// handleSelectMission commits a proposal into a slot
func (s *Server) handleSelectMission(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.getUserID(r)
	slot := board.Slot(chi.URLParam(r, "slot"))

	var req selectMissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProposalID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "proposal_id is required"})
		return
	}

	snap, err := s.engine.SelectMission(userID, slot, req.ProposalID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleReroll regenerates a slot's proposals, consuming reroll quota
func (s *Server) handleReroll(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.getUserID(r)
	slot := board.Slot(chi.URLParam(r, "slot"))

	snap, err := s.engine.Reroll(userID, slot)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleClaim claims a completed mission's reward
func (s *Server) handleClaim(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.getUserID(r)
	missionID := chi.URLParam(r, "missionID")

	sel, err := s.engine.ClaimMissionReward(userID, missionID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sel)
}

type linkDailyTaskRequest struct {
	DailyTaskID int64 `json:"daily_task_id"`
}

// handleLinkDailyTask ties a daily task to the active hunt mission
func (s *Server) handleLinkDailyTask(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.getUserID(r)
	missionID := chi.URLParam(r, "missionID")

	var req linkDailyTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DailyTaskID == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "daily_task_id is required"})
		return
	}

	snap, err := s.engine.LinkDailyTask(userID, missionID, req.DailyTaskID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

type bossPhase2Request struct {
	Proof string `json:"proof"`
}

// handleBossPhase2 submits the phase-2 proof for a depleted shield
func (s *Server) handleBossPhase2(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.getUserID(r)
	missionID := chi.URLParam(r, "missionID")

	var req bossPhase2Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	boss, err := s.engine.RegisterBossPhase2(userID, missionID, req.Proof)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, boss)
}

// handleDailySubmit folds the booster into a daily submission result.
// The daily-quest log itself is owned by an external collaborator; this
// endpoint receives the values it computed and returns them boosted.
func (s *Server) handleDailySubmit(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.getUserID(r)

	var ev board.CompletionEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil || ev.Date == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "date is required"})
		return
	}

	res, err := s.engine.ApplyHuntBoost(userID, ev)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleGetProfile returns the user's profile and game mode
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.getUserID(r)

	user, err := s.store.GetUserByID(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load user"})
		return
	}
	mode, err := s.store.GameMode(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load game mode"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":   user.ID,
		"username":  user.Username,
		"game_mode": mode,
	})
}

type setGameModeRequest struct {
	GameMode string `json:"game_mode"`
}

var validGameModes = map[string]bool{
	board.GameModeLow:    true,
	board.GameModeChill:  true,
	board.GameModeFlow:   true,
	board.GameModeEvolve: true,
}

// handleSetGameMode updates the user's game-mode profile
func (s *Server) handleSetGameMode(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.getUserID(r)

	var req setGameModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	mode := strings.ToUpper(strings.TrimSpace(req.GameMode))
	if mode != "" && !validGameModes[mode] {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "game_mode must be one of LOW, CHILL, FLOW, EVOLVE"})
		return
	}

	if err := s.store.SetGameMode(userID, mode); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to set game mode"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"game_mode": mode})
}
