package devserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/palemoky/infinity-box/internal/api"
)

type loginRequest struct {
	Username string `json:"username"`
}

type loginResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		http.Error(w, "username is required", http.StatusBadRequest)
		return
	}
	token, err := s.Login(username)
	if err != nil {
		http.Error(w, "failed to issue token", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{ID: username, Token: token})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	a, err := s.ledger.Get(playerIDFromContext(r.Context()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	coins := a.Coins
	writeJSON(w, http.StatusOK, api.Profile{
		ID:        a.ID,
		Username:  a.Username,
		Coins:     &coins,
		GoldCoins: &coins,
	})
}

func (s *Server) handleUpdateBalance(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		http.Error(w, "sessionId is required", http.StatusBadRequest)
		return
	}

	balance, err := s.ledger.Apply(playerIDFromContext(r.Context()), req.GameType, req.BalanceChange)
	switch {
	case errors.Is(err, errInsufficient):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"newBalance":    balance,
		"balanceChange": req.BalanceChange,
	})
}

func (s *Server) handleSessionEnd(w http.ResponseWriter, r *http.Request) {
	var summary map[string]any
	if err := json.NewDecoder(r.Body).Decode(&summary); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if err := s.ledger.EndSession(playerIDFromContext(r.Context())); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	s.mu.Lock()
	s.summaries = append(s.summaries, summary)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handlePlayerStats(w http.ResponseWriter, r *http.Request) {
	a, err := s.ledger.Get(playerIDFromContext(r.Context()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"coins":       a.Coins,
		"gamesPlayed": a.GamesPlayed,
		"totalWon":    a.TotalWon,
		"totalSpent":  a.TotalSpent,
		"netResult":   a.TotalWon - a.TotalSpent,
		"sessions":    a.Sessions,
		"byGame":      a.ByGame,
	})
}
