package web

import (
	"encoding/json"
	"net/http"
	"strings"
)

// getUserID retrieves the user ID from the session
func (s *Server) getUserID(r *http.Request) (int64, bool) {
	session, err := s.sessionStore.Get(r, sessionName)
	if err != nil {
		return 0, false
	}

	userID, ok := session.Values[sessionUserIDKey].(int64)
	if !ok {
		return 0, false
	}

	return userID, true
}

// setUserID sets the user ID in the session
func (s *Server) setUserID(w http.ResponseWriter, r *http.Request, userID int64) error {
	session, err := s.sessionStore.Get(r, sessionName)
	if err != nil {
		return err
	}

	session.Values[sessionUserIDKey] = userID
	return session.Save(r, w)
}

// clearSession clears the session
func (s *Server) clearSession(w http.ResponseWriter, r *http.Request) error {
	session, err := s.sessionStore.Get(r, sessionName)
	if err != nil {
		return err
	}

	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// requireAuth is middleware that ensures the request carries a session
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.getUserID(r); !ok {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "not logged in"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

type loginRequest struct {
	Username string `json:"username"`
}

// handleLogin creates the user on first login and stores their id in
// the session. Identity only; there is no password or authorization
// layer here.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "username is required"})
		return
	}

	user, err := s.store.GetUserByUsername(username)
	if err != nil {
		user, err = s.store.CreateUser(username, nil)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to create user"})
			return
		}
	}

	if err := s.setUserID(w, r, user.ID); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to save session"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})
}

// handleLogout clears the session
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.clearSession(w, r); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to clear session"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
