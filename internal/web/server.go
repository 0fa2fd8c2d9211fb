package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"

	"mission-board/internal/board"
	"mission-board/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
)

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

const sessionName = "mission-board-session"
const sessionUserIDKey = "user_id"

// Server represents the HTTP server
type Server struct {
	engine       *board.Engine
	store        *store.Store
	sessionStore *sessions.CookieStore
}

// NewServer creates a new Server instance
func NewServer(engine *board.Engine, st *store.Store, sessionSecret string) (*Server, error) {
	// Create session store
	cookies := sessions.NewCookieStore([]byte(sessionSecret))

	// Detect if running behind HTTPS by checking PUBLIC_URL environment variable
	publicURL := getEnv("PUBLIC_URL", "http://localhost:8080")
	isHTTPS := len(publicURL) >= 5 && publicURL[:5] == "https"

	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isHTTPS,
		SameSite: http.SameSiteLaxMode,
	}

	return &Server{
		engine:       engine,
		store:        st,
		sessionStore: cookies,
	}, nil
}

// Router creates and configures the HTTP router
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	// Public routes
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/api/board", s.handleGetBoard)
		r.Post("/api/board/slots/{slot}/select", s.handleSelectMission)
		r.Post("/api/board/slots/{slot}/reroll", s.handleReroll)
		r.Post("/api/missions/{missionID}/claim", s.handleClaim)
		r.Post("/api/missions/{missionID}/link", s.handleLinkDailyTask)
		r.Post("/api/missions/{missionID}/boss/phase2", s.handleBossPhase2)
		r.Post("/api/daily/submit", s.handleDailySubmit)

		r.Get("/api/profile", s.handleGetProfile)
		r.Post("/api/profile/mode", s.handleSetGameMode)
	})

	return r
}

// writeJSON serializes v as the response body
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeEngineError maps engine errors onto HTTP statuses. Every engine
// error is caller-correctable; only unknown failures become 500s.
func writeEngineError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, board.ErrMissionNotFound), errors.Is(err, board.ErrMissionNotActive):
		status = http.StatusNotFound
	case errors.Is(err, board.ErrUnknownSlot):
		status = http.StatusBadRequest
	case errors.Is(err, board.ErrRerollExhausted),
		errors.Is(err, board.ErrMissionMismatch),
		errors.Is(err, board.ErrBossNotReady),
		errors.Is(err, board.ErrClaimNotReady):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
