// cmd/server/server.go
package main

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/ScoreChallenge/internal/api"
	"github.com/codr1/ScoreChallenge/internal/api/auth"
	"github.com/codr1/ScoreChallenge/internal/api/game"
	"github.com/codr1/ScoreChallenge/internal/config"
)

func newServer(cfg *config.Config) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithAuth,
		api.WithContentType,
		api.WithRecovery,
		api.WithLogging,
		api.WithRequestID,
	)

	// Register routes
	registerRoutes(router)

	return &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func userOnly(h http.HandlerFunc) http.Handler {
	return api.RequireUser(h)
}

func adminOnly(h http.HandlerFunc) http.Handler {
	return api.RequireAdmin(h)
}

func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", auth.HandleIndex)

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Auth routes
	mux.HandleFunc("GET /login", auth.HandleLoginPage)
	mux.HandleFunc("POST /login", auth.HandleLogin)
	mux.HandleFunc("GET /register", auth.HandleRegisterPage)
	mux.HandleFunc("POST /register", auth.HandleRegister)
	mux.HandleFunc("POST /logout", auth.HandleLogout)

	// Game routes
	mux.Handle("GET /game", userOnly(game.HandleMatches))
	mux.Handle("GET /game/ranking", userOnly(game.HandleRanking))
	mux.Handle("GET /game/group-stage", userOnly(game.HandleGroupStage))
	mux.Handle("GET /game/group-stage/{groupId}", userOnly(game.HandleGroup))
	mux.Handle("GET /game/group-stage/{groupId}/{matchId}", userOnly(game.HandlePredictionPage))
	mux.Handle("POST /game/group-stage/{groupId}/{matchId}", userOnly(game.HandlePredictionSubmit))
	mux.Handle("GET /game/playoff-stage", userOnly(game.HandlePlayoffStage))
	mux.Handle("GET /game/playoff-stage/{playoffId}", userOnly(game.HandlePlayoff))
	mux.Handle("GET /game/playoff-stage/{playoffId}/{matchId}", userOnly(game.HandlePredictionPage))
	mux.Handle("POST /game/playoff-stage/{playoffId}/{matchId}", userOnly(game.HandlePredictionSubmit))

	// Admin routes
	mux.Handle("GET /game/admin/matches", adminOnly(game.HandleAdminMatches))
	mux.Handle("GET /game/admin/matches/{matchId}", adminOnly(game.HandleAdminResultPage))
	mux.Handle("POST /game/admin/matches/{matchId}", adminOnly(game.HandleAdminResultSubmit))

	// Static file handling with logging and environment awareness
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		// Default to the build directory if not specified
		staticDir = "build/bin/static"
	}
	fs := http.FileServer(http.Dir(staticDir))

	mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debug().
			Str("path", r.URL.Path).
			Str("static_dir", staticDir).
			Msg("Static file request")
		http.StripPrefix("/static/", fs).ServeHTTP(w, r)
	}))
}
