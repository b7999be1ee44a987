package api

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/gebeta/geoguess/internal/config"
	"github.com/gebeta/geoguess/internal/leaderboard"
)

// Pinger is the slice of the database handle the health check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

type API struct {
	router *mux.Router
	config *config.Config
	scores *leaderboard.Service
	db     Pinger
}

func New(cfg *config.Config, scores *leaderboard.Service, database Pinger) *API {
	api := &API{
		router: mux.NewRouter(),
		config: cfg,
		scores: scores,
		db:     database,
	}

	api.setupRoutes()
	return api
}

func (a *API) setupRoutes() {
	a.router.Use(requestLogger)

	a.router.HandleFunc("/api/scores", a.handleSubmitScore).Methods("POST")
	a.router.HandleFunc("/api/leaderboard", a.handleLeaderboard).Methods("GET")
	a.router.HandleFunc("/api/leaderboard/city", a.handleCityLeaderboard).Methods("GET")
	a.router.HandleFunc("/api/cities", a.handleCities).Methods("GET")
	a.router.HandleFunc("/api/round", a.handleRound).Methods("GET")
	a.router.HandleFunc("/api/health", a.handleHealth).Methods("GET")
}

func (a *API) Start() error {
	// Note: when AllowedOrigins is "*", AllowCredentials must stay false.
	corsOptions := cors.Options{
		AllowedOrigins:   a.config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: false,
	}

	handler := cors.New(corsOptions).Handler(a.router)

	log.Printf("API server listening on http://%s", a.config.WebBind)
	return http.ListenAndServe(a.config.WebBind, handler)
}
