package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gebeta/geoguess/internal/geoscore"
	"github.com/gebeta/geoguess/internal/leaderboard"
	"github.com/gebeta/geoguess/internal/places"
)

type submitRequest struct {
	PlayerID    string   `json:"playerId"`
	DisplayName string   `json:"displayName"`
	AvatarRef   string   `json:"avatarRef"`
	Score       int      `json:"score"`
	City        string   `json:"city"`
	GameMode    string   `json:"gameMode"`
	DistanceKm  *float64 `json:"distanceKm"`
}

type submitResponse struct {
	Success           bool                 `json:"success"`
	ScoreID           string               `json:"scoreId"`
	Action            leaderboard.Action   `json:"action"`
	Tier              *geoscore.Tier       `json:"tier,omitempty"`
	GlobalLeaderboard []leaderboard.Ranked `json:"globalLeaderboard"`
	CityLeaderboard   []leaderboard.Ranked `json:"cityLeaderboard"`
}

type leaderboardResponse struct {
	City          string               `json:"city,omitempty"`
	Leaderboard   []leaderboard.Ranked `json:"leaderboard"`
	UserBestScore *leaderboard.Ranked  `json:"userBestScore,omitempty"`
	Total         int                  `json:"total"`
}

func (a *API) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec := leaderboard.Record{
		PlayerID:    req.PlayerID,
		DisplayName: req.DisplayName,
		AvatarRef:   req.AvatarRef,
		Score:       req.Score,
		Mode:        leaderboard.Mode(req.GameMode),
		Place:       req.City,
		DistanceKm:  req.DistanceKm,
	}

	res, err := a.scores.Submit(r.Context(), rec)
	if err != nil {
		switch {
		case errors.Is(err, leaderboard.ErrValidation):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, leaderboard.ErrConflict):
			respondError(w, http.StatusConflict, "score submission conflicted, please retry")
		default:
			respondError(w, http.StatusInternalServerError, "failed to submit score")
		}
		return
	}

	global, err := a.scores.Leaderboard(r.Context(), leaderboard.Filter{}, a.config.GlobalLimit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load leaderboard")
		return
	}
	city, err := a.scores.Leaderboard(r.Context(), leaderboard.Filter{Place: rec.Place}, a.config.CityLimit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load city leaderboard")
		return
	}

	resp := submitResponse{
		Success:           true,
		ScoreID:           res.Record.ID,
		Action:            res.Action,
		GlobalLeaderboard: global,
		CityLeaderboard:   city,
	}
	if req.DistanceKm != nil {
		tier := geoscore.TierFor(*req.DistanceKm)
		resp.Tier = &tier
	}
	respondJSON(w, http.StatusOK, resp)
}

func (a *API) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	filter, limit, ok := a.parseBoardQuery(w, r, a.config.GlobalLimit)
	if !ok {
		return
	}
	a.writeBoard(w, r, "", filter, limit)
}

func (a *API) handleCityLeaderboard(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		respondError(w, http.StatusBadRequest, "city parameter is required")
		return
	}

	filter, limit, ok := a.parseBoardQuery(w, r, a.config.CityLimit)
	if !ok {
		return
	}
	filter.Place = city
	a.writeBoard(w, r, city, filter, limit)
}

func (a *API) parseBoardQuery(w http.ResponseWriter, r *http.Request, defaultLimit int) (leaderboard.Filter, int, bool) {
	query := r.URL.Query()

	var filter leaderboard.Filter
	if mode := query.Get("gameMode"); mode != "" {
		filter.Mode = leaderboard.Mode(mode)
		if !filter.Mode.Valid() {
			respondError(w, http.StatusBadRequest, "invalid gameMode")
			return filter, 0, false
		}
	}
	filter.Place = query.Get("city")

	limit := defaultLimit
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return filter, 0, false
		}
		if n < limit {
			limit = n
		}
	}
	return filter, limit, true
}

func (a *API) writeBoard(w http.ResponseWriter, r *http.Request, city string, filter leaderboard.Filter, limit int) {
	entries, err := a.scores.Leaderboard(r.Context(), filter, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load leaderboard")
		return
	}

	resp := leaderboardResponse{
		City:        city,
		Leaderboard: entries,
		Total:       len(entries),
	}

	if playerID := r.URL.Query().Get("playerId"); playerID != "" {
		best, err := a.scores.BestScore(r.Context(), playerID, filter)
		switch {
		case errors.Is(err, leaderboard.ErrNotFound):
			// Legitimate empty result; the board still renders.
		case err != nil:
			respondError(w, http.StatusInternalServerError, "failed to load best score")
			return
		default:
			for _, entry := range entries {
				if entry.ID == best.ID {
					best.Rank = entry.Rank
					break
				}
			}
			resp.UserBestScore = best
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

func (a *API) handleCities(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"cities": places.Cities,
	})
}

func (a *API) handleRound(w http.ResponseWriter, r *http.Request) {
	var loc places.Location
	if city := r.URL.Query().Get("city"); city != "" {
		found, ok := places.ByName(city)
		if !ok {
			respondError(w, http.StatusNotFound, "unknown city")
			return
		}
		loc = found
	} else {
		loc = places.Random(nil)
	}

	lon, lat := places.JitterAround(loc)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"city":   loc.Name,
		"region": loc.Region,
		"target": map[string]float64{"lon": lon, "lat": lat},
	})
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := a.db.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
