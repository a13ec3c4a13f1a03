package game

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/ScoreChallenge/internal/api/apiutil"
	gametempl "github.com/codr1/ScoreChallenge/internal/templates/components/game"
	"github.com/codr1/ScoreChallenge/internal/templates/components/nav"
	"github.com/codr1/ScoreChallenge/internal/tournament"
)

// GET /game/ranking
func HandleRanking(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q, ok := queriesReady(w, r)
	if !ok {
		return
	}
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gameQueryTimeout)
	defer cancel()

	rankings, err := tournament.CalculateRanking(ctx, q)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to calculate ranking")
		http.Error(w, "Failed to load ranking", http.StatusInternalServerError)
		return
	}

	if apiutil.WantsJSON(r) {
		writeJSON(w, r, http.StatusOK, map[string]any{"rankings": rankings})
		return
	}
	renderPage(w, r, http.StatusOK, "Ranking", nav.PathRanking, gametempl.RankingTable(gametempl.RankingData{
		Rankings:      rankings,
		CurrentUserID: user.ID,
	}))
}
