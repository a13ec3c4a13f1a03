package game

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/ScoreChallenge/internal/api/apiutil"
	dbgen "github.com/codr1/ScoreChallenge/internal/db/generated"
	"github.com/codr1/ScoreChallenge/internal/models"
	"github.com/codr1/ScoreChallenge/internal/predictions"
	admintempl "github.com/codr1/ScoreChallenge/internal/templates/components/admin"
	"github.com/codr1/ScoreChallenge/internal/templates/components/nav"
	"github.com/codr1/ScoreChallenge/internal/tournament"
)

// GET /game/admin/matches
func HandleAdminMatches(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q, ok := queriesReady(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gameQueryTimeout)
	defer cancel()

	rows, err := q.ListTournamentMatches(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list tournament matches")
		http.Error(w, "Failed to load matches", http.StatusInternalServerError)
		return
	}
	results := models.ResultsFromRows(rows)

	if apiutil.WantsJSON(r) {
		writeJSON(w, r, http.StatusOK, map[string]any{"matches": results})
		return
	}
	renderPage(w, r, http.StatusOK, "Admin", nav.PathAdmin, admintempl.MatchesTable(admintempl.MatchesData{Results: results}))
}

// loadResultForm loads a tournament match with both squads. It writes the
// error response itself and reports false on failure.
func loadResultForm(ctx context.Context, w http.ResponseWriter, r *http.Request, q *dbgen.Queries, matchID int64) (admintempl.ResultFormData, bool) {
	logger := log.Ctx(r.Context())

	result, err := tournament.GetResult(ctx, q, matchID)
	if err != nil {
		if errors.Is(err, tournament.ErrResultNotFound) {
			renderNotFound(w, r, predictions.MessageNotFound)
			return admintempl.ResultFormData{}, false
		}
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to load tournament match")
		http.Error(w, "Failed to load match", http.StatusInternalServerError)
		return admintempl.ResultFormData{}, false
	}

	data := admintempl.ResultFormData{Result: result}
	homeID, awayID := teamID(result.Match.HomeTeam), teamID(result.Match.AwayTeam)
	if homeID == "" && awayID == "" {
		return data, true
	}
	players, err := q.ListPlayersForTeams(ctx, dbgen.ListPlayersForTeamsParams{
		MatchID:    matchID,
		HomeTeamID: homeID,
		AwayTeamID: awayID,
	})
	if err != nil {
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to list players")
		http.Error(w, "Failed to load match", http.StatusInternalServerError)
		return admintempl.ResultFormData{}, false
	}
	data.HomePlayers, data.AwayPlayers = models.SplitPlayersByTeam(players, homeID, awayID)
	return data, true
}

func teamID(team *models.Team) string {
	if team == nil {
		return ""
	}
	return team.ID
}

// GET /game/admin/matches/{matchId}
func HandleAdminResultPage(w http.ResponseWriter, r *http.Request) {
	q, ok := queriesReady(w, r)
	if !ok {
		return
	}
	matchID, err := apiutil.MatchIDFromPath(r, matchIDPathKey)
	if err != nil {
		renderNotFound(w, r, predictions.MessageNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gameQueryTimeout)
	defer cancel()

	data, ok := loadResultForm(ctx, w, r, q, matchID)
	if !ok {
		return
	}
	if apiutil.WantsJSON(r) {
		writeJSON(w, r, http.StatusOK, map[string]any{"result": data.Result})
		return
	}
	data.Values = admintempl.ValuesFromResult(data.Result)
	data.Saved = r.URL.Query().Get("saved") == "1"
	renderPage(w, r, http.StatusOK, "Match Result", nav.PathAdmin, admintempl.ResultForm(data))
}

// POST /game/admin/matches/{matchId}
func HandleAdminResultSubmit(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q, ok := queriesReady(w, r)
	if !ok {
		return
	}
	matchID, err := apiutil.MatchIDFromPath(r, matchIDPathKey)
	if err != nil {
		renderNotFound(w, r, predictions.MessageNotFound)
		return
	}
	fields, err := fieldsFromRequest(r)
	if err != nil {
		apiutil.WriteHandlerError(w, r, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid form data", Err: err})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gameQueryTimeout)
	defer cancel()

	result, err := tournament.RecordResult(ctx, q, matchID, fields)
	var rejection *predictions.Rejection
	switch {
	case errors.As(err, &rejection):
		if apiutil.WantsJSON(r) {
			writeJSON(w, r, http.StatusBadRequest, rejection)
			return
		}
		data, ok := loadResultForm(ctx, w, r, q, matchID)
		if !ok {
			return
		}
		data.Values = fields
		data.FormError = rejection.FormError
		if rejection.FieldErrors != nil {
			data.FieldErrors = *rejection.FieldErrors
		}
		renderPage(w, r, http.StatusBadRequest, "Match Result", nav.PathAdmin, admintempl.ResultForm(data))
		return
	case errors.Is(err, tournament.ErrResultNotFound):
		renderNotFound(w, r, predictions.MessageNotFound)
		return
	case err != nil:
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to record result")
		http.Error(w, "Failed to save result", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("match_id", matchID).Msg("Recorded match result")
	if apiutil.WantsJSON(r) {
		writeJSON(w, r, http.StatusOK, map[string]any{"result": result})
		return
	}
	redirect(w, r, admintempl.ResultPath(matchID)+"?saved=1")
}
