package game

import (
	"context"
	"database/sql"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/ScoreChallenge/internal/api/apiutil"
	dbgen "github.com/codr1/ScoreChallenge/internal/db/generated"
	"github.com/codr1/ScoreChallenge/internal/models"
	gametempl "github.com/codr1/ScoreChallenge/internal/templates/components/game"
	"github.com/codr1/ScoreChallenge/internal/templates/components/nav"
)

// validListingID rejects ids that could not have come from a listing link.
func validListingID(id string) bool {
	return id != "" && !strings.ContainsAny(id, "/?#")
}

func listPredictions(w http.ResponseWriter, r *http.Request, params dbgen.ListUserMatchesParams, data gametempl.MatchListData, title, active string) {
	logger := log.Ctx(r.Context())

	q, ok := queriesReady(w, r)
	if !ok {
		return
	}
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	params.UserID = user.ID

	ctx, cancel := context.WithTimeout(r.Context(), gameQueryTimeout)
	defer cancel()

	rows, err := q.ListUserMatches(ctx, params)
	if err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to list predictions")
		http.Error(w, "Failed to load matches", http.StatusInternalServerError)
		return
	}
	data.Predictions = models.PredictionsFromRows(rows)
	data.Now = service.Now()

	if apiutil.WantsJSON(r) {
		writeJSON(w, r, http.StatusOK, map[string]any{"predictions": data.Predictions})
		return
	}
	renderPage(w, r, http.StatusOK, title, active, gametempl.MatchList(data))
}

// GET /game
func HandleMatches(w http.ResponseWriter, r *http.Request) {
	listPredictions(w, r, dbgen.ListUserMatchesParams{}, gametempl.MatchListData{
		Heading:      "Matches",
		EmptyMessage: "No matches scheduled yet.",
	}, "Matches", nav.PathMatches)
}

// GET /game/group-stage
func HandleGroupStage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q, ok := queriesReady(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gameQueryTimeout)
	defer cancel()

	teams, err := q.ListGroupTeams(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list group teams")
		http.Error(w, "Failed to load groups", http.StatusInternalServerError)
		return
	}
	groups := models.GroupTeams(teams)

	if apiutil.WantsJSON(r) {
		writeJSON(w, r, http.StatusOK, map[string]any{"groups": groups})
		return
	}
	renderPage(w, r, http.StatusOK, "Group Stage", nav.PathGroupStage, gametempl.GroupList(gametempl.GroupListData{Groups: groups}))
}

// GET /game/group-stage/{groupId}
func HandleGroup(w http.ResponseWriter, r *http.Request) {
	groupID := apiutil.PathSegment(r, groupIDPathKey)
	if !validListingID(groupID) {
		renderNotFound(w, r, "Group not found.")
		return
	}
	listPredictions(w, r, dbgen.ListUserMatchesParams{
		Stage:   models.ToNullString(string(models.StageGroup)),
		GroupID: models.ToNullString(groupID),
	}, gametempl.MatchListData{
		Heading:      "Group " + groupID,
		EmptyMessage: "No matches in this group.",
	}, "Group "+groupID, nav.PathGroupStage)
}

// GET /game/playoff-stage
func HandlePlayoffStage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q, ok := queriesReady(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gameQueryTimeout)
	defer cancel()

	rows, err := q.ListPlayoffIDs(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list playoff rounds")
		http.Error(w, "Failed to load playoff rounds", http.StatusInternalServerError)
		return
	}
	ids := playoffIDs(rows)

	if apiutil.WantsJSON(r) {
		writeJSON(w, r, http.StatusOK, map[string]any{"playoffs": ids})
		return
	}
	renderPage(w, r, http.StatusOK, "Playoff Stage", nav.PathPlayoffStage, gametempl.PlayoffList(gametempl.PlayoffListData{PlayoffIDs: ids}))
}

func playoffIDs(rows []sql.NullString) []string {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Valid && row.String != "" {
			ids = append(ids, row.String)
		}
	}
	return ids
}

// GET /game/playoff-stage/{playoffId}
func HandlePlayoff(w http.ResponseWriter, r *http.Request) {
	playoffID := apiutil.PathSegment(r, playoffIDPathKey)
	if !validListingID(playoffID) {
		renderNotFound(w, r, "Playoff round not found.")
		return
	}
	label := gametempl.PlayoffLabel(playoffID)
	listPredictions(w, r, dbgen.ListUserMatchesParams{
		Stage:     models.ToNullString(string(models.StagePlayoff)),
		PlayoffID: models.ToNullString(playoffID),
	}, gametempl.MatchListData{
		Heading:      label,
		EmptyMessage: "No matches in this round.",
	}, label, nav.PathPlayoffStage)
}
