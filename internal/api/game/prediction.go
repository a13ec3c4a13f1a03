package game

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/ScoreChallenge/internal/api/apiutil"
	"github.com/codr1/ScoreChallenge/internal/models"
	"github.com/codr1/ScoreChallenge/internal/predictions"
	gametempl "github.com/codr1/ScoreChallenge/internal/templates/components/game"
	"github.com/codr1/ScoreChallenge/internal/templates/components/nav"
)

type predictionResponse struct {
	Prediction  models.Prediction `json:"prediction"`
	HomePlayers []models.Player   `json:"homePlayers"`
	AwayPlayers []models.Player   `json:"awayPlayers"`
	Snapshot    string            `json:"hidden"`
	Locked      bool              `json:"locked"`
}

// listingPath is the listing the request URL is nested under.
func listingPath(r *http.Request) (path, active string) {
	if groupID := apiutil.PathSegment(r, groupIDPathKey); groupID != "" {
		return nav.PathGroupStage + "/" + groupID, nav.PathGroupStage
	}
	return nav.PathPlayoffStage + "/" + apiutil.PathSegment(r, playoffIDPathKey), nav.PathPlayoffStage
}

// requestTarget is the match and listing the request URL addresses.
func requestTarget(r *http.Request, matchID int64) predictions.Target {
	if groupID := apiutil.PathSegment(r, groupIDPathKey); groupID != "" {
		return predictions.Target{MatchID: matchID, Stage: models.StageGroup, ListingID: groupID}
	}
	return predictions.Target{MatchID: matchID, Stage: models.StagePlayoff, ListingID: apiutil.PathSegment(r, playoffIDPathKey)}
}

func formData(form predictions.Form) gametempl.PredictionFormData {
	return gametempl.PredictionFormData{
		Prediction:  form.Prediction,
		HomePlayers: form.HomePlayers,
		AwayPlayers: form.AwayPlayers,
		Snapshot:    form.Snapshot,
		Locked:      form.Locked,
	}
}

// valuesFromPrediction prefills the score inputs. The scorer is left empty so
// the stored choice comes from the player list annotation.
func valuesFromPrediction(prediction models.Prediction) predictions.Fields {
	var values predictions.Fields
	if prediction.HomeTeamScore != nil {
		values.HomeTeamScore = strconv.FormatInt(*prediction.HomeTeamScore, 10)
	}
	if prediction.AwayTeamScore != nil {
		values.AwayTeamScore = strconv.FormatInt(*prediction.AwayTeamScore, 10)
	}
	return values
}

func predictionTitle(match models.Match) string {
	return match.HomeTeamName() + " vs " + match.AwayTeamName()
}

// loadForm loads the prediction for the URL's match, writing a 404 when the
// user has none or the match belongs to a different listing.
func loadForm(ctx context.Context, w http.ResponseWriter, r *http.Request, userID, matchID int64) (predictions.Form, bool) {
	form, err := service.Load(ctx, userID, matchID)
	if err != nil {
		if errors.Is(err, predictions.ErrNotFound) {
			renderNotFound(w, r, predictions.MessageNotFound)
			return predictions.Form{}, false
		}
		log.Ctx(r.Context()).Error().Err(err).Int64("match_id", matchID).Msg("Failed to load prediction")
		http.Error(w, "Failed to load match", http.StatusInternalServerError)
		return predictions.Form{}, false
	}
	if path, _ := listingPath(r); form.Prediction.Match.ListingPath() != path {
		renderNotFound(w, r, predictions.MessageNotFound)
		return predictions.Form{}, false
	}
	return form, true
}

// GET /game/group-stage/{groupId}/{matchId}
// GET /game/playoff-stage/{playoffId}/{matchId}
func HandlePredictionPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := queriesReady(w, r); !ok {
		return
	}
	user, ok := currentUser(w, r)
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

	form, ok := loadForm(ctx, w, r, user.ID, matchID)
	if !ok {
		return
	}

	if apiutil.WantsJSON(r) {
		writeJSON(w, r, http.StatusOK, predictionResponse{
			Prediction:  form.Prediction,
			HomePlayers: form.HomePlayers,
			AwayPlayers: form.AwayPlayers,
			Snapshot:    form.Snapshot,
			Locked:      form.Locked,
		})
		return
	}

	data := formData(form)
	data.Values = valuesFromPrediction(form.Prediction)
	_, active := listingPath(r)
	renderPage(w, r, http.StatusOK, predictionTitle(form.Prediction.Match), active, gametempl.PredictionForm(data))
}

func fieldsFromRequest(r *http.Request) (predictions.Fields, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var fields predictions.Fields
		err := apiutil.DecodeJSON(r, &fields)
		return fields, err
	}
	if err := r.ParseForm(); err != nil {
		return predictions.Fields{}, err
	}
	return predictions.FieldsFromForm(r.PostForm), nil
}

// POST /game/group-stage/{groupId}/{matchId}
// POST /game/playoff-stage/{playoffId}/{matchId}
func HandlePredictionSubmit(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if _, ok := queriesReady(w, r); !ok {
		return
	}
	user, ok := currentUser(w, r)
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

	// The update is scoped to the URL's match and listing, so a snapshot copied
	// from another form cannot write that other prediction.
	_, err = service.Submit(ctx, user.ID, requestTarget(r, matchID), fields)
	var rejection *predictions.Rejection
	switch {
	case errors.As(err, &rejection):
		renderRejection(ctx, w, r, user.ID, matchID, rejection, fields)
		return
	case errors.Is(err, predictions.ErrNotFound):
		renderNotFound(w, r, predictions.MessageNotFound)
		return
	case err != nil:
		logger.Error().Err(err).Int64("user_id", user.ID).Int64("match_id", matchID).Msg("Failed to save prediction")
		http.Error(w, "Failed to save prediction", http.StatusInternalServerError)
		return
	}

	path, _ := listingPath(r)
	redirect(w, r, path)
}

// renderRejection answers 400 with the form re-rendered around the submitted
// values, or with the rejection itself for JSON clients.
func renderRejection(ctx context.Context, w http.ResponseWriter, r *http.Request, userID, matchID int64, rejection *predictions.Rejection, fields predictions.Fields) {
	if apiutil.WantsJSON(r) {
		writeJSON(w, r, http.StatusBadRequest, rejection)
		return
	}

	form, ok := loadForm(ctx, w, r, userID, matchID)
	if !ok {
		return
	}
	data := formData(form)
	data.Values = fields
	data.FormError = rejection.FormError
	if rejection.FieldErrors != nil {
		data.FieldErrors = *rejection.FieldErrors
	}
	_, active := listingPath(r)
	renderPage(w, r, http.StatusBadRequest, predictionTitle(form.Prediction.Match), active, gametempl.PredictionForm(data))
}
