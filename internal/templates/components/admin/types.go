package admin

import (
	"strconv"

	"github.com/codr1/ScoreChallenge/internal/models"
	"github.com/codr1/ScoreChallenge/internal/predictions"
)

const PathMatches = "/game/admin/matches"

func ResultPath(matchID int64) string {
	return PathMatches + "/" + models.MatchPathSegment(matchID)
}

type MatchesData struct {
	Results []models.Result
}

type ResultFormData struct {
	Result      models.Result
	HomePlayers []models.Player
	AwayPlayers []models.Player
	Values      predictions.Fields
	FormError   string
	FieldErrors predictions.FieldErrors
	Saved       bool
}

// ValuesFromResult prefills the form with what is already recorded.
func ValuesFromResult(result models.Result) predictions.Fields {
	values := predictions.Fields{GoalScorerID: predictions.NoGoalScorer}
	if result.HomeTeamScore != nil {
		values.HomeTeamScore = strconv.FormatInt(*result.HomeTeamScore, 10)
	}
	if result.AwayTeamScore != nil {
		values.AwayTeamScore = strconv.FormatInt(*result.AwayTeamScore, 10)
	}
	if result.GoalScorerID != nil {
		values.GoalScorerID = strconv.FormatInt(*result.GoalScorerID, 10)
	}
	return values
}
