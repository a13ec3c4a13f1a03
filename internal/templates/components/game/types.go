package game

import (
	"time"

	"github.com/codr1/ScoreChallenge/internal/models"
	"github.com/codr1/ScoreChallenge/internal/predictions"
	"github.com/codr1/ScoreChallenge/internal/tournament"
)

type FlagSize string

const (
	FlagSmall FlagSize = "small"
	FlagLarge FlagSize = "large"
)

const kickoffLayout = "Mon 2 Jan 2006, 15:04 MST"

func FormatKickoff(t time.Time) string {
	return t.UTC().Format(kickoffLayout)
}

type MatchListData struct {
	Heading      string
	Predictions  []models.Prediction
	Now          time.Time
	EmptyMessage string
}

type GroupListData struct {
	Groups []models.Group
}

type PlayoffListData struct {
	PlayoffIDs []string
}

// PredictionFormData drives the prediction form. Values hold what the user
// submitted so a rejected form can be re-rendered as entered.
type PredictionFormData struct {
	Prediction  models.Prediction
	HomePlayers []models.Player
	AwayPlayers []models.Player
	Snapshot    string
	Locked      bool
	Values      predictions.Fields
	FormError   string
	FieldErrors predictions.FieldErrors
}

// NoScorerSelected reports whether the "no goal scorer" option is checked.
func (d PredictionFormData) NoScorerSelected() bool {
	if d.Values.GoalScorerID == predictions.NoGoalScorer {
		return true
	}
	return !d.anyPlayerChecked()
}

type RankingData struct {
	Rankings      []tournament.UserRanking
	CurrentUserID int64
}
