package tournament

import (
	"context"
	"errors"
	"fmt"
	"sort"

	dbgen "github.com/codr1/ScoreChallenge/internal/db/generated"
)

const (
	ExactScorePoints     = 3
	CorrectOutcomePoints = 1
	GoalScorerPoints     = 1
)

type UserRanking struct {
	Position        int    `json:"position"`
	UserID          int64  `json:"userId"`
	Username        string `json:"username"`
	Points          int    `json:"points"`
	ExactScores     int    `json:"exactScores"`
	CorrectOutcomes int    `json:"correctOutcomes"`
	CorrectScorers  int    `json:"correctScorers"`
	ScoredMatches   int    `json:"scoredMatches"`
}

// RankingStore is the subset of generated queries needed to rank users.
type RankingStore interface {
	ListUsers(ctx context.Context) ([]dbgen.User, error)
	ListScoredPredictions(ctx context.Context) ([]dbgen.ListScoredPredictionsRow, error)
}

// PredictionScore is the outcome of comparing one prediction to a result.
type PredictionScore struct {
	Points         int
	ExactScore     bool
	CorrectOutcome bool
	CorrectScorer  bool
}

func ScorePrediction(predictedHome, predictedAway, actualHome, actualAway int64, predictedScorer, actualScorer *int64) PredictionScore {
	var score PredictionScore
	switch {
	case predictedHome == actualHome && predictedAway == actualAway:
		score.ExactScore = true
		score.CorrectOutcome = true
		score.Points += ExactScorePoints
	case outcome(predictedHome, predictedAway) == outcome(actualHome, actualAway):
		score.CorrectOutcome = true
		score.Points += CorrectOutcomePoints
	}
	if predictedScorer != nil && actualScorer != nil && *predictedScorer == *actualScorer {
		score.CorrectScorer = true
		score.Points += GoalScorerPoints
	}
	return score
}

func outcome(home, away int64) int {
	switch {
	case home > away:
		return 1
	case home < away:
		return -1
	default:
		return 0
	}
}

// CalculateRanking scores every finished prediction and orders users by
// points, then exact scores, then username. Users with equal points and exact
// score counts share a position.
func CalculateRanking(ctx context.Context, q RankingStore) ([]UserRanking, error) {
	if q == nil {
		return nil, errors.New("queries are required")
	}

	users, err := q.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	rows, err := q.ListScoredPredictions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list scored predictions: %w", err)
	}

	rankings := make(map[int64]*UserRanking, len(users))
	ordered := make([]*UserRanking, 0, len(users))
	for _, user := range users {
		entry := &UserRanking{UserID: user.ID, Username: user.Username}
		rankings[user.ID] = entry
		ordered = append(ordered, entry)
	}

	for _, row := range rows {
		entry, ok := rankings[row.UserID]
		if !ok {
			continue
		}
		if !row.HomeTeamScore.Valid || !row.AwayTeamScore.Valid || !row.ResultHomeScore.Valid || !row.ResultAwayScore.Valid {
			return nil, fmt.Errorf("match %d is missing scores", row.MatchID)
		}

		score := ScorePrediction(
			row.HomeTeamScore.Int64, row.AwayTeamScore.Int64,
			row.ResultHomeScore.Int64, row.ResultAwayScore.Int64,
			nullableID(row.GoalScorerID.Int64, row.GoalScorerID.Valid),
			nullableID(row.ResultGoalScorerID.Int64, row.ResultGoalScorerID.Valid),
		)
		entry.ScoredMatches++
		entry.Points += score.Points
		if score.ExactScore {
			entry.ExactScores++
		} else if score.CorrectOutcome {
			entry.CorrectOutcomes++
		}
		if score.CorrectScorer {
			entry.CorrectScorers++
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Points != ordered[j].Points {
			return ordered[i].Points > ordered[j].Points
		}
		if ordered[i].ExactScores != ordered[j].ExactScores {
			return ordered[i].ExactScores > ordered[j].ExactScores
		}
		return ordered[i].Username < ordered[j].Username
	})

	result := make([]UserRanking, 0, len(ordered))
	for i, entry := range ordered {
		entry.Position = i + 1
		if i > 0 {
			prev := ordered[i-1]
			if prev.Points == entry.Points && prev.ExactScores == entry.ExactScores {
				entry.Position = prev.Position
			}
		}
		result = append(result, *entry)
	}
	return result, nil
}

func nullableID(value int64, valid bool) *int64 {
	if !valid {
		return nil
	}
	return &value
}

// FindUserRanking returns the ranking entry for userID.
func FindUserRanking(rankings []UserRanking, userID int64) (UserRanking, bool) {
	for _, ranking := range rankings {
		if ranking.UserID == userID {
			return ranking, true
		}
	}
	return UserRanking{}, false
}
