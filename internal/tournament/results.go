package tournament

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	appdb "github.com/codr1/ScoreChallenge/internal/db"
	dbgen "github.com/codr1/ScoreChallenge/internal/db/generated"
	"github.com/codr1/ScoreChallenge/internal/models"
	"github.com/codr1/ScoreChallenge/internal/predictions"
)

var ErrResultNotFound = errors.New("tournament match not found")

type ResultStore interface {
	GetTournamentMatchByMatchID(ctx context.Context, matchID int64) (dbgen.GetTournamentMatchByMatchIDRow, error)
	UpdateTournamentMatchResult(ctx context.Context, arg dbgen.UpdateTournamentMatchResultParams) (int64, error)
}

func GetResult(ctx context.Context, q ResultStore, matchID int64) (models.Result, error) {
	row, err := q.GetTournamentMatchByMatchID(ctx, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Result{}, ErrResultNotFound
		}
		return models.Result{}, fmt.Errorf("load tournament match %d: %w", matchID, err)
	}
	return models.ResultFromRow(row), nil
}

// RecordResult stores the actual score of a match. Results are not time
// locked. Field failures are returned as *predictions.Rejection.
func RecordResult(ctx context.Context, q ResultStore, matchID int64, fields predictions.Fields) (models.Result, error) {
	update, err := predictions.ValidateScores(fields)
	if err != nil {
		return models.Result{}, err
	}

	rows, err := q.UpdateTournamentMatchResult(ctx, dbgen.UpdateTournamentMatchResultParams{
		HomeTeamScore: sql.NullInt64{Int64: update.HomeTeamScore, Valid: true},
		AwayTeamScore: sql.NullInt64{Int64: update.AwayTeamScore, Valid: true},
		GoalScorerID:  models.ToNullInt64(update.GoalScorerID),
		MatchID:       matchID,
	})
	if err != nil {
		if appdb.IsForeignKeyViolation(err) {
			return models.Result{}, &predictions.Rejection{
				Err:         predictions.ErrInvalidFields,
				FieldErrors: &predictions.FieldErrors{GoalScorerID: predictions.MessageInvalidScorer},
				Fields:      &fields,
			}
		}
		return models.Result{}, fmt.Errorf("update tournament match %d: %w", matchID, err)
	}
	if rows == 0 {
		return models.Result{}, ErrResultNotFound
	}
	return GetResult(ctx, q, matchID)
}
