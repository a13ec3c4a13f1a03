// Package predictions implements loading and submitting a user's score
// prediction for a single match.
package predictions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	appdb "github.com/codr1/ScoreChallenge/internal/db"
	dbgen "github.com/codr1/ScoreChallenge/internal/db/generated"
	"github.com/codr1/ScoreChallenge/internal/models"
)

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// TimingGuard selects where the kickoff time used by the lock check comes from.
type TimingGuard string

const (
	// GuardSnapshot trusts the start date carried in the form snapshot.
	GuardSnapshot TimingGuard = "snapshot"
	// GuardStore re-reads the start date from the store on every submission.
	GuardStore TimingGuard = "store"
)

// Store is the subset of generated queries the workflow needs.
type Store interface {
	GetUserMatchForUser(ctx context.Context, arg dbgen.GetUserMatchForUserParams) (dbgen.GetUserMatchForUserRow, error)
	ListPlayersForTeams(ctx context.Context, arg dbgen.ListPlayersForTeamsParams) ([]dbgen.ListPlayersForTeamsRow, error)
	UpdateUserMatchPrediction(ctx context.Context, arg dbgen.UpdateUserMatchPredictionParams) (int64, error)
}

type Option func(*Service)

func WithClock(clock Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func WithTimingGuard(guard TimingGuard) Option {
	return func(s *Service) {
		if guard == GuardStore {
			s.guard = GuardStore
			return
		}
		s.guard = GuardSnapshot
	}
}

type Service struct {
	store Store
	clock Clock
	guard TimingGuard
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store, clock: realClock{}, guard: GuardSnapshot}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.clock.Now()
}

// Form is everything the prediction form needs to render.
type Form struct {
	Prediction  models.Prediction
	HomePlayers []models.Player
	AwayPlayers []models.Player
	Snapshot    string
	Locked      bool
}

// Load returns the user's prediction for a match together with the players of
// both teams. ErrNotFound is returned when the user has no prediction for it.
func (s *Service) Load(ctx context.Context, userID, matchID int64) (Form, error) {
	row, err := s.store.GetUserMatchForUser(ctx, dbgen.GetUserMatchForUserParams{
		UserID:  userID,
		MatchID: matchID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Form{}, ErrNotFound
		}
		return Form{}, fmt.Errorf("load prediction: %w", err)
	}
	prediction := models.PredictionFromRow(row)

	form := Form{
		Prediction: prediction,
		Snapshot:   EncodeSnapshot(prediction),
		Locked:     prediction.Match.IsLocked(s.clock.Now()),
	}

	homeID, awayID := teamID(prediction.Match.HomeTeam), teamID(prediction.Match.AwayTeam)
	if homeID == "" && awayID == "" {
		return form, nil
	}

	players, err := s.store.ListPlayersForTeams(ctx, dbgen.ListPlayersForTeamsParams{
		UserID:     userID,
		MatchID:    matchID,
		HomeTeamID: homeID,
		AwayTeamID: awayID,
	})
	if err != nil {
		return Form{}, fmt.Errorf("list players: %w", err)
	}
	form.HomePlayers, form.AwayPlayers = models.SplitPlayersByTeam(players, homeID, awayID)
	return form, nil
}

func teamID(team *models.Team) string {
	if team == nil {
		return ""
	}
	return team.ID
}

// Target is the match a submission was posted to and the listing its URL is
// nested under.
type Target struct {
	MatchID   int64
	Stage     models.Stage
	ListingID string
}

// TargetOf returns the target addressing m under its own listing.
func TargetOf(m models.Match) Target {
	target := Target{MatchID: m.ID, Stage: m.Stage, ListingID: m.GroupID}
	if m.Stage == models.StagePlayoff {
		target.ListingID = m.PlayoffID
	}
	return target
}

// Submit validates a posted prediction and persists it. A *Rejection is
// returned for user-correctable failures, ErrNotFound when the prediction does
// not belong to the user or to the target match and listing. No write happens
// unless every check passes.
func (s *Service) Submit(ctx context.Context, userID int64, target Target, fields Fields) (Update, error) {
	logger := log.Ctx(ctx)
	matchID := target.MatchID

	snapshot, err := ParseSnapshot(fields.Hidden)
	if err != nil {
		logger.Debug().Err(err).Int64("user_id", userID).Msg("Rejected prediction snapshot")
		return Update{}, reject(err, MessageInvalidSnapshot, fields)
	}

	startDate := snapshot.MatchStartDate
	if s.guard == GuardStore {
		row, err := s.store.GetUserMatchForUser(ctx, dbgen.GetUserMatchForUserParams{
			UserID:  userID,
			MatchID: matchID,
		})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return Update{}, ErrNotFound
			}
			return Update{}, fmt.Errorf("load prediction: %w", err)
		}
		if TargetOf(models.PredictionFromRow(row).Match) != target {
			return Update{}, ErrNotFound
		}
		if row.ID != snapshot.UserMatchID {
			logger.Debug().
				Int64("user_id", userID).
				Int64("snapshot_id", snapshot.UserMatchID).
				Int64("prediction_id", row.ID).
				Msg("Snapshot does not match stored prediction")
			return Update{}, reject(ErrInvalidSnapshot, MessageInvalidSnapshot, fields)
		}
		startDate = row.StartDate
	}

	update, err := Validate(s.clock.Now(), startDate, fields)
	if err != nil {
		logger.Debug().Err(err).Int64("user_id", userID).Int64("match_id", matchID).Msg("Rejected prediction")
		return Update{}, err
	}
	update.PredictionID = snapshot.UserMatchID
	update.UserID = userID

	rows, err := s.store.UpdateUserMatchPrediction(ctx, dbgen.UpdateUserMatchPredictionParams{
		HomeTeamScore: sql.NullInt64{Int64: update.HomeTeamScore, Valid: true},
		AwayTeamScore: sql.NullInt64{Int64: update.AwayTeamScore, Valid: true},
		GoalScorerID:  models.ToNullInt64(update.GoalScorerID),
		ID:            update.PredictionID,
		UserID:        userID,
		MatchID:       matchID,
		Stage:         string(target.Stage),
		ListingID:     target.ListingID,
	})
	if err != nil {
		if appdb.IsForeignKeyViolation(err) {
			return Update{}, &Rejection{
				Err:         fmt.Errorf("%w: unknown goal scorer", ErrInvalidFields),
				FieldErrors: &FieldErrors{GoalScorerID: MessageInvalidScorer},
				Fields:      &fields,
			}
		}
		return Update{}, fmt.Errorf("update prediction: %w", err)
	}
	if rows == 0 {
		return Update{}, ErrNotFound
	}

	logger.Info().
		Int64("user_id", userID).
		Int64("prediction_id", update.PredictionID).
		Int64("home_team_score", update.HomeTeamScore).
		Int64("away_team_score", update.AwayTeamScore).
		Msg("Saved prediction")
	return update, nil
}
