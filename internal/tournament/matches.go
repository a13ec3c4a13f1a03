package tournament

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	appdb "github.com/codr1/ScoreChallenge/internal/db"
	dbgen "github.com/codr1/ScoreChallenge/internal/db/generated"
	"github.com/codr1/ScoreChallenge/internal/models"
)

type NewMatch struct {
	HomeTeamID string
	AwayTeamID string
	Stadium    string
	Stage      models.Stage
	GroupID    string
	PlayoffID  string
	StartDate  time.Time
}

func (m NewMatch) Validate() error {
	if strings.TrimSpace(m.Stadium) == "" {
		return errors.New("stadium is required")
	}
	if m.StartDate.IsZero() {
		return errors.New("start date is required")
	}
	switch m.Stage {
	case models.StageGroup:
		if m.GroupID == "" {
			return errors.New("group matches require a group")
		}
		if m.HomeTeamID == "" || m.AwayTeamID == "" {
			return errors.New("group matches require both teams")
		}
	case models.StagePlayoff:
		if m.PlayoffID == "" {
			return errors.New("playoff matches require a playoff id")
		}
	default:
		return fmt.Errorf("unknown stage %q", m.Stage)
	}
	if strings.ContainsAny(m.GroupID+m.PlayoffID, "/?#") {
		return errors.New("group and playoff ids must be usable as a path segment")
	}
	if m.HomeTeamID != "" && m.HomeTeamID == m.AwayTeamID {
		return errors.New("a team cannot play itself")
	}
	return nil
}

// CreateMatch inserts a match, its empty tournament result and a blank
// prediction for every existing user. Callers run it inside a transaction.
func CreateMatch(ctx context.Context, q *dbgen.Queries, m NewMatch) (dbgen.Match, error) {
	if err := m.Validate(); err != nil {
		return dbgen.Match{}, err
	}

	match, err := q.CreateMatch(ctx, dbgen.CreateMatchParams{
		HomeTeamID: models.ToNullString(m.HomeTeamID),
		AwayTeamID: models.ToNullString(m.AwayTeamID),
		Stadium:    m.Stadium,
		Stage:      string(m.Stage),
		GroupID:    models.ToNullString(m.GroupID),
		PlayoffID:  models.ToNullString(m.PlayoffID),
		StartDate:  m.StartDate.UTC(),
	})
	if err != nil {
		return dbgen.Match{}, fmt.Errorf("create match: %w", err)
	}
	if err := q.SeedTournamentMatch(ctx, match.ID); err != nil {
		return dbgen.Match{}, fmt.Errorf("seed tournament match %d: %w", match.ID, err)
	}
	if _, err := q.SeedUserMatchesForMatch(ctx, match.ID); err != nil {
		return dbgen.Match{}, fmt.Errorf("seed predictions for match %d: %w", match.ID, err)
	}
	return match, nil
}

// CreateMatchInTx wraps CreateMatch in its own transaction.
func CreateMatchInTx(ctx context.Context, database *appdb.DB, m NewMatch) (dbgen.Match, error) {
	var match dbgen.Match
	err := database.RunInTx(ctx, func(tx *appdb.DB) error {
		var err error
		match, err = CreateMatch(ctx, tx.Queries, m)
		return err
	})
	return match, err
}
