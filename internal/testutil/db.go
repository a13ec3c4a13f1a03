package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/codr1/ScoreChallenge/internal/db"
	dbgen "github.com/codr1/ScoreChallenge/internal/db/generated"
	"github.com/codr1/ScoreChallenge/internal/models"
)

// NewTestDB creates a temporary SQLite database with migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("create test db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	return database
}

// SeedUser inserts a user with a throwaway password hash and returns it. The
// user's blank predictions are created for every existing match.
func SeedUser(t *testing.T, database *db.DB, username, role string) dbgen.User {
	t.Helper()
	return SeedUserWithHash(t, database, username, role, "not-a-real-hash")
}

func SeedUserWithHash(t *testing.T, database *db.DB, username, role, passwordHash string) dbgen.User {
	t.Helper()

	ctx := context.Background()
	user, err := database.Queries.CreateUser(ctx, dbgen.CreateUserParams{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		Email:        models.ToNullString(username + "@example.com"),
	})
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	if _, err := database.Queries.SeedUserMatchesForUser(ctx, user.ID); err != nil {
		t.Fatalf("seed predictions for %s: %v", username, err)
	}
	return user
}

func SeedTeam(t *testing.T, database *db.DB, id, name, group string) {
	t.Helper()

	err := database.Queries.CreateTeam(context.Background(), dbgen.CreateTeamParams{
		ID:      id,
		Name:    name,
		GroupID: models.ToNullString(group),
	})
	if err != nil {
		t.Fatalf("create team %s: %v", id, err)
	}
}

func SeedPlayer(t *testing.T, database *db.DB, teamID, name string) dbgen.Player {
	t.Helper()

	player, err := database.Queries.CreatePlayer(context.Background(), dbgen.CreatePlayerParams{
		Name:   name,
		TeamID: teamID,
	})
	if err != nil {
		t.Fatalf("create player %s: %v", name, err)
	}
	return player
}

// SeedGroupMatch inserts a group match along with its tournament result row
// and a blank prediction for every existing user.
func SeedGroupMatch(t *testing.T, database *db.DB, homeTeamID, awayTeamID, group string, start time.Time) dbgen.Match {
	t.Helper()

	ctx := context.Background()
	match, err := database.Queries.CreateMatch(ctx, dbgen.CreateMatchParams{
		HomeTeamID: models.ToNullString(homeTeamID),
		AwayTeamID: models.ToNullString(awayTeamID),
		Stadium:    "Test Stadium",
		Stage:      string(models.StageGroup),
		GroupID:    models.ToNullString(group),
		StartDate:  start.UTC(),
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if err := database.Queries.SeedTournamentMatch(ctx, match.ID); err != nil {
		t.Fatalf("seed tournament match: %v", err)
	}
	if _, err := database.Queries.SeedUserMatchesForMatch(ctx, match.ID); err != nil {
		t.Fatalf("seed predictions: %v", err)
	}
	return match
}

// PredictionFor returns the stored prediction of a user for a match.
func PredictionFor(t *testing.T, database *db.DB, userID, matchID int64) dbgen.GetUserMatchForUserRow {
	t.Helper()

	row, err := database.Queries.GetUserMatchForUser(context.Background(), dbgen.GetUserMatchForUserParams{
		UserID:  userID,
		MatchID: matchID,
	})
	if err != nil {
		t.Fatalf("get prediction for user %d match %d: %v", userID, matchID, err)
	}
	return row
}
