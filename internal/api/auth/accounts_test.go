package auth

import (
	"context"
	"testing"
	"time"

	"github.com/codr1/ScoreChallenge/internal/api/authz"
	appdb "github.com/codr1/ScoreChallenge/internal/db"
	"github.com/codr1/ScoreChallenge/internal/testutil"
)

func TestCreateAccountSeedsPredictions(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	testutil.SeedTeam(t, testDB, "POL", "Poland", "C")
	testutil.SeedTeam(t, testDB, "MEX", "Mexico", "C")
	match := testutil.SeedGroupMatch(t, testDB, "MEX", "POL", "C", time.Now().Add(time.Hour))

	user, err := CreateAccount(context.Background(), testDB, "organizer", "hash", "", authz.RoleAdmin)
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	if user.Role != string(authz.RoleAdmin) {
		t.Fatalf("expected ADMIN role, got %q", user.Role)
	}
	if user.Email.Valid {
		t.Fatalf("expected empty email to be stored as NULL, got %q", user.Email.String)
	}

	prediction := testutil.PredictionFor(t, testDB, user.ID, match.ID)
	if prediction.HomeTeamScore.Valid || prediction.AwayTeamScore.Valid {
		t.Fatalf("expected blank seeded prediction, got %+v", prediction)
	}

	_, err = CreateAccount(context.Background(), testDB, "organizer", "hash", "", authz.RoleUser)
	if !appdb.IsUniqueViolation(err) {
		t.Fatalf("expected unique violation for duplicate username, got %v", err)
	}
}
