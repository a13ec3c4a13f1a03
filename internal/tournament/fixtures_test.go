package tournament

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/codr1/ScoreChallenge/internal/models"
	"github.com/codr1/ScoreChallenge/internal/predictions"
	"github.com/codr1/ScoreChallenge/internal/testutil"
)

const sampleFixtures = `
teams:
  - id: ARG
    name: Argentina
    group: C
    players: [Lionel Messi, Julian Alvarez]
  - id: KSA
    name: Saudi Arabia
    group: C
    players: [Salem Al-Dawsari]
matches:
  - home: ARG
    away: KSA
    stadium: Lusail Stadium
    stage: group
    group: C
    start: 2022-11-22T10:00:00Z
  - stadium: Khalifa International Stadium
    stage: PLAYOFF
    playoff: round-of-16
    start: 2022-12-03T15:00:00Z
`

func TestParseFixturesRejectsUnknownTeam(t *testing.T) {
	_, err := ParseFixtures([]byte(`
teams:
  - id: ARG
    name: Argentina
matches:
  - home: ARG
    away: FRA
    stadium: Lusail Stadium
    stage: GROUP
    group: C
    start: 2022-11-22T10:00:00Z
`))
	if err == nil || !strings.Contains(err.Error(), "unknown team FRA") {
		t.Fatalf("expected unknown team error, got %v", err)
	}
}

func TestParseFixturesRejectsBadStage(t *testing.T) {
	_, err := ParseFixtures([]byte(`
matches:
  - stadium: Lusail Stadium
    stage: FINAL
    start: 2022-12-18T15:00:00Z
`))
	if err == nil || !strings.Contains(err.Error(), "unknown stage") {
		t.Fatalf("expected stage error, got %v", err)
	}
}

func TestImportSeedsPredictionsForExistingUsers(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, database, "alice", "USER")

	fixtures, err := ParseFixtures([]byte(sampleFixtures))
	if err != nil {
		t.Fatalf("parse fixtures: %v", err)
	}
	summary, err := Import(ctx, database, fixtures)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if summary.Teams != 2 || summary.Players != 3 || summary.Matches != 2 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	results, err := database.Queries.ListTournamentMatches(ctx)
	if err != nil {
		t.Fatalf("list tournament matches: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 tournament matches, got %d", len(results))
	}
	playoff := models.ResultsFromRows(results)[1]
	if playoff.Match.HomeTeam != nil || playoff.Match.Stage != models.StagePlayoff {
		t.Fatalf("expected undrawn playoff match, got %+v", playoff.Match)
	}

	for _, r := range results {
		row := testutil.PredictionFor(t, database, user.ID, r.MatchID)
		if row.HomeTeamScore.Valid || row.AwayTeamScore.Valid {
			t.Fatalf("expected blank prediction, got %+v", row)
		}
	}
}

func TestImportRollsBackOnDuplicateTeam(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	testutil.SeedTeam(t, database, "KSA", "Saudi Arabia", "C")

	fixtures, err := ParseFixtures([]byte(sampleFixtures))
	if err != nil {
		t.Fatalf("parse fixtures: %v", err)
	}
	if _, err := Import(ctx, database, fixtures); err == nil {
		t.Fatalf("expected duplicate team error")
	}

	teams, err := database.Queries.ListGroupTeams(ctx)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(teams) != 1 {
		t.Fatalf("expected import to roll back, found %d teams", len(teams))
	}
}

func TestCreateMatchInTxValidates(t *testing.T) {
	database := testutil.NewTestDB(t)
	_, err := CreateMatchInTx(context.Background(), database, NewMatch{
		Stadium:   "Al Bayt Stadium",
		Stage:     models.StageGroup,
		StartDate: time.Now(),
	})
	if err == nil || !strings.Contains(err.Error(), "group") {
		t.Fatalf("expected group validation error, got %v", err)
	}
}

func TestRecordResultValidation(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	testutil.SeedTeam(t, database, "ARG", "Argentina", "C")
	testutil.SeedTeam(t, database, "KSA", "Saudi Arabia", "C")
	match := testutil.SeedGroupMatch(t, database, "ARG", "KSA", "C", time.Now().Add(-time.Hour))

	_, err := RecordResult(ctx, database.Queries, match.ID, predictions.Fields{HomeTeamScore: "1"})
	if !errors.Is(err, predictions.ErrNoResultSelected) {
		t.Fatalf("expected ErrNoResultSelected, got %v", err)
	}

	_, err = RecordResult(ctx, database.Queries, match.ID, predictions.Fields{
		HomeTeamScore: "1",
		AwayTeamScore: "2",
		GoalScorerID:  "404",
	})
	var rejection *predictions.Rejection
	if !errors.As(err, &rejection) || rejection.FieldErrors == nil || rejection.FieldErrors.GoalScorerID == "" {
		t.Fatalf("expected goal scorer rejection, got %v", err)
	}

	_, err = RecordResult(ctx, database.Queries, match.ID+100, predictions.Fields{HomeTeamScore: "1", AwayTeamScore: "2"})
	if !errors.Is(err, ErrResultNotFound) {
		t.Fatalf("expected ErrResultNotFound, got %v", err)
	}

	result, err := RecordResult(ctx, database.Queries, match.ID, predictions.Fields{HomeTeamScore: "1", AwayTeamScore: "2"})
	if err != nil {
		t.Fatalf("record result: %v", err)
	}
	if !result.IsFinal() || *result.HomeTeamScore != 1 || *result.AwayTeamScore != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
}
