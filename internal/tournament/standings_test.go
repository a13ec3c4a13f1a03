package tournament

import (
	"context"
	"database/sql"
	"strconv"
	"testing"
	"time"

	dbgen "github.com/codr1/ScoreChallenge/internal/db/generated"
	"github.com/codr1/ScoreChallenge/internal/models"
	"github.com/codr1/ScoreChallenge/internal/predictions"
	"github.com/codr1/ScoreChallenge/internal/testutil"
)

func TestScorePrediction(t *testing.T) {
	scorer := int64(9)
	other := int64(10)
	cases := []struct {
		name                  string
		ph, pa, ah, aa        int64
		predicted, actual     *int64
		wantPoints            int
		wantExact, wantScorer bool
	}{
		{name: "exact score", ph: 2, pa: 1, ah: 2, aa: 1, wantPoints: 3, wantExact: true},
		{name: "correct winner", ph: 3, pa: 0, ah: 1, aa: 0, wantPoints: 1},
		{name: "correct draw", ph: 0, pa: 0, ah: 2, aa: 2, wantPoints: 1},
		{name: "wrong outcome", ph: 0, pa: 1, ah: 1, aa: 0, wantPoints: 0},
		{name: "exact with scorer", ph: 1, pa: 0, ah: 1, aa: 0, predicted: &scorer, actual: &scorer, wantPoints: 4, wantExact: true, wantScorer: true},
		{name: "wrong scorer", ph: 1, pa: 0, ah: 1, aa: 0, predicted: &scorer, actual: &other, wantPoints: 3, wantExact: true},
		{name: "no recorded scorer", ph: 0, pa: 2, ah: 1, aa: 0, predicted: &scorer, wantPoints: 0},
		{name: "scorer only", ph: 0, pa: 2, ah: 1, aa: 0, predicted: &scorer, actual: &scorer, wantPoints: 1, wantScorer: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ScorePrediction(tc.ph, tc.pa, tc.ah, tc.aa, tc.predicted, tc.actual)
			if got.Points != tc.wantPoints {
				t.Fatalf("points = %d, want %d", got.Points, tc.wantPoints)
			}
			if got.ExactScore != tc.wantExact || got.CorrectScorer != tc.wantScorer {
				t.Fatalf("unexpected score %+v", got)
			}
		})
	}
}

type fakeRankingStore struct {
	users []dbgen.User
	rows  []dbgen.ListScoredPredictionsRow
}

func (s fakeRankingStore) ListUsers(context.Context) ([]dbgen.User, error) {
	return s.users, nil
}

func (s fakeRankingStore) ListScoredPredictions(context.Context) ([]dbgen.ListScoredPredictionsRow, error) {
	return s.rows, nil
}

func scored(userID, matchID, ph, pa, ah, aa int64) dbgen.ListScoredPredictionsRow {
	return dbgen.ListScoredPredictionsRow{
		UserID:          userID,
		MatchID:         matchID,
		HomeTeamScore:   sql.NullInt64{Int64: ph, Valid: true},
		AwayTeamScore:   sql.NullInt64{Int64: pa, Valid: true},
		ResultHomeScore: sql.NullInt64{Int64: ah, Valid: true},
		ResultAwayScore: sql.NullInt64{Int64: aa, Valid: true},
	}
}

func TestCalculateRankingOrdersAndSharesPositions(t *testing.T) {
	store := fakeRankingStore{
		users: []dbgen.User{
			{ID: 1, Username: "ada"},
			{ID: 2, Username: "bob"},
			{ID: 3, Username: "cyd"},
			{ID: 4, Username: "dee"},
		},
		rows: []dbgen.ListScoredPredictionsRow{
			// ada: exact + wrong = 3 points, 1 exact
			scored(1, 1, 2, 1, 2, 1),
			scored(1, 2, 0, 1, 1, 0),
			// bob: three correct outcomes = 3 points, 0 exact
			scored(2, 1, 3, 0, 2, 1),
			scored(2, 2, 2, 0, 1, 0),
			scored(2, 3, 1, 1, 0, 0),
			// cyd: exact + wrong = 3 points, 1 exact
			scored(3, 1, 2, 1, 2, 1),
			scored(3, 2, 0, 0, 1, 0),
		},
	}

	rankings, err := CalculateRanking(context.Background(), store)
	if err != nil {
		t.Fatalf("calculate ranking: %v", err)
	}
	if len(rankings) != 4 {
		t.Fatalf("expected 4 users, got %d", len(rankings))
	}

	want := []struct {
		username string
		position int
		points   int
	}{
		{"ada", 1, 3},
		{"cyd", 1, 3},
		{"bob", 3, 3},
		{"dee", 4, 0},
	}
	for i, w := range want {
		got := rankings[i]
		if got.Username != w.username || got.Position != w.position || got.Points != w.points {
			t.Fatalf("rank %d = %+v, want %+v", i, got, w)
		}
	}

	bob, ok := FindUserRanking(rankings, 2)
	if !ok || bob.CorrectOutcomes != 3 || bob.ScoredMatches != 3 {
		t.Fatalf("unexpected ranking for bob: %+v", bob)
	}
	if _, ok := FindUserRanking(rankings, 99); ok {
		t.Fatalf("expected no ranking for unknown user")
	}
}

func TestCalculateRankingFromDatabase(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	testutil.SeedTeam(t, database, "POL", "Poland", "C")
	testutil.SeedTeam(t, database, "MEX", "Mexico", "C")
	lewandowski := testutil.SeedPlayer(t, database, "POL", "Robert Lewandowski")
	alice := testutil.SeedUser(t, database, "alice", "USER")
	bruno := testutil.SeedUser(t, database, "bruno", "USER")

	played := testutil.SeedGroupMatch(t, database, "POL", "MEX", "C", time.Now().Add(-48*time.Hour))
	testutil.SeedGroupMatch(t, database, "MEX", "POL", "C", time.Now().Add(48*time.Hour))

	setPrediction := func(userID int64, home, away int64, scorer *int64) {
		t.Helper()
		row := testutil.PredictionFor(t, database, userID, played.ID)
		_, err := database.Queries.UpdateUserMatchPrediction(ctx, dbgen.UpdateUserMatchPredictionParams{
			HomeTeamScore: sql.NullInt64{Int64: home, Valid: true},
			AwayTeamScore: sql.NullInt64{Int64: away, Valid: true},
			GoalScorerID:  nullInt64(scorer),
			ID:            row.ID,
			UserID:        userID,
			MatchID:       played.ID,
			Stage:         string(models.StageGroup),
			ListingID:     "C",
		})
		if err != nil {
			t.Fatalf("update prediction: %v", err)
		}
	}
	setPrediction(alice.ID, 1, 0, &lewandowski.ID)
	setPrediction(bruno.ID, 0, 0, nil)

	_, err := RecordResult(ctx, database.Queries, played.ID, predictions.Fields{
		HomeTeamScore: "1",
		AwayTeamScore: "0",
		GoalScorerID:  strconv.FormatInt(lewandowski.ID, 10),
	})
	if err != nil {
		t.Fatalf("record result: %v", err)
	}

	rankings, err := CalculateRanking(ctx, database.Queries)
	if err != nil {
		t.Fatalf("calculate ranking: %v", err)
	}
	if len(rankings) != 2 {
		t.Fatalf("expected 2 users, got %d", len(rankings))
	}
	if rankings[0].Username != "alice" || rankings[0].Points != 4 {
		t.Fatalf("expected alice first with 4 points, got %+v", rankings[0])
	}
	if rankings[1].Username != "bruno" || rankings[1].Points != 0 || rankings[1].Position != 2 {
		t.Fatalf("expected bruno second with 0 points, got %+v", rankings[1])
	}
}

func nullInt64(value *int64) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *value, Valid: true}
}
