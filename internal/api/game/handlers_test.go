package game

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/codr1/ScoreChallenge/internal/api/authz"
	appdb "github.com/codr1/ScoreChallenge/internal/db"
	"github.com/codr1/ScoreChallenge/internal/models"
	"github.com/codr1/ScoreChallenge/internal/predictions"
	"github.com/codr1/ScoreChallenge/internal/testutil"
	"github.com/codr1/ScoreChallenge/internal/tournament"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type gameFixture struct {
	db       *appdb.DB
	now      time.Time
	user     *authz.AuthUser
	other    *authz.AuthUser
	admin    *authz.AuthUser
	upcoming int64
	started  int64
	scorerID int64
}

func setupGameTest(t *testing.T, guard predictions.TimingGuard) gameFixture {
	t.Helper()

	database := testutil.NewTestDB(t)

	prevQueries, prevService := queries, service
	t.Cleanup(func() {
		queries, service = prevQueries, prevService
	})

	now := time.Date(2022, 11, 22, 12, 0, 0, 0, time.UTC)
	InitHandlers(database, predictions.WithClock(fixedClock{now: now}), predictions.WithTimingGuard(guard))

	testutil.SeedTeam(t, database, "POL", "Poland", "C")
	testutil.SeedTeam(t, database, "MEX", "Mexico", "C")
	scorer := testutil.SeedPlayer(t, database, "POL", "Robert Lewandowski")
	testutil.SeedPlayer(t, database, "MEX", "Hirving Lozano")

	upcoming := testutil.SeedGroupMatch(t, database, "POL", "MEX", "C", now.Add(time.Hour))
	started := testutil.SeedGroupMatch(t, database, "MEX", "POL", "C", now.Add(-time.Hour))

	ania := testutil.SeedUser(t, database, "ania", string(authz.RoleUser))
	bartek := testutil.SeedUser(t, database, "bartek", string(authz.RoleUser))
	organizer := testutil.SeedUser(t, database, "organizer", string(authz.RoleAdmin))

	return gameFixture{
		db:       database,
		now:      now,
		user:     &authz.AuthUser{ID: ania.ID, Username: ania.Username, Role: authz.RoleUser},
		other:    &authz.AuthUser{ID: bartek.ID, Username: bartek.Username, Role: authz.RoleUser},
		admin:    &authz.AuthUser{ID: organizer.ID, Username: organizer.Username, Role: authz.RoleAdmin},
		upcoming: upcoming.ID,
		started:  started.ID,
		scorerID: scorer.ID,
	}
}

func (f gameFixture) snapshot(t *testing.T, user *authz.AuthUser, matchID int64) string {
	t.Helper()
	return predictions.EncodeSnapshot(models.PredictionFromRow(testutil.PredictionFor(t, f.db, user.ID, matchID)))
}

func newRequest(method, target string, form url.Values, user *authz.AuthUser, pathValues map[string]string) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Accept", "text/html")
	for key, value := range pathValues {
		req.SetPathValue(key, value)
	}
	if user != nil {
		req = req.WithContext(authz.ContextWithUser(req.Context(), user))
	}
	return req
}

func groupMatchValues(matchID int64) map[string]string {
	return map[string]string{groupIDPathKey: "C", matchIDPathKey: models.MatchPathSegment(matchID)}
}

func submit(f gameFixture, user *authz.AuthUser, matchID int64, form url.Values) *httptest.ResponseRecorder {
	target := fmt.Sprintf("/game/group-stage/C/match-%d", matchID)
	rec := httptest.NewRecorder()
	HandlePredictionSubmit(rec, newRequest(http.MethodPost, target, form, user, groupMatchValues(matchID)))
	return rec
}

func TestSubmitBeforeKickoffRedirectsToListing(t *testing.T) {
	f := setupGameTest(t, predictions.GuardSnapshot)

	rec := submit(f, f.user, f.upcoming, url.Values{
		"hidden":        {f.snapshot(t, f.user, f.upcoming)},
		"homeTeamScore": {"2"},
		"awayTeamScore": {"1"},
		"goalScorerId":  {"0"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/game/group-stage/C" {
		t.Fatalf("expected redirect to group listing, got %q", loc)
	}

	row := testutil.PredictionFor(t, f.db, f.user.ID, f.upcoming)
	if row.HomeTeamScore.Int64 != 2 || row.AwayTeamScore.Int64 != 1 || row.GoalScorerID.Valid {
		t.Fatalf("unexpected stored prediction %+v", row)
	}
}

func TestSubmitWithScorerAndResubmit(t *testing.T) {
	f := setupGameTest(t, predictions.GuardSnapshot)
	hidden := f.snapshot(t, f.user, f.upcoming)

	first := submit(f, f.user, f.upcoming, url.Values{
		"hidden": {hidden}, "homeTeamScore": {"1"}, "awayTeamScore": {"1"},
		"goalScorerId": {strconv.FormatInt(f.scorerID, 10)},
	})
	second := submit(f, f.user, f.upcoming, url.Values{
		"hidden": {hidden}, "homeTeamScore": {"3"}, "awayTeamScore": {"0"},
	})
	if first.Code != http.StatusSeeOther || second.Code != http.StatusSeeOther {
		t.Fatalf("expected both submissions to redirect, got %d and %d", first.Code, second.Code)
	}

	row := testutil.PredictionFor(t, f.db, f.user.ID, f.upcoming)
	if row.HomeTeamScore.Int64 != 3 || row.AwayTeamScore.Int64 != 0 || row.GoalScorerID.Valid {
		t.Fatalf("expected second submission to win, got %+v", row)
	}
}

func TestSubmitAfterKickoffIsRejected(t *testing.T) {
	f := setupGameTest(t, predictions.GuardSnapshot)

	rec := submit(f, f.user, f.started, url.Values{
		"hidden":        {f.snapshot(t, f.user, f.started)},
		"homeTeamScore": {"2"},
		"awayTeamScore": {"1"},
		"goalScorerId":  {"0"},
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, predictions.MessageMatchLocked) {
		t.Fatalf("expected locked message, got: %s", body)
	}
	if !strings.Contains(body, `name="homeTeamScore" value="2"`) {
		t.Fatalf("expected submitted values to be preserved: %s", body)
	}
	row := testutil.PredictionFor(t, f.db, f.user.ID, f.started)
	if row.HomeTeamScore.Valid || row.AwayTeamScore.Valid {
		t.Fatalf("locked match must not be written, got %+v", row)
	}
}

func TestSubmitMissingScoreIsRejected(t *testing.T) {
	f := setupGameTest(t, predictions.GuardSnapshot)

	rec := submit(f, f.user, f.upcoming, url.Values{
		"hidden":        {f.snapshot(t, f.user, f.upcoming)},
		"awayTeamScore": {"3"},
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, predictions.MessageNoResult) {
		t.Fatalf("expected no result message, got: %s", body)
	}
	if !strings.Contains(body, `name="awayTeamScore" value="3"`) {
		t.Fatalf("expected away score to be preserved: %s", body)
	}
	if row := testutil.PredictionFor(t, f.db, f.user.ID, f.upcoming); row.AwayTeamScore.Valid {
		t.Fatalf("rejected submission must not be written, got %+v", row)
	}
}

func TestSubmitRejectionAsJSON(t *testing.T) {
	f := setupGameTest(t, predictions.GuardSnapshot)

	req := newRequest(http.MethodPost, "/game/group-stage/C/match", url.Values{
		"hidden":        {f.snapshot(t, f.user, f.upcoming)},
		"homeTeamScore": {"-1"},
		"awayTeamScore": {"x"},
	}, f.user, groupMatchValues(f.upcoming))
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	HandlePredictionSubmit(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var payload struct {
		FormError   string                   `json:"formError"`
		FieldErrors *predictions.FieldErrors `json:"fieldErrors"`
		Fields      *predictions.Fields      `json:"fields"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.FieldErrors == nil ||
		payload.FieldErrors.HomeTeamScore != predictions.MessageInvalidScore ||
		payload.FieldErrors.AwayTeamScore != predictions.MessageInvalidScore {
		t.Fatalf("unexpected field errors %+v", payload.FieldErrors)
	}
	if payload.Fields == nil || payload.Fields.AwayTeamScore != "x" {
		t.Fatalf("expected submitted fields echoed back, got %+v", payload.Fields)
	}
}

func TestSubmitForeignPredictionIsNotFound(t *testing.T) {
	f := setupGameTest(t, predictions.GuardSnapshot)

	rec := submit(f, f.user, f.upcoming, url.Values{
		"hidden":        {f.snapshot(t, f.other, f.upcoming)},
		"homeTeamScore": {"4"},
		"awayTeamScore": {"4"},
	})

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), predictions.MessageNotFound) {
		t.Fatalf("expected not found message: %s", rec.Body.String())
	}
	if row := testutil.PredictionFor(t, f.db, f.other.ID, f.upcoming); row.HomeTeamScore.Valid {
		t.Fatalf("foreign prediction must not be written, got %+v", row)
	}
}

func TestSubmitIsScopedToURLMatch(t *testing.T) {
	for _, guard := range []predictions.TimingGuard{predictions.GuardSnapshot, predictions.GuardStore} {
		t.Run(string(guard), func(t *testing.T) {
			f := setupGameTest(t, guard)
			testutil.SeedTeam(t, f.db, "FRA", "France", "D")
			testutil.SeedTeam(t, f.db, "AUS", "Australia", "D")
			groupD := testutil.SeedGroupMatch(t, f.db, "FRA", "AUS", "D", f.now.Add(time.Hour))

			// A group D match's own form posted under the group C listing.
			rec := submit(f, f.user, groupD.ID, url.Values{
				"hidden":        {f.snapshot(t, f.user, groupD.ID)},
				"homeTeamScore": {"4"},
				"awayTeamScore": {"0"},
			})
			if rec.Code != http.StatusNotFound {
				t.Fatalf("wrong listing: expected 404, got %d", rec.Code)
			}
			if row := testutil.PredictionFor(t, f.db, f.user.ID, groupD.ID); row.HomeTeamScore.Valid || row.AwayTeamScore.Valid {
				t.Fatalf("wrong listing: expected no write, got %+v", row)
			}

			// The upcoming match's form posted to the started match's URL.
			rec = submit(f, f.user, f.started, url.Values{
				"hidden":        {f.snapshot(t, f.user, f.upcoming)},
				"homeTeamScore": {"7"},
				"awayTeamScore": {"7"},
			})
			if rec.Code != http.StatusNotFound && rec.Code != http.StatusBadRequest {
				t.Fatalf("other match: expected rejection, got %d", rec.Code)
			}
			for _, matchID := range []int64{f.upcoming, f.started} {
				if row := testutil.PredictionFor(t, f.db, f.user.ID, matchID); row.HomeTeamScore.Valid || row.AwayTeamScore.Valid {
					t.Fatalf("other match: expected no write to match %d, got %+v", matchID, row)
				}
			}
		})
	}
}

func TestStoreGuardIgnoresTamperedStartDate(t *testing.T) {
	f := setupGameTest(t, predictions.GuardStore)
	row := testutil.PredictionFor(t, f.db, f.user.ID, f.started)
	tampered := fmt.Sprintf(`{"userMatchId":%d,"matchStartDate":"2999-01-01T00:00:00Z"}`, row.ID)

	rec := submit(f, f.user, f.started, url.Values{
		"hidden":        {tampered},
		"homeTeamScore": {"1"},
		"awayTeamScore": {"0"},
	})

	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), predictions.MessageMatchLocked) {
		t.Fatalf("expected locked rejection, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPredictionPage(t *testing.T) {
	f := setupGameTest(t, predictions.GuardSnapshot)

	rec := httptest.NewRecorder()
	HandlePredictionPage(rec, newRequest(http.MethodGet, "/game/group-stage/C/match", nil, f.user, groupMatchValues(f.upcoming)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Match Betting", "Poland Team Players", "Robert Lewandowski", `name="hidden"`, "ania"} {
		if !strings.Contains(body, want) {
			t.Fatalf("page missing %q", want)
		}
	}
}

func TestPredictionPageNotFound(t *testing.T) {
	f := setupGameTest(t, predictions.GuardSnapshot)

	tests := []struct {
		name   string
		values map[string]string
	}{
		{"malformed segment", map[string]string{groupIDPathKey: "C", matchIDPathKey: "12"}},
		{"unknown match", map[string]string{groupIDPathKey: "C", matchIDPathKey: "match-9999"}},
		{"wrong group", map[string]string{groupIDPathKey: "D", matchIDPathKey: models.MatchPathSegment(f.upcoming)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandlePredictionPage(rec, newRequest(http.MethodGet, "/game/group-stage/x/y", nil, f.user, tt.values))
			if rec.Code != http.StatusNotFound {
				t.Fatalf("expected 404, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), predictions.MessageNotFound) {
				t.Fatalf("expected not found message: %s", rec.Body.String())
			}
		})
	}
}

func TestGroupListing(t *testing.T) {
	f := setupGameTest(t, predictions.GuardSnapshot)

	rec := httptest.NewRecorder()
	HandleGroup(rec, newRequest(http.MethodGet, "/game/group-stage/C", nil, f.user, map[string]string{groupIDPathKey: "C"}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Count(body, `class="match-card"`) != 2 {
		t.Fatalf("expected two match cards: %s", body)
	}
	if !strings.Contains(body, `data-locked="true"`) {
		t.Fatal("expected the started match to be marked locked")
	}
}

func TestAdminRecordsResultAndRankingUpdates(t *testing.T) {
	f := setupGameTest(t, predictions.GuardSnapshot)

	if rec := submit(f, f.user, f.upcoming, url.Values{
		"hidden": {f.snapshot(t, f.user, f.upcoming)}, "homeTeamScore": {"2"}, "awayTeamScore": {"0"},
		"goalScorerId": {strconv.FormatInt(f.scorerID, 10)},
	}); rec.Code != http.StatusSeeOther {
		t.Fatalf("prediction not saved: %d", rec.Code)
	}

	values := map[string]string{matchIDPathKey: models.MatchPathSegment(f.upcoming)}
	rec := httptest.NewRecorder()
	HandleAdminResultSubmit(rec, newRequest(http.MethodPost, "/game/admin/matches/match", url.Values{
		"homeTeamScore": {"2"},
		"awayTeamScore": {"0"},
		"goalScorerId":  {strconv.FormatInt(f.scorerID, 10)},
	}, f.admin, values))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}

	result, err := tournament.GetResult(t.Context(), f.db.Queries, f.upcoming)
	if err != nil {
		t.Fatalf("load result: %v", err)
	}
	if !result.IsFinal() || *result.HomeTeamScore != 2 || result.GoalScorerName != "Robert Lewandowski" {
		t.Fatalf("unexpected result %+v", result)
	}

	req := newRequest(http.MethodGet, "/game/ranking", nil, f.user, nil)
	req.Header.Set("Accept", "application/json")
	rec = httptest.NewRecorder()
	HandleRanking(rec, req)

	var payload struct {
		Rankings []tournament.UserRanking `json:"rankings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode ranking: %v", err)
	}
	if len(payload.Rankings) == 0 || payload.Rankings[0].UserID != f.user.ID {
		t.Fatalf("expected ania to lead, got %+v", payload.Rankings)
	}
	want := tournament.ExactScorePoints + tournament.GoalScorerPoints
	if payload.Rankings[0].Points != want {
		t.Fatalf("expected %d points, got %d", want, payload.Rankings[0].Points)
	}
}

func TestAdminResultValidation(t *testing.T) {
	f := setupGameTest(t, predictions.GuardSnapshot)

	rec := httptest.NewRecorder()
	HandleAdminResultSubmit(rec, newRequest(http.MethodPost, "/game/admin/matches/match", url.Values{
		"homeTeamScore": {"1"},
	}, f.admin, map[string]string{matchIDPathKey: models.MatchPathSegment(f.started)}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), predictions.MessageNoResult) {
		t.Fatalf("expected no result message: %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	HandleAdminMatches(rec, newRequest(http.MethodGet, "/game/admin/matches", nil, f.admin, nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Not played") {
		t.Fatalf("expected unplayed matches listed, got %d", rec.Code)
	}
}
