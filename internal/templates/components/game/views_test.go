package game

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/a-h/templ"

	"github.com/codr1/ScoreChallenge/internal/models"
	"github.com/codr1/ScoreChallenge/internal/predictions"
	"github.com/codr1/ScoreChallenge/internal/tournament"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func samplePrediction(start time.Time) models.Prediction {
	home, away := int64(2), int64(1)
	return models.Prediction{
		ID:            41,
		HomeTeamScore: &home,
		AwayTeamScore: &away,
		Match: models.Match{
			ID:        12,
			HomeTeam:  &models.Team{ID: "POL", Name: "Poland", Flag: "/static/flags/pol.svg"},
			AwayTeam:  &models.Team{ID: "MEX", Name: "Mexico"},
			Stadium:   "Stadium 974",
			Stage:     models.StageGroup,
			GroupID:   "C",
			StartDate: start,
		},
	}
}

func TestMatchCardLinksToPredictionForm(t *testing.T) {
	now := time.Date(2022, 11, 22, 12, 0, 0, 0, time.UTC)
	html := render(t, MatchCard(samplePrediction(now.Add(time.Hour)), now))

	for _, want := range []string{
		`href="/game/group-stage/C/match-12"`,
		`data-locked="false"`,
		`Poland`,
		`Mexico`,
		`2 : 1`,
		`team-flag-placeholder`,
		`src="/static/flags/pol.svg"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("match card missing %q:\n%s", want, html)
		}
	}
	if strings.Contains(html, "badge-locked") {
		t.Fatalf("unexpected locked badge before kickoff")
	}

	locked := render(t, MatchCard(samplePrediction(now), now))
	if !strings.Contains(locked, "badge-locked") {
		t.Fatalf("expected locked badge at kickoff:\n%s", locked)
	}
}

func TestMatchListEmptyState(t *testing.T) {
	html := render(t, MatchList(MatchListData{Heading: "Group C", EmptyMessage: "No matches in this group."}))
	if !strings.Contains(html, "No matches in this group.") {
		t.Fatalf("missing empty message:\n%s", html)
	}
}

func TestPredictionFormPreservesValues(t *testing.T) {
	now := time.Date(2022, 11, 22, 12, 0, 0, 0, time.UTC)
	data := PredictionFormData{
		Prediction:  samplePrediction(now.Add(time.Hour)),
		HomePlayers: []models.Player{{ID: 5, Name: "Robert Lewandowski", TeamID: "POL"}},
		AwayPlayers: []models.Player{{ID: 9, Name: "Hirving Lozano", TeamID: "MEX"}},
		Snapshot:    `{"userMatchId":41}`,
		Values:      predictions.Fields{HomeTeamScore: "-1", AwayTeamScore: "3", GoalScorerID: "9"},
		FieldErrors: predictions.FieldErrors{HomeTeamScore: predictions.MessageInvalidScore},
	}
	html := render(t, PredictionForm(data))

	for _, want := range []string{
		`action="/game/group-stage/C/match-12"`,
		`name="hidden" value="{&#34;userMatchId&#34;:41}"`,
		`name="homeTeamScore" value="-1"`,
		`name="awayTeamScore" value="3"`,
		`aria-invalid="true"`,
		predictions.MessageInvalidScore,
		`Poland Team Players`,
		`Mexico Team Players`,
		`value="9" checked`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("form missing %q:\n%s", want, html)
		}
	}
	if strings.Contains(html, `value="0" checked`) {
		t.Fatalf("no-scorer option should not be checked when a player is chosen")
	}
}

func TestPredictionFormDefaultsToStoredScorer(t *testing.T) {
	data := PredictionFormData{
		Prediction:  samplePrediction(time.Now().Add(time.Hour)),
		HomePlayers: []models.Player{{ID: 5, Name: "Robert Lewandowski", Selected: true}},
	}
	html := render(t, PredictionForm(data))
	if !strings.Contains(html, `value="5" checked`) {
		t.Fatalf("stored scorer not checked:\n%s", html)
	}

	data.HomePlayers[0].Selected = false
	html = render(t, PredictionForm(data))
	if !strings.Contains(html, `value="0" checked`) {
		t.Fatalf("expected no goal scorer to be checked:\n%s", html)
	}
}

func TestPredictionFormShowsFormError(t *testing.T) {
	data := PredictionFormData{
		Prediction: samplePrediction(time.Now().Add(-time.Hour)),
		Locked:     true,
		FormError:  predictions.MessageMatchLocked,
	}
	html := render(t, PredictionForm(data))
	if !strings.Contains(html, `role="alert"`) || !strings.Contains(html, predictions.MessageMatchLocked) {
		t.Fatalf("missing error card:\n%s", html)
	}
}

func TestRankingTableMarksCurrentUser(t *testing.T) {
	html := render(t, RankingTable(RankingData{
		Rankings: []tournament.UserRanking{
			{Position: 1, UserID: 3, Username: "ania", Points: 7},
			{Position: 2, UserID: 4, Username: "bartek", Points: 4},
		},
		CurrentUserID: 4,
	}))
	if strings.Count(html, `data-current="true"`) != 1 {
		t.Fatalf("expected exactly one current row:\n%s", html)
	}
	if !strings.Contains(html, "<td>bartek</td>") {
		t.Fatalf("missing username:\n%s", html)
	}
}

func TestPlayoffLabel(t *testing.T) {
	tests := map[string]string{
		"round-of-16": "Round of 16",
		"final":       "Final",
		"":            "Playoff",
		"ćwierćfinał": "Ćwierćfinał",
		"élite-8":     "Élite 8",
	}
	for in, want := range tests {
		got := PlayoffLabel(in)
		if got != want {
			t.Fatalf("PlayoffLabel(%q) = %q, want %q", in, got, want)
		}
		if !utf8.ValidString(got) {
			t.Fatalf("PlayoffLabel(%q) returned invalid UTF-8 %q", in, got)
		}
	}
}
