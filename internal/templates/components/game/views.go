package game

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/a-h/templ"

	"github.com/codr1/ScoreChallenge/internal/models"
	"github.com/codr1/ScoreChallenge/internal/predictions"
	"github.com/codr1/ScoreChallenge/internal/templates/markup"
)

// PlayoffLabel turns a playoff id such as "round-of-16" into "Round of 16".
func PlayoffLabel(id string) string {
	label := strings.ReplaceAll(strings.TrimSpace(id), "-", " ")
	if label == "" {
		return "Playoff"
	}
	first, size := utf8.DecodeRuneInString(label)
	return string(unicode.ToUpper(first)) + label[size:]
}

func StageLabel(match models.Match) string {
	if match.Stage == models.StagePlayoff {
		return PlayoffLabel(match.PlayoffID)
	}
	return "Group " + match.GroupID
}

func scoreText(score *int64) string {
	if score == nil {
		return "-"
	}
	return strconv.FormatInt(*score, 10)
}

func MatchCard(prediction models.Prediction, now time.Time) templ.Component {
	return markup.Component(func(w *markup.Writer) {
		match := prediction.Match
		locked := match.IsLocked(now)

		w.Raw(`<a class="match-card"`)
		w.URL("href", match.PredictionPath())
		w.Attr("data-locked", strconv.FormatBool(locked))
		w.Attr("data-complete", strconv.FormatBool(prediction.IsComplete()))
		w.Raw(`><div class="match-card-team match-card-home">`)
		w.Component(TeamFlag(match.HomeTeam, FlagSmall))
		w.Raw(`<span>`)
		w.Text(match.HomeTeamName())
		w.Raw(`</span></div><div class="match-card-score">`)
		w.Text(scoreText(prediction.HomeTeamScore))
		w.Raw(` : `)
		w.Text(scoreText(prediction.AwayTeamScore))
		w.Raw(`</div><div class="match-card-team match-card-away"><span>`)
		w.Text(match.AwayTeamName())
		w.Raw(`</span>`)
		w.Component(TeamFlag(match.AwayTeam, FlagSmall))
		w.Raw(`</div><div class="match-card-meta"><time`)
		w.Attr("datetime", match.StartDate.UTC().Format(time.RFC3339))
		w.Raw(`>`)
		w.Text(FormatKickoff(match.StartDate))
		w.Raw(`</time><span>`)
		w.Text(match.Stadium)
		w.Raw(`</span>`)
		if locked {
			w.Raw(`<span class="badge badge-locked">Locked</span>`)
		}
		w.Raw(`</div></a>`)
	})
}

func MatchDetails(match models.Match) templ.Component {
	return markup.Component(func(w *markup.Writer) {
		w.Raw(`<div class="match-details"><p class="match-stage">`)
		w.Text(StageLabel(match))
		w.Raw(`</p><p class="match-kickoff"><time`)
		w.Attr("datetime", match.StartDate.UTC().Format(time.RFC3339))
		w.Raw(`>`)
		w.Text(FormatKickoff(match.StartDate))
		w.Raw(`</time></p><p class="match-stadium">`)
		w.Text(match.Stadium)
		w.Raw(`</p></div>`)
	})
}

func MatchList(data MatchListData) templ.Component {
	return markup.Component(func(w *markup.Writer) {
		w.Raw(`<section class="match-list-page"><h1>`)
		w.Text(data.Heading)
		w.Raw(`</h1>`)
		if len(data.Predictions) == 0 {
			w.Raw(`<p class="empty-state">`)
			w.Text(data.EmptyMessage)
			w.Raw(`</p></section>`)
			return
		}
		w.Raw(`<div class="match-list">`)
		for _, prediction := range data.Predictions {
			w.Component(MatchCard(prediction, data.Now))
		}
		w.Raw(`</div></section>`)
	})
}

func GroupList(data GroupListData) templ.Component {
	return markup.Component(func(w *markup.Writer) {
		w.Raw(`<section class="group-list-page"><h1>Group Stage</h1>`)
		if len(data.Groups) == 0 {
			w.Raw(`<p class="empty-state">No groups have been drawn yet.</p></section>`)
			return
		}
		w.Raw(`<div class="group-list">`)
		for _, group := range data.Groups {
			w.Raw(`<a class="group-card"`)
			w.URL("href", "/game/group-stage/"+group.ID)
			w.Raw(`><h2>Group `)
			w.Text(group.ID)
			w.Raw(`</h2><ul>`)
			for i := range group.Teams {
				team := group.Teams[i]
				w.Raw(`<li>`)
				w.Component(TeamFlag(&team, FlagSmall))
				w.Raw(`<span>`)
				w.Text(team.Name)
				w.Raw(`</span></li>`)
			}
			w.Raw(`</ul></a>`)
		}
		w.Raw(`</div></section>`)
	})
}

func PlayoffList(data PlayoffListData) templ.Component {
	return markup.Component(func(w *markup.Writer) {
		w.Raw(`<section class="playoff-list-page"><h1>Playoff Stage</h1>`)
		if len(data.PlayoffIDs) == 0 {
			w.Raw(`<p class="empty-state">No playoff matches scheduled yet.</p></section>`)
			return
		}
		w.Raw(`<ul class="playoff-list">`)
		for _, id := range data.PlayoffIDs {
			w.Raw(`<li><a`)
			w.URL("href", "/game/playoff-stage/"+id)
			w.Raw(`>`)
			w.Text(PlayoffLabel(id))
			w.Raw(`</a></li>`)
		}
		w.Raw(`</ul></section>`)
	})
}

func scoreInput(w *markup.Writer, name, value, label, fieldError string) {
	w.Raw(`<input type="number" min="0" step="1" inputmode="numeric" class="score-input"`)
	w.Attr("id", name)
	w.Attr("name", name)
	w.Attr("value", value)
	w.Attr("aria-label", label)
	if fieldError != "" {
		w.Attr("aria-invalid", "true")
		w.Attr("aria-describedby", name+"-error")
	}
	w.Raw(`>`)
}

func fieldErrorText(w *markup.Writer, name, message string) {
	if message == "" {
		return
	}
	w.Raw(`<p class="field-error"`)
	w.Attr("id", name+"-error")
	w.Raw(`>`)
	w.Text(message)
	w.Raw(`</p>`)
}

func (d PredictionFormData) scorerChecked(player models.Player) bool {
	if d.Values.GoalScorerID != "" {
		return d.Values.GoalScorerID == strconv.FormatInt(player.ID, 10)
	}
	return player.Selected
}

func (d PredictionFormData) anyPlayerChecked() bool {
	for _, players := range [][]models.Player{d.HomePlayers, d.AwayPlayers} {
		for _, player := range players {
			if d.scorerChecked(player) {
				return true
			}
		}
	}
	return false
}

func playerList(w *markup.Writer, data PredictionFormData, teamName string, players []models.Player) {
	w.Raw(`<ul class="player-list"><li class="player-list-heading">`)
	w.Text(teamName)
	w.Raw(` Team Players</li>`)
	for _, player := range players {
		id := strconv.FormatInt(player.ID, 10)
		w.Raw(`<li><label class="player-option"><input type="radio"`)
		w.Attr("name", predictions.FieldGoalScorerID)
		w.Attr("value", id)
		if data.scorerChecked(player) {
			w.Raw(` checked`)
		}
		w.Raw(`><span>`)
		w.Text(player.Name)
		w.Raw(`</span></label></li>`)
	}
	w.Raw(`</ul>`)
}

func PredictionForm(data PredictionFormData) templ.Component {
	return markup.Component(func(w *markup.Writer) {
		match := data.Prediction.Match

		w.Raw(`<section class="prediction-page"><h1>Match Betting</h1><div class="card">`)
		w.Component(MatchDetails(match))
		w.Raw(`<form method="post" class="prediction-form"`)
		w.URL("action", match.PredictionPath())
		w.Raw(`><input type="hidden"`)
		w.Attr("name", predictions.FieldHidden)
		w.Attr("value", data.Snapshot)
		w.Raw(`><div class="score-row"><div class="score-team score-team-home"><label for="homeTeamScore">`)
		w.Text(match.HomeTeamName())
		w.Raw(`</label>`)
		w.Component(TeamFlag(match.HomeTeam, FlagLarge))
		w.Raw(`</div><div class="score-inputs">`)
		scoreInput(w, predictions.FieldHomeTeamScore, data.Values.HomeTeamScore, "Enter home team score", data.FieldErrors.HomeTeamScore)
		w.Raw(`<span> - </span>`)
		scoreInput(w, predictions.FieldAwayTeamScore, data.Values.AwayTeamScore, "Enter away team score", data.FieldErrors.AwayTeamScore)
		fieldErrorText(w, predictions.FieldHomeTeamScore, data.FieldErrors.HomeTeamScore)
		fieldErrorText(w, predictions.FieldAwayTeamScore, data.FieldErrors.AwayTeamScore)
		w.Raw(`</div><div class="score-team score-team-away">`)
		w.Component(TeamFlag(match.AwayTeam, FlagLarge))
		w.Raw(`<label for="awayTeamScore">`)
		w.Text(match.AwayTeamName())
		w.Raw(`</label></div></div><hr>`)

		w.Raw(`<label class="player-option no-goal-scorer"><input type="radio"`)
		w.Attr("name", predictions.FieldGoalScorerID)
		w.Attr("value", predictions.NoGoalScorer)
		if data.NoScorerSelected() {
			w.Raw(` checked`)
		}
		w.Raw(`><span>No goal scorer</span></label>`)

		w.Raw(`<div class="player-lists">`)
		playerList(w, data, match.HomeTeamName(), data.HomePlayers)
		playerList(w, data, match.AwayTeamName(), data.AwayPlayers)
		w.Raw(`</div>`)
		fieldErrorText(w, predictions.FieldGoalScorerID, data.FieldErrors.GoalScorerID)

		if data.FormError != "" {
			w.Component(ErrorCard(data.FormError))
		} else if data.Locked {
			w.Raw(`<p class="locked-note">This match has started. Bets can no longer be changed.</p>`)
		}
		w.Raw(`<div class="form-actions"><button type="submit" class="button-primary">Submit</button></div></form></div></section>`)
	})
}

func ErrorCard(message string) templ.Component {
	return markup.Component(func(w *markup.Writer) {
		w.Raw(`<div class="error-card" role="alert">`)
		w.Text(message)
		w.Raw(`</div>`)
	})
}

func RankingTable(data RankingData) templ.Component {
	return markup.Component(func(w *markup.Writer) {
		w.Raw(`<section class="ranking-page"><h1>Ranking</h1>`)
		if len(data.Rankings) == 0 {
			w.Raw(`<p class="empty-state">No players yet.</p></section>`)
			return
		}
		w.Raw(`<table class="ranking-table"><thead><tr><th>#</th><th>Player</th><th>Points</th><th>Exact</th><th>Outcome</th><th>Scorer</th></tr></thead><tbody>`)
		for _, ranking := range data.Rankings {
			w.Raw(`<tr`)
			if ranking.UserID == data.CurrentUserID {
				w.Attr("data-current", "true")
			}
			w.Raw(`><td>`)
			w.Int(int64(ranking.Position))
			w.Raw(`</td><td>`)
			w.Text(ranking.Username)
			w.Raw(`</td><td>`)
			w.Int(int64(ranking.Points))
			w.Raw(`</td><td>`)
			w.Int(int64(ranking.ExactScores))
			w.Raw(`</td><td>`)
			w.Int(int64(ranking.CorrectOutcomes))
			w.Raw(`</td><td>`)
			w.Int(int64(ranking.CorrectScorers))
			w.Raw(`</td></tr>`)
		}
		w.Raw(`</tbody></table></section>`)
	})
}

func NotFound(message string) templ.Component {
	return markup.Component(func(w *markup.Writer) {
		w.Raw(`<div class="not-found"><h1>Not found</h1><p>`)
		w.Text(message)
		w.Raw(`</p><a href="/game">Back to matches</a></div>`)
	})
}

func ErrorMessage(message string) templ.Component {
	return markup.Component(func(w *markup.Writer) {
		w.Raw(`<p class="error-message" role="alert">`)
		w.Text(message)
		w.Raw(`</p>`)
	})
}
