package admin

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/codr1/ScoreChallenge/internal/models"
	"github.com/codr1/ScoreChallenge/internal/predictions"
	"github.com/codr1/ScoreChallenge/internal/templates/components/game"
	"github.com/codr1/ScoreChallenge/internal/templates/markup"
)

func resultText(result models.Result) string {
	if !result.IsFinal() {
		return "Not played"
	}
	return strconv.FormatInt(*result.HomeTeamScore, 10) + " : " + strconv.FormatInt(*result.AwayTeamScore, 10)
}

// MatchesTable lists every tournament match with its recorded result.
func MatchesTable(data MatchesData) templ.Component {
	return markup.Component(func(w *markup.Writer) {
		w.Raw(`<section class="admin-matches"><h1>Matches</h1>`)
		if len(data.Results) == 0 {
			w.Raw(`<p class="empty-state">No matches scheduled.</p></section>`)
			return
		}
		w.Raw(`<table class="admin-matches-table"><thead><tr><th>Kickoff</th><th>Stage</th><th>Home</th><th>Result</th><th>Away</th><th>First scorer</th><th></th></tr></thead><tbody>`)
		for _, result := range data.Results {
			match := result.Match
			w.Raw(`<tr`)
			w.Attr("data-match-id", strconv.FormatInt(match.ID, 10))
			w.Attr("data-final", strconv.FormatBool(result.IsFinal()))
			w.Raw(`><td>`)
			w.Text(game.FormatKickoff(match.StartDate))
			w.Raw(`</td><td>`)
			w.Text(game.StageLabel(match))
			w.Raw(`</td><td>`)
			w.Component(game.TeamFlag(match.HomeTeam, game.FlagSmall))
			w.Text(match.HomeTeamName())
			w.Raw(`</td><td>`)
			w.Text(resultText(result))
			w.Raw(`</td><td>`)
			w.Component(game.TeamFlag(match.AwayTeam, game.FlagSmall))
			w.Text(match.AwayTeamName())
			w.Raw(`</td><td>`)
			w.Text(result.GoalScorerName)
			w.Raw(`</td><td><a`)
			w.URL("href", ResultPath(match.ID))
			w.Raw(`>Edit</a></td></tr>`)
		}
		w.Raw(`</tbody></table></section>`)
	})
}

func scorerOption(w *markup.Writer, value, label string, checked bool) {
	w.Raw(`<li><label class="player-option"><input type="radio"`)
	w.Attr("name", predictions.FieldGoalScorerID)
	w.Attr("value", value)
	if checked {
		w.Raw(` checked`)
	}
	w.Raw(`><span>`)
	w.Text(label)
	w.Raw(`</span></label></li>`)
}

func ResultForm(data ResultFormData) templ.Component {
	return markup.Component(func(w *markup.Writer) {
		match := data.Result.Match

		w.Raw(`<section class="admin-result"><h1>Match Result</h1><div class="card">`)
		w.Component(game.MatchDetails(match))
		if data.Saved {
			w.Raw(`<p class="notice" role="status">Result saved.</p>`)
		}
		w.Raw(`<form method="post" class="result-form"`)
		w.URL("action", ResultPath(match.ID))
		w.Raw(`><div class="score-row"><label for="homeTeamScore">`)
		w.Text(match.HomeTeamName())
		w.Raw(`</label><input type="number" min="0" step="1" id="homeTeamScore"`)
		w.Attr("name", predictions.FieldHomeTeamScore)
		w.Attr("value", data.Values.HomeTeamScore)
		w.Raw(`><span> - </span><input type="number" min="0" step="1" id="awayTeamScore"`)
		w.Attr("name", predictions.FieldAwayTeamScore)
		w.Attr("value", data.Values.AwayTeamScore)
		w.Raw(`><label for="awayTeamScore">`)
		w.Text(match.AwayTeamName())
		w.Raw(`</label></div>`)
		for _, msg := range []string{data.FieldErrors.HomeTeamScore, data.FieldErrors.AwayTeamScore} {
			if msg != "" {
				w.Raw(`<p class="field-error">`)
				w.Text(msg)
				w.Raw(`</p>`)
			}
		}

		w.Raw(`<ul class="player-list">`)
		scorerOption(w, predictions.NoGoalScorer, "No goal scorer",
			data.Values.GoalScorerID == "" || data.Values.GoalScorerID == predictions.NoGoalScorer)
		for _, players := range [][]models.Player{data.HomePlayers, data.AwayPlayers} {
			for _, player := range players {
				id := strconv.FormatInt(player.ID, 10)
				scorerOption(w, id, player.Name+" ("+player.TeamName+")", data.Values.GoalScorerID == id)
			}
		}
		w.Raw(`</ul>`)
		if data.FieldErrors.GoalScorerID != "" {
			w.Raw(`<p class="field-error">`)
			w.Text(data.FieldErrors.GoalScorerID)
			w.Raw(`</p>`)
		}
		if data.FormError != "" {
			w.Component(game.ErrorCard(data.FormError))
		}
		w.Raw(`<div class="form-actions"><a`)
		w.URL("href", PathMatches)
		w.Raw(`>Back</a><button type="submit" class="button-primary">Save result</button></div></form></div></section>`)
	})
}
