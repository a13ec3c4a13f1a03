// internal/models/matches.go
package models

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	dbgen "github.com/codr1/ScoreChallenge/internal/db/generated"
)

type Stage string

const (
	StageGroup   Stage = "GROUP"
	StagePlayoff Stage = "PLAYOFF"
)

const matchPathPrefix = "match-"

type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Flag string `json:"flag,omitempty"`
}

type Match struct {
	ID        int64     `json:"id"`
	HomeTeam  *Team     `json:"homeTeam,omitempty"`
	AwayTeam  *Team     `json:"awayTeam,omitempty"`
	Stadium   string    `json:"stadium"`
	Stage     Stage     `json:"stage"`
	GroupID   string    `json:"group,omitempty"`
	PlayoffID string    `json:"playoff,omitempty"`
	StartDate time.Time `json:"startDate"`
}

// IsLocked reports whether predictions for the match are frozen at now.
// A match is locked from its start time onwards.
func (m Match) IsLocked(now time.Time) bool {
	return !now.Before(m.StartDate)
}

func (m Match) HomeTeamName() string {
	if m.HomeTeam == nil || m.HomeTeam.Name == "" {
		return "Team A"
	}
	return m.HomeTeam.Name
}

func (m Match) AwayTeamName() string {
	if m.AwayTeam == nil || m.AwayTeam.Name == "" {
		return "Team B"
	}
	return m.AwayTeam.Name
}

// ListingPath is the page that lists the match alongside the others in its group or playoff round.
func (m Match) ListingPath() string {
	if m.Stage == StagePlayoff {
		return "/game/playoff-stage/" + m.PlayoffID
	}
	return "/game/group-stage/" + m.GroupID
}

// PredictionPath is the page holding the prediction form for the match.
func (m Match) PredictionPath() string {
	return m.ListingPath() + "/" + MatchPathSegment(m.ID)
}

func MatchPathSegment(matchID int64) string {
	return matchPathPrefix + strconv.FormatInt(matchID, 10)
}

// ParseMatchPathSegment extracts the match id from a "match-{id}" path segment.
func ParseMatchPathSegment(segment string) (int64, error) {
	raw, ok := strings.CutPrefix(strings.TrimSpace(segment), matchPathPrefix)
	if !ok {
		return 0, fmt.Errorf("match segment %q must start with %q", segment, matchPathPrefix)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("match segment %q has an invalid id", segment)
	}
	return id, nil
}

type Prediction struct {
	ID            int64  `json:"id"`
	HomeTeamScore *int64 `json:"homeTeamScore"`
	AwayTeamScore *int64 `json:"awayTeamScore"`
	GoalScorerID  *int64 `json:"goalScorerId"`
	Match         Match  `json:"match"`
}

// IsComplete reports whether both scores have been predicted.
func (p Prediction) IsComplete() bool {
	return p.HomeTeamScore != nil && p.AwayTeamScore != nil
}

type Result struct {
	ID             int64  `json:"id"`
	HomeTeamScore  *int64 `json:"homeTeamScore"`
	AwayTeamScore  *int64 `json:"awayTeamScore"`
	GoalScorerID   *int64 `json:"goalScorerId"`
	GoalScorerName string `json:"goalScorerName,omitempty"`
	Match          Match  `json:"match"`
}

func (r Result) IsFinal() bool {
	return r.HomeTeamScore != nil && r.AwayTeamScore != nil
}

type Player struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	TeamID   string `json:"teamId"`
	TeamName string `json:"teamName"`
	Selected bool   `json:"selected"`
}

type Group struct {
	ID    string `json:"id"`
	Teams []Team `json:"teams"`
}

type matchColumns struct {
	MatchID      int64
	Stadium      string
	Stage        string
	GroupID      sql.NullString
	PlayoffID    sql.NullString
	StartDate    time.Time
	HomeTeamID   sql.NullString
	HomeTeamName sql.NullString
	HomeTeamFlag sql.NullString
	AwayTeamID   sql.NullString
	AwayTeamName sql.NullString
	AwayTeamFlag sql.NullString
}

func (c matchColumns) match() Match {
	return Match{
		ID:        c.MatchID,
		HomeTeam:  teamFromColumns(c.HomeTeamID, c.HomeTeamName, c.HomeTeamFlag),
		AwayTeam:  teamFromColumns(c.AwayTeamID, c.AwayTeamName, c.AwayTeamFlag),
		Stadium:   c.Stadium,
		Stage:     Stage(c.Stage),
		GroupID:   c.GroupID.String,
		PlayoffID: c.PlayoffID.String,
		StartDate: c.StartDate.UTC(),
	}
}

func teamFromColumns(id, name, flag sql.NullString) *Team {
	if !id.Valid {
		return nil
	}
	return &Team{ID: id.String, Name: name.String, Flag: flag.String}
}

func PredictionFromRow(row dbgen.GetUserMatchForUserRow) Prediction {
	return Prediction{
		ID:            row.ID,
		HomeTeamScore: Int64Ptr(row.HomeTeamScore),
		AwayTeamScore: Int64Ptr(row.AwayTeamScore),
		GoalScorerID:  Int64Ptr(row.GoalScorerID),
		Match: matchColumns{
			MatchID:      row.MatchID,
			Stadium:      row.Stadium,
			Stage:        row.Stage,
			GroupID:      row.GroupID,
			PlayoffID:    row.PlayoffID,
			StartDate:    row.StartDate,
			HomeTeamID:   row.HomeTeamID,
			HomeTeamName: row.HomeTeamName,
			HomeTeamFlag: row.HomeTeamFlag,
			AwayTeamID:   row.AwayTeamID,
			AwayTeamName: row.AwayTeamName,
			AwayTeamFlag: row.AwayTeamFlag,
		}.match(),
	}
}

func PredictionsFromRows(rows []dbgen.ListUserMatchesRow) []Prediction {
	predictions := make([]Prediction, len(rows))
	for i, row := range rows {
		predictions[i] = Prediction{
			ID:            row.ID,
			HomeTeamScore: Int64Ptr(row.HomeTeamScore),
			AwayTeamScore: Int64Ptr(row.AwayTeamScore),
			GoalScorerID:  Int64Ptr(row.GoalScorerID),
			Match: matchColumns{
				MatchID:      row.MatchID,
				Stadium:      row.Stadium,
				Stage:        row.Stage,
				GroupID:      row.GroupID,
				PlayoffID:    row.PlayoffID,
				StartDate:    row.StartDate,
				HomeTeamID:   row.HomeTeamID,
				HomeTeamName: row.HomeTeamName,
				HomeTeamFlag: row.HomeTeamFlag,
				AwayTeamID:   row.AwayTeamID,
				AwayTeamName: row.AwayTeamName,
				AwayTeamFlag: row.AwayTeamFlag,
			}.match(),
		}
	}
	return predictions
}

func ResultFromRow(row dbgen.GetTournamentMatchByMatchIDRow) Result {
	return Result{
		ID:             row.ID,
		HomeTeamScore:  Int64Ptr(row.HomeTeamScore),
		AwayTeamScore:  Int64Ptr(row.AwayTeamScore),
		GoalScorerID:   Int64Ptr(row.GoalScorerID),
		GoalScorerName: row.GoalScorerName.String,
		Match: matchColumns{
			MatchID:      row.MatchID,
			Stadium:      row.Stadium,
			Stage:        row.Stage,
			GroupID:      row.GroupID,
			PlayoffID:    row.PlayoffID,
			StartDate:    row.StartDate,
			HomeTeamID:   row.HomeTeamID,
			HomeTeamName: row.HomeTeamName,
			HomeTeamFlag: row.HomeTeamFlag,
			AwayTeamID:   row.AwayTeamID,
			AwayTeamName: row.AwayTeamName,
			AwayTeamFlag: row.AwayTeamFlag,
		}.match(),
	}
}

func ResultsFromRows(rows []dbgen.ListTournamentMatchesRow) []Result {
	results := make([]Result, len(rows))
	for i, row := range rows {
		results[i] = ResultFromRow(dbgen.GetTournamentMatchByMatchIDRow(row))
	}
	return results
}

// SplitPlayersByTeam partitions player rows into the home and away squads.
// Players of any other team are dropped.
func SplitPlayersByTeam(rows []dbgen.ListPlayersForTeamsRow, homeTeamID, awayTeamID string) ([]Player, []Player) {
	var home, away []Player
	for _, row := range rows {
		player := Player{
			ID:       row.ID,
			Name:     row.Name,
			TeamID:   row.TeamID,
			TeamName: row.TeamName,
			Selected: row.IsSelected != 0,
		}
		switch row.TeamID {
		case homeTeamID:
			home = append(home, player)
		case awayTeamID:
			away = append(away, player)
		}
	}
	return home, away
}

// GroupTeams folds team rows ordered by group into groups.
func GroupTeams(rows []dbgen.Team) []Group {
	var groups []Group
	for _, row := range rows {
		if !row.GroupID.Valid {
			continue
		}
		team := Team{ID: row.ID, Name: row.Name, Flag: row.Flag.String}
		if n := len(groups); n > 0 && groups[n-1].ID == row.GroupID.String {
			groups[n-1].Teams = append(groups[n-1].Teams, team)
			continue
		}
		groups = append(groups, Group{ID: row.GroupID.String, Teams: []Team{team}})
	}
	return groups
}

func Int64Ptr(value sql.NullInt64) *int64 {
	if !value.Valid {
		return nil
	}
	v := value.Int64
	return &v
}

func ToNullInt64(value *int64) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *value, Valid: true}
}

func ToNullString(value string) sql.NullString {
	value = strings.TrimSpace(value)
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
