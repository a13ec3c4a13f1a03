package tournament

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	appdb "github.com/codr1/ScoreChallenge/internal/db"
	dbgen "github.com/codr1/ScoreChallenge/internal/db/generated"
	"github.com/codr1/ScoreChallenge/internal/models"
)

// Fixtures is the YAML layout used to load a tournament: teams with their
// squads and the match schedule.
type Fixtures struct {
	Teams   []TeamFixture  `yaml:"teams"`
	Matches []MatchFixture `yaml:"matches"`
}

type TeamFixture struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`
	Flag    string   `yaml:"flag"`
	Group   string   `yaml:"group"`
	Players []string `yaml:"players"`
}

type MatchFixture struct {
	Home    string    `yaml:"home"`
	Away    string    `yaml:"away"`
	Stadium string    `yaml:"stadium"`
	Stage   string    `yaml:"stage"`
	Group   string    `yaml:"group"`
	Playoff string    `yaml:"playoff"`
	Start   time.Time `yaml:"start"`
}

type ImportSummary struct {
	Teams   int
	Players int
	Matches int
}

func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	return ParseFixtures(data)
}

func ParseFixtures(data []byte) (*Fixtures, error) {
	var fixtures Fixtures
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	if err := fixtures.Validate(); err != nil {
		return nil, err
	}
	return &fixtures, nil
}

func (f *Fixtures) Validate() error {
	teams := make(map[string]struct{}, len(f.Teams))
	for i, team := range f.Teams {
		id := strings.TrimSpace(team.ID)
		if id == "" || strings.TrimSpace(team.Name) == "" {
			return fmt.Errorf("team %d: id and name are required", i+1)
		}
		if _, dup := teams[id]; dup {
			return fmt.Errorf("team %s is listed twice", id)
		}
		teams[id] = struct{}{}
	}

	for i, match := range f.Matches {
		newMatch := match.toNewMatch()
		if err := newMatch.Validate(); err != nil {
			return fmt.Errorf("match %d: %w", i+1, err)
		}
		for _, id := range []string{newMatch.HomeTeamID, newMatch.AwayTeamID} {
			if id == "" {
				continue
			}
			if _, ok := teams[id]; !ok {
				return fmt.Errorf("match %d: unknown team %s", i+1, id)
			}
		}
	}
	return nil
}

func (m MatchFixture) toNewMatch() NewMatch {
	return NewMatch{
		HomeTeamID: strings.TrimSpace(m.Home),
		AwayTeamID: strings.TrimSpace(m.Away),
		Stadium:    strings.TrimSpace(m.Stadium),
		Stage:      models.Stage(strings.ToUpper(strings.TrimSpace(m.Stage))),
		GroupID:    strings.TrimSpace(m.Group),
		PlayoffID:  strings.TrimSpace(m.Playoff),
		StartDate:  m.Start,
	}
}

// Import writes all fixtures in one transaction.
func Import(ctx context.Context, database *appdb.DB, fixtures *Fixtures) (ImportSummary, error) {
	if database == nil {
		return ImportSummary{}, errors.New("database is required")
	}
	if fixtures == nil {
		return ImportSummary{}, errors.New("fixtures are required")
	}

	var summary ImportSummary
	err := database.RunInTx(ctx, func(tx *appdb.DB) error {
		for _, team := range fixtures.Teams {
			id := strings.TrimSpace(team.ID)
			err := tx.Queries.CreateTeam(ctx, dbgen.CreateTeamParams{
				ID:      id,
				Name:    strings.TrimSpace(team.Name),
				Flag:    models.ToNullString(strings.TrimSpace(team.Flag)),
				GroupID: models.ToNullString(strings.TrimSpace(team.Group)),
			})
			if err != nil {
				if appdb.IsUniqueViolation(err) {
					return fmt.Errorf("team %s already exists: %w", id, err)
				}
				return fmt.Errorf("create team %s: %w", id, err)
			}
			summary.Teams++

			for _, name := range team.Players {
				name = strings.TrimSpace(name)
				if name == "" {
					continue
				}
				if _, err := tx.Queries.CreatePlayer(ctx, dbgen.CreatePlayerParams{Name: name, TeamID: id}); err != nil {
					return fmt.Errorf("create player %s: %w", name, err)
				}
				summary.Players++
			}
		}

		for _, match := range fixtures.Matches {
			if _, err := CreateMatch(ctx, tx.Queries, match.toNewMatch()); err != nil {
				return err
			}
			summary.Matches++
		}
		return nil
	})
	if err != nil {
		return ImportSummary{}, err
	}
	return summary, nil
}
