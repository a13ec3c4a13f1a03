package nav

import "strconv"

type Variant string

const (
	VariantDesktop Variant = "desktop"
	VariantMobile  Variant = "mobile"
)

const (
	PathMatches      = "/game"
	PathGroupStage   = "/game/group-stage"
	PathPlayoffStage = "/game/playoff-stage"
	PathRanking      = "/game/ranking"
	PathAdmin        = "/game/admin/matches"
)

type NavUser struct {
	Username string
	IsAdmin  bool
	// Position is zero when the user has no ranking yet.
	Position int
	Points   int
}

type NavData struct {
	User   *NavUser
	Active string
}

type Item struct {
	Label  string
	Path   string
	Active bool
}

// AriaCurrent is "page" for the active item.
func (i Item) AriaCurrent() string {
	if i.Active {
		return "page"
	}
	return "false"
}

// Items lists the navigation links. The admin link is only present for admins.
func (d NavData) Items() []Item {
	items := []Item{
		{Label: "Matches", Path: PathMatches},
		{Label: "Group Stage", Path: PathGroupStage},
		{Label: "Playoff Stage", Path: PathPlayoffStage},
		{Label: "Ranking", Path: PathRanking},
	}
	if d.User != nil && d.User.IsAdmin {
		items = append(items, Item{Label: "Admin", Path: PathAdmin})
	}
	for i := range items {
		items[i].Active = items[i].Path == d.Active
	}
	return items
}

// RankingLabel summarizes the user's position, e.g. "#2 (7 pts)".
func (u NavUser) RankingLabel() string {
	if u.Position <= 0 {
		return "Unranked"
	}
	return "#" + strconv.Itoa(u.Position) + " (" + strconv.Itoa(u.Points) + " pts)"
}
