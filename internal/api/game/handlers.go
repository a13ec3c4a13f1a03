// Package game serves the prediction game pages: match listings, prediction
// forms, the ranking and the admin result entry.
package game

import (
	"context"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/codr1/ScoreChallenge/internal/api/apiutil"
	"github.com/codr1/ScoreChallenge/internal/api/authz"
	"github.com/codr1/ScoreChallenge/internal/api/htmx"
	appdb "github.com/codr1/ScoreChallenge/internal/db"
	dbgen "github.com/codr1/ScoreChallenge/internal/db/generated"
	"github.com/codr1/ScoreChallenge/internal/predictions"
	gametempl "github.com/codr1/ScoreChallenge/internal/templates/components/game"
	"github.com/codr1/ScoreChallenge/internal/templates/components/nav"
	"github.com/codr1/ScoreChallenge/internal/templates/layouts"
	"github.com/codr1/ScoreChallenge/internal/tournament"
)

const (
	gameQueryTimeout = 5 * time.Second

	groupIDPathKey   = "groupId"
	playoffIDPathKey = "playoffId"
	matchIDPathKey   = "matchId"
)

var (
	queries *dbgen.Queries
	service *predictions.Service
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(database *appdb.DB, opts ...predictions.Option) {
	if database == nil {
		return
	}
	queries = database.Queries
	service = predictions.NewService(database.Queries, opts...)
}

func loadQueries() *dbgen.Queries {
	return queries
}

func queriesReady(w http.ResponseWriter, r *http.Request) (*dbgen.Queries, bool) {
	q := loadQueries()
	if q == nil || service == nil {
		log.Ctx(r.Context()).Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	return q, true
}

// navData builds the navigation for user, including their current ranking.
// A ranking failure is logged and the user is shown as unranked.
func navData(ctx context.Context, user *authz.AuthUser, active string) nav.NavData {
	data := nav.NavData{Active: active}
	if user == nil {
		return data
	}
	data.User = &nav.NavUser{Username: user.Username, IsAdmin: authz.IsAdmin(user)}

	q := loadQueries()
	if q == nil {
		return data
	}
	rankings, err := tournament.CalculateRanking(ctx, q)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Int64("user_id", user.ID).Msg("Failed to load navigation ranking")
		return data
	}
	if ranking, ok := tournament.FindUserRanking(rankings, user.ID); ok {
		data.User.Position = ranking.Position
		data.User.Points = ranking.Points
	}
	return data
}

// renderPage wraps content in the base layout. htmx requests get the content
// fragment alone.
func renderPage(w http.ResponseWriter, r *http.Request, status int, title, active string, content templ.Component) {
	component := content
	if !htmx.IsRequest(r) {
		ctx, cancel := context.WithTimeout(r.Context(), gameQueryTimeout)
		defer cancel()
		component = layouts.Base(title, navData(ctx, authz.UserFromContext(r.Context()), active), content)
	}
	apiutil.RenderHTMLComponentStatus(r.Context(), w, status, component, nil, "Failed to render game page", "Failed to render page")
}

func renderNotFound(w http.ResponseWriter, r *http.Request, message string) {
	if apiutil.WantsJSON(r) {
		apiutil.WriteHandlerError(w, r, apiutil.HandlerError{Status: http.StatusNotFound, Message: message})
		return
	}
	renderPage(w, r, http.StatusNotFound, "Not found", "", gametempl.NotFound(message))
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	if err := apiutil.WriteJSON(w, status, payload); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write JSON response")
	}
}

func redirect(w http.ResponseWriter, r *http.Request, path string) {
	if htmx.IsRequest(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// currentUser reads the user placed in context by the auth middleware. The
// route is expected to be wrapped in RequireUser; a missing user is a 401.
func currentUser(w http.ResponseWriter, r *http.Request) (*authz.AuthUser, bool) {
	user, err := authz.RequireUser(r.Context())
	if err != nil {
		apiutil.WriteHandlerError(w, r, apiutil.HandlerError{Status: http.StatusUnauthorized, Message: "Unauthorized", Err: err})
		return nil, false
	}
	return user, true
}
