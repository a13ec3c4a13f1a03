package auth

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/codr1/ScoreChallenge/internal/api/apiutil"
	"github.com/codr1/ScoreChallenge/internal/api/authz"
	"github.com/codr1/ScoreChallenge/internal/api/htmx"
	"github.com/codr1/ScoreChallenge/internal/config"
	appdb "github.com/codr1/ScoreChallenge/internal/db"
	dbgen "github.com/codr1/ScoreChallenge/internal/db/generated"
	"github.com/codr1/ScoreChallenge/internal/ratelimit"
	authtempl "github.com/codr1/ScoreChallenge/internal/templates/components/auth"
	"github.com/codr1/ScoreChallenge/internal/templates/components/nav"
	"github.com/codr1/ScoreChallenge/internal/templates/layouts"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 72

	homePath  = "/game"
	loginPath = "/login"

	messageCredentialsRequired = "Username and password are required."
	messageInvalidCredentials  = "Invalid username or password."
	messageTooManyAttempts     = "Too many login attempts. Try again later."
	messageUsernameInvalid     = "Username must be 3 to 32 letters, digits, dots, dashes or underscores."
	messageUsernameTaken       = "Username is already taken."
	messagePasswordLength      = "Password must be between 8 and 72 characters."
	messageEmailInvalid        = "Enter a valid email address."
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,32}$`)

var (
	queries   *dbgen.Queries
	database  *appdb.DB
	appConfig *config.Config
	limiter   *ratelimit.Limiter
)

// InitHandlers wires the auth handlers. A nil loginLimiter gets the default limits.
func InitHandlers(db *appdb.DB, cfg *config.Config, loginLimiter *ratelimit.Limiter) {
	database = db
	queries = db.Queries
	appConfig = cfg
	if loginLimiter == nil {
		loginLimiter = ratelimit.New(ratelimit.DefaultConfig())
	}
	limiter = loginLimiter
}

func renderPage(w http.ResponseWriter, r *http.Request, status int, title string, content templ.Component) {
	component := content
	if !htmx.IsRequest(r) {
		component = layouts.Base(title, nav.NavData{}, content)
	}
	apiutil.RenderHTMLComponentStatus(r.Context(), w, status, component, nil, "Failed to render auth page", "Failed to render page")
}

// redirect uses HX-Redirect for htmx so the browser performs a full navigation.
func redirect(w http.ResponseWriter, r *http.Request, path string) {
	if htmx.IsRequest(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func trustProxy() bool {
	return appConfig != nil && appConfig.App.TrustProxy
}

// HandleIndex sends signed-in users to the game and everyone else to the login page.
func HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	user, err := UserFromRequest(w, r)
	if err != nil {
		log.Ctx(r.Context()).Debug().Err(err).Msg("Ignoring invalid session on index")
	}
	if user != nil {
		http.Redirect(w, r, homePath, http.StatusFound)
		return
	}
	http.Redirect(w, r, loginPath, http.StatusFound)
}

// HandleLoginPage handles GET /login.
func HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	if user, _ := UserFromRequest(w, r); user != nil {
		http.Redirect(w, r, homePath, http.StatusFound)
		return
	}
	renderPage(w, r, http.StatusOK, "Log in", authtempl.LoginPage(authtempl.LoginPageData{}))
}

// HandleLogin handles POST /login.
func HandleLogin(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil || limiter == nil {
		logger.Error().Msg("Auth handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.FormValue(authtempl.FieldUsername))
	password := r.FormValue(authtempl.FieldPassword)
	data := authtempl.LoginPageData{Username: username}

	ip := ratelimit.GetClientIP(r, trustProxy())
	if result := limiter.CheckLogin(username, ip); !result.Allowed {
		ratelimit.LogRateLimitExceeded(username, ip, result.Reason)
		w.Header().Set("Retry-After", strconv.Itoa(int(result.RetryAfter.Round(time.Second).Seconds())))
		data.Error = messageTooManyAttempts
		renderPage(w, r, http.StatusTooManyRequests, "Log in", authtempl.LoginPage(data))
		return
	}

	if username == "" || password == "" {
		data.Error = messageCredentialsRequired
		renderPage(w, r, http.StatusBadRequest, "Log in", authtempl.LoginPage(data))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := queries.GetUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		logger.Error().Err(err).Msg("Failed to load user for login")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if err != nil || !VerifyPassword(user.PasswordHash, password) {
		if limiter.RecordFailure(username) {
			logger.Warn().Str("identifier", ratelimit.SanitizeIdentifier(username)).Msg("Login locked after repeated failures")
		}
		data.Error = messageInvalidCredentials
		renderPage(w, r, http.StatusUnauthorized, "Log in", authtempl.LoginPage(data))
		return
	}
	limiter.RecordSuccess(username)

	if err := startUserSession(w, r, user); err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to create session")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("user_id", user.ID).Msg("User logged in")
	redirect(w, r, homePath)
}

// HandleRegisterPage handles GET /register.
func HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	if user, _ := UserFromRequest(w, r); user != nil {
		http.Redirect(w, r, homePath, http.StatusFound)
		return
	}
	renderPage(w, r, http.StatusOK, "Sign up", authtempl.RegisterPage(authtempl.RegisterPageData{}))
}

// HandleRegister handles POST /register. New accounts always get the USER role
// and a blank prediction for every scheduled match.
func HandleRegister(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if database == nil {
		logger.Error().Msg("Auth handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	data := authtempl.RegisterPageData{
		Username: strings.TrimSpace(r.FormValue(authtempl.FieldUsername)),
		Email:    strings.TrimSpace(r.FormValue(authtempl.FieldEmail)),
	}
	password := r.FormValue(authtempl.FieldPassword)

	if !usernamePattern.MatchString(data.Username) {
		data.UsernameError = messageUsernameInvalid
	}
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		data.PasswordError = messagePasswordLength
	}
	if data.Email != "" {
		if _, err := mail.ParseAddress(data.Email); err != nil {
			data.EmailError = messageEmailInvalid
		}
	}
	if data.HasErrors() {
		logger.Debug().Msg("Registration rejected")
		renderPage(w, r, http.StatusBadRequest, "Sign up", authtempl.RegisterPage(data))
		return
	}

	hash, err := HashPassword(password)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := CreateAccount(ctx, database, data.Username, hash, data.Email, authz.RoleUser)
	if err != nil {
		if appdb.IsUniqueViolation(err) {
			data.UsernameError = messageUsernameTaken
			renderPage(w, r, http.StatusBadRequest, "Sign up", authtempl.RegisterPage(data))
			return
		}
		logger.Error().Err(err).Msg("Failed to register user")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := startUserSession(w, r, user); err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to create session")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("user_id", user.ID).Msg("User registered")
	redirect(w, r, homePath)
}

// HandleLogout handles POST /logout.
func HandleLogout(w http.ResponseWriter, r *http.Request) {
	ClearSession(w, r)
	ClearAuthCookie(w)
	redirect(w, r, loginPath)
}

func startUserSession(w http.ResponseWriter, r *http.Request, user dbgen.User) error {
	if err := CreateSession(w, user.ID); err != nil {
		return err
	}
	return SetAuthCookie(w, r, &authz.AuthUser{
		ID:       user.ID,
		Username: user.Username,
		Role:     authz.ParseRole(user.Role),
	})
}
