package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/codr1/ScoreChallenge/internal/api/authz"
	"github.com/codr1/ScoreChallenge/internal/config"
	appdb "github.com/codr1/ScoreChallenge/internal/db"
	"github.com/codr1/ScoreChallenge/internal/ratelimit"
	"github.com/codr1/ScoreChallenge/internal/testutil"
)

func setupAuthTest(t *testing.T, limits *ratelimit.Config) *appdb.DB {
	t.Helper()

	testDB := testutil.NewTestDB(t)

	prevConfig, prevQueries, prevDB, prevLimiter := appConfig, queries, database, limiter
	t.Cleanup(func() {
		appConfig, queries, database, limiter = prevConfig, prevQueries, prevDB, prevLimiter
	})

	cfg := &config.Config{}
	cfg.App.Environment = "development"
	cfg.App.SecretKey = "test-secret-key"

	loginLimiter := ratelimit.New(limits)
	t.Cleanup(loginLimiter.Close)

	InitHandlers(testDB, cfg, loginLimiter)
	return testDB
}

func seedLoginUser(t *testing.T, database *appdb.DB, username, password string) {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	testutil.SeedUserWithHash(t, database, username, string(authz.RoleUser), hash)
}

func postForm(handler http.HandlerFunc, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = "203.0.113.7:51000"
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func hasCookie(rec *httptest.ResponseRecorder, name string) bool {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name && c.Value != "" {
			return true
		}
	}
	return false
}

func loginForm(username, password string) url.Values {
	return url.Values{"username": {username}, "password": {password}}
}

func TestRegisterCreatesUserWithPredictions(t *testing.T) {
	database := setupAuthTest(t, nil)
	testutil.SeedTeam(t, database, "POL", "Poland", "C")
	testutil.SeedTeam(t, database, "MEX", "Mexico", "C")
	match := testutil.SeedGroupMatch(t, database, "POL", "MEX", "C", time.Now().Add(time.Hour))

	rec := postForm(HandleRegister, "/register", url.Values{
		"username": {"ania"},
		"password": {"correct horse"},
		"email":    {"ania@example.com"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/game" {
		t.Fatalf("expected redirect to /game, got %q", loc)
	}
	if !hasCookie(rec, sessionCookieName) || !hasCookie(rec, authCookieName) {
		t.Fatal("expected session and auth cookies")
	}

	user, err := database.Queries.GetUserByUsername(context.Background(), "ania")
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.Role != string(authz.RoleUser) {
		t.Fatalf("expected USER role, got %q", user.Role)
	}
	if user.PasswordHash == "correct horse" || !VerifyPassword(user.PasswordHash, "correct horse") {
		t.Fatal("expected password to be stored as a bcrypt hash")
	}
	prediction := testutil.PredictionFor(t, database, user.ID, match.ID)
	if prediction.HomeTeamScore.Valid || prediction.AwayTeamScore.Valid {
		t.Fatalf("expected blank prediction, got %+v", prediction)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	database := setupAuthTest(t, nil)
	seedLoginUser(t, database, "ania", "correct horse")

	rec := postForm(HandleRegister, "/register", url.Values{
		"username": {"ania"},
		"password": {"another password"},
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), messageUsernameTaken) {
		t.Fatalf("expected duplicate message, got: %s", rec.Body.String())
	}
	if hasCookie(rec, sessionCookieName) {
		t.Fatal("duplicate registration must not start a session")
	}
}

func TestRegisterValidation(t *testing.T) {
	setupAuthTest(t, nil)

	tests := []struct {
		name    string
		form    url.Values
		message string
	}{
		{"short username", url.Values{"username": {"ab"}, "password": {"long enough"}}, messageUsernameInvalid},
		{"bad characters", url.Values{"username": {"ania kowalska"}, "password": {"long enough"}}, messageUsernameInvalid},
		{"short password", url.Values{"username": {"ania"}, "password": {"short"}}, messagePasswordLength},
		{"bad email", url.Values{"username": {"ania"}, "password": {"long enough"}, "email": {"not-an-email"}}, messageEmailInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postForm(HandleRegister, "/register", tt.form)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.message) {
				t.Fatalf("expected %q in body: %s", tt.message, rec.Body.String())
			}
		})
	}
}

func TestLoginSuccess(t *testing.T) {
	database := setupAuthTest(t, nil)
	seedLoginUser(t, database, "ania", "correct horse")

	rec := postForm(HandleLogin, "/login", loginForm("ania", "correct horse"))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	if !hasCookie(rec, sessionCookieName) || !hasCookie(rec, authCookieName) {
		t.Fatal("expected session and auth cookies")
	}
}

func TestLoginHTMXUsesHXRedirect(t *testing.T) {
	database := setupAuthTest(t, nil)
	seedLoginUser(t, database, "ania", "correct horse")

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(loginForm("ania", "correct horse").Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	HandleLogin(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("HX-Redirect"); got != "/game" {
		t.Fatalf("expected HX-Redirect to /game, got %q", got)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	database := setupAuthTest(t, nil)
	seedLoginUser(t, database, "ania", "correct horse")

	for _, form := range []url.Values{loginForm("ania", "wrong"), loginForm("nobody", "correct horse")} {
		rec := postForm(HandleLogin, "/login", form)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), messageInvalidCredentials) {
			t.Fatalf("expected invalid credentials message: %s", rec.Body.String())
		}
		if hasCookie(rec, sessionCookieName) {
			t.Fatal("failed login must not start a session")
		}
	}
}

func TestLoginLockoutAfterFailures(t *testing.T) {
	database := setupAuthTest(t, &ratelimit.Config{IPAttemptsPerMinute: 60, IPBurst: 20, MaxFailures: 2, Lockout: time.Minute})
	seedLoginUser(t, database, "ania", "correct horse")

	for i := 0; i < 2; i++ {
		if rec := postForm(HandleLogin, "/login", loginForm("ania", "wrong")); rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i+1, rec.Code)
		}
	}

	rec := postForm(HandleLogin, "/login", loginForm("ania", "correct horse"))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 during lockout, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
}

func TestLoginIPRateLimit(t *testing.T) {
	database := setupAuthTest(t, &ratelimit.Config{IPAttemptsPerMinute: 1, IPBurst: 2, MaxFailures: 10, Lockout: time.Minute})
	seedLoginUser(t, database, "ania", "correct horse")

	for i := 0; i < 2; i++ {
		postForm(HandleLogin, "/login", loginForm("ania", "wrong"))
	}
	rec := postForm(HandleLogin, "/login", loginForm("ania", "correct horse"))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestLogoutClearsCookies(t *testing.T) {
	setupAuthTest(t, nil)

	rec := postForm(HandleLogout, "/logout", url.Values{})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
	var cleared int
	for _, c := range rec.Result().Cookies() {
		if (c.Name == sessionCookieName || c.Name == authCookieName) && c.MaxAge < 0 {
			cleared++
		}
	}
	if cleared != 2 {
		t.Fatalf("expected both cookies cleared, got %d", cleared)
	}
}

func TestIndexRedirects(t *testing.T) {
	database := setupAuthTest(t, nil)
	seedLoginUser(t, database, "ania", "correct horse")

	rec := httptest.NewRecorder()
	HandleIndex(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected anonymous redirect to /login, got %q", loc)
	}

	login := postForm(HandleLogin, "/login", loginForm("ania", "correct horse"))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range login.Result().Cookies() {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	HandleIndex(rec, req)
	if loc := rec.Header().Get("Location"); loc != "/game" {
		t.Fatalf("expected signed-in redirect to /game, got %q", loc)
	}
}
