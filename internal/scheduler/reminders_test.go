package scheduler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/codr1/ScoreChallenge/internal/config"
	"github.com/codr1/ScoreChallenge/internal/testutil"
)

type sentEmail struct {
	recipient string
	subject   string
	body      string
	sender    string
}

type recordingSender struct {
	mu   sync.Mutex
	sent []sentEmail
	err  error
}

func (r *recordingSender) Send(ctx context.Context, recipient, subject, body string) error {
	return r.SendFrom(ctx, recipient, subject, body, "")
}

func (r *recordingSender) SendFrom(_ context.Context, recipient, subject, body, sender string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentEmail{recipient: recipient, subject: subject, body: body, sender: sender})
	return r.err
}

func reminderConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.BaseURL = "https://scores.example.com/"
	cfg.Email.Sender = "reminders@example.com"
	cfg.Reminders.Enabled = true
	cfg.Reminders.Cron = "*/30 * * * *"
	cfg.Reminders.WindowHours = 24
	return cfg
}

func TestReminderJobSendsOncePerPrediction(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	now := time.Date(2022, 11, 22, 8, 0, 0, 0, time.UTC)

	testutil.SeedTeam(t, database, "POL", "Poland", "C")
	testutil.SeedTeam(t, database, "MEX", "Mexico", "C")
	testutil.SeedTeam(t, database, "ARG", "Argentina", "C")
	ania := testutil.SeedUser(t, database, "ania", "USER")
	bartek := testutil.SeedUser(t, database, "bartek", "USER")

	soon := testutil.SeedGroupMatch(t, database, "POL", "MEX", "C", now.Add(8*time.Hour))
	testutil.SeedGroupMatch(t, database, "ARG", "POL", "C", now.Add(72*time.Hour))
	testutil.SeedGroupMatch(t, database, "MEX", "ARG", "C", now.Add(-time.Hour))

	if _, err := database.ExecContext(ctx,
		"UPDATE user_matches SET home_team_score = 1, away_team_score = 0 WHERE user_id = ? AND match_id = ?",
		bartek.ID, soon.ID,
	); err != nil {
		t.Fatalf("complete prediction: %v", err)
	}

	sender := &recordingSender{}
	job := NewReminderJob(database.Queries, sender, reminderConfig()).WithClock(func() time.Time { return now })

	result, err := job.Run(ctx)
	if err != nil {
		t.Fatalf("run reminders: %v", err)
	}
	if result.Sent != 1 || len(sender.sent) != 1 {
		t.Fatalf("expected one reminder, got result %+v and %d emails", result, len(sender.sent))
	}

	got := sender.sent[0]
	if got.recipient != "ania@example.com" {
		t.Fatalf("expected reminder for ania, got %q", got.recipient)
	}
	if got.sender != "reminders@example.com" {
		t.Fatalf("expected configured sender, got %q", got.sender)
	}
	if !strings.Contains(got.subject, "Poland vs Mexico") {
		t.Fatalf("unexpected subject %q", got.subject)
	}
	wantURL := "https://scores.example.com/game/group-stage/C/match-"
	if !strings.Contains(got.body, wantURL) {
		t.Fatalf("expected body to link %q:\n%s", wantURL, got.body)
	}

	result, err = job.Run(ctx)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if result.Sent != 0 || len(sender.sent) != 1 {
		t.Fatalf("expected no repeat reminder for user %d, got %+v", ania.ID, result)
	}
}

func TestReminderJobSkipsWithoutSender(t *testing.T) {
	database := testutil.NewTestDB(t)
	now := time.Date(2022, 11, 22, 8, 0, 0, 0, time.UTC)

	testutil.SeedTeam(t, database, "POL", "Poland", "C")
	testutil.SeedTeam(t, database, "MEX", "Mexico", "C")
	testutil.SeedUser(t, database, "ania", "USER")
	testutil.SeedGroupMatch(t, database, "POL", "MEX", "C", now.Add(time.Hour))

	job := NewReminderJob(database.Queries, nil, reminderConfig()).WithClock(func() time.Time { return now })
	result, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("run reminders: %v", err)
	}
	if result.Candidates != 0 {
		t.Fatalf("expected run to be skipped, got %+v", result)
	}

	var claimed int
	if err := database.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM prediction_reminders").Scan(&claimed); err != nil {
		t.Fatalf("count reminders: %v", err)
	}
	if claimed != 0 {
		t.Fatalf("expected no reminders recorded, got %d", claimed)
	}
}

func TestReminderJobFailedSendIsNotRetried(t *testing.T) {
	database := testutil.NewTestDB(t)
	now := time.Date(2022, 11, 22, 8, 0, 0, 0, time.UTC)

	testutil.SeedTeam(t, database, "POL", "Poland", "C")
	testutil.SeedTeam(t, database, "MEX", "Mexico", "C")
	testutil.SeedUser(t, database, "ania", "USER")
	testutil.SeedGroupMatch(t, database, "POL", "MEX", "C", now.Add(time.Hour))

	sender := &recordingSender{err: errors.New("ses unavailable")}
	job := NewReminderJob(database.Queries, sender, reminderConfig()).WithClock(func() time.Time { return now })

	result, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("run reminders: %v", err)
	}
	if result.Failed != 1 {
		t.Fatalf("expected one failed send, got %+v", result)
	}

	result, err = job.Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if result.Candidates != 0 || len(sender.sent) != 1 {
		t.Fatalf("expected no retry, got %+v with %d attempts", result, len(sender.sent))
	}
}

func TestRegisterReminderJobsDisabled(t *testing.T) {
	database := testutil.NewTestDB(t)
	cfg := reminderConfig()
	cfg.Reminders.Enabled = false

	if err := RegisterReminderJobs(database, nil, cfg); err != nil {
		t.Fatalf("expected disabled reminders to register nothing, got %v", err)
	}
	if err := RegisterReminderJobs(nil, nil, cfg); err == nil {
		t.Fatal("expected nil database to fail")
	}
}
