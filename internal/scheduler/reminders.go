package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/ScoreChallenge/internal/config"
	"github.com/codr1/ScoreChallenge/internal/db"
	dbgen "github.com/codr1/ScoreChallenge/internal/db/generated"
	"github.com/codr1/ScoreChallenge/internal/email"
	"github.com/codr1/ScoreChallenge/internal/models"
)

const (
	reminderJobName    = "prediction_reminders"
	reminderJobTimeout = 2 * time.Minute
)

// ReminderStore is the subset of queries the reminder job needs.
type ReminderStore interface {
	ListIncompletePredictionsStartingBetween(ctx context.Context, arg dbgen.ListIncompletePredictionsStartingBetweenParams) ([]dbgen.ListIncompletePredictionsStartingBetweenRow, error)
	CreatePredictionReminder(ctx context.Context, arg dbgen.CreatePredictionReminderParams) (int64, error)
}

// ReminderJob emails users who still have to predict a match that starts
// within the reminder window.
type ReminderJob struct {
	store   ReminderStore
	sender  email.EmailSender
	from    string
	baseURL string
	window  time.Duration
	now     func() time.Time
}

// ReminderResult summarizes one run.
type ReminderResult struct {
	Candidates int
	Sent       int
	Skipped    int
	Failed     int
}

func NewReminderJob(store ReminderStore, sender email.EmailSender, cfg *config.Config) *ReminderJob {
	job := &ReminderJob{
		store:  store,
		sender: sender,
		window: 24 * time.Hour,
		now:    time.Now,
	}
	if cfg != nil {
		job.from = cfg.Email.Sender
		job.baseURL = strings.TrimRight(cfg.App.BaseURL, "/")
		if cfg.Reminders.WindowHours > 0 {
			job.window = time.Duration(cfg.Reminders.WindowHours) * time.Hour
		}
	}
	return job
}

// WithClock replaces the job's time source.
func (j *ReminderJob) WithClock(now func() time.Time) *ReminderJob {
	if now != nil {
		j.now = now
	}
	return j
}

// Run sends at most one reminder per user and match. A reminder is claimed in
// prediction_reminders before sending, so a failed send is not retried.
func (j *ReminderJob) Run(ctx context.Context) (ReminderResult, error) {
	var result ReminderResult
	logger := zerolog.Ctx(ctx)

	if j.sender == nil {
		logger.Debug().Msg("Reminder job skipped: email client not configured")
		return result, nil
	}

	now := j.now().UTC()
	rows, err := j.store.ListIncompletePredictionsStartingBetween(ctx, dbgen.ListIncompletePredictionsStartingBetweenParams{
		WindowStart: now,
		WindowEnd:   now.Add(j.window),
	})
	if err != nil {
		return result, fmt.Errorf("list incomplete predictions: %w", err)
	}
	result.Candidates = len(rows)

	for _, row := range rows {
		rowLogger := logger.With().Int64("user_id", row.UserID).Int64("match_id", row.MatchID).Logger()

		recipient := strings.TrimSpace(row.Email.String)
		if !row.Email.Valid || recipient == "" {
			result.Skipped++
			continue
		}

		claimed, err := j.store.CreatePredictionReminder(ctx, dbgen.CreatePredictionReminderParams{
			UserID:  row.UserID,
			MatchID: row.MatchID,
			SentAt:  now,
		})
		if err != nil {
			rowLogger.Error().Err(err).Msg("Failed to record prediction reminder")
			result.Failed++
			continue
		}
		if claimed == 0 {
			result.Skipped++
			continue
		}

		message := email.BuildPredictionReminder(email.PredictionReminderDetails{
			Username:      row.Username,
			HomeTeam:      row.HomeTeamName.String,
			AwayTeam:      row.AwayTeamName.String,
			Stadium:       row.Stadium,
			Kickoff:       row.StartDate,
			PredictionURL: j.predictionURL(row),
		})
		if err := email.SendPredictionReminder(ctx, j.sender, recipient, message, j.from); err != nil {
			rowLogger.Error().Err(err).Msg("Failed to send prediction reminder")
			result.Failed++
			continue
		}
		result.Sent++
	}

	return result, nil
}

func (j *ReminderJob) predictionURL(row dbgen.ListIncompletePredictionsStartingBetweenRow) string {
	match := models.Match{
		ID:        row.MatchID,
		Stage:     models.Stage(row.Stage),
		GroupID:   row.GroupID.String,
		PlayoffID: row.PlayoffID.String,
	}
	return j.baseURL + match.PredictionPath()
}

// RegisterReminderJobs registers the scheduled prediction reminder task.
func RegisterReminderJobs(database *db.DB, sender email.EmailSender, cfg *config.Config) error {
	if database == nil {
		return fmt.Errorf("reminder jobs require database")
	}
	if cfg == nil {
		return fmt.Errorf("reminder jobs require config")
	}
	if !cfg.Reminders.Enabled {
		log.Info().Msg("Prediction reminders disabled")
		return nil
	}

	jobLogger := log.With().
		Str("component", "prediction_reminders_job").
		Str("job_name", reminderJobName).
		Str("cron", cfg.Reminders.Cron).
		Logger()
	job := NewReminderJob(database.Queries, sender, cfg)

	_, err := AddJob(reminderJobName, cfg.Reminders.Cron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), reminderJobTimeout)
		defer cancel()
		ctx = jobLogger.WithContext(ctx)

		result, err := job.Run(ctx)
		if err != nil {
			jobLogger.Error().Err(err).Msg("Prediction reminder job failed")
			return
		}
		if result.Candidates > 0 {
			jobLogger.Info().
				Int("candidates", result.Candidates).
				Int("sent", result.Sent).
				Int("skipped", result.Skipped).
				Int("failed", result.Failed).
				Msg("Prediction reminders processed")
		}
	}, gocron.WithSingletonMode(gocron.LimitModeReschedule))
	return err
}
