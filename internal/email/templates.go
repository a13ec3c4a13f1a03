package email

import (
	"fmt"
	"strings"
	"time"
)

type Message struct {
	Subject string
	Body    string
}

type PredictionReminderDetails struct {
	Username string
	HomeTeam string
	AwayTeam string
	Stadium  string
	Kickoff  time.Time
	// PredictionURL links straight to the prediction form.
	PredictionURL string
}

func FormatKickoff(t time.Time) string {
	return t.UTC().Format("Monday, Jan 2, 2006 at 15:04 MST")
}

func orDefault(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}

// BuildPredictionReminder renders the email sent to users who have not yet
// predicted an upcoming match.
func BuildPredictionReminder(details PredictionReminderDetails) Message {
	home := orDefault(details.HomeTeam, "Team A")
	away := orDefault(details.AwayTeam, "Team B")

	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\n\n", orDefault(details.Username, "there"))
	fmt.Fprintf(&body, "You have not predicted %s vs %s yet.\n\n", home, away)
	fmt.Fprintf(&body, "Kickoff: %s\n", FormatKickoff(details.Kickoff))
	if stadium := strings.TrimSpace(details.Stadium); stadium != "" {
		fmt.Fprintf(&body, "Stadium: %s\n", stadium)
	}
	body.WriteString("\nPredictions lock when the match starts.\n")
	if url := strings.TrimSpace(details.PredictionURL); url != "" {
		fmt.Fprintf(&body, "Place your bet: %s\n", url)
	}

	return Message{
		Subject: fmt.Sprintf("Reminder: predict %s vs %s", home, away),
		Body:    body.String(),
	}
}
