package email

import (
	"context"
	"errors"
	"strings"
	"time"
)

const reminderEmailTimeout = 5 * time.Second

var errEmptyMessage = errors.New("reminder subject and body are required")

// SendPredictionReminder delivers a reminder and waits for the result. The
// send is bounded by reminderEmailTimeout and stops when ctx is cancelled.
func SendPredictionReminder(ctx context.Context, sender EmailSender, recipient string, message Message, from string) error {
	if sender == nil {
		return errors.New("email sender is not configured")
	}
	if message.Subject == "" || message.Body == "" {
		return errEmptyMessage
	}
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return errors.New("recipient is required")
	}

	sendCtx, cancel := context.WithTimeout(ctx, reminderEmailTimeout)
	defer cancel()
	return sender.SendFrom(sendCtx, recipient, message.Subject, message.Body, from)
}
