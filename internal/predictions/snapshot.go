package predictions

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/codr1/ScoreChallenge/internal/models"
)

// Snapshot is the copy of immutable prediction fields carried by the rendered
// form in its hidden field. It is only used as a timing guard.
type Snapshot struct {
	UserMatchID    int64
	MatchStartDate time.Time
}

type snapshotPayload struct {
	UserMatchID    *int64 `json:"userMatchId,omitempty"`
	PredictionID   *int64 `json:"predictionId,omitempty"`
	MatchStartDate string `json:"matchStartDate"`
}

// EncodeSnapshot renders the hidden field value for a prediction form.
func EncodeSnapshot(prediction models.Prediction) string {
	id := prediction.ID
	payload, err := json.Marshal(snapshotPayload{
		UserMatchID:    &id,
		MatchStartDate: prediction.Match.StartDate.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return ""
	}
	return string(payload)
}

// ParseSnapshot decodes a hidden field value. Both "userMatchId" and
// "predictionId" are accepted for the identifier.
func ParseSnapshot(raw string) (Snapshot, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Snapshot{}, fmt.Errorf("%w: snapshot is missing", ErrInvalidSnapshot)
	}

	var payload snapshotPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	id := payload.UserMatchID
	if id == nil {
		id = payload.PredictionID
	}
	if id == nil || *id <= 0 {
		return Snapshot{}, fmt.Errorf("%w: prediction id is missing", ErrInvalidSnapshot)
	}

	startDate, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(payload.MatchStartDate))
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: match start date: %v", ErrInvalidSnapshot, err)
	}

	return Snapshot{UserMatchID: *id, MatchStartDate: startDate.UTC()}, nil
}
