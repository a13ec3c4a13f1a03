package predictions

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	FieldHidden        = "hidden"
	FieldHomeTeamScore = "homeTeamScore"
	FieldAwayTeamScore = "awayTeamScore"
	FieldGoalScorerID  = "goalScorerId"

	// NoGoalScorer is the goalScorerId value meaning "no scorer selected".
	NoGoalScorer = "0"
)

const (
	MessageInvalidSnapshot = "Invalid form submission."
	MessageMatchLocked     = "Match started or ended, cannot change bets."
	MessageNoResult        = "No result selected."
	MessageInvalidScore    = "Score must be a whole number 0 or greater."
	MessageInvalidScorer   = "Invalid goal scorer."
	MessageNotFound        = "Match not found."
)

var (
	ErrInvalidSnapshot  = errors.New("invalid prediction snapshot")
	ErrMatchLocked      = errors.New("match started or ended")
	ErrNoResultSelected = errors.New("no result selected")
	ErrInvalidFields    = errors.New("invalid prediction fields")
	ErrNotFound         = errors.New("prediction not found")
)

// Fields are the raw values posted by the prediction form.
type Fields struct {
	Hidden        string `json:"hidden"`
	HomeTeamScore string `json:"homeTeamScore"`
	AwayTeamScore string `json:"awayTeamScore"`
	GoalScorerID  string `json:"goalScorerId"`
}

func FieldsFromForm(form url.Values) Fields {
	return Fields{
		Hidden:        form.Get(FieldHidden),
		HomeTeamScore: form.Get(FieldHomeTeamScore),
		AwayTeamScore: form.Get(FieldAwayTeamScore),
		GoalScorerID:  form.Get(FieldGoalScorerID),
	}
}

type FieldErrors struct {
	HomeTeamScore string `json:"homeTeamScore,omitempty"`
	AwayTeamScore string `json:"awayTeamScore,omitempty"`
	GoalScorerID  string `json:"goalScorerId,omitempty"`
}

func (e FieldErrors) empty() bool {
	return e == FieldErrors{}
}

// Rejection is a user-correctable refusal of a submission. It carries the
// submitted fields back so the form can be re-rendered without data loss.
type Rejection struct {
	Err         error        `json:"-"`
	FormError   string       `json:"formError,omitempty"`
	FieldErrors *FieldErrors `json:"fieldErrors,omitempty"`
	Fields      *Fields      `json:"fields,omitempty"`
}

func (r *Rejection) Error() string {
	if r.FormError != "" {
		return r.FormError
	}
	return r.Err.Error()
}

func (r *Rejection) Unwrap() error {
	return r.Err
}

func reject(err error, message string, fields Fields) *Rejection {
	return &Rejection{Err: err, FormError: message, Fields: &fields}
}

// Update is a validated prediction write.
type Update struct {
	PredictionID  int64
	UserID        int64
	HomeTeamScore int64
	AwayTeamScore int64
	GoalScorerID  *int64
}

// Validate applies the submission rules in order and returns the first failure.
// startDate is the kickoff used for the timing guard.
func Validate(now, startDate time.Time, fields Fields) (Update, error) {
	if !now.Before(startDate) {
		return Update{}, reject(ErrMatchLocked, MessageMatchLocked, fields)
	}
	return ValidateScores(fields)
}

// ValidateScores checks the score and scorer fields without any timing guard.
func ValidateScores(fields Fields) (Update, error) {
	homeRaw := strings.TrimSpace(fields.HomeTeamScore)
	awayRaw := strings.TrimSpace(fields.AwayTeamScore)
	if homeRaw == "" || awayRaw == "" {
		return Update{}, reject(ErrNoResultSelected, MessageNoResult, fields)
	}

	var fieldErrors FieldErrors
	homeScore, err := parseScore(homeRaw)
	if err != nil {
		fieldErrors.HomeTeamScore = MessageInvalidScore
	}
	awayScore, err := parseScore(awayRaw)
	if err != nil {
		fieldErrors.AwayTeamScore = MessageInvalidScore
	}
	goalScorerID, err := ParseGoalScorerID(fields.GoalScorerID)
	if err != nil {
		fieldErrors.GoalScorerID = MessageInvalidScorer
	}
	if !fieldErrors.empty() {
		return Update{}, &Rejection{Err: ErrInvalidFields, FieldErrors: &fieldErrors, Fields: &fields}
	}

	return Update{
		HomeTeamScore: homeScore,
		AwayTeamScore: awayScore,
		GoalScorerID:  goalScorerID,
	}, nil
}

func parseScore(raw string) (int64, error) {
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, strconv.ErrRange
	}
	return value, nil
}

// ParseGoalScorerID normalizes a submitted scorer value. An empty value or the
// NoGoalScorer sentinel yields nil.
func ParseGoalScorerID(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == NoGoalScorer {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	if value <= 0 {
		return nil, strconv.ErrRange
	}
	return &value, nil
}
