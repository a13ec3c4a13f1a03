package apiutil

import (
	"net/http"
	"strings"

	"github.com/codr1/ScoreChallenge/internal/models"
)

// MatchIDFromPath parses the "match-{id}" path value named key.
func MatchIDFromPath(r *http.Request, key string) (int64, error) {
	return models.ParseMatchPathSegment(r.PathValue(key))
}

// PathSegment returns the trimmed path value named key.
func PathSegment(r *http.Request, key string) string {
	return strings.TrimSpace(r.PathValue(key))
}
