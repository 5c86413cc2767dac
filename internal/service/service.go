package service

import (
	"time"

	"github.com/google/uuid"
)

// now returns the current time in UTC at microsecond precision, which both
// SQLite and PostgreSQL round-trip exactly.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// parseID canonicalizes a UUID arriving as text. Malformed ids map to notFound.
func parseID(id string, notFound error) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", notFound
	}
	return parsed.String(), nil
}

func newID() string {
	return uuid.New().String()
}
