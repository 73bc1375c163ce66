package models

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidDate is returned by ParseDueDate for anything it cannot read
var ErrInvalidDate = errors.New("must be an RFC 3339 timestamp or a YYYY-MM-DD date")

// ParseDueDate accepts a full RFC 3339 timestamp or a bare date, which is
// taken as midnight UTC. The result is always in UTC.
func ParseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDate
}
