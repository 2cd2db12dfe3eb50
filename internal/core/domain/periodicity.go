package domain

import (
	"errors"
	"strings"
)

var ErrInvalidPeriodicity = errors.New("invalid periodicity (must be daily or weekly)")

// Periodicity is the cadence at which a habit is expected to be completed.
// It is fixed when the habit is created.
type Periodicity string

const (
	Daily  Periodicity = "daily"
	Weekly Periodicity = "weekly"
)

func (p Periodicity) Valid() bool {
	return p == Daily || p == Weekly
}

// Unit is the human label of one streak step.
func (p Periodicity) Unit() string {
	switch p {
	case Daily:
		return "day(s)"
	case Weekly:
		return "week(s)"
	default:
		return ""
	}
}

func (p Periodicity) String() string {
	return string(p)
}

func ParsePeriodicity(s string) (Periodicity, error) {
	p := Periodicity(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", ErrInvalidPeriodicity
	}
	return p, nil
}
