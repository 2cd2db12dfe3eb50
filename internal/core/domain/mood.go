package domain

import (
	"errors"
	"strings"
)

var ErrInvalidMood = errors.New("invalid mood (must be 😞, 😐 or 😄)")

// Mood is one level of the three-step mood scale recorded around a completion.
// The zero value means the mood was not recorded.
type Mood string

const (
	MoodNone     Mood = ""
	MoodNegative Mood = "😞"
	MoodNeutral  Mood = "😐"
	MoodPositive Mood = "😄"
)

var moodAliases = map[string]Mood{
	"negative": MoodNegative,
	"bad":      MoodNegative,
	"neutral":  MoodNeutral,
	"ok":       MoodNeutral,
	"positive": MoodPositive,
	"good":     MoodPositive,
}

// Score maps the mood onto 0..2. Unrecognized moods score 0.
func (m Mood) Score() int {
	switch m {
	case MoodNeutral:
		return 1
	case MoodPositive:
		return 2
	default:
		return 0
	}
}

func (m Mood) Valid() bool {
	return m == MoodNegative || m == MoodNeutral || m == MoodPositive
}

func (m Mood) IsZero() bool {
	return m == MoodNone
}

func (m Mood) String() string {
	return string(m)
}

// ParseMood accepts the emoji itself or one of its word aliases.
// An empty input yields MoodNone.
func ParseMood(s string) (Mood, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return MoodNone, nil
	}

	m := Mood(s)
	if m.Valid() {
		return m, nil
	}

	if alias, ok := moodAliases[strings.ToLower(s)]; ok {
		return alias, nil
	}

	return MoodNone, ErrInvalidMood
}

// MoodObservation is the before/after pair recorded on a single event.
type MoodObservation struct {
	Before Mood `json:"before,omitempty"`
	After  Mood `json:"after,omitempty"`
}

func (o MoodObservation) Complete() bool {
	return !o.Before.IsZero() && !o.After.IsZero()
}

func (o MoodObservation) Improved() bool {
	return o.Complete() && o.After.Score() > o.Before.Score()
}
