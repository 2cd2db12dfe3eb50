package analysis

import (
	"time"

	"github.com/comitanigiacomo/habitly/internal/core/domain"
)

// Dates projects an event history onto its completion dates.
func Dates(events []*domain.HabitEvent) []time.Time {
	dates := make([]time.Time, 0, len(events))
	for _, e := range events {
		dates = append(dates, e.Date)
	}
	return dates
}

// Observations projects an event history onto its per-event mood pairs.
func Observations(events []*domain.HabitEvent) []domain.MoodObservation {
	obs := make([]domain.MoodObservation, 0, len(events))
	for _, e := range events {
		obs = append(obs, e.Observation())
	}
	return obs
}
