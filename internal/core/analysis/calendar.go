// Package analysis derives streak and mood statistics from completion
// histories. Every function is pure: it reads its arguments and nothing else.
package analysis

import (
	"sort"
	"time"

	"github.com/comitanigiacomo/habitly/internal/core/domain"
)

const day = 24 * time.Hour

// IsoWeek is an ISO 8601 (year, week) pair. Weeks run Monday to Sunday and
// week 1 is the week holding the year's first Thursday.
type IsoWeek struct {
	Year int
	Week int
}

func IsoWeekOf(t time.Time) IsoWeek {
	y, w := domain.TruncateDay(t).ISOWeek()
	return IsoWeek{Year: y, Week: w}
}

func (w IsoWeek) Before(o IsoWeek) bool {
	if w.Year != o.Year {
		return w.Year < o.Year
	}
	return w.Week < o.Week
}

// Follows reports whether w comes immediately after prev.
func (w IsoWeek) Follows(prev IsoWeek) bool {
	if w.Year == prev.Year {
		return w.Week == prev.Week+1
	}
	return w.Year == prev.Year+1 && w.Week == 1 && prev.Week == WeeksInISOYear(prev.Year)
}

// WeeksInISOYear returns 52 or 53. December 28th always falls in the last
// ISO week of its year.
func WeeksInISOYear(year int) int {
	_, w := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}

// distinctDays normalizes dates to calendar days and drops duplicates.
// The result is sorted ascending.
func distinctDays(dates []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))

	for _, d := range dates {
		key := domain.TruncateDay(d)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		days = append(days, key)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})

	return days
}

func distinctWeeks(dates []time.Time) []IsoWeek {
	seen := make(map[IsoWeek]struct{}, len(dates))
	weeks := make([]IsoWeek, 0, len(dates))

	for _, d := range dates {
		w := IsoWeekOf(d)
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		weeks = append(weeks, w)
	}

	sort.Slice(weeks, func(i, j int) bool {
		return weeks[i].Before(weeks[j])
	})

	return weeks
}
