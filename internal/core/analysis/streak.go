package analysis

import (
	"time"

	"github.com/comitanigiacomo/habitly/internal/core/domain"
)

// weeklyWindow is how far back the next completion of a weekly habit may lie
// to keep the current streak alive.
const weeklyWindow = 7 * day

// CurrentStreak counts the run of periods with a completion that ends at today.
//
// Daily habits walk back from today one day at a time and stop at the first
// day without a completion. Weekly habits walk the completions from the most
// recent one: each must lie within seven days of the previous checkpoint,
// and the checkpoint then moves to the day before that completion.
// A completion after the checkpoint has a negative gap and always counts.
// Unknown periodicities have no streak.
func CurrentStreak(dates []time.Time, period domain.Periodicity, today time.Time) int {
	days := distinctDays(dates)
	if len(days) == 0 {
		return 0
	}

	today = domain.TruncateDay(today)

	switch period {
	case domain.Daily:
		present := make(map[time.Time]struct{}, len(days))
		for _, d := range days {
			present[d] = struct{}{}
		}

		streak := 0
		for current := today; ; current = current.AddDate(0, 0, -1) {
			if _, ok := present[current]; !ok {
				break
			}
			streak++
		}
		return streak

	case domain.Weekly:
		streak := 0
		checkpoint := today
		for i := len(days) - 1; i >= 0; i-- {
			if checkpoint.Sub(days[i]) > weeklyWindow {
				break
			}
			streak++
			checkpoint = days[i].AddDate(0, 0, -1)
		}
		return streak

	default:
		return 0
	}
}

// LongestStreak returns the longest run of consecutive periods with at least
// one completion anywhere in the history. Weekly runs follow ISO week
// numbering and carry across year ends whether the year has 52 or 53 weeks.
func LongestStreak(dates []time.Time, period domain.Periodicity) int {
	switch period {
	case domain.Daily:
		days := distinctDays(dates)
		return longestRun(len(days), func(i int) bool {
			return days[i].Sub(days[i-1]) == day
		})

	case domain.Weekly:
		weeks := distinctWeeks(dates)
		return longestRun(len(weeks), func(i int) bool {
			return weeks[i].Follows(weeks[i-1])
		})

	default:
		return 0
	}
}

// longestRun scans n sorted items once; consecutive(i) tells whether item i
// extends the run ending at item i-1.
func longestRun(n int, consecutive func(i int) bool) int {
	if n == 0 {
		return 0
	}

	best, run := 1, 1
	for i := 1; i < n; i++ {
		if consecutive(i) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}
