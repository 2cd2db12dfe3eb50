package analysis

import "github.com/comitanigiacomo/habitly/internal/core/domain"

// ExtractMoodPairs collects the recorded before moods and the recorded after
// moods of a history. The two lists are filtered independently, so they only
// line up by index when every event carries both moods.
func ExtractMoodPairs(events []*domain.HabitEvent) ([]domain.Mood, []domain.Mood) {
	before := make([]domain.Mood, 0, len(events))
	after := make([]domain.Mood, 0, len(events))

	for _, e := range events {
		if !e.MoodBefore.IsZero() {
			before = append(before, e.MoodBefore)
		}
		if !e.MoodAfter.IsZero() {
			after = append(after, e.MoodAfter)
		}
	}

	return before, after
}

// CountMoodImprovements zips the two lists by position, truncating to the
// shorter one, and counts the pairs whose after score is strictly higher.
func CountMoodImprovements(before, after []domain.Mood) int {
	n := min(len(before), len(after))

	count := 0
	for i := 0; i < n; i++ {
		if after[i].Score() > before[i].Score() {
			count++
		}
	}
	return count
}

// CountPairedImprovements compares the moods of each event with each other.
// Events missing either mood are skipped.
func CountPairedImprovements(observations []domain.MoodObservation) int {
	count := 0
	for _, o := range observations {
		if o.Improved() {
			count++
		}
	}
	return count
}
