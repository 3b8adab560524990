package summary

import (
	"strconv"
	"strings"

	"github.com/daycoach-ai/daycoach/internal/record"
)

// MonthMetrics computes the statistics for one YYYY-MM month from raw store
// state. Average task completion only counts days whose checked map is
// non-empty; the workout count is the number of days containing a workout.
func MonthMetrics(month string, records map[string]record.DailyRecord, journal []record.JournalEntry, focus []record.FocusSession) Metrics {
	m := Metrics{MoodCounts: make(map[string]int)}

	var completionSum float64
	var completionDays int
	for dateKey, rec := range records {
		if !strings.HasPrefix(dateKey, month+"-") {
			continue
		}
		m.DayCount++
		for _, field := range []string{record.FieldMorningMood, record.FieldEveningMood} {
			if mood, ok := rec.Number(field); ok {
				m.MoodCounts[strconv.Itoa(int(mood))]++
			}
		}
		if rec.WorkoutCount() > 0 {
			m.WorkoutCount++
		}
		if done, total := record.Completion(rec.Checked()); total > 0 {
			completionSum += float64(done) / float64(total) * 100
			completionDays++
		}
	}
	if completionDays > 0 {
		m.AvgTaskCompletion = completionSum / float64(completionDays)
	}

	for _, entry := range journal {
		if strings.HasPrefix(entry.Date, month+"-") {
			m.JournalCount++
		}
	}
	for _, session := range focus {
		if strings.HasPrefix(session.Date, month+"-") {
			m.FocusSessionCount++
		}
	}
	return m
}

// DominantMood returns the most frequent mood bucket, ties broken by the
// higher mood value.
func DominantMood(counts map[string]int) string {
	best := ""
	bestCount := 0
	for mood, count := range counts {
		if count > bestCount || (count == bestCount && mood > best) {
			best = mood
			bestCount = count
		}
	}
	return best
}
