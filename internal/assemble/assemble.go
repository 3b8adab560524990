// Package assemble builds the bounded data payload handed to the generator:
// raw recent days, journal statistics, cross-cutting aggregates, and the
// most recent rollups.
package assemble

import (
	"sort"
	"time"

	"github.com/daycoach-ai/daycoach/internal/record"
	"github.com/daycoach-ai/daycoach/internal/store"
	"github.com/daycoach-ai/daycoach/internal/summary"
)

const (
	recentDays      = 7
	journalDays     = 14
	financeDays     = 7
	nutritionDays   = 7
	maxFocus        = 10
	maxWorkouts     = 10
	weeklyIncluded  = 2
	topListSize     = 5
)

// Payload is the assembled context for one generation call. It always
// contains the current day's record (possibly empty) and no raw date
// outside [today-13, today]; older history arrives only through rollups.
type Payload struct {
	Today               string                        `json:"today"`
	RecentDays          map[string]record.DailyRecord `json:"recentDays"`
	Journal             JournalWindow                 `json:"journal"`
	Habits              []record.Habit                `json:"habits,omitempty"`
	FocusSessions       []record.FocusSession         `json:"focusSessions,omitempty"`
	Workouts            []record.Workout              `json:"workouts,omitempty"`
	Finance             record.Finance                `json:"finance,omitempty"`
	Nutrition           []record.NutritionEntry       `json:"nutrition,omitempty"`
	WeeklySummaries     []summary.Weekly              `json:"weeklySummaries,omitempty"`
	MonthlySummaryCount int                           `json:"monthlySummaryCount"`
}

// JournalWindow is the recent journal slice with derived statistics.
type JournalWindow struct {
	Entries []record.JournalEntry `json:"entries,omitempty"`
	Stats   JournalStats          `json:"stats"`
}

// JournalStats are aggregates over the journal window.
type JournalStats struct {
	EntryCount    int                    `json:"entryCount"`
	AvgMood       float64                `json:"avgMood,omitempty"`
	AvgEnergy     float64                `json:"avgEnergy,omitempty"`
	TopCategories []string               `json:"topCategories,omitempty"`
	TopPeople     []string               `json:"topPeople,omitempty"`
	People        map[string]PersonStats `json:"people,omitempty"`
}

// PersonStats aggregates mentions of one person across journal entries.
type PersonStats struct {
	Mentions int     `json:"mentions"`
	AvgMood  float64 `json:"avgMood,omitempty"`
}

// Build assembles the payload for today from one document snapshot.
func Build(doc store.Document, today time.Time) Payload {
	todayKey := record.DayKey(today)

	recent := make(map[string]record.DailyRecord, recentDays)
	for i := 0; i < recentDays; i++ {
		key := record.DayKey(today.AddDate(0, 0, -i))
		if rec, ok := doc.Records[key]; ok {
			recent[key] = rec
		}
	}
	if _, ok := recent[todayKey]; !ok {
		recent[todayKey] = record.DailyRecord{}
	}

	return Payload{
		Today:               todayKey,
		RecentDays:          recent,
		Journal:             journalWindow(doc.Journal, today),
		Habits:              doc.Habits,
		FocusSessions:       lastN(doc.FocusSessions, maxFocus),
		Workouts:            lastCompletedWorkouts(doc.Workouts, maxWorkouts),
		Finance:             financeWindow(doc.Finance, today),
		Nutrition:           entriesSince(doc.Nutrition, record.DayKey(today.AddDate(0, 0, -(nutritionDays-1)))),
		WeeklySummaries:     recentWeeklies(doc.Summaries.Weekly),
		MonthlySummaryCount: len(doc.Summaries.Monthly),
	}
}

func journalWindow(entries []record.JournalEntry, today time.Time) JournalWindow {
	from := record.DayKey(today.AddDate(0, 0, -(journalDays - 1)))
	to := record.DayKey(today)

	window := make([]record.JournalEntry, 0)
	for _, entry := range entries {
		if entry.Date >= from && entry.Date <= to {
			window = append(window, entry)
		}
	}
	sort.Slice(window, func(i, j int) bool { return window[i].Date < window[j].Date })
	return JournalWindow{Entries: window, Stats: journalStats(window)}
}

func journalStats(entries []record.JournalEntry) JournalStats {
	stats := JournalStats{EntryCount: len(entries)}
	if len(entries) == 0 {
		return stats
	}

	var moodSum, energySum float64
	var moodCount, energyCount int
	categories := make(map[string]int)
	people := make(map[string]*PersonStats)
	moodByPerson := make(map[string]float64)

	for _, entry := range entries {
		if entry.Mood > 0 {
			moodSum += entry.Mood
			moodCount++
		}
		if entry.Energy > 0 {
			energySum += entry.Energy
			energyCount++
		}
		for _, category := range entry.Categories {
			categories[category]++
		}
		for _, person := range entry.People {
			if people[person] == nil {
				people[person] = &PersonStats{}
			}
			people[person].Mentions++
			moodByPerson[person] += entry.Mood
		}
	}

	if moodCount > 0 {
		stats.AvgMood = moodSum / float64(moodCount)
	}
	if energyCount > 0 {
		stats.AvgEnergy = energySum / float64(energyCount)
	}
	stats.TopCategories = topKeys(categories, topListSize)

	mentions := make(map[string]int, len(people))
	stats.People = make(map[string]PersonStats, len(people))
	for person, ps := range people {
		mentions[person] = ps.Mentions
		avg := 0.0
		if ps.Mentions > 0 {
			avg = moodByPerson[person] / float64(ps.Mentions)
		}
		stats.People[person] = PersonStats{Mentions: ps.Mentions, AvgMood: avg}
	}
	stats.TopPeople = topKeys(mentions, topListSize)
	return stats
}

// topKeys returns the n highest-count keys, ties broken alphabetically.
func topKeys(counts map[string]int, n int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

func lastN[T any](items []T, n int) []T {
	if len(items) <= n {
		return append([]T{}, items...)
	}
	return append([]T{}, items[len(items)-n:]...)
}

func lastCompletedWorkouts(workouts []record.Workout, n int) []record.Workout {
	completed := make([]record.Workout, 0, len(workouts))
	for _, w := range workouts {
		if w.Completed {
			completed = append(completed, w)
		}
	}
	return lastN(completed, n)
}

func financeWindow(finance record.Finance, today time.Time) record.Finance {
	from := record.DayKey(today.AddDate(0, 0, -(financeDays - 1)))
	recent := make([]record.Transaction, 0)
	for _, tx := range finance.Transactions {
		if tx.Date >= from {
			recent = append(recent, tx)
		}
	}
	return record.Finance{
		Transactions: recent,
		Recurring:    finance.Recurring,
		Budgets:      finance.Budgets,
	}
}

func entriesSince(entries []record.NutritionEntry, from string) []record.NutritionEntry {
	recent := make([]record.NutritionEntry, 0)
	for _, entry := range entries {
		if entry.Date >= from {
			recent = append(recent, entry)
		}
	}
	return recent
}

// recentWeeklies returns the newest summaries by week key, descending.
func recentWeeklies(weekly map[string]summary.Weekly) []summary.Weekly {
	keys := make([]string, 0, len(weekly))
	for k := range weekly {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	if len(keys) > weeklyIncluded {
		keys = keys[:weeklyIncluded]
	}
	out := make([]summary.Weekly, 0, len(keys))
	for _, k := range keys {
		out = append(out, weekly[k])
	}
	return out
}
