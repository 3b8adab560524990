// Package summary produces and caches weekly and monthly rollups of daily
// records, replacing raw detail for periods older than the recent window.
package summary

import "time"

// Weekly is the generated rollup for one ISO week.
type Weekly struct {
	Week         string             `json:"week"`
	Summary      string             `json:"summary"`
	MoodPattern  string             `json:"moodPattern,omitempty"`
	Achievements []string           `json:"achievements,omitempty"`
	Challenges   []string           `json:"challenges,omitempty"`
	Metrics      map[string]float64 `json:"metrics,omitempty"`
	Dates        []string           `json:"dates,omitempty"`
	GeneratedAt  time.Time          `json:"generatedAt"`
	Error        bool               `json:"error,omitempty"`
}

// Metrics are the locally computed statistics for one calendar month.
type Metrics struct {
	DayCount          int            `json:"dayCount"`
	MoodCounts        map[string]int `json:"moodCounts,omitempty"`
	WorkoutCount      int            `json:"workoutCount"`
	AvgTaskCompletion float64        `json:"avgTaskCompletion"`
	JournalCount      int            `json:"journalCount"`
	FocusSessionCount int            `json:"focusSessionCount"`
}

// Monthly is the generated rollup for one calendar month. Metrics are
// computed locally; only the narrative comes from the generator.
type Monthly struct {
	Month        string    `json:"month"`
	Summary      string    `json:"summary"`
	DominantMood string    `json:"dominantMood,omitempty"`
	KeyInsight   string    `json:"keyInsight,omitempty"`
	Metrics      Metrics   `json:"metrics"`
	GeneratedAt  time.Time `json:"generatedAt"`
	Error        bool      `json:"error,omitempty"`
}

// Cache holds every rollup plus the refresh memoization timestamp. It is
// created on first use, refreshed at most once per calendar day, and
// persisted by the caller after each refresh.
type Cache struct {
	Weekly         map[string]Weekly  `json:"weeklySummaries,omitempty"`
	Monthly        map[string]Monthly `json:"monthlySummaries,omitempty"`
	LastSummarized time.Time          `json:"lastSummarized"`
}

// NewCache returns an empty cache with initialized maps.
func NewCache() Cache {
	return Cache{
		Weekly:  make(map[string]Weekly),
		Monthly: make(map[string]Monthly),
	}
}

// Clone returns an independent copy of the cache.
func (c Cache) Clone() Cache {
	out := Cache{
		Weekly:         make(map[string]Weekly, len(c.Weekly)),
		Monthly:        make(map[string]Monthly, len(c.Monthly)),
		LastSummarized: c.LastSummarized,
	}
	for k, v := range c.Weekly {
		out.Weekly[k] = v
	}
	for k, v := range c.Monthly {
		out.Monthly[k] = v
	}
	return out
}
