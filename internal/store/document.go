// Package store persists the whole coaching document and exposes the Store
// interface the engine components receive by injection.
package store

import (
	"encoding/json"
	"time"

	"github.com/daycoach-ai/daycoach/internal/conversation"
	"github.com/daycoach-ai/daycoach/internal/record"
	"github.com/daycoach-ai/daycoach/internal/summary"
)

// Document is the full persisted application state, read and written whole.
type Document struct {
	Records       map[string]record.DailyRecord `json:"records,omitempty"`
	Habits        []record.Habit                `json:"habits,omitempty"`
	FocusSessions []record.FocusSession         `json:"focusSessions,omitempty"`
	Workouts      []record.Workout              `json:"workouts,omitempty"`
	Journal       []record.JournalEntry         `json:"journal,omitempty"`
	Finance       record.Finance                `json:"finance,omitempty"`
	Nutrition     []record.NutritionEntry       `json:"nutrition,omitempty"`
	Preferences   Preferences                   `json:"preferences"`
	Coach         CoachState                    `json:"dayCoach"`
	Summaries     summary.Cache                 `json:"dayCoachSummaries"`
}

// Preferences are user settings that survive a conversation clear.
type Preferences struct {
	Name             string `json:"name,omitempty"`
	ProactiveEnabled bool   `json:"proactiveEnabled"`
}

// CoachState holds trigger bookkeeping and the conversation log.
type CoachState struct {
	Messages        []conversation.Message        `json:"messages,omitempty"`
	LastCheckedData map[string]record.DailyRecord `json:"lastCheckedData,omitempty"`
	RecentTriggers  map[string][]string           `json:"recentTriggers,omitempty"`
	LastMessageTime time.Time                     `json:"lastMessageTime"`
	LastMaintenance time.Time                     `json:"lastMaintenance"`
}

// NewDocument returns an empty document with initialized maps.
func NewDocument() Document {
	return Document{
		Records: make(map[string]record.DailyRecord),
		Coach: CoachState{
			LastCheckedData: make(map[string]record.DailyRecord),
			RecentTriggers:  make(map[string][]string),
		},
		Summaries: summary.NewCache(),
	}
}

// normalize restores maps a JSON round-trip may have left nil.
func (d *Document) normalize() {
	if d.Records == nil {
		d.Records = make(map[string]record.DailyRecord)
	}
	if d.Coach.LastCheckedData == nil {
		d.Coach.LastCheckedData = make(map[string]record.DailyRecord)
	}
	if d.Coach.RecentTriggers == nil {
		d.Coach.RecentTriggers = make(map[string][]string)
	}
	if d.Summaries.Weekly == nil {
		d.Summaries.Weekly = make(map[string]summary.Weekly)
	}
	if d.Summaries.Monthly == nil {
		d.Summaries.Monthly = make(map[string]summary.Monthly)
	}
}

// Clone returns a deep copy via a JSON round-trip. The document is plain
// data, so the round-trip is lossless.
func (d Document) Clone() Document {
	encoded, err := json.Marshal(d)
	if err != nil {
		return NewDocument()
	}
	var out Document
	if err := json.Unmarshal(encoded, &out); err != nil {
		return NewDocument()
	}
	out.normalize()
	return out
}
