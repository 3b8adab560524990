// Package detect compares a day's record against its last-observed snapshot
// and reports at most one candidate trigger. Detection is pure: persisting
// the new baseline and the greeting flags is the caller's responsibility.
package detect

import (
	"reflect"
	"time"

	"github.com/daycoach-ai/daycoach/internal/record"
)

// Type tags one category of proactive trigger.
type Type string

const (
	TypeMorningMood         Type = "morningMood"
	TypeEveningMood         Type = "eveningMood"
	TypeJournalEntry        Type = "journalEntry"
	TypeNewWorkout          Type = "newWorkout"
	TypeNewSleep            Type = "newSleep"
	TypeAllTasksCompleted   Type = "allTasksCompleted"
	TypeSignificantProgress Type = "significantProgress"
	TypeGreeting            Type = "greeting"
)

// Record flags marking that a greeting window already fired for a date.
// Set by the caller after a greeting-originated message lands.
const (
	MorningGreetingFlag = "morningGreetingShown"
	EveningGreetingFlag = "eveningGreetingShown"
)

const notesGrowthThreshold = 100

// Greeting windows in local hours, [start, end).
const (
	morningWindowStart = 8
	morningWindowEnd   = 9
	eveningWindowStart = 19
	eveningWindowEnd   = 20
)

// Trigger is the result of one detection pass.
type Trigger struct {
	Type    Type
	Fire    bool
	Context map[string]any
}

func fire(t Type, ctx map[string]any) Trigger {
	return Trigger{Type: t, Fire: true, Context: ctx}
}

// Detect compares current against previous for one date and returns zero or
// one trigger, evaluating conditions in fixed priority order.
//
// An empty previous snapshot means this is the first observation of the date:
// no trigger fires and the caller should store current as the new baseline.
func Detect(current, previous record.DailyRecord, dateKey string, now time.Time) Trigger {
	if len(previous) == 0 {
		return Trigger{}
	}

	if newlySet(current, previous, record.FieldMorningMood) {
		return fire(TypeMorningMood, map[string]any{"mood": current[record.FieldMorningMood]})
	}
	if newlySet(current, previous, record.FieldEveningMood) {
		return fire(TypeEveningMood, map[string]any{"mood": current[record.FieldEveningMood]})
	}
	if delta := len(current.Text(record.FieldNotes)) - len(previous.Text(record.FieldNotes)); delta > notesGrowthThreshold {
		return fire(TypeJournalEntry, map[string]any{"notesDelta": delta})
	}
	if current.Has(record.FieldJournalChange) && changed(current[record.FieldJournalChange], previous[record.FieldJournalChange]) {
		return fire(TypeJournalEntry, map[string]any{"change": current[record.FieldJournalChange]})
	}
	if workoutAdded(current, previous) {
		return fire(TypeNewWorkout, map[string]any{"workouts": current.WorkoutCount()})
	}
	if newlySet(current, previous, record.FieldSleep) {
		return fire(TypeNewSleep, map[string]any{"sleep": current[record.FieldSleep]})
	}
	if trig, ok := taskProgress(current, previous); ok {
		return trig
	}

	return greeting(current, dateKey, now)
}

// changed compares two record values structurally. Record fields come from
// JSON, so a change marker may decode to a map or slice, which == panics on.
func changed(a, b any) bool {
	return !reflect.DeepEqual(a, b)
}

// newlySet reports whether field holds a value now and did not before.
func newlySet(current, previous record.DailyRecord, field string) bool {
	return current.Has(field) && !previous.Has(field)
}

func workoutAdded(current, previous record.DailyRecord) bool {
	cur, prev := current.WorkoutCount(), previous.WorkoutCount()
	if prev == 0 {
		return cur > 0
	}
	return cur > prev
}

func taskProgress(current, previous record.DailyRecord) (Trigger, bool) {
	curDone, curTotal := record.Completion(current.Checked())
	prevDone, prevTotal := record.Completion(previous.Checked())
	if curTotal == 0 {
		return Trigger{}, false
	}

	curRatio := float64(curDone) / float64(curTotal)
	prevComplete := prevTotal > 0 && prevDone == prevTotal

	if curDone == curTotal && !prevComplete {
		return fire(TypeAllTasksCompleted, map[string]any{"completed": curDone}), true
	}
	if curDone-prevDone > 2 {
		return fire(TypeSignificantProgress, map[string]any{"completed": curDone, "total": curTotal}), true
	}
	if prevTotal > 0 {
		prevRatio := float64(prevDone) / float64(prevTotal)
		if prevRatio < 0.5 && curRatio >= 0.5 {
			return fire(TypeSignificantProgress, map[string]any{"completed": curDone, "total": curTotal}), true
		}
	}
	return Trigger{}, false
}

// greeting falls back to the two fixed local-time windows, each firing at
// most once per date via a flag stored on that date's record.
func greeting(current record.DailyRecord, dateKey string, now time.Time) Trigger {
	if record.DayKey(now) != dateKey {
		return Trigger{}
	}
	hour := now.In(time.Local).Hour()
	switch {
	case hour >= morningWindowStart && hour < morningWindowEnd && !current.Flag(MorningGreetingFlag):
		return fire(TypeGreeting, map[string]any{"window": "morning", "flag": MorningGreetingFlag})
	case hour >= eveningWindowStart && hour < eveningWindowEnd && !current.Flag(EveningGreetingFlag):
		return fire(TypeGreeting, map[string]any{"window": "evening", "flag": EveningGreetingFlag})
	}
	return Trigger{}
}
