// Package record defines the daily-record data model shared across the
// detection, summarization, and context-assembly layers.
package record

// DailyRecord is the full set of tracked fields for one calendar date.
// It carries no fixed shape beyond the field names the engine consumes;
// a date's record is only ever extended or overwritten per field.
type DailyRecord map[string]any

// Well-known DailyRecord field names consumed by the engine.
const (
	FieldMorningMood   = "morningMood"
	FieldEveningMood   = "eveningMood"
	FieldMorningEnergy = "morningEnergy"
	FieldChecked       = "checked"
	FieldNotes         = "notes"
	FieldWorkout       = "workout"
	FieldWorkouts      = "workouts"
	FieldSleep         = "sleep"
	FieldHabitProgress = "habitProgress"
	FieldJournalChange = "journalChange"
)

// Has reports whether field is present with a non-nil value.
func (r DailyRecord) Has(field string) bool {
	if r == nil {
		return false
	}
	v, ok := r[field]
	return ok && v != nil
}

// Number returns field as a float64 when it holds a numeric value.
// JSON round-trips store all numbers as float64; int variants cover
// records built in code.
func (r DailyRecord) Number(field string) (float64, bool) {
	if r == nil {
		return 0, false
	}
	switch v := r[field].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// Text returns field as a string, or "" when absent or non-string.
func (r DailyRecord) Text(field string) string {
	if r == nil {
		return ""
	}
	s, _ := r[field].(string)
	return s
}

// Flag returns field as a bool, or false when absent or non-bool.
func (r DailyRecord) Flag(field string) bool {
	if r == nil {
		return false
	}
	b, _ := r[field].(bool)
	return b
}

// Checked returns the task-completion map, normalizing both
// map[string]bool and the map[string]any shape JSON decoding produces.
func (r DailyRecord) Checked() map[string]bool {
	if r == nil {
		return nil
	}
	switch v := r[FieldChecked].(type) {
	case map[string]bool:
		return v
	case map[string]any:
		out := make(map[string]bool, len(v))
		for k, raw := range v {
			b, _ := raw.(bool)
			out[k] = b
		}
		return out
	default:
		return nil
	}
}

// WorkoutCount returns the number of workouts recorded on this date:
// the length of the workouts list, or 1 when a single workout field is set.
func (r DailyRecord) WorkoutCount() int {
	if r == nil {
		return 0
	}
	if list, ok := r[FieldWorkouts].([]any); ok {
		return len(list)
	}
	if r.Has(FieldWorkout) {
		return 1
	}
	return 0
}

// Clone returns a shallow per-field copy of the record.
func (r DailyRecord) Clone() DailyRecord {
	if r == nil {
		return nil
	}
	out := make(DailyRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Completion returns completed and total task counts from a checked map.
func Completion(checked map[string]bool) (done, total int) {
	for _, ok := range checked {
		total++
		if ok {
			done++
		}
	}
	return done, total
}
