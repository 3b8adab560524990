package record

import "testing"

func TestAccessors_HandleMissingAndWrongTypes(t *testing.T) {
	t.Parallel()

	rec := DailyRecord{
		FieldMorningMood: 4.0,
		FieldNotes:       "fine morning",
		"flagged":        true,
		"weird":          []string{"x"},
	}

	if !rec.Has(FieldMorningMood) {
		t.Fatalf("expected morning mood present")
	}
	if rec.Has(FieldEveningMood) {
		t.Fatalf("expected evening mood absent")
	}
	if n, ok := rec.Number(FieldMorningMood); !ok || n != 4 {
		t.Fatalf("expected mood 4, got %v ok=%v", n, ok)
	}
	if _, ok := rec.Number("weird"); ok {
		t.Fatalf("expected non-numeric field to report !ok")
	}
	if got := rec.Text(FieldNotes); got != "fine morning" {
		t.Fatalf("expected notes text, got %q", got)
	}
	if got := rec.Text("flagged"); got != "" {
		t.Fatalf("expected empty text for bool field, got %q", got)
	}
	if !rec.Flag("flagged") {
		t.Fatalf("expected flag true")
	}

	var nilRec DailyRecord
	if nilRec.Has(FieldNotes) || nilRec.Flag("x") || nilRec.Text("x") != "" {
		t.Fatalf("nil record accessors must return zero values")
	}
}

func TestNumber_AcceptsIntVariants(t *testing.T) {
	t.Parallel()

	rec := DailyRecord{"a": int(3), "b": int64(5), "c": float32(2.5)}
	for field, want := range map[string]float64{"a": 3, "b": 5, "c": 2.5} {
		if got, ok := rec.Number(field); !ok || got != want {
			t.Fatalf("field %s: expected %v, got %v ok=%v", field, want, got, ok)
		}
	}
}

func TestChecked_NormalizesJSONShape(t *testing.T) {
	t.Parallel()

	rec := DailyRecord{FieldChecked: map[string]any{"task1": true, "task2": false}}
	checked := rec.Checked()
	if len(checked) != 2 || !checked["task1"] || checked["task2"] {
		t.Fatalf("unexpected checked map: %v", checked)
	}

	typed := DailyRecord{FieldChecked: map[string]bool{"a": true}}
	if got := typed.Checked(); len(got) != 1 || !got["a"] {
		t.Fatalf("expected typed map passthrough, got %v", got)
	}
	if got := (DailyRecord{}).Checked(); got != nil {
		t.Fatalf("expected nil checked for empty record, got %v", got)
	}
}

func TestWorkoutCount(t *testing.T) {
	t.Parallel()

	if got := (DailyRecord{FieldWorkouts: []any{"run", "lift"}}).WorkoutCount(); got != 2 {
		t.Fatalf("expected 2 workouts, got %d", got)
	}
	if got := (DailyRecord{FieldWorkout: map[string]any{"type": "run"}}).WorkoutCount(); got != 1 {
		t.Fatalf("expected single workout field to count 1, got %d", got)
	}
	if got := (DailyRecord{}).WorkoutCount(); got != 0 {
		t.Fatalf("expected 0 workouts, got %d", got)
	}
}

func TestCompletion(t *testing.T) {
	t.Parallel()

	done, total := Completion(map[string]bool{"a": true, "b": false, "c": true})
	if done != 2 || total != 3 {
		t.Fatalf("expected 2/3, got %d/%d", done, total)
	}
	if done, total := Completion(nil); done != 0 || total != 0 {
		t.Fatalf("expected 0/0 for nil map, got %d/%d", done, total)
	}
}

func TestClone_IsIndependent(t *testing.T) {
	t.Parallel()

	rec := DailyRecord{FieldNotes: "original"}
	cp := rec.Clone()
	cp[FieldNotes] = "changed"
	if rec.Text(FieldNotes) != "original" {
		t.Fatalf("clone mutated the source record")
	}
	if (DailyRecord)(nil).Clone() != nil {
		t.Fatalf("expected nil clone of nil record")
	}
}
