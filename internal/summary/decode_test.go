package summary

import (
	"testing"
	"time"
)

func TestExtractJSON(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, true},
		{"prose wrapped", `Here you go: {"a":1} hope it helps`, `{"a":1}`, true},
		{"nested braces", `{"a":{"b":2}}`, `{"a":{"b":2}}`, true},
		{"braces inside strings", `{"a":"{not a close}"}`, `{"a":"{not a close}"}`, true},
		{"escaped quote", `{"a":"say \"hi\" {"}`, `{"a":"say \"hi\" {"}`, true},
		{"no object", "plain text", "", false},
		{"unbalanced", `{"a":1`, "", false},
	}
	for _, tc := range cases {
		got, ok := ExtractJSON(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("%s: got %q ok=%v, want %q ok=%v", tc.name, got, ok, tc.want, tc.ok)
		}
	}
}

func TestDecodeWeekly(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 31, 3, 0, 0, 0, time.UTC)
	text := `Sure! {"summary":"A steady week.","moodPattern":"improving","achievements":["ran twice"],"challenges":["late nights"],"metrics":{"workouts":2,"note":"ignored"}}`

	w, ok := DecodeWeekly("2026-W35", text, now)
	if !ok {
		t.Fatalf("expected decode to succeed")
	}
	if w.Week != "2026-W35" || w.Summary != "A steady week." || w.MoodPattern != "improving" {
		t.Fatalf("unexpected weekly: %+v", w)
	}
	if len(w.Achievements) != 1 || w.Achievements[0] != "ran twice" {
		t.Fatalf("unexpected achievements: %v", w.Achievements)
	}
	if w.Metrics["workouts"] != 2 {
		t.Fatalf("expected numeric metric kept, got %v", w.Metrics)
	}
	if _, ok := w.Metrics["note"]; ok {
		t.Fatalf("non-numeric metric must be dropped")
	}
	if !w.GeneratedAt.Equal(now) || w.Error {
		t.Fatalf("unexpected bookkeeping: %+v", w)
	}
}

func TestDecodeWeekly_RejectsMissingSummary(t *testing.T) {
	t.Parallel()

	for _, text := range []string{
		"no json here",
		`{"moodPattern":"flat"}`,
		`{"summary":"   "}`,
	} {
		if _, ok := DecodeWeekly("2026-W35", text, time.Now()); ok {
			t.Fatalf("expected decode failure for %q", text)
		}
	}
}

func TestDecodeMonthly_DominantMoodFallback(t *testing.T) {
	t.Parallel()

	metrics := Metrics{MoodCounts: map[string]int{"3": 1, "4": 5}}
	m, ok := DecodeMonthly("2026-07", metrics, `{"summary":"Good month.","keyInsight":"mornings work"}`, time.Now())
	if !ok {
		t.Fatalf("expected decode to succeed")
	}
	if m.DominantMood != "4" {
		t.Fatalf("expected dominant mood from metrics, got %q", m.DominantMood)
	}
	if m.KeyInsight != "mornings work" {
		t.Fatalf("unexpected insight %q", m.KeyInsight)
	}

	m, ok = DecodeMonthly("2026-07", metrics, `{"summary":"Good month.","dominantMood":"2"}`, time.Now())
	if !ok || m.DominantMood != "2" {
		t.Fatalf("expected explicit dominant mood kept, got %+v", m)
	}
}
