package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/daycoach-ai/daycoach/internal/conversation"
	"github.com/daycoach-ai/daycoach/internal/record"
)

func TestNewFile_RejectsEmptyPath(t *testing.T) {
	t.Parallel()

	if _, err := NewFile("  "); err == nil {
		t.Fatalf("expected error for blank path")
	}
}

func TestFile_MissingFileYieldsEmptyDocument(t *testing.T) {
	t.Parallel()

	f, err := NewFile(filepath.Join(t.TempDir(), "data.json"))
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	doc, err := f.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if doc.Records == nil || doc.Coach.LastCheckedData == nil || doc.Coach.RecentTriggers == nil {
		t.Fatalf("expected initialized maps on empty document")
	}
	if len(doc.Records) != 0 {
		t.Fatalf("expected no records, got %d", len(doc.Records))
	}
}

func TestFile_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "data.json")
	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}

	doc := NewDocument()
	doc.Records["2026-08-30"] = record.DailyRecord{
		record.FieldMorningMood: 4.0,
		record.FieldChecked:     map[string]bool{"a": true},
	}
	doc.Coach.Messages = []conversation.Message{{
		ID:        "msg_1",
		Sender:    conversation.SenderCoach,
		Content:   "well done",
		Timestamp: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}}
	doc.Coach.RecentTriggers["2026-08-30"] = []string{"morningMood"}
	doc.Preferences.ProactiveEnabled = true

	if err := f.Set(context.Background(), doc); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := f.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	rec := got.Records["2026-08-30"]
	if mood, ok := rec.Number(record.FieldMorningMood); !ok || mood != 4 {
		t.Fatalf("expected mood 4 after round trip, got %v ok=%v", mood, ok)
	}
	if done, total := record.Completion(rec.Checked()); done != 1 || total != 1 {
		t.Fatalf("expected checked map to survive, got %d/%d", done, total)
	}
	if len(got.Coach.Messages) != 1 || got.Coach.Messages[0].Content != "well done" {
		t.Fatalf("expected message to survive, got %+v", got.Coach.Messages)
	}
	if got.Coach.RecentTriggers["2026-08-30"][0] != "morningMood" {
		t.Fatalf("expected trigger ledger to survive")
	}
	if !got.Preferences.ProactiveEnabled {
		t.Fatalf("expected preferences to survive")
	}
}

func TestFile_SetReplacesPreviousContent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.json")
	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}

	first := NewDocument()
	first.Records["2026-08-29"] = record.DailyRecord{record.FieldNotes: "old"}
	if err := f.Set(context.Background(), first); err != nil {
		t.Fatalf("set first: %v", err)
	}

	second := NewDocument()
	second.Records["2026-08-30"] = record.DailyRecord{record.FieldNotes: "new"}
	if err := f.Set(context.Background(), second); err != nil {
		t.Fatalf("set second: %v", err)
	}

	got, err := f.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, ok := got.Records["2026-08-29"]; ok {
		t.Fatalf("expected old record replaced")
	}
	if got.Records["2026-08-30"].Text(record.FieldNotes) != "new" {
		t.Fatalf("expected new record present")
	}

	// No stray temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the data file, got %d entries", len(entries))
	}
}

func TestFile_CorruptFileReturnsError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	if _, err := f.Get(context.Background()); err == nil {
		t.Fatalf("expected decode error for corrupt file")
	}
}

func TestMemory_CopiesInAndOut(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	doc := NewDocument()
	doc.Records["2026-08-30"] = record.DailyRecord{record.FieldNotes: "original"}
	if err := m.Set(context.Background(), doc); err != nil {
		t.Fatalf("set: %v", err)
	}

	// Mutating the caller's copy must not leak into the store.
	doc.Records["2026-08-30"][record.FieldNotes] = "mutated"

	got, err := m.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Records["2026-08-30"].Text(record.FieldNotes) != "original" {
		t.Fatalf("store shared memory with the caller")
	}

	got.Records["2026-08-30"][record.FieldNotes] = "mutated again"
	again, _ := m.Get(context.Background())
	if again.Records["2026-08-30"].Text(record.FieldNotes) != "original" {
		t.Fatalf("Get leaked internal state")
	}
}
