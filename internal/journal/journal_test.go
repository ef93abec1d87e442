package journal

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/moodcal/internal/constants"
	"github.com/julianstephens/moodcal/internal/models"
	"github.com/julianstephens/moodcal/internal/storage"
)

var fixedNow = time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

func setupTestJournal(t *testing.T, opts ...Option) (*Store, *storage.MemoryStore) {
	t.Helper()
	kv := storage.NewMemoryStore()
	if err := kv.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return New(kv, opts...), kv
}

func entry(date string, mood models.Mood, note string) models.MoodEntry {
	day, err := models.ParseDay(date)
	if err != nil {
		panic(err)
	}
	return models.NewMoodEntry(day, mood, note, fixedNow.Truncate(time.Millisecond))
}

func assertEntryEqual(t *testing.T, got, want models.MoodEntry) {
	t.Helper()
	if got.Date != want.Date || got.Mood != want.Mood || got.Label != want.Label || got.Note != want.Note {
		t.Errorf("entry = %+v, want %+v", got, want)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		entry models.MoodEntry
	}{
		{"plain", entry("2024-03-15", models.MoodGood, "ok")},
		{"empty note", entry("2024-03-14", models.MoodBad, "")},
		{"unicode note", entry("2024-02-29", models.MoodGreat, "晴れ☀️ \"quoted\"")},
		{"max length note", entry("2023-12-31", models.MoodMeh, strings.Repeat("x", constants.NoteMaxLen))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j, _ := setupTestJournal(t)
			if err := j.Put(tt.entry); err != nil {
				t.Fatalf("Put() error = %v", err)
			}
			got, ok, err := j.Get(tt.entry.Date)
			if err != nil || !ok {
				t.Fatalf("Get() ok %v, err %v", ok, err)
			}
			assertEntryEqual(t, got, tt.entry)
		})
	}
}

func TestPutOverwritesWholesale(t *testing.T) {
	j, _ := setupTestJournal(t)
	first := entry("2024-03-15", models.MoodBad, "long first note")
	second := entry("2024-03-15", models.MoodGreat, "")
	second.CreatedAt = first.CreatedAt.Add(time.Hour)

	if err := j.Put(first); err != nil {
		t.Fatal(err)
	}
	if err := j.Put(second); err != nil {
		t.Fatal(err)
	}

	got, ok, err := j.Get(second.Date)
	if err != nil || !ok {
		t.Fatalf("Get() ok %v, err %v", ok, err)
	}
	assertEntryEqual(t, got, second)

	all, err := j.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("All() has %d entries, want 1", len(all))
	}
}

func TestPutLeavesOtherDatesAlone(t *testing.T) {
	j, _ := setupTestJournal(t)
	a := entry("2024-03-14", models.MoodMeh, "a")
	b := entry("2024-03-15", models.MoodGood, "b")
	if err := j.Put(a); err != nil {
		t.Fatal(err)
	}
	if err := j.Put(b); err != nil {
		t.Fatal(err)
	}
	got, ok, _ := j.Get(a.Date)
	if !ok {
		t.Fatal("earlier entry disappeared")
	}
	assertEntryEqual(t, got, a)
}

func TestPutRejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name  string
		entry models.MoodEntry
	}{
		{"no date", models.MoodEntry{Mood: models.MoodGood}},
		{"no mood", entry("2024-03-15", models.MoodUnset, "x")},
		{"note too long", entry("2024-03-15", models.MoodGood, strings.Repeat("x", constants.NoteMaxLen+1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j, kv := setupTestJournal(t)
			if err := j.Put(tt.entry); !errors.Is(err, ErrInvalidEntry) {
				t.Errorf("Put() error = %v, want ErrInvalidEntry", err)
			}
			if _, ok, _ := kv.Get(constants.EntriesKey); ok {
				t.Error("invalid entry was written")
			}
		})
	}
}

func TestPersistedFormat(t *testing.T) {
	j, kv := setupTestJournal(t)
	if err := j.Put(entry("2024-03-15", models.MoodGood, "ok")); err != nil {
		t.Fatal(err)
	}
	raw, _, _ := kv.Get(constants.EntriesKey)

	var doc map[string]map[string]string
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("persisted journal is not a JSON object of records: %v", err)
	}
	rec, ok := doc["2024-03-15"]
	if !ok {
		t.Fatalf("missing record for 2024-03-15 in %s", raw)
	}
	want := map[string]string{
		"mood":      "good",
		"label":     "Pretty good",
		"note":      "ok",
		"createdAt": "2024-03-15T18:30:00.000Z",
	}
	for k, v := range want {
		if rec[k] != v {
			t.Errorf("%s = %q, want %q", k, rec[k], v)
		}
	}
}

func TestPutTruncatesCreatedAt(t *testing.T) {
	j, kv := setupTestJournal(t)
	berlin := time.FixedZone("CET", 3600)
	e := entry("2024-03-15", models.MoodGreat, "")
	e.CreatedAt = time.Date(2024, 3, 15, 19, 30, 0, 123_987_654, berlin)
	if err := j.Put(e); err != nil {
		t.Fatal(err)
	}

	raw, _, _ := kv.Get(constants.EntriesKey)
	if !strings.Contains(raw, `"createdAt":"2024-03-15T18:30:00.123Z"`) {
		t.Errorf("persisted createdAt not UTC milliseconds: %s", raw)
	}

	got, ok, err := j.Get(e.Date)
	if err != nil || !ok {
		t.Fatalf("Get() ok %v, err %v", ok, err)
	}
	want := time.Date(2024, 3, 15, 18, 30, 0, 123_000_000, time.UTC)
	if !got.CreatedAt.Equal(want) || got.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, want)
	}
}

func TestReadsExternalWrites(t *testing.T) {
	j, kv := setupTestJournal(t)
	if err := j.Put(entry("2024-03-15", models.MoodGood, "")); err != nil {
		t.Fatal(err)
	}
	err := kv.Set(constants.EntriesKey, `{"2024-03-15":{"mood":"bad","label":"Rough day","note":"changed","createdAt":"2024-03-15T20:00:00.000Z"}}`)
	if err != nil {
		t.Fatal(err)
	}
	got, ok, _ := j.Get(models.NewDay(2024, 3, 15))
	if !ok || got.Mood != models.MoodBad || got.Note != "changed" {
		t.Errorf("Get() did not observe external write: %+v", got)
	}
}

func TestLabelDerivedFromMood(t *testing.T) {
	j, kv := setupTestJournal(t)
	if err := kv.Set(constants.EntriesKey, `{"2024-03-15":{"mood":"great","label":"tampered","note":"","createdAt":""}}`); err != nil {
		t.Fatal(err)
	}
	got, ok, _ := j.Get(models.NewDay(2024, 3, 15))
	if !ok || got.Label != models.MoodGreat.Label() {
		t.Errorf("Label = %q, want %q", got.Label, models.MoodGreat.Label())
	}
}

func TestUnreadableDocumentFailsSafe(t *testing.T) {
	var reported []*ParseError
	j, kv := setupTestJournal(t, WithParseErrorHandler(func(p *ParseError) { reported = append(reported, p) }))
	const garbage = `{"2024-03-01": {"mood": "bad"` // truncated
	if err := kv.Set(constants.EntriesKey, garbage); err != nil {
		t.Fatal(err)
	}

	all, err := j.All()
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 0 {
		t.Errorf("All() = %v, want empty", all)
	}
	if _, ok, err := j.Get(models.NewDay(2024, 3, 1)); ok || err != nil {
		t.Errorf("Get() ok %v, err %v", ok, err)
	}
	if len(reported) == 0 || !reported[0].Document() {
		t.Fatalf("expected a document-level parse error, got %v", reported)
	}

	report, err := j.Verify()
	if err != nil {
		t.Fatal(err)
	}
	if report.Healthy() || report.FirstDocumentError() == nil {
		t.Errorf("Verify() = %+v, want document problem", report)
	}

	// Writing replaces the document but keeps the garbage under a quarantine key.
	if err := j.Put(entry("2024-03-15", models.MoodGood, "")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	quarantineKey := constants.CorruptKeyPrefix + "1710527400"
	saved, ok, _ := kv.Get(quarantineKey)
	if !ok || saved != garbage {
		t.Errorf("quarantined value = %q (ok %v), want original bytes", saved, ok)
	}
	if _, ok, _ := j.Get(models.NewDay(2024, 3, 15)); !ok {
		t.Error("new entry not readable after replacing corrupt document")
	}

	report, err = j.Verify()
	if err != nil {
		t.Fatal(err)
	}
	if !report.Healthy() || len(report.Quarantined) != 1 || report.Quarantined[0] != quarantineKey {
		t.Errorf("Verify() after repair = %+v", report)
	}
}

func TestQuarantineKeysDoNotCollide(t *testing.T) {
	j, kv := setupTestJournal(t)
	for i := 0; i < 2; i++ {
		if err := kv.Set(constants.EntriesKey, "not json"); err != nil {
			t.Fatal(err)
		}
		if err := j.Put(entry("2024-03-15", models.MoodGood, "")); err != nil {
			t.Fatal(err)
		}
	}
	report, _ := j.Verify()
	if len(report.Quarantined) != 2 {
		t.Errorf("Quarantined = %v, want 2 keys", report.Quarantined)
	}
}

func TestUnreadableRecordsAreSkippedAndPreserved(t *testing.T) {
	var reported []*ParseError
	j, kv := setupTestJournal(t, WithParseErrorHandler(func(p *ParseError) { reported = append(reported, p) }))
	doc := `{
		"2024-03-01": {"mood":"bad","label":"Rough day","note":"","createdAt":"2024-03-01T09:00:00.000Z"},
		"2024-03-02": {"mood":"furious","note":"unknown mood"},
		"2024-3-3": {"mood":"good"},
		"2024-03-04": 42
	}`
	if err := kv.Set(constants.EntriesKey, doc); err != nil {
		t.Fatal(err)
	}

	all, err := j.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("All() has %d entries, want 1", len(all))
	}
	if len(reported) != 3 {
		t.Errorf("reported %d record problems, want 3", len(reported))
	}

	report, _ := j.Verify()
	if report.Records != 4 || report.Readable != 1 || len(report.Problems) != 3 {
		t.Errorf("Verify() = %+v", report)
	}

	if err := j.Put(entry("2024-03-15", models.MoodGreat, "")); err != nil {
		t.Fatal(err)
	}
	raw, _, _ := kv.Get(constants.EntriesKey)
	var after map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &after); err != nil {
		t.Fatal(err)
	}
	if string(after["2024-03-02"]) != `{"mood":"furious","note":"unknown mood"}` {
		t.Errorf("unreadable record changed: %s", after["2024-03-02"])
	}
	if string(after["2024-03-04"]) != "42" {
		t.Errorf("unreadable record changed: %s", after["2024-03-04"])
	}
	if _, ok := after["2024-3-3"]; !ok {
		t.Error("non-canonical record was dropped")
	}
}

func TestSnapshotSorted(t *testing.T) {
	j, _ := setupTestJournal(t)
	for _, d := range []string{"2024-03-10", "2024-02-28", "2024-03-01"} {
		if err := j.Put(entry(d, models.MoodGood, "")); err != nil {
			t.Fatal(err)
		}
	}
	all, _ := j.All()
	sorted := all.Sorted()
	want := []string{"2024-02-28", "2024-03-01", "2024-03-10"}
	for i, e := range sorted {
		if e.Date.Key() != want[i] {
			t.Errorf("Sorted()[%d] = %s, want %s", i, e.Date, want[i])
		}
	}
	if _, ok := all.Lookup(models.NewDay(2024, 3, 1)); !ok {
		t.Error("Lookup() missed an existing day")
	}
}

func TestRaw(t *testing.T) {
	j, kv := setupTestJournal(t)
	if _, ok, _ := j.Raw(); ok {
		t.Error("Raw() on empty store reported a document")
	}
	if err := kv.Set(constants.EntriesKey, `{"x":1}`); err != nil {
		t.Fatal(err)
	}
	if raw, ok, _ := j.Raw(); !ok || raw != `{"x":1}` {
		t.Errorf("Raw() = %q, %v", raw, ok)
	}
}
