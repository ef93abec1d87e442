// Package journal persists mood entries as a single JSON document keyed by
// calendar date. Every call reads a fresh copy of the document, so writes
// made elsewhere are visible on the next call.
package journal

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/moodcal/internal/constants"
	"github.com/julianstephens/moodcal/internal/logger"
	"github.com/julianstephens/moodcal/internal/models"
	"github.com/julianstephens/moodcal/internal/storage"
)

// record is the persisted shape of one entry.
type record struct {
	Mood      models.Mood `json:"mood"`
	Label     string      `json:"label"`
	Note      string      `json:"note"`
	CreatedAt string      `json:"createdAt"`
}

// Snapshot maps canonical date keys to entries.
type Snapshot map[string]models.MoodEntry

// Sorted returns the entries oldest first.
func (s Snapshot) Sorted() []models.MoodEntry {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	entries := make([]models.MoodEntry, len(keys))
	for i, k := range keys {
		entries[i] = s[k]
	}
	return entries
}

// Lookup returns the entry for day.
func (s Snapshot) Lookup(day models.Day) (models.MoodEntry, bool) {
	e, ok := s[day.Key()]
	return e, ok
}

type Store struct {
	kv           storage.Provider
	onParseError func(*ParseError)
	now          func() time.Time
}

type Option func(*Store)

// WithParseErrorHandler registers fn to observe data that was skipped.
func WithParseErrorHandler(fn func(*ParseError)) Option {
	return func(s *Store) { s.onParseError = fn }
}

// WithClock overrides the clock used to name quarantine keys.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(kv storage.Provider, opts ...Option) *Store {
	s := &Store{kv: kv, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// document is one loaded copy of the persisted mapping.
type document struct {
	raw     string
	present bool
	corrupt *ParseError
	records map[string]json.RawMessage
}

func (s *Store) load() (*document, error) {
	raw, ok, err := s.kv.Get(constants.EntriesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	doc := &document{raw: raw, present: ok, records: map[string]json.RawMessage{}}
	if !ok {
		return doc, nil
	}
	var records map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		doc.corrupt = &ParseError{Key: constants.EntriesKey, Err: err}
		s.report(doc.corrupt)
		return doc, nil
	}
	if records != nil {
		doc.records = records
	}
	return doc, nil
}

func (s *Store) report(perr *ParseError) {
	logger.Warn("Skipping unreadable journal data", "key", perr.Key, "date", perr.Date, "error", perr.Err)
	if s.onParseError != nil {
		s.onParseError(perr)
	}
}

// decode turns one persisted record into an entry.
func decode(key string, raw json.RawMessage) (models.MoodEntry, error) {
	day, err := models.ParseDay(key)
	if err != nil {
		return models.MoodEntry{}, err
	}
	if day.Key() != key {
		return models.MoodEntry{}, fmt.Errorf("non-canonical date key")
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return models.MoodEntry{}, err
	}
	if !rec.Mood.Valid() {
		return models.MoodEntry{}, fmt.Errorf("missing mood")
	}

	var createdAt time.Time
	if rec.CreatedAt != "" {
		if createdAt, err = time.Parse(time.RFC3339Nano, rec.CreatedAt); err != nil {
			return models.MoodEntry{}, fmt.Errorf("invalid createdAt: %w", err)
		}
		createdAt = createdAt.UTC()
	}

	return models.NewMoodEntry(day, rec.Mood, rec.Note, createdAt), nil
}

func encode(entry models.MoodEntry) (json.RawMessage, error) {
	createdAt := ""
	if !entry.CreatedAt.IsZero() {
		createdAt = entry.CreatedAt.UTC().Truncate(time.Millisecond).Format(constants.TimestampFormat)
	}
	return json.Marshal(record{
		Mood:      entry.Mood,
		Label:     entry.Mood.Label(),
		Note:      entry.Note,
		CreatedAt: createdAt,
	})
}

// Get returns the entry stored for day. An unreadable record reads as absent.
func (s *Store) Get(day models.Day) (models.MoodEntry, bool, error) {
	doc, err := s.load()
	if err != nil {
		return models.MoodEntry{}, false, err
	}
	key := day.Key()
	raw, ok := doc.records[key]
	if !ok {
		return models.MoodEntry{}, false, nil
	}
	entry, err := decode(key, raw)
	if err != nil {
		s.report(&ParseError{Key: constants.EntriesKey, Date: key, Err: err})
		return models.MoodEntry{}, false, nil
	}
	return entry, true, nil
}

// All returns every readable entry.
func (s *Store) All() (Snapshot, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	snap := make(Snapshot, len(doc.records))
	for key, raw := range doc.records {
		entry, err := decode(key, raw)
		if err != nil {
			s.report(&ParseError{Key: constants.EntriesKey, Date: key, Err: err})
			continue
		}
		snap[key] = entry
	}
	return snap, nil
}

// Put replaces the entry at entry.Date. The whole mapping is written back with
// one Set, and records this build cannot read are written back unchanged.
// CreatedAt is stored in UTC truncated to the millisecond, so a later Get
// returns it without any finer precision.
func (s *Store) Put(entry models.MoodEntry) error {
	switch {
	case entry.Date.IsZero():
		return fmt.Errorf("%w: no date", ErrInvalidEntry)
	case !entry.Mood.Valid():
		return fmt.Errorf("%w: no mood", ErrInvalidEntry)
	case !models.NoteFits(entry.Note):
		return fmt.Errorf("%w: note longer than %d characters", ErrInvalidEntry, constants.NoteMaxLen)
	}

	doc, err := s.load()
	if err != nil {
		return err
	}
	if doc.corrupt != nil {
		if err := s.quarantine(doc.raw); err != nil {
			return err
		}
	}

	raw, err := encode(entry)
	if err != nil {
		return fmt.Errorf("failed to encode entry: %w", err)
	}
	doc.records[entry.Date.Key()] = raw

	data, err := json.Marshal(doc.records)
	if err != nil {
		return fmt.Errorf("failed to encode journal: %w", err)
	}
	if err := s.kv.Set(constants.EntriesKey, string(data)); err != nil {
		return fmt.Errorf("failed to write journal: %w", err)
	}
	logger.Debug("Saved mood entry", "date", entry.Date.Key(), "mood", entry.Mood.String())
	return nil
}

// quarantine copies an unreadable document aside before it is replaced.
func (s *Store) quarantine(raw string) error {
	base := constants.CorruptKeyPrefix + strconv.FormatInt(s.now().Unix(), 10)
	key := base
	for i := 1; ; i++ {
		_, exists, err := s.kv.Get(key)
		if err != nil {
			return fmt.Errorf("failed to quarantine journal: %w", err)
		}
		if !exists {
			break
		}
		key = fmt.Sprintf("%s-%d", base, i)
	}
	if err := s.kv.Set(key, raw); err != nil {
		return fmt.Errorf("failed to quarantine journal: %w", err)
	}
	logger.Warn("Moved unreadable journal aside", "key", key)
	return nil
}

// Raw returns the persisted document exactly as stored.
func (s *Store) Raw() (string, bool, error) {
	return s.kv.Get(constants.EntriesKey)
}

// Report summarises the health of the persisted journal.
type Report struct {
	Present     bool
	Records     int
	Readable    int
	Problems    []*ParseError
	Quarantined []string
}

// Verify reads the journal and returns every problem instead of skipping it.
func (s *Store) Verify() (Report, error) {
	raw, ok, err := s.kv.Get(constants.EntriesKey)
	if err != nil {
		return Report{}, fmt.Errorf("failed to read journal: %w", err)
	}
	report := Report{Present: ok}

	keys, err := s.kv.Keys()
	if err != nil {
		return Report{}, err
	}
	for _, k := range keys {
		if strings.HasPrefix(k, constants.CorruptKeyPrefix) {
			report.Quarantined = append(report.Quarantined, k)
		}
	}
	if !ok {
		return report, nil
	}

	var records map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		report.Problems = append(report.Problems, &ParseError{Key: constants.EntriesKey, Err: err})
		return report, nil
	}

	dates := make([]string, 0, len(records))
	for k := range records {
		dates = append(dates, k)
	}
	sort.Strings(dates)

	report.Records = len(records)
	for _, date := range dates {
		if _, err := decode(date, records[date]); err != nil {
			report.Problems = append(report.Problems, &ParseError{Key: constants.EntriesKey, Date: date, Err: err})
			continue
		}
		report.Readable++
	}
	return report, nil
}

// Healthy reports whether Verify found nothing wrong.
func (r Report) Healthy() bool {
	return len(r.Problems) == 0
}

// FirstDocumentError returns the whole-document problem, if any.
func (r Report) FirstDocumentError() *ParseError {
	for _, p := range r.Problems {
		if p.Document() {
			return p
		}
	}
	return nil
}
