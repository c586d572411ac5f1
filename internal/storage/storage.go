package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Tim-element/element-nutrients-automation/internal/model"
	"github.com/Tim-element/element-nutrients-automation/internal/timecalc"
)

// CustomFileName is the file name of the custom reminder store inside the
// data directory.
const CustomFileName = "custom_reminders.json"

// BaseDir returns the root data directory (~/.hearth).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".hearth"), nil
}

// CustomStore is the durable, append-only list of user-created reminders.
// Writers are serialized in-process by a mutex and across processes by a
// lock file next to the store.
type CustomStore struct {
	path string
	now  func() time.Time

	mu sync.Mutex
}

// Option configures a CustomStore.
type Option func(*CustomStore)

// WithClock overrides the clock used for the created timestamp.
func WithClock(now func() time.Time) Option {
	return func(s *CustomStore) { s.now = now }
}

// NewCustomStore returns a store backed by the JSON file at path.
func NewCustomStore(path string, opts ...Option) *CustomStore {
	s := &CustomStore{path: path, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *CustomStore) Path() string {
	return s.path
}

// ErrCorrupt marks a store whose contents are not valid JSON.
var ErrCorrupt = errors.New("corrupt store")

// ListAll returns every persisted record in insertion order. A missing store
// is an empty list. A corrupt store yields an empty list together with an
// error wrapping ErrCorrupt; callers treat it as empty.
func (s *CustomStore) ListAll() ([]model.CustomReminderRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []model.CustomReminderRecord{}, nil
	}
	if err != nil {
		return []model.CustomReminderRecord{}, fmt.Errorf("storage error reading %s: %w", s.path, err)
	}

	var records []model.CustomReminderRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return []model.CustomReminderRecord{}, fmt.Errorf("%w: JSON in %s: %w", ErrCorrupt, s.path, err)
	}
	if records == nil {
		records = []model.CustomReminderRecord{}
	}
	return records, nil
}

// Add appends a reminder for when and returns a confirmation line.
func (s *CustomStore) Add(message string, when time.Time) (string, error) {
	now := s.now()
	rec := model.CustomReminderRecord{
		Message: message,
		Time:    model.NewTimestamp(when),
		Created: model.NewTimestamp(now),
	}
	if err := s.append(rec); err != nil {
		return "", err
	}
	return Confirmation(message, when, now), nil
}

// Contains reports whether a record with the same message and time (to the
// second) already exists.
func (s *CustomStore) Contains(message string, when time.Time) (bool, error) {
	records, err := s.ListAll()
	if err != nil {
		return false, err
	}
	at := when.Truncate(time.Second)
	for _, r := range records {
		if r.Message == message && r.Time.Equal(at) {
			return true, nil
		}
	}
	return false, nil
}

// Confirmation renders the user-facing confirmation for a new reminder. The
// weekday is included when the reminder is not for today.
func Confirmation(message string, when, now time.Time) string {
	at := timecalc.FormatClock(when)
	if !timecalc.SameDay(when, now) {
		at = when.Format("Mon") + " " + at
	}
	return fmt.Sprintf("✅ Reminder set for %s: %s", at, message)
}

func (s *CustomStore) append(rec model.CustomReminderRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	unlock, err := acquireLock(s.path+".lock", lockWait)
	if err != nil {
		return err
	}
	defer unlock()

	records, err := s.ListAll()
	switch {
	case errors.Is(err, ErrCorrupt):
		// Keep the corrupt store aside and start over.
		if _, err := BackupCorrupt(s.path); err != nil {
			return err
		}
		records = []model.CustomReminderRecord{}
	case err != nil:
		return err
	}
	records = append(records, rec)
	return writeAtomic(s.path, records)
}

// BackupCorrupt moves the file at path to a new "<path>.corrupt-<timestamp>"
// name, never replacing an earlier backup, and returns that name.
func BackupCorrupt(path string) (string, error) {
	base := path + ".corrupt-" + time.Now().Format("20060102-150405")
	backup := base
	for i := 1; ; i++ {
		if _, err := os.Lstat(backup); errors.Is(err, os.ErrNotExist) {
			break
		}
		backup = fmt.Sprintf("%s-%d", base, i)
	}
	if err := os.Rename(path, backup); err != nil {
		return "", fmt.Errorf("storage error backing up corrupt %s: %w", path, err)
	}
	return backup, nil
}

// writeAtomic marshals v and writes it via a temp file and rename.
func writeAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}
