package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
)

// Record is a single stored memory.
type Record struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Keywords  []string  `json:"keywords"`
	Always    bool      `json:"always"`
	CreatedAt time.Time `json:"created_at"`
}

// Draft is the pre-persistence shape of a record, produced by the
// save-command parser or a manual add.
type Draft struct {
	Text     string
	Keywords []string
	Always   bool
}

// Fields carries the mutable subset of a record for Update.
// Nil members are left unchanged; ID and CreatedAt are immutable.
type Fields struct {
	Text     *string
	Keywords []string
	Always   *bool
}

// Store owns the backing JSON file. It is the sole writer of that file;
// reads are served from the in-memory cache, which is rewritten in full
// on every mutation.
type Store struct {
	mu      sync.RWMutex
	path    string
	minLen  int
	records []Record
}

var wsRe = regexp.MustCompile(`\s+`)

// Normalize collapses whitespace and lower-cases text. Dedup compares
// normalized text, so cosmetic rewording of spacing never duplicates a memory.
func Normalize(s string) string {
	return strings.ToLower(wsRe.ReplaceAllString(strings.TrimSpace(s), " "))
}

// NormalizeKeywords trims, lower-cases and dedups a keyword set, dropping
// empties. Order is preserved.
func NormalizeKeywords(kws []string) []string {
	out := make([]string, 0, len(kws))
	seen := make(map[string]bool, len(kws))
	for _, kw := range kws {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	return out
}

// New opens the store at path, loading any existing records. The returned
// store is always usable: on a load failure it starts empty and the error
// reports what went wrong, so the host can log it and carry on.
func New(path string, minLen int) (*Store, error) {
	s := &Store{path: path, minLen: minLen}
	if err := s.load(); err != nil {
		s.records = nil
		return s, err
	}
	return s, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("store: read %s: %w", s.path, err)
	}
	if err := validateRaw(data); err != nil {
		return err
	}
	if err := json.Unmarshal(data, &s.records); err != nil {
		return fmt.Errorf("store: parse %s: %w", s.path, err)
	}
	return nil
}

// save rewrites the backing file in full. Callers must hold the write lock.
func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("store: mkdir: %w", err)
	}
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("store: write %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) validateText(text string) error {
	if utf8.RuneCountInString(text) < s.minLen {
		return fmt.Errorf("%w: need at least %d characters", ErrTextTooShort, s.minLen)
	}
	return nil
}

// Add validates and persists a draft. Adding text that already exists
// (after normalization) is a no-op returning the existing record, so
// autonomous model saves stay non-disruptive.
func (s *Store) Add(d Draft) (Record, error) {
	text := strings.TrimSpace(d.Text)
	if err := s.validateText(text); err != nil {
		return Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	norm := Normalize(text)
	for _, r := range s.records {
		if Normalize(r.Text) == norm {
			return r, nil
		}
	}

	rec := Record{
		ID:        uuid.New().String(),
		Text:      text,
		Keywords:  NormalizeKeywords(d.Keywords),
		Always:    d.Always,
		CreatedAt: time.Now(),
	}
	s.records = append(s.records, rec)
	if err := s.save(); err != nil {
		s.records = s.records[:len(s.records)-1]
		return Record{}, err
	}
	return rec, nil
}

// Update applies the given fields to the record with the given id.
func (s *Store) Update(id string, f Fields) (Record, error) {
	if f.Text != nil {
		if err := s.validateText(strings.TrimSpace(*f.Text)); err != nil {
			return Record{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID != id {
			continue
		}
		prev := s.records[i]
		if f.Text != nil {
			s.records[i].Text = strings.TrimSpace(*f.Text)
		}
		if f.Keywords != nil {
			s.records[i].Keywords = NormalizeKeywords(f.Keywords)
		}
		if f.Always != nil {
			s.records[i].Always = *f.Always
		}
		if err := s.save(); err != nil {
			s.records[i] = prev
			return Record{}, err
		}
		return s.records[i], nil
	}
	return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Delete removes the record with the given id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == id {
			next := make([]Record, 0, len(s.records)-1)
			next = append(next, s.records[:i]...)
			next = append(next, s.records[i+1:]...)
			prev := s.records
			s.records = next
			if err := s.save(); err != nil {
				s.records = prev
				return err
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// DeleteAll snapshots the whole store to a timestamped backup file, then
// clears and persists the empty state. The backup is synced to disk before
// the live file is touched, so a crash in between never loses records.
func (s *Store) DeleteAll() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.records
	if snapshot == nil {
		snapshot = []Record{}
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("store: encode backup: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return "", fmt.Errorf("store: mkdir: %w", err)
	}
	backup := s.backupPath(time.Now())
	f, err := os.Create(backup)
	if err != nil {
		return "", fmt.Errorf("store: create backup: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("store: write backup: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return "", fmt.Errorf("store: sync backup: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("store: close backup: %w", err)
	}

	prev := s.records
	s.records = []Record{}
	if err := s.save(); err != nil {
		s.records = prev
		return backup, err
	}
	return backup, nil
}

func (s *Store) backupPath(now time.Time) string {
	base := strings.TrimSuffix(filepath.Base(s.path), filepath.Ext(s.path))
	name := fmt.Sprintf("%s.backup-%s.json", base, now.Format("20060102-150405"))
	return filepath.Join(filepath.Dir(s.path), name)
}

// Backups lists backup files for this store, newest last.
func (s *Store) Backups() ([]string, error) {
	base := strings.TrimSuffix(filepath.Base(s.path), filepath.Ext(s.path))
	pattern := filepath.Join(filepath.Dir(s.path), base+".backup-*.json")
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("store: list backups: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// List returns a copy of all records in insertion order.
func (s *Store) List() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len reports the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
