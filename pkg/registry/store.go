package registry

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/dotstash/pkg/errors"
	"github.com/go-ini/ini"
)

// Entry is one registry line.
type Entry struct {
	Key   string
	Value string
}

// Store persists registry entries.
type Store interface {
	Load() ([]Entry, error)
	Save(entries []Entry) error
}

// INIStore keeps entries in the default section of an INI file.
type INIStore struct {
	Path string
}

// NewINIStore returns a store backed by the file at path.
func NewINIStore(path string) *INIStore {
	return &INIStore{Path: path}
}

func init() {
	// One "key = value" per line, without column alignment.
	ini.PrettyFormat = false
	ini.PrettyEqual = true
}

func loadOptions() ini.LoadOptions {
	// Paths may legitimately contain ':' '#' and ';'.
	return ini.LoadOptions{
		KeyValueDelimiters:  "=",
		IgnoreInlineComment: true,
		AllowShadows:        true,
	}
}

// Load reads the file. A missing file is an empty registry.
func (s *INIStore) Load() ([]Entry, error) {
	if _, err := os.Stat(s.Path); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrIO, "cannot stat registry %s", s.Path)
	}

	file, err := ini.LoadSources(loadOptions(), s.Path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "cannot parse registry %s", s.Path).
			WithDetail("path", s.Path)
	}

	// A repeated key comes back once per value so Open can reject it.
	keys := file.Section(ini.DefaultSection).Keys()
	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		for _, value := range key.ValueWithShadows() {
			entries = append(entries, Entry{Key: key.Name(), Value: value})
		}
	}
	return entries, nil
}

// Save rewrites the file with entries in order.
func (s *INIStore) Save(entries []Entry) error {
	file := ini.Empty(loadOptions())
	section := file.Section(ini.DefaultSection)
	for _, entry := range entries {
		if _, err := section.NewKey(entry.Key, entry.Value); err != nil {
			return errors.Wrapf(err, errors.ErrIO, "cannot encode registry entry %s", entry.Key)
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot create %s", filepath.Dir(s.Path))
	}
	if err := file.SaveTo(s.Path); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot write registry %s", s.Path).
			WithDetail("path", s.Path)
	}
	return nil
}

// MemoryStore keeps entries in memory. Saves counts the writes.
type MemoryStore struct {
	mu      sync.Mutex
	entries []Entry
	Saves   int
}

// NewMemoryStore returns a store preloaded with entries.
func NewMemoryStore(entries ...Entry) *MemoryStore {
	return &MemoryStore{entries: append([]Entry(nil), entries...)}
}

// Load returns a copy of the stored entries.
func (m *MemoryStore) Load() ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Entry(nil), m.entries...), nil
}

// Save replaces the stored entries.
func (m *MemoryStore) Save(entries []Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append([]Entry(nil), entries...)
	m.Saves++
	return nil
}
