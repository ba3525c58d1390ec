package registry

import (
	"github.com/arthur-debert/dotstash/pkg/errors"
	"github.com/arthur-debert/dotstash/pkg/logging"
	"github.com/arthur-debert/dotstash/pkg/pairing"
	"github.com/arthur-debert/dotstash/pkg/paths"
)

// Registry is the in-memory view of a Store. Lookups never touch the store;
// mutations save the whole list before returning.
type Registry struct {
	store   Store
	roots   paths.Roots
	entries []Entry
}

// Open loads the registry from store.
func Open(store Store, roots paths.Roots) (*Registry, error) {
	entries, err := store.Load()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if seen[entry.Key] {
			return nil, errors.Newf(errors.ErrDuplicateEntry, "registry lists %s twice", entry.Key).
				WithDetail("key", entry.Key)
		}
		seen[entry.Key] = true
	}

	return &Registry{store: store, roots: roots, entries: entries}, nil
}

// Len is the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Entries returns a copy of the raw entries in registry order.
func (r *Registry) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// ContainsHome reports whether key is registered.
func (r *Registry) ContainsHome(key string) bool {
	return r.index(key) >= 0
}

// Lookup returns the value stored for key.
func (r *Registry) Lookup(key string) (string, bool) {
	if i := r.index(key); i >= 0 {
		return r.entries[i].Value, true
	}
	return "", false
}

// Get returns the pairing stored for key.
func (r *Registry) Get(key string) (pairing.Pairing, bool, error) {
	value, ok := r.Lookup(key)
	if !ok {
		return pairing.Pairing{}, false, nil
	}
	p, err := pairing.FromRegistry(key, value, r.roots)
	if err != nil {
		return pairing.Pairing{}, false, err
	}
	return p, true, nil
}

// Insert appends p and saves.
func (r *Registry) Insert(p pairing.Pairing) error {
	key := p.Key()
	if r.ContainsHome(key) {
		return errors.Newf(errors.ErrDuplicateEntry, "%s is already registered", key).
			WithDetail("key", key)
	}

	r.entries = append(r.entries, Entry{Key: key, Value: p.Value()})
	if err := r.save(); err != nil {
		r.entries = r.entries[:len(r.entries)-1]
		return err
	}

	logger := logging.GetLogger("registry")
	logger.Debug().Str("key", key).Str("value", p.Value()).Msg("Inserted entry")
	return nil
}

// Replace changes the value of an existing key in place and saves.
func (r *Registry) Replace(p pairing.Pairing) error {
	key := p.Key()
	i := r.index(key)
	if i < 0 {
		return errors.Newf(errors.ErrNotTracked, "%s is not registered", key).
			WithDetail("key", key)
	}

	previous := r.entries[i]
	r.entries[i] = Entry{Key: key, Value: p.Value()}
	if err := r.save(); err != nil {
		r.entries[i] = previous
		return err
	}

	logger := logging.GetLogger("registry")
	logger.Debug().Str("key", key).Str("value", p.Value()).Msg("Replaced entry")
	return nil
}

// OwnerOf returns the entry whose archive path is exactly abs.
func (r *Registry) OwnerOf(abs string) (pairing.Pairing, bool, error) {
	all, err := r.Pairings()
	if err != nil {
		return pairing.Pairing{}, false, err
	}
	for _, p := range all {
		if p.IsEntry() && p.Archive.Abs() == abs {
			return p, true, nil
		}
	}
	return pairing.Pairing{}, false, nil
}

// Remove deletes key and saves. It reports whether key was present.
func (r *Registry) Remove(key string) (bool, error) {
	i := r.index(key)
	if i < 0 {
		return false, nil
	}

	previous := r.entries
	r.entries = append(append([]Entry(nil), r.entries[:i]...), r.entries[i+1:]...)
	if err := r.save(); err != nil {
		r.entries = previous
		return false, err
	}

	logger := logging.GetLogger("registry")
	logger.Debug().Str("key", key).Msg("Removed entry")
	return true, nil
}

// Pairings returns every entry as a pairing, in registry order.
func (r *Registry) Pairings() ([]pairing.Pairing, error) {
	out := make([]pairing.Pairing, 0, len(r.entries))
	for _, entry := range r.entries {
		p, err := pairing.FromRegistry(entry.Key, entry.Value, r.roots)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// FindAncestorOf returns the registered entry whose home path contains p.
// The deepest one wins; among equally deep ones the first registered.
func (r *Registry) FindAncestorOf(p pairing.Pairing) (pairing.Pairing, bool, error) {
	all, err := r.Pairings()
	if err != nil {
		return pairing.Pairing{}, false, err
	}

	var best pairing.Pairing
	depth := -1
	for _, candidate := range all {
		if !candidate.IsEntry() || !paths.IsWithin(candidate.Home.Abs(), p.Home.Abs()) {
			continue
		}
		if d := len(paths.Components(candidate.Home.Rel())); d > depth {
			best, depth = candidate, d
		}
	}
	return best, depth >= 0, nil
}

// LinksTo returns the custom links whose target is p's home path.
func (r *Registry) LinksTo(p pairing.Pairing) ([]pairing.Pairing, error) {
	all, err := r.Pairings()
	if err != nil {
		return nil, err
	}

	var out []pairing.Pairing
	for _, candidate := range all {
		if candidate.IsLinkedTo(p) {
			out = append(out, candidate)
		}
	}
	return out, nil
}

func (r *Registry) index(key string) int {
	for i, entry := range r.entries {
		if entry.Key == key {
			return i
		}
	}
	return -1
}

func (r *Registry) save() error {
	return r.store.Save(r.entries)
}
