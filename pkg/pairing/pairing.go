package pairing

import (
	"path/filepath"

	"github.com/arthur-debert/dotstash/pkg/errors"
	"github.com/arthur-debert/dotstash/pkg/paths"
)

// Pairing describes one managed dotfile: where it is linked from (Home)
// and where its data lives (Archive). Archive is an archive-side reference
// for regular entries and a home-side reference for custom links created by
// Link onto another tracked path.
type Pairing struct {
	Home    paths.Ref
	Archive paths.Ref
}

// New builds a pairing from raw strings. homeRaw resolves on the home side,
// archiveRaw on the archive side (with the undotting rule).
func New(homeRaw, archiveRaw string, roots paths.Roots) (Pairing, error) {
	home, err := paths.Resolve(homeRaw, paths.HomeSide, roots)
	if err != nil {
		return Pairing{}, err
	}
	archive, err := paths.Resolve(archiveRaw, paths.ArchiveSide, roots)
	if err != nil {
		return Pairing{}, err
	}
	return Pairing{Home: home, Archive: archive}, nil
}

// ForFile builds the default pairing for a home path: its archive copy is
// stored directly under the archive root, named after the file without its
// leading dot.
func ForFile(raw string, roots paths.Roots) (Pairing, error) {
	home, err := paths.Resolve(raw, paths.HomeSide, roots)
	if err != nil {
		return Pairing{}, err
	}
	archive, err := paths.Resolve(filepath.Base(home.Abs()), paths.ArchiveSide, roots)
	if err != nil {
		return Pairing{}, err
	}
	return Pairing{Home: home, Archive: archive}, nil
}

// FromRegistry rebuilds a pairing from a registry key and value.
func FromRegistry(key, value string, roots paths.Roots) (Pairing, error) {
	home, err := paths.Parse(key, roots)
	if err != nil {
		return Pairing{}, err
	}
	if home.Side() != paths.HomeSide {
		return Pairing{}, errors.Newf(errors.ErrInvalidPath, "registry key %s must be rooted at $%s", key, roots.HomeVar).
			WithDetail("key", key)
	}
	archive, err := paths.Parse(value, roots)
	if err != nil {
		return Pairing{}, err
	}
	return Pairing{Home: home, Archive: archive}, nil
}

// Key is the registry key of the pairing.
func (p Pairing) Key() string {
	return p.Home.Repr()
}

// Value is the registry value of the pairing.
func (p Pairing) Value() string {
	return p.Archive.Repr()
}

// IsEntry reports whether the pairing owns archived data, as opposed to a
// custom link onto another home-side path.
func (p Pairing) IsEntry() bool {
	return p.Archive.Side() == paths.ArchiveSide
}

// IsTopLevel reports whether the archive copy sits directly under the
// archive root.
func (p Pairing) IsTopLevel() bool {
	return p.IsEntry() && len(paths.Components(p.Archive.Rel())) == 1
}

// IsLinkedTo reports whether p is a custom link onto other's home path.
func (p Pairing) IsLinkedTo(other Pairing) bool {
	return !p.IsEntry() && p.Archive.Abs() == other.Home.Abs()
}

func (p Pairing) String() string {
	return p.Key() + " = " + p.Value()
}
