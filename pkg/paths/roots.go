package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotstash/pkg/errors"
)

// ArchiveDirName is the directory name used under the XDG data home when the
// archive variable is unset.
const ArchiveDirName = "dotstash"

// Roots is the resolved pair of root directories plus the names of the
// variables that define them.
type Roots struct {
	HomeVar    string
	ArchiveVar string
	Home       string
	Archive    string

	// ArchiveFallback is set when the archive variable was unset and the
	// process default directory was used instead.
	ArchiveFallback bool

	lookup func(string) (string, bool)
}

// DefaultArchiveDir is the archive root used when the archive variable is unset.
func DefaultArchiveDir() string {
	return filepath.Join(xdg.DataHome, ArchiveDirName)
}

// NewRoots resolves both roots through lookup. The home variable is
// required; the archive variable may be absent during first-time setup and
// falls back to DefaultArchiveDir.
func NewRoots(lookup func(string) (string, bool), homeVar, archiveVar string) (Roots, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	r := Roots{HomeVar: homeVar, ArchiveVar: archiveVar, lookup: lookup}

	home, ok := lookup(homeVar)
	if !ok || home == "" {
		return Roots{}, errors.Newf(errors.ErrEnvironment, "$%s is not set", homeVar).
			WithDetail("variable", homeVar)
	}
	absHome, err := filepath.Abs(home)
	if err != nil {
		return Roots{}, errors.Wrapf(err, errors.ErrEnvironment, "cannot resolve $%s", homeVar)
	}
	r.Home = filepath.Clean(absHome)

	archive, ok := lookup(archiveVar)
	if !ok || archive == "" {
		archive = DefaultArchiveDir()
		r.ArchiveFallback = true
	}
	archive = r.expandTilde(archive)
	absArchive, err := filepath.Abs(archive)
	if err != nil {
		return Roots{}, errors.Wrapf(err, errors.ErrEnvironment, "cannot resolve $%s", archiveVar)
	}
	r.Archive = filepath.Clean(absArchive)

	return r, nil
}

// Valid reports whether both roots are resolved.
func (r Roots) Valid() bool {
	return r.Home != "" && r.Archive != "" && r.HomeVar != "" && r.ArchiveVar != ""
}

// Root returns the root directory and variable name for a side.
func (r Roots) Root(side Side) (dir, variable string) {
	if side == ArchiveSide {
		return r.Archive, r.ArchiveVar
	}
	return r.Home, r.HomeVar
}

// Expand replaces $VAR and ${VAR} placeholders and a leading "~". The two
// root variables always expand to the resolved roots. Unknown variables are
// left in place.
func (r Roots) Expand(raw string) string {
	expanded := os.Expand(raw, func(name string) string {
		switch name {
		case r.HomeVar:
			return r.Home
		case r.ArchiveVar:
			return r.Archive
		}
		if r.lookup != nil {
			if value, ok := r.lookup(name); ok {
				return value
			}
		}
		return "$" + name
	})
	return r.expandTilde(expanded)
}

func (r Roots) expandTilde(path string) string {
	if path == "~" {
		return r.Home
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return filepath.Join(r.Home, path[2:])
	}
	return path
}
