package pairing

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/dotstash/pkg/errors"
	"github.com/arthur-debert/dotstash/pkg/filesystem"
	"github.com/arthur-debert/dotstash/pkg/paths"
	"github.com/arthur-debert/dotstash/pkg/types"
)

// maxBackupAttempts bounds the search for a free backup name.
const maxBackupAttempts = 1000

// IsAncestor reports whether candidate's home path is a proper component
// prefix of other's home or archive path. A pairing is never its own
// ancestor.
func IsAncestor(candidate, other Pairing) bool {
	if candidate.Key() == other.Key() {
		return false
	}
	root := candidate.Home.Abs()
	return paths.IsWithin(root, other.Home.Abs()) || paths.IsWithin(root, other.Archive.Abs())
}

// ChildPlacement computes where nested's archive copy belongs below
// ancestor's archive directory.
//
// When nested's home path lies below ancestor's home path, the components in
// between are re-rooted under ancestor's archive path. Otherwise the
// components of nested's (undotted) home-relative path that follow
// ancestor's archive directory name are used. When that name does not occur
// either, the whole undotted relative path is appended (flat placement).
func ChildPlacement(ancestor, nested Pairing) (paths.Ref, error) {
	if !ancestor.IsEntry() {
		return nil, errors.Newf(errors.ErrInvalidInput, "%s is a link, not an archived entry", ancestor.Key())
	}

	base := ancestor.Archive.Abs()
	var below string

	if paths.IsWithin(ancestor.Home.Abs(), nested.Home.Abs()) {
		rel, err := filepath.Rel(ancestor.Home.Abs(), nested.Home.Abs())
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInvalidPath, "cannot place child")
		}
		below = rel
	} else {
		components := paths.Components(paths.Undot(nested.Home.Rel()))
		name := filepath.Base(base)
		below = filepath.Join(components...)
		for i, c := range components {
			if c == name && i < len(components)-1 {
				below = filepath.Join(components[i+1:]...)
				break
			}
		}
	}

	return paths.Join(ancestor.Archive, below)
}

// Child returns nested re-homed below ancestor: same home path, archive copy
// at ChildPlacement.
func (p Pairing) Child(nested Pairing) (Pairing, error) {
	archive, err := ChildPlacement(p, nested)
	if err != nil {
		return Pairing{}, err
	}
	return Pairing{Home: nested.Home, Archive: archive}, nil
}

// ResolveLinkSource follows p's home path one level when it is a symbolic
// link and returns the default pairing for the link's target, so the real
// file gets archived instead of the link. Non-links are returned unchanged.
func ResolveLinkSource(fsys types.FS, p Pairing, roots paths.Roots) (Pairing, error) {
	link := p.Home.Abs()
	if !filesystem.IsSymlink(fsys, link) {
		return p, nil
	}

	target, err := fsys.Readlink(link)
	if err != nil {
		return Pairing{}, errors.Wrapf(err, errors.ErrIO, "cannot read link %s", link)
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(link), target)
	}
	target = filepath.Clean(target)

	if _, err := fsys.Stat(target); err != nil {
		return Pairing{}, errors.Newf(errors.ErrDanglingSymlink, "%s is a dangling symlink to %s", link, target).
			WithDetail("link", link).
			WithDetail("target", target)
	}

	return ForFile(target, roots)
}

// BackupName returns a free sibling name for target, suffixed with the
// current time formatted with layout. Names taken within the same second get
// an extra counter.
func BackupName(fsys types.FS, target string, clock types.Clock, layout string) (string, error) {
	stamp := clock.Now().UTC().Format(layout)
	candidate := fmt.Sprintf("%s.%s", target, stamp)
	for n := 1; n <= maxBackupAttempts; n++ {
		if !filesystem.Exists(fsys, candidate) {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s.%s.%d", target, stamp, n)
	}
	return "", errors.Newf(errors.ErrIO, "no free backup name for %s", target).
		WithDetail("path", target)
}
