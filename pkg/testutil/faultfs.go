package testutil

import (
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/dotstash/pkg/types"
)

// FaultFS forwards to an underlying FS but fails configured calls.
type FaultFS struct {
	types.FS
	faults map[string]error
}

// NewFaultFS wraps fsys.
func NewFaultFS(fsys types.FS) *FaultFS {
	return &FaultFS{FS: fsys, faults: map[string]error{}}
}

// WithError makes op ("symlink", "rename", "remove", "mkdirall",
// "writefile") on path return err.
func (f *FaultFS) WithError(op, path string, err error) *FaultFS {
	f.faults[op+":"+filepath.Clean(path)] = err
	return f
}

func (f *FaultFS) fault(op, path string) error {
	return f.faults[op+":"+filepath.Clean(path)]
}

// Symlink implements types.FS.
func (f *FaultFS) Symlink(oldname, newname string) error {
	if err := f.fault("symlink", newname); err != nil {
		return err
	}
	return f.FS.Symlink(oldname, newname)
}

// Rename implements types.FS.
func (f *FaultFS) Rename(oldpath, newpath string) error {
	if err := f.fault("rename", oldpath); err != nil {
		return err
	}
	return f.FS.Rename(oldpath, newpath)
}

// Remove implements types.FS.
func (f *FaultFS) Remove(name string) error {
	if err := f.fault("remove", name); err != nil {
		return err
	}
	return f.FS.Remove(name)
}

// MkdirAll implements types.FS.
func (f *FaultFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := f.fault("mkdirall", path); err != nil {
		return err
	}
	return f.FS.MkdirAll(path, perm)
}

// WriteFile implements types.FS.
func (f *FaultFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err := f.fault("writefile", name); err != nil {
		return err
	}
	return f.FS.WriteFile(name, data, perm)
}
