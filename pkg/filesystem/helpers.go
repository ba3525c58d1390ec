package filesystem

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/arthur-debert/dotstash/pkg/types"
)

// Exists reports whether name exists without following a final symlink.
// A dangling link therefore exists.
func Exists(fsys types.FS, name string) bool {
	_, err := fsys.Lstat(name)
	return err == nil
}

// IsSymlink reports whether name is a symbolic link.
func IsSymlink(fsys types.FS, name string) bool {
	info, err := fsys.Lstat(name)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeSymlink != 0
}

// IsDir reports whether name resolves to a directory.
func IsDir(fsys types.FS, name string) bool {
	info, err := fsys.Stat(name)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// Move relocates src to dst, creating dst's parent directory. A rename that
// fails with EXDEV falls back to copying the tree and removing the source.
// A missing src is reported as fs.ErrNotExist so callers can branch on it.
func Move(fsys types.FS, src, dst string) error {
	if _, err := fsys.Lstat(src); err != nil {
		return err
	}
	if err := fsys.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	err := fsys.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !stderrors.Is(err, syscall.EXDEV) {
		return err
	}

	if err := copyTree(fsys, src, dst); err != nil {
		return err
	}
	return fsys.RemoveAll(src)
}

func copyTree(fsys types.FS, src, dst string) error {
	info, err := fsys.Lstat(src)
	if err != nil {
		return err
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		target, err := fsys.Readlink(src)
		if err != nil {
			return err
		}
		return fsys.Symlink(target, dst)
	case info.IsDir():
		if err := fsys.MkdirAll(dst, info.Mode().Perm()); err != nil {
			return err
		}
		entries, err := fsys.ReadDir(src)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if err := copyTree(fsys, filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
				return err
			}
		}
		return nil
	default:
		data, err := fsys.ReadFile(src)
		if err != nil {
			return err
		}
		return fsys.WriteFile(dst, data, info.Mode().Perm())
	}
}

// IsNotExist unwraps err and reports whether it describes a missing path.
func IsNotExist(err error) bool {
	return stderrors.Is(err, fs.ErrNotExist)
}
