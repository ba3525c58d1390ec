package vcs

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotstash/pkg/errors"
)

// Commit is a commit recorded by Fake.
type Commit struct {
	ID      string
	Message string
	Paths   []string
}

// Checkout is a CheckoutFile call recorded by Fake.
type Checkout struct {
	Rev  string
	Path string
}

// Fake is an in-memory Repository. Every Commit call creates a commit, ids
// are "c0", "c1", ... and "HEAD^" style revisions are resolved against them.
type Fake struct {
	Root      string
	Initiated bool
	Commits   []Commit
	Checkouts []Checkout
	Remotes   map[string]string
	Pushed    []string
	Cloned    []string
	Branch    string
	Ahead     bool
	// Changes is returned by Status and consulted by Changed.
	Changes []Change
	// AddedFiles is returned by Added whatever the revision.
	AddedFiles []string
	Untracked  []string
}

// NewFake returns an initialised fake repository rooted at root with one
// initial commit.
func NewFake(root string) *Fake {
	f := &Fake{Root: root, Initiated: true, Remotes: map[string]string{}, Branch: "main"}
	f.Commits = append(f.Commits, Commit{ID: "c0", Message: "Initial commit"})
	return f
}

// Dir implements Repository.
func (f *Fake) Dir() string { return f.Root }

// IsRepo implements Repository.
func (f *Fake) IsRepo() bool { return f.Initiated }

// Init implements Repository.
func (f *Fake) Init() error {
	f.Initiated = true
	if f.Remotes == nil {
		f.Remotes = map[string]string{}
	}
	return nil
}

// Commit implements Repository.
func (f *Fake) Commit(message string, paths ...string) (string, error) {
	c := Commit{ID: fmt.Sprintf("c%d", len(f.Commits)), Message: message, Paths: append([]string(nil), paths...)}
	f.Commits = append(f.Commits, c)
	f.Ahead = true
	return c.ID, nil
}

// Head implements Repository.
func (f *Fake) Head() (string, error) {
	return f.Revision("HEAD")
}

// Revision implements Repository for "HEAD", "HEAD^", "HEAD^^" and "HEAD~n".
func (f *Fake) Revision(rev string) (string, error) {
	back := 0
	switch {
	case rev == "HEAD":
	case strings.HasPrefix(rev, "HEAD~"):
		if _, err := fmt.Sscanf(rev, "HEAD~%d", &back); err != nil {
			return "", errors.Newf(errors.ErrVCS, "unknown revision %s", rev)
		}
	case strings.HasPrefix(rev, "HEAD^") && strings.Trim(rev[4:], "^") == "":
		back = len(rev) - 4
	default:
		for _, c := range f.Commits {
			if c.ID == rev {
				return rev, nil
			}
		}
		return "", errors.Newf(errors.ErrVCS, "unknown revision %s", rev)
	}

	i := len(f.Commits) - 1 - back
	if i < 0 {
		return "", errors.Newf(errors.ErrVCS, "unknown revision %s", rev)
	}
	return f.Commits[i].ID, nil
}

// HeadMessage implements Repository.
func (f *Fake) HeadMessage() (string, error) {
	if len(f.Commits) == 0 {
		return "", errors.New(errors.ErrVCS, "no commits")
	}
	return f.Commits[len(f.Commits)-1].Message, nil
}

// CheckoutFile implements Repository. Only the call is recorded.
func (f *Fake) CheckoutFile(rev, path string) error {
	f.Checkouts = append(f.Checkouts, Checkout{Rev: rev, Path: path})
	return nil
}

// Added implements Repository.
func (f *Fake) Added(rev string) ([]string, error) {
	if _, err := f.Revision(rev); err != nil {
		return nil, err
	}
	return append([]string(nil), f.AddedFiles...), nil
}

// Untrack implements Repository. Only the paths are recorded.
func (f *Fake) Untrack(paths ...string) error {
	f.Untracked = append(f.Untracked, paths...)
	return nil
}

// Changed implements Repository.
func (f *Fake) Changed(path string) (bool, error) {
	changes, _ := f.Status(path)
	return len(changes) > 0, nil
}

// Status implements Repository. Changes hold paths relative to Root, like
// git's, and are filtered by the absolute path given.
func (f *Fake) Status(path string) ([]Change, error) {
	prefix := ""
	if path != "" {
		rel, err := filepath.Rel(f.Root, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, "../") {
			return nil, errors.Newf(errors.ErrVCS, "%s is outside the repository", path)
		}
		if rel != "." {
			prefix = filepath.ToSlash(rel)
		}
	}

	var out []Change
	for _, c := range f.Changes {
		if prefix == "" || c.Path == prefix || strings.HasPrefix(c.Path, prefix+"/") {
			out = append(out, c)
		}
	}
	return out, nil
}

// Clone implements Repository.
func (f *Fake) Clone(url, branch string) error {
	f.Cloned = append(f.Cloned, url+"#"+branch)
	f.Initiated = true
	if branch != "" {
		f.Branch = branch
	}
	return nil
}

// SetRemote implements Repository.
func (f *Fake) SetRemote(name, url string) error {
	f.Remotes[name] = url
	return nil
}

// RemoteURL implements Repository.
func (f *Fake) RemoteURL(name string) (string, error) {
	url, ok := f.Remotes[name]
	if !ok {
		return "", errors.Newf(errors.ErrVCS, "no such remote %s", name)
	}
	return url, nil
}

// CurrentBranch implements Repository.
func (f *Fake) CurrentBranch() (string, error) { return f.Branch, nil }

// UpToDate implements Repository.
func (f *Fake) UpToDate() (bool, error) { return !f.Ahead, nil }

// Push implements Repository.
func (f *Fake) Push(remote, branch string) error {
	if _, ok := f.Remotes[remote]; !ok {
		return errors.Newf(errors.ErrVCS, "'%s' does not appear to be a git repository", remote)
	}
	f.Pushed = append(f.Pushed, remote+"/"+branch)
	f.Ahead = false
	return nil
}

// Messages lists commit messages after the initial one.
func (f *Fake) Messages() []string {
	var out []string
	if len(f.Commits) < 2 {
		return out
	}
	for _, c := range f.Commits[1:] {
		out = append(out, c.Message)
	}
	return out
}
