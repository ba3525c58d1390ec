package vcs

import (
	"bytes"
	stderrors "errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arthur-debert/dotstash/pkg/errors"
	"github.com/arthur-debert/dotstash/pkg/logging"
)

// Git drives the git binary inside a working tree.
type Git struct {
	Binary string
	Root   string
	// Env is appended to the process environment of every git call.
	Env []string
}

// NewGit returns a Git for the working tree at root. An empty binary means
// "git" from PATH.
func NewGit(binary, root string) *Git {
	if binary == "" {
		binary = "git"
	}
	return &Git{Binary: binary, Root: root}
}

// runGit executes a git command and returns trimmed stdout.
func (g *Git) runGit(dir string, args ...string) (string, error) {
	logger := logging.GetLogger("vcs")

	cmd := exec.Command(g.Binary, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), g.Env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Trace().Strs("args", args).Str("dir", dir).Msg("Running git")
	err := cmd.Run()
	out := strings.TrimSpace(stdout.String())
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = out
		}
		return out, errors.Wrapf(err, errors.ErrVCS, "git %s failed: %s", args[0], msg).
			WithDetail("args", strings.Join(args, " ")).
			WithDetail("dir", dir)
	}
	return out, nil
}

func (g *Git) run(args ...string) (string, error) {
	return g.runGit(g.Root, args...)
}

// Dir implements Repository.
func (g *Git) Dir() string { return g.Root }

// IsRepo reports whether Root is the top of a git working tree.
func (g *Git) IsRepo() bool {
	out, err := g.run("rev-parse", "--show-toplevel")
	if err != nil {
		return false
	}
	top, err := filepath.EvalSymlinks(out)
	if err != nil {
		return false
	}
	root, err := filepath.EvalSymlinks(g.Root)
	if err != nil {
		return false
	}
	return top == root
}

// Init creates the repository, and Root if needed.
func (g *Git) Init() error {
	if err := os.MkdirAll(g.Root, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot create %s", g.Root)
	}
	_, err := g.run("init", "--quiet")
	return err
}

// Commit implements Repository.
func (g *Git) Commit(message string, paths ...string) (string, error) {
	for _, path := range paths {
		rel, err := g.rel(path)
		if err != nil {
			return "", err
		}
		if _, statErr := os.Lstat(filepath.Join(g.Root, rel)); statErr == nil {
			if _, err := g.run("add", "-A", "--", rel); err != nil {
				return "", err
			}
			continue
		}
		if _, err := g.run("rm", "-r", "-q", "--cached", "--ignore-unmatch", "--", rel); err != nil {
			return "", err
		}
	}

	if !g.hasStagedChanges() {
		logger := logging.GetLogger("vcs")
		logger.Debug().Str("message", message).Msg("Nothing staged, skipping commit")
		head, err := g.Head()
		if err != nil {
			return "", nil
		}
		return head, nil
	}

	if _, err := g.run("commit", "--quiet", "-m", message); err != nil {
		return "", err
	}
	return g.Head()
}

func (g *Git) hasStagedChanges() bool {
	if _, err := g.run("rev-parse", "--verify", "--quiet", "HEAD"); err != nil {
		// no commit yet: anything in the index counts
		out, err := g.run("ls-files", "--cached")
		return err == nil && out != ""
	}
	_, err := g.run("diff", "--cached", "--quiet")
	return err != nil
}

// Head implements Repository.
func (g *Git) Head() (string, error) {
	return g.Revision("HEAD")
}

// Revision implements Repository.
func (g *Git) Revision(rev string) (string, error) {
	return g.run("rev-parse", "--short", rev)
}

// HeadMessage implements Repository.
func (g *Git) HeadMessage() (string, error) {
	return g.run("log", "-1", "--format=%B", "HEAD")
}

// CheckoutFile restores path from rev into the working tree and index.
func (g *Git) CheckoutFile(rev, path string) error {
	rel, err := g.rel(path)
	if err != nil {
		return err
	}
	_, err = g.run("checkout", rev, "--", rel)
	return err
}

// Added implements Repository.
func (g *Git) Added(rev string) ([]string, error) {
	out, err := g.run("diff", "--name-only", "-z", "--no-renames", "--diff-filter=A", rev, "HEAD")
	if err != nil {
		return nil, err
	}
	var added []string
	for _, rel := range strings.Split(out, "\x00") {
		if rel != "" {
			added = append(added, filepath.Join(g.Root, filepath.FromSlash(rel)))
		}
	}
	return added, nil
}

// Untrack implements Repository.
func (g *Git) Untrack(paths ...string) error {
	for _, path := range paths {
		rel, err := g.rel(path)
		if err != nil {
			return err
		}
		if _, err := g.run("rm", "-r", "-q", "--cached", "--ignore-unmatch", "--", rel); err != nil {
			return err
		}
	}
	return nil
}

// Changed implements Repository.
func (g *Git) Changed(path string) (bool, error) {
	rel, err := g.rel(path)
	if err != nil {
		return false, err
	}
	changes, err := g.Status(path)
	if err != nil {
		return false, err
	}
	if len(changes) > 0 {
		return true, nil
	}
	_, err = g.run("diff", "--quiet", "HEAD", "--", rel)
	if err == nil {
		return false, nil
	}
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return true, nil
	}
	return false, err
}

// Status lists changes below path, or in the whole tree when path is empty.
func (g *Git) Status(path string) ([]Change, error) {
	args := []string{"status", "--porcelain", "-z", "--untracked-files=all"}
	if path != "" {
		rel, err := g.rel(path)
		if err != nil {
			return nil, err
		}
		args = append(args, "--", rel)
	}

	cmd := exec.Command(g.Binary, args...)
	cmd.Dir = g.Root
	cmd.Env = append(os.Environ(), g.Env...)
	out, err := cmd.Output()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrVCS, "git status failed").
			WithDetail("dir", g.Root)
	}
	return parsePorcelain(string(out)), nil
}

func parsePorcelain(out string) []Change {
	var changes []Change
	fields := strings.Split(out, "\x00")
	for i := 0; i < len(fields); i++ {
		field := fields[i]
		if len(field) < 4 {
			continue
		}
		code := field[:2]
		changes = append(changes, Change{Code: strings.TrimSpace(code), Path: field[3:]})
		// renames and copies carry the source path as the next field
		if code[0] == 'R' || code[0] == 'C' {
			i++
		}
	}
	return changes
}

// Clone clones url into Root, which must not exist or be empty.
func (g *Git) Clone(url, branch string) error {
	args := []string{"clone", "--quiet"}
	if branch != "" {
		args = append(args, "--branch", branch)
	}
	args = append(args, url, g.Root)
	if err := os.MkdirAll(filepath.Dir(g.Root), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot create %s", filepath.Dir(g.Root))
	}
	_, err := g.runGit(filepath.Dir(g.Root), args...)
	return err
}

// SetRemote points name at url, replacing a different existing url.
func (g *Git) SetRemote(name, url string) error {
	current, err := g.RemoteURL(name)
	if err == nil {
		if current == url {
			return nil
		}
		_, err = g.run("remote", "set-url", name, url)
		return err
	}
	_, err = g.run("remote", "add", name, url)
	return err
}

// RemoteURL implements Repository.
func (g *Git) RemoteURL(name string) (string, error) {
	return g.run("remote", "get-url", name)
}

// CurrentBranch implements Repository.
func (g *Git) CurrentBranch() (string, error) {
	return g.run("rev-parse", "--abbrev-ref", "HEAD")
}

// UpToDate implements Repository. A branch without upstream is never up to
// date.
func (g *Git) UpToDate() (bool, error) {
	if _, err := g.run("rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}"); err != nil {
		return false, nil
	}
	out, err := g.run("rev-list", "--count", "@{u}..HEAD")
	if err != nil {
		return false, err
	}
	ahead, err := strconv.Atoi(out)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrVCS, "unexpected rev-list output %q", out)
	}
	return ahead == 0, nil
}

// Push pushes branch to remote and records it as upstream.
func (g *Git) Push(remote, branch string) error {
	_, err := g.run("push", "--quiet", "--set-upstream", remote, branch)
	return err
}

// rel expresses path relative to Root. Relative paths pass through.
func (g *Git) rel(path string) (string, error) {
	if !filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	rel, err := filepath.Rel(g.Root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.ErrInvalidPath, "%s is outside the repository %s", path, g.Root)
	}
	return rel, nil
}
