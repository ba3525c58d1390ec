package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotstash/pkg/errors"
)

// Side tags which root a Ref is expressed against.
type Side int

const (
	// HomeSide references live under the home root and become symlinks.
	HomeSide Side = iota
	// ArchiveSide references live under the archive root and hold the data.
	ArchiveSide
)

func (s Side) String() string {
	if s == ArchiveSide {
		return "archive"
	}
	return "home"
}

// Ref is a location plus the root variable it is expressed against.
type Ref interface {
	Side() Side
	// Raw is the string the reference was built from.
	Raw() string
	RootVar() string
	Root() string
	// Rel is the root-relative path; it never escapes the root.
	Rel() string
	Abs() string
	// Repr is the canonical "$VAR/rel" form.
	Repr() string
	String() string
}

type base struct {
	raw     string
	rootVar string
	root    string
	rel     string
}

func (b base) Raw() string     { return b.raw }
func (b base) RootVar() string { return b.rootVar }
func (b base) Root() string    { return b.root }
func (b base) Rel() string     { return b.rel }

func (b base) Abs() string {
	return filepath.Join(b.root, b.rel)
}

func (b base) Repr() string {
	return "$" + b.rootVar + "/" + filepath.ToSlash(b.rel)
}

func (b base) String() string {
	return b.Repr()
}

// HomeRef is a reference rooted at the home directory.
type HomeRef struct{ base }

// Side implements Ref.
func (HomeRef) Side() Side { return HomeSide }

// ArchiveRef is a reference rooted at the archive directory.
type ArchiveRef struct{ base }

// Side implements Ref.
func (ArchiveRef) Side() Side { return ArchiveSide }

// Resolve expands raw and expresses it against the root of side. A relative
// raw string is taken relative to that root. Archive-side references drop a
// single leading dot from the final path component.
func Resolve(raw string, side Side, roots Roots) (Ref, error) {
	return build(raw, side, roots, side == ArchiveSide)
}

// At builds a reference to an existing absolute location without applying
// the archive naming rule. Placement and registry parsing use it, since
// those paths already are archive paths.
func At(abs string, side Side, roots Roots) (Ref, error) {
	return build(abs, side, roots, false)
}

// Parse rebuilds a reference from its canonical representation. The root
// variable selects the variant.
func Parse(repr string, roots Roots) (Ref, error) {
	if !roots.Valid() {
		return nil, errors.New(errors.ErrEnvironment, "roots are not resolved")
	}

	name, rest, ok := splitVar(repr)
	if !ok {
		return nil, errors.Newf(errors.ErrInvalidPath, "%q is not a canonical reference", repr).
			WithDetail("repr", repr)
	}

	switch name {
	case roots.HomeVar:
		return build(filepath.Join(roots.Home, filepath.FromSlash(rest)), HomeSide, roots, false)
	case roots.ArchiveVar:
		return build(filepath.Join(roots.Archive, filepath.FromSlash(rest)), ArchiveSide, roots, false)
	}
	return nil, errors.Newf(errors.ErrInvalidPath, "%q is not rooted at $%s or $%s", repr, roots.HomeVar, roots.ArchiveVar).
		WithDetail("repr", repr)
}

func splitVar(repr string) (name, rest string, ok bool) {
	if !strings.HasPrefix(repr, "$") {
		return "", "", false
	}
	body := repr[1:]
	if strings.HasPrefix(body, "{") {
		end := strings.Index(body, "}")
		if end < 0 {
			return "", "", false
		}
		name, rest = body[1:end], body[end+1:]
	} else {
		slash := strings.Index(body, "/")
		if slash < 0 {
			return "", "", false
		}
		name, rest = body[:slash], body[slash:]
	}
	rest = strings.TrimPrefix(rest, "/")
	return name, rest, name != "" && rest != ""
}

func build(raw string, side Side, roots Roots, undot bool) (Ref, error) {
	if !roots.Valid() {
		return nil, errors.New(errors.ErrEnvironment, "roots are not resolved")
	}
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New(errors.ErrInvalidPath, "empty path")
	}

	root, variable := roots.Root(side)

	expanded := roots.Expand(raw)
	if !filepath.IsAbs(expanded) {
		expanded = filepath.Join(root, expanded)
	}
	expanded = filepath.Clean(expanded)

	rel, err := relativeTo(root, expanded)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidPath, "%s is not under $%s (%s)", raw, variable, root).
			WithDetail("path", expanded).
			WithDetail("root", root)
	}

	if undot {
		dir, name := filepath.Split(rel)
		name = strings.TrimPrefix(name, ".")
		if name == "" {
			return nil, errors.Newf(errors.ErrInvalidPath, "%s has no name left once undotted", raw)
		}
		rel = filepath.Join(dir, name)
	}

	b := base{raw: raw, rootVar: variable, root: root, rel: rel}
	if side == ArchiveSide {
		return ArchiveRef{b}, nil
	}
	return HomeRef{b}, nil
}

func relativeTo(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}
	if rel == "." {
		return "", errors.New(errors.ErrInvalidPath, "path is the root itself")
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.New(errors.ErrInvalidPath, "path escapes its root")
	}
	return rel, nil
}

// Join returns a reference below ref on the same side. The archive naming
// rule is not applied.
func Join(ref Ref, elem ...string) (Ref, error) {
	rel := filepath.Join(append([]string{ref.Rel()}, elem...)...)
	if !IsWithin(ref.Root(), filepath.Join(ref.Root(), rel)) {
		return nil, errors.Newf(errors.ErrInvalidPath, "%s escapes $%s", filepath.Join(elem...), ref.RootVar())
	}

	b := base{raw: filepath.Join(ref.Root(), rel), rootVar: ref.RootVar(), root: ref.Root(), rel: filepath.Clean(rel)}
	if ref.Side() == ArchiveSide {
		return ArchiveRef{b}, nil
	}
	return HomeRef{b}, nil
}
