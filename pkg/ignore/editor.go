package ignore

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/dotstash/pkg/errors"
	"github.com/arthur-debert/dotstash/pkg/logging"
	"github.com/arthur-debert/dotstash/pkg/paths"
	"github.com/arthur-debert/dotstash/pkg/types"
)

// DefaultFileName is the rule file name git reads.
const DefaultFileName = ".gitignore"

// Editor reads and writes rule files through FS.
type Editor struct {
	FS       types.FS
	FileName string
}

// New returns an Editor for rule files called fileName.
func New(fsys types.FS, fileName string) *Editor {
	if fileName == "" {
		fileName = DefaultFileName
	}
	return &Editor{FS: fsys, FileName: fileName}
}

// SeedRules are the lines of a freshly tracked directory's rule file.
func (e *Editor) SeedRules() []string {
	return []string{"*", "!" + e.FileName}
}

// SeedExclusions makes git ignore everything inside dir except the rule file
// itself. Lines already present are kept and not repeated.
func (e *Editor) SeedExclusions(dir string) error {
	logger := logging.GetLogger("ignore")
	file := filepath.Join(dir, e.FileName)
	added, err := e.ensure(file, e.SeedRules())
	if err != nil {
		return err
	}
	logger.Debug().Str("file", file).Int("added", added).Msg("Seeded exclusions")
	return nil
}

// CarveException re-includes nested, which lies below the tracked directory
// root, by writing one negation per directory level between the two.
// Intermediate directories get "!/name/", the final component "!/name" and,
// when it is a directory, "!/name/**". Only missing lines are appended, so
// repeated calls leave the files unchanged.
func (e *Editor) CarveException(nested, root string, nestedIsDir bool) error {
	logger := logging.GetLogger("ignore")

	if !paths.IsWithin(root, nested) {
		return errors.Newf(errors.ErrInvalidPath, "%s is not inside %s", nested, root).
			WithDetail("path", nested).
			WithDetail("root", root)
	}
	rel, err := filepath.Rel(root, nested)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidPath, "cannot carve %s", nested)
	}

	components := paths.Components(rel)
	dir := filepath.Clean(root)
	for i, name := range components {
		var rules []string
		if i < len(components)-1 {
			rules = []string{"!/" + name + "/"}
		} else {
			rules = []string{"!/" + name}
			if nestedIsDir {
				rules = append(rules, "!/"+name+"/**")
			}
		}

		file := filepath.Join(dir, e.FileName)
		added, err := e.ensure(file, rules)
		if err != nil {
			return err
		}
		if added > 0 {
			logger.Debug().Str("file", file).Strs("rules", rules).Msg("Carved exception")
		}
		dir = filepath.Join(dir, name)
	}
	return nil
}

// RuleFiles lists every rule file at or below root, sorted. A missing root
// has none.
func (e *Editor) RuleFiles(root string) ([]string, error) {
	var found []string
	if err := e.walk(root, &found); err != nil {
		return nil, err
	}
	sort.Strings(found)
	return found, nil
}

// RemoveRules deletes every rule file at or below dir and returns the
// removed paths.
func (e *Editor) RemoveRules(dir string) ([]string, error) {
	logger := logging.GetLogger("ignore")

	files, err := e.RuleFiles(dir)
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		if err := e.FS.Remove(file); err != nil {
			return nil, errors.Wrapf(err, errors.ErrIO, "cannot remove %s", file)
		}
		logger.Debug().Str("file", file).Msg("Removed rule file")
	}
	return files, nil
}

// StripRules removes the lines written by SeedExclusions and
// CarveException from every rule file at or below dir, deleting files left
// without rules. Other lines stay. It returns the files it touched.
func (e *Editor) StripRules(dir string) ([]string, error) {
	files, err := e.RuleFiles(dir)
	if err != nil {
		return nil, err
	}

	seed := map[string]bool{}
	for _, rule := range e.SeedRules() {
		seed[rule] = true
	}

	var touched []string
	for _, file := range files {
		rules, err := e.Rules(file)
		if err != nil {
			return nil, err
		}
		var kept []string
		for _, rule := range rules {
			trimmed := strings.TrimSpace(rule)
			if !seed[trimmed] && !strings.HasPrefix(trimmed, "!/") {
				kept = append(kept, rule)
			}
		}
		if len(kept) == len(rules) {
			continue
		}

		if len(kept) == 0 {
			err = e.FS.Remove(file)
		} else {
			err = e.FS.WriteFile(file, []byte(strings.Join(kept, "\n")+"\n"), 0644)
		}
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrIO, "cannot rewrite %s", file)
		}
		touched = append(touched, file)
	}
	return touched, nil
}

// Rules returns the non-empty lines of a rule file. A missing file has no
// rules.
func (e *Editor) Rules(file string) ([]string, error) {
	data, err := e.FS.ReadFile(file)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrIO, "cannot read %s", file)
	}

	var rules []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			rules = append(rules, line)
		}
	}
	return rules, nil
}

func (e *Editor) walk(dir string, found *[]string) error {
	entries, err := e.FS.ReadDir(dir)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrIO, "cannot list %s", dir)
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		switch {
		case entry.Name() == e.FileName && entry.Type().IsRegular():
			*found = append(*found, path)
		case entry.IsDir():
			if err := e.walk(path, found); err != nil {
				return err
			}
		}
	}
	return nil
}

// ensure appends the lines of want missing from file, creating file and its
// directory as needed. It returns how many lines were written.
func (e *Editor) ensure(file string, want []string) (int, error) {
	data, err := e.FS.ReadFile(file)
	if err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return 0, errors.Wrapf(err, errors.ErrIO, "cannot read %s", file)
	}

	present := make(map[string]bool)
	for _, line := range strings.Split(string(data), "\n") {
		present[strings.TrimSpace(line)] = true
	}

	var missing []string
	for _, line := range want {
		if !present[line] {
			missing = append(missing, line)
			present[line] = true
		}
	}
	if len(missing) == 0 && err == nil {
		return 0, nil
	}

	content := string(data)
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	for _, line := range missing {
		content += line + "\n"
	}

	if err := e.FS.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return 0, errors.Wrapf(err, errors.ErrIO, "cannot create %s", filepath.Dir(file))
	}
	if err := e.FS.WriteFile(file, []byte(content), 0644); err != nil {
		return 0, errors.Wrapf(err, errors.ErrIO, "cannot write %s", file)
	}
	return len(missing), nil
}
