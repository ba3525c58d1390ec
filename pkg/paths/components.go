package paths

import (
	"path/filepath"
	"strings"
)

// IsWithin reports whether child lies strictly below parent, comparing whole
// path components. "/a/bc" is not within "/a/b".
func IsWithin(parent, child string) bool {
	rel, err := filepath.Rel(filepath.Clean(parent), filepath.Clean(child))
	if err != nil {
		return false
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return !filepath.IsAbs(rel)
}

// Components splits a relative path into its components.
func Components(rel string) []string {
	rel = filepath.Clean(rel)
	if rel == "." || rel == "" {
		return nil
	}
	return strings.Split(rel, string(filepath.Separator))
}

// Undot strips a single leading dot from the first component of rel.
// Home directories are dotted, their archive counterparts are not.
func Undot(rel string) string {
	parts := Components(rel)
	if len(parts) == 0 {
		return rel
	}
	if trimmed := strings.TrimPrefix(parts[0], "."); trimmed != "" {
		parts[0] = trimmed
	}
	return filepath.Join(parts...)
}
