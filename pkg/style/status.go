package style

import (
	"strings"

	"github.com/pterm/pterm"
)

// ChangeKind is the coarse meaning of a two-letter porcelain status code.
type ChangeKind string

const (
	ChangeModified  ChangeKind = "modified"
	ChangeAdded     ChangeKind = "added"
	ChangeDeleted   ChangeKind = "deleted"
	ChangeRenamed   ChangeKind = "renamed"
	ChangeUntracked ChangeKind = "untracked"
	ChangeConflict  ChangeKind = "conflict"
	ChangeOther     ChangeKind = "changed"
)

// KindOf classifies a status code such as " M", "A " or "??".
func KindOf(code string) ChangeKind {
	code = strings.TrimSpace(code)
	switch {
	case code == "??":
		return ChangeUntracked
	case code == "UU" || code == "AA" || code == "DD" || strings.Contains(code, "U"):
		return ChangeConflict
	case strings.Contains(code, "D"):
		return ChangeDeleted
	case strings.Contains(code, "R"):
		return ChangeRenamed
	case strings.Contains(code, "A"):
		return ChangeAdded
	case strings.Contains(code, "M"):
		return ChangeModified
	default:
		return ChangeOther
	}
}

// ChangeStyle returns the pterm style a change kind is printed with.
func ChangeStyle(kind ChangeKind) *pterm.Style {
	switch kind {
	case ChangeAdded, ChangeUntracked:
		return pterm.NewStyle(pterm.FgGreen)
	case ChangeDeleted:
		return pterm.NewStyle(pterm.FgRed)
	case ChangeConflict:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	case ChangeModified, ChangeRenamed:
		return pterm.NewStyle(pterm.FgYellow)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}
