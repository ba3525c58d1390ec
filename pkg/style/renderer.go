package style

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/dotstash/pkg/errors"
	"github.com/arthur-debert/dotstash/pkg/types"
)

// Renderer defines the interface for rendering command results
type Renderer interface {
	RenderAdd(res *types.AddResult) string
	RenderInstall(res *types.InstallResult) string
	RenderUninstall(res *types.UninstallResult) string
	RenderLink(res *types.LinkResult) string
	RenderRemove(res *types.RemoveResult) string
	RenderList(res *types.ListResult) string
	RenderStatus(res *types.StatusResult) string
	RenderCommit(res *types.CommitResult) string
	RenderUndo(res *types.UndoResult) string
	RenderClone(res *types.CloneResult) string
	RenderPush(res *types.PushResult) string
	RenderError(err error) string
}

// TerminalRenderer implements Renderer for people. With plain set it emits
// no escape sequences at all.
type TerminalRenderer struct {
	plain bool
}

// NewTerminalRenderer creates a renderer with rich terminal output
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{}
}

// NewPlainRenderer creates a renderer that never styles its output
func NewPlainRenderer() *TerminalRenderer {
	return &TerminalRenderer{plain: true}
}

// For returns the renderer for a resolved format. FormatYAML has no
// renderer of its own; see RenderYAML.
func For(f Format) Renderer {
	if f == FormatTerminal {
		return NewTerminalRenderer()
	}
	return NewPlainRenderer()
}

// RenderYAML dumps any result structure.
func RenderYAML(v interface{}) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func (r *TerminalRenderer) paint(s lipgloss.Style, text string) string {
	if r.plain {
		return text
	}
	return s.Render(text)
}

func (r *TerminalRenderer) markup(text string) string {
	if r.plain {
		return Strip(text)
	}
	return Render(text)
}

func (r *TerminalRenderer) ok() string {
	if r.plain {
		return "✓"
	}
	return SuccessIndicator
}

func (r *TerminalRenderer) warn() string {
	if r.plain {
		return "!"
	}
	return WarningIndicator
}

func (r *TerminalRenderer) info() string {
	if r.plain {
		return "•"
	}
	return InfoIndicator
}

func (r *TerminalRenderer) pair(home, target string) string {
	return fmt.Sprintf("%s → %s", r.paint(HomeStyle, home), r.paint(ArchiveStyle, target))
}

func (r *TerminalRenderer) commitLine(b *strings.Builder, commit string) {
	if commit != "" {
		fmt.Fprintf(b, "%s committed %s\n", r.info(), r.paint(MutedStyle, commit))
	}
}

// RenderAdd renders the result of add
func (r *TerminalRenderer) RenderAdd(res *types.AddResult) string {
	var b strings.Builder
	verb := "added"
	if res.Placed {
		verb = "registered"
	}
	fmt.Fprintf(&b, "%s %s %s\n", r.ok(), verb, r.pair(res.Key, res.Value))
	if res.Backup != "" {
		fmt.Fprintf(&b, "%s previous archive copy moved to %s\n", r.warn(), r.paint(PathStyle, res.Backup))
	}
	for _, moved := range res.Adopted {
		fmt.Fprintf(&b, "%s\n", Indent("adopted "+r.pair(moved.Key, moved.To), 1))
	}
	r.commitLine(&b, res.Commit)
	return strings.TrimRight(b.String(), "\n")
}

// RenderInstall renders the result of install
func (r *TerminalRenderer) RenderInstall(res *types.InstallResult) string {
	if len(res.Installed) == 0 && len(res.BackedUp) == 0 {
		return r.paint(MutedStyle, fmt.Sprintf("Nothing to install, %d links already in place", len(res.Unchanged)))
	}

	var b strings.Builder
	for _, backup := range res.BackedUp {
		fmt.Fprintf(&b, "%s %s moved to %s\n", r.warn(), r.paint(HomeStyle, backup.Path), r.paint(PathStyle, backup.Backup))
	}
	for _, home := range res.Installed {
		fmt.Fprintf(&b, "%s linked %s\n", r.ok(), r.paint(HomeStyle, home))
	}
	if len(res.Unchanged) > 0 {
		fmt.Fprintf(&b, "%s\n", r.paint(MutedStyle, fmt.Sprintf("%d links unchanged", len(res.Unchanged))))
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderUninstall renders the result of uninstall
func (r *TerminalRenderer) RenderUninstall(res *types.UninstallResult) string {
	if len(res.Removed) == 0 {
		return r.paint(MutedStyle, "No links to remove")
	}
	var b strings.Builder
	for _, home := range res.Removed {
		fmt.Fprintf(&b, "%s unlinked %s\n", r.ok(), r.paint(HomeStyle, home))
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderLink renders the result of link
func (r *TerminalRenderer) RenderLink(res *types.LinkResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n", r.ok(), r.paint(LinkStyle, "linked"), r.pair(res.Key, res.Value))
	r.commitLine(&b, res.Commit)
	return strings.TrimRight(b.String(), "\n")
}

// RenderRemove renders the result of remove
func (r *TerminalRenderer) RenderRemove(res *types.RemoveResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s stopped tracking %s\n", r.ok(), r.paint(HomeStyle, res.Key))
	if res.Restored != "" {
		fmt.Fprintf(&b, "%s\n", Indent("restored to "+r.paint(HomeStyle, res.Restored), 1))
	}
	if res.Backup != "" {
		fmt.Fprintf(&b, "%s existing file moved to %s\n", r.warn(), r.paint(PathStyle, res.Backup))
	}
	for _, key := range res.Unlinked {
		fmt.Fprintf(&b, "%s\n", Indent("dropped "+r.paint(LinkStyle, key), 1))
	}
	r.commitLine(&b, res.Commit)
	return strings.TrimRight(b.String(), "\n")
}

// RenderList renders the registry as a table
func (r *TerminalRenderer) RenderList(res *types.ListResult) string {
	if len(res.Entries) == 0 {
		return r.paint(MutedStyle, "Nothing is tracked yet")
	}

	if r.plain {
		var b strings.Builder
		for _, e := range res.Entries {
			line := e.Home + " -> " + e.Target
			if e.Link {
				line += " (link)"
			}
			b.WriteString(line + "\n")
		}
		return strings.TrimRight(b.String(), "\n")
	}

	data := pterm.TableData{{"HOME", "TARGET", "KIND"}}
	for _, e := range res.Entries {
		kind := "entry"
		if e.Link {
			kind = LinkStyle.Render("link")
		}
		data = append(data, []string{HomeStyle.Render(e.Home), ArchiveStyle.Render(e.Target), kind})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err.Error()
	}
	return strings.TrimRight(table, "\n")
}

// RenderStatus renders pending changes grouped by home path
func (r *TerminalRenderer) RenderStatus(res *types.StatusResult) string {
	if len(res.Changes) == 0 {
		return r.paint(MutedStyle, "Nothing to commit, archive is clean")
	}

	groups := map[string][]types.StatusChange{}
	var homes []string
	for _, c := range res.Changes {
		if _, seen := groups[c.Home]; !seen {
			homes = append(homes, c.Home)
		}
		groups[c.Home] = append(groups[c.Home], c)
	}
	sort.Strings(homes)

	var b strings.Builder
	for _, home := range homes {
		fmt.Fprintf(&b, "%s:\n", r.paint(HomeStyle, home))
		for _, c := range groups[home] {
			kind := KindOf(c.Code)
			label := fmt.Sprintf("%-10s", kind)
			if !r.plain {
				label = ChangeStyle(kind).Sprint(label)
			}
			fmt.Fprintf(&b, "    %s %s\n", label, r.paint(ArchiveStyle, c.Archive))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderCommit renders the result of commit
func (r *TerminalRenderer) RenderCommit(res *types.CommitResult) string {
	if res.NothingToCommit {
		return r.paint(MutedStyle, fmt.Sprintf("Nothing to commit for %s", res.Path))
	}
	return fmt.Sprintf("%s %s %s", r.ok(), res.Message, r.paint(MutedStyle, res.Commit))
}

// RenderUndo renders the result of undo
func (r *TerminalRenderer) RenderUndo(res *types.UndoResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s reverted %q\n", r.ok(), res.Reverted)
	for _, move := range res.Moves {
		fmt.Fprintf(&b, "%s\n", Indent(fmt.Sprintf("moved %s → %s", r.paint(PathStyle, move.From), r.paint(PathStyle, move.To)), 1))
	}
	r.commitLine(&b, res.Commit)
	return strings.TrimRight(b.String(), "\n")
}

// RenderClone renders the result of clone
func (r *TerminalRenderer) RenderClone(res *types.CloneResult) string {
	line := fmt.Sprintf("%s cloned %s into %s", r.ok(), res.URL, r.paint(ArchiveStyle, res.Dir))
	if res.Branch != "" {
		line += fmt.Sprintf(" (%s)", res.Branch)
	}
	return line
}

// RenderPush renders the result of push
func (r *TerminalRenderer) RenderPush(res *types.PushResult) string {
	if !res.Pushed {
		return r.paint(MutedStyle, fmt.Sprintf("%s/%s is up to date", res.Remote, res.Branch))
	}
	return fmt.Sprintf("%s pushed %s to %s", r.ok(), res.Branch, res.Remote)
}

// RenderError renders an error message
func (r *TerminalRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}

	prefix := "Error:"
	if !r.plain {
		prefix = ErrorStyle.Render("Error:")
	}
	line := fmt.Sprintf("%s %v", prefix, err)
	if hint, ok := errors.GetErrorDetails(err)["hint"].(string); ok {
		line += "\n" + Indent(r.markup(hint), 1)
	}
	return line
}
