package style

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

// Markup styles [tag]text[/tag] spans in messages built by commands, such as
// error hints. Unknown tags are left as they are.
type Markup struct {
	tags []markupTag
}

type markupTag struct {
	pattern *regexp.Regexp
	style   lipgloss.Style
}

// NewMarkup returns the tag set used across dotstash output.
func NewMarkup() *Markup {
	m := &Markup{}
	for _, t := range []struct {
		name  string
		style lipgloss.Style
	}{
		{"code", CodeStyle},
		{"path", PathStyle},
		{"home", HomeStyle},
		{"archive", ArchiveStyle},
		{"link", LinkStyle},
		{"muted", MutedStyle},
		{"bold", lipgloss.NewStyle().Bold(true)},
	} {
		m.tags = append(m.tags, markupTag{
			pattern: regexp.MustCompile(`\[` + t.name + `\](.*?)\[/` + t.name + `\]`),
			style:   t.style,
		})
	}
	return m
}

// Render replaces every span with its styled content.
func (m *Markup) Render(text string) string {
	return m.apply(text, func(t markupTag, content string) string { return t.style.Render(content) })
}

// Strip replaces every span with its bare content.
func (m *Markup) Strip(text string) string {
	return m.apply(text, func(_ markupTag, content string) string { return content })
}

// apply repeats until nothing matches so nested spans are handled.
func (m *Markup) apply(text string, fn func(markupTag, string) string) string {
	for {
		before := text
		for _, t := range m.tags {
			t := t
			text = t.pattern.ReplaceAllStringFunc(text, func(match string) string {
				return fn(t, t.pattern.FindStringSubmatch(match)[1])
			})
		}
		if text == before {
			return text
		}
	}
}

var defaultMarkup = NewMarkup()

// Render styles text with the default tag set.
func Render(text string) string {
	return defaultMarkup.Render(text)
}

// Strip removes the default tags from text.
func Strip(text string) string {
	return defaultMarkup.Strip(text)
}
