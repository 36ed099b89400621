package format

import (
	"fmt"
	"io"
	"strings"

	"checklist/internal/model"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/termenv"
)

type MarkdownOptions struct {
	// Width wraps rendered output; <= 0 means 80.
	Width int
	// Raw skips terminal rendering and writes the markdown source.
	Raw bool
	// Style overrides the glamour style (dark, light, notty, ...).
	Style string
}

// ChecklistMarkdown renders items as a GitHub-style task list, one item per line.
func ChecklistMarkdown(items []model.Item) string {
	var b strings.Builder
	b.WriteString("# Checklist\n\n")
	if len(items) == 0 {
		b.WriteString("_Nothing to do._\n")
		return b.String()
	}
	for _, it := range items {
		box := " "
		if it.Done() {
			box = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s\n", box, escapeMarkdownLine(it.Title))
	}
	return b.String()
}

func WriteMarkdown(w io.Writer, items []model.Item, opts MarkdownOptions) error {
	md := ChecklistMarkdown(items)
	if opts.Raw {
		_, err := io.WriteString(w, md)
		return err
	}

	width := opts.Width
	if width <= 0 {
		width = 80
	}
	profile := termenv.NewOutput(w).ColorProfile()
	style := opts.Style
	if style == "" {
		style = markdownStyleFor(profile)
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithColorProfile(profile),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return err
	}
	out, err := r.Render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// markdownStyleFor picks a fixed style from the writer's color profile.
// Auto-detecting the background can block on terminal queries.
func markdownStyleFor(profile termenv.Profile) string {
	if profile == termenv.Ascii {
		return styles.NoTTYStyle
	}
	return styles.DarkStyle
}

// escapeMarkdownLine keeps a title on one list line and stops it from being
// read as markup.
func escapeMarkdownLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := strings.NewReplacer(
		`\`, `\\`,
		"*", `\*`,
		"_", `\_`,
		"`", "\\`",
		"[", `\[`,
		"]", `\]`,
		"<", `\<`,
		"#", `\#`,
	)
	return r.Replace(s)
}
