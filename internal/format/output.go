package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"checklist/internal/model"
)

// Envelope is the top-level shape of every CLI JSON document.
type Envelope struct {
	Data any    `json:"data"`
	Meta any    `json:"meta,omitempty"`
	Hint string `json:"_hint,omitempty"`
}

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - md / markdown (item lists only; rendered for the terminal)
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "md", "markdown":
		items, ok := itemsOf(v)
		if !ok {
			return fmt.Errorf("format %s: unsupported output %T", format, v)
		}
		return WriteMarkdown(w, items, MarkdownOptions{Raw: !pretty})
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

func itemsOf(v any) ([]model.Item, bool) {
	switch t := v.(type) {
	case []model.Item:
		return t, true
	case model.Item:
		return []model.Item{t}, true
	case Envelope:
		return itemsOf(t.Data)
	case *Envelope:
		if t == nil {
			return nil, false
		}
		return itemsOf(t.Data)
	}
	return nil, false
}
