// Package render serializes a private dictionary: as a Python module for
// pydicom, as YAML, or as a Markdown/HTML summary.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/takaryo1010/privdict/dictionary"
)

// Format selects a serializer.
type Format string

const (
	FormatPython   Format = "python"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

var renderers = map[Format]func(io.Writer, dictionary.PrivateDictionary) error{
	FormatPython:   Python,
	FormatYAML:     YAML,
	FormatMarkdown: Markdown,
	FormatHTML:     HTML,
}

// Formats returns the supported formats, default first.
func Formats() []Format {
	return []Format{FormatPython, FormatYAML, FormatMarkdown, FormatHTML}
}

// ParseFormat resolves a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := renderers[f]; !ok {
		return "", fmt.Errorf("unknown output format %q (supported: %s)", s, strings.Join(formatNames(), ", "))
	}
	return f, nil
}

func formatNames() []string {
	names := make([]string, 0, len(renderers))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return names
}

// Render writes d to w in format f.
func Render(w io.Writer, f Format, d dictionary.PrivateDictionary) error {
	fn, ok := renderers[f]
	if !ok {
		return fmt.Errorf("unknown output format %q", f)
	}
	return fn(w, d)
}

// Document writes the file artifact for format f. Only the Python format
// carries the provenance header.
func Document(w io.Writer, f Format, d dictionary.PrivateDictionary, info HeaderInfo) error {
	if f == FormatPython {
		return Module(w, d, info)
	}
	return Render(w, f, d)
}
