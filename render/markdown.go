package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/takaryo1010/privdict/dictionary"
)

// Markdown writes a summary table of owners and their tag counts.
func Markdown(w io.Writer, d dictionary.PrivateDictionary) error {
	var b strings.Builder
	stats := d.Stats()
	b.WriteString("# Private dictionaries\n\n")
	fmt.Fprintf(&b, "%d owners, %d tags.\n\n", stats.Owners, stats.Tags)
	if stats.Owners > 0 {
		b.WriteString("| Owner | Tags |\n")
		b.WriteString("| --- | --- |\n")
		for _, owner := range d.Owners() {
			fmt.Fprintf(&b, "| %s | %d |\n", EscapeMarkdown(owner), len(d[owner]))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// HTML renders the Markdown summary to HTML.
func HTML(w io.Writer, d dictionary.PrivateDictionary) error {
	var src bytes.Buffer
	if err := Markdown(&src, d); err != nil {
		return err
	}
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	if err := md.Convert(src.Bytes(), w); err != nil {
		return fmt.Errorf("failed to convert markdown: %w", err)
	}
	return nil
}

// EscapeMarkdown backslash-escapes ASCII punctuation so s renders literally,
// including inside table cells.
func EscapeMarkdown(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < 0x80 && isASCIIPunct(byte(r)) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isASCIIPunct(c byte) bool {
	return (c >= '!' && c <= '/') || (c >= ':' && c <= '@') || (c >= '[' && c <= '`') || (c >= '{' && c <= '~')
}
