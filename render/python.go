package render

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/takaryo1010/privdict/dictionary"
)

// PythonWidth is the line width the Python literal is wrapped to.
const PythonWidth = 80

// Python writes d as a Python dict literal followed by a newline. Keys are
// sorted; a container is split over several lines with hanging indentation
// only when its one-line form does not fit in PythonWidth.
func Python(w io.Writer, d dictionary.PrivateDictionary) error {
	p := &pyPrinter{width: PythonWidth}
	p.format(pyDictionary(d), 0, 0)
	p.buf.WriteByte('\n')
	_, err := io.WriteString(w, p.buf.String())
	return err
}

type pyValue interface {
	repr() string
}

type pyStr string

type pyTuple []pyValue

type pyItem struct {
	key   pyStr
	value pyValue
}

// pyDict items are kept in key order.
type pyDict []pyItem

func pyDictionary(d dictionary.PrivateDictionary) pyDict {
	owners := d.Owners()
	out := make(pyDict, 0, len(owners))
	for _, owner := range owners {
		tags := d[owner]
		inner := make(pyDict, 0, len(tags))
		for _, key := range tags.Keys() {
			def := tags[key]
			inner = append(inner, pyItem{
				key:   pyStr(key),
				value: pyTuple{pyStr(def.VR), pyStr(def.VM), pyStr(def.Name), pyStr(def.Retired)},
			})
		}
		out = append(out, pyItem{key: pyStr(owner), value: inner})
	}
	return out
}

func (s pyStr) repr() string { return pyQuote(string(s)) }

func (t pyTuple) repr() string {
	parts := make([]string, len(t))
	for i, v := range t {
		parts[i] = v.repr()
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (d pyDict) repr() string {
	parts := make([]string, len(d))
	for i, it := range d {
		parts[i] = it.key.repr() + ": " + it.value.repr()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

type pyPrinter struct {
	buf   strings.Builder
	width int
}

func (p *pyPrinter) format(v pyValue, indent, allowance int) {
	rep := v.repr()
	if utf8.RuneCountInString(rep) <= p.width-1-indent-allowance {
		p.buf.WriteString(rep)
		return
	}

	switch t := v.(type) {
	case pyDict:
		p.buf.WriteByte('{')
		indent++
		for i, it := range t {
			key := it.key.repr()
			if i > 0 {
				p.buf.WriteString(",\n")
				p.buf.WriteString(strings.Repeat(" ", indent))
			}
			p.buf.WriteString(key)
			p.buf.WriteString(": ")
			p.format(it.value, indent+utf8.RuneCountInString(key)+2, allowance+1)
		}
		p.buf.WriteByte('}')
	case pyTuple:
		p.buf.WriteByte('(')
		indent++
		for i, item := range t {
			if i > 0 {
				p.buf.WriteString(",\n")
				p.buf.WriteString(strings.Repeat(" ", indent))
			}
			p.format(item, indent, allowance+1)
		}
		if len(t) == 1 {
			p.buf.WriteByte(',')
		}
		p.buf.WriteByte(')')
	default:
		// Scalars are never split.
		p.buf.WriteString(rep)
	}
}

// pyQuote returns s as a Python string literal, preferring single quotes.
func pyQuote(s string) string {
	quote := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	var b strings.Builder
	b.WriteByte(quote)
	for _, r := range s {
		switch {
		case r == rune(quote) || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r < 0x80 || unicode.IsPrint(r):
			b.WriteRune(r)
		case r <= 0xff:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r <= 0xffff:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}
	}
	b.WriteByte(quote)
	return b.String()
}
