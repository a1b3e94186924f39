// Package catalog loads the GDCM private dictionary catalog: a single XML
// root element whose entry children each describe one private tag through
// their attributes.
package catalog

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/htmlindex"
)

// DefaultURL is the location of the private dictionary maintained by the GDCM project.
const DefaultURL = "http://gdcm.svn.sf.net/viewvc/gdcm/trunk/Source/DataDictionary/privatedicts.xml"

// EntryElement is the name of the root's children that carry tag definitions.
const EntryElement = "entry"

// Record holds the attributes of one entry element, verbatim.
type Record map[string]string

// Load retrieves the catalog at url with fetch and parses it.
func Load(ctx context.Context, url string, fetch FetchFunc) ([]Record, error) {
	data, err := fetch(ctx, url)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return Parse(data)
}

// Parse decodes a catalog document and returns one Record per entry child
// of the root element, in document order. A root without entry children
// yields an empty, non-nil slice.
func Parse(data []byte) ([]Record, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charsetReader

	records := []Record{}
	depth := 0
	seenRoot := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Offset: decoder.InputOffset(), Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				if seenRoot {
					return nil, &ParseError{Offset: decoder.InputOffset(), Err: fmt.Errorf("unexpected second root element <%s>", t.Name.Local)}
				}
				seenRoot = true
			}
			if depth == 1 && t.Name.Local == EntryElement {
				records = append(records, newRecord(t.Attr))
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}

	if !seenRoot {
		return nil, &ParseError{Offset: decoder.InputOffset(), Err: errors.New("no root element")}
	}
	return records, nil
}

func newRecord(attrs []xml.Attr) Record {
	rec := make(Record, len(attrs))
	for _, a := range attrs {
		rec[a.Name.Local] = a.Value
	}
	return rec
}

// charsetReader lets documents declare a non UTF-8 encoding such as ISO-8859-1.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}
