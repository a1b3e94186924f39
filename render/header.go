package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/takaryo1010/privdict/dictionary"
)

// VariableName is the identifier the dictionary literal is assigned to.
const VariableName = "private_dictionaries"

// DateLayout is the ISO-8601 calendar date used in the provenance header.
const DateLayout = "2006-01-02"

// HeaderInfo is the provenance recorded at the top of a generated module.
type HeaderInfo struct {
	Filename  string
	Tool      string
	SourceURL string
	Date      time.Time
}

// Header writes the provenance comment block and the opening of the
// assignment, ending with a line continuation.
func Header(w io.Writer, info HeaderInfo) error {
	lines := []string{
		"# " + info.Filename,
		fmt.Sprintf("# This file is autogenerated by %q,", info.Tool),
		"# from the private elements list maintained by the GDCM project",
		"# (" + info.SourceURL + ").",
		"# Downloaded on " + info.Date.Format(DateLayout) + ".",
		"",
		"# This is a dictionary of DICOM dictionaries.",
		`# The outer dictionary key is the Private Creator name ("owner"),`,
		"# the inner dictionary is a map of DICOM tag to",
		"# (VR, type, name, isRetired)",
		"",
		VariableName + ` = \`,
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

// Module writes the header followed by the Python literal of d.
func Module(w io.Writer, d dictionary.PrivateDictionary, info HeaderInfo) error {
	if err := Header(w, info); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := Python(w, d); err != nil {
		return fmt.Errorf("failed to write dictionary: %w", err)
	}
	return nil
}
