// Command owner-index refreshes the list of private dictionary owners kept
// between marker comments in a Markdown file.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/takaryo1010/privdict/catalog"
	"github.com/takaryo1010/privdict/dictionary"
	"github.com/takaryo1010/privdict/render"
)

const (
	startMarker = "<!-- OWNERS_START -->"
	endMarker   = "<!-- OWNERS_END -->"
)

// fetchCatalog is a package-level variable that can be overridden for testing.
var fetchCatalog = catalog.AutoFetcher(nil)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("owner-index", flag.ContinueOnError)
	url := fs.String("url", catalog.DefaultURL, "Catalog URL")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: owner-index [-url catalog_url] <markdown_file>")
	}
	path := fs.Arg(0)

	dict, err := loadDictionary(context.Background(), *url)
	if err != nil {
		return err
	}

	if err := updateFile(path, generateMarkdownList(dict)); err != nil {
		return err
	}

	fmt.Printf("Successfully updated %s with %d owners.\n", path, len(dict))
	return nil
}

func loadDictionary(ctx context.Context, url string) (dictionary.PrivateDictionary, error) {
	records, err := catalog.Load(ctx, url, fetchCatalog)
	if err != nil {
		return nil, err
	}
	dict, err := dictionary.Build(records, dictionary.DefaultRetired)
	if err != nil {
		return nil, fmt.Errorf("failed to build dictionary: %w", err)
	}
	return dict, nil
}

func generateMarkdownList(dict dictionary.PrivateDictionary) string {
	var builder strings.Builder
	for _, owner := range dict.Owners() {
		n := len(dict[owner])
		unit := "tags"
		if n == 1 {
			unit = "tag"
		}
		fmt.Fprintf(&builder, "- %s (%d %s)\n", render.EscapeMarkdown(owner), n, unit)
	}
	return builder.String()
}

func updateFile(path, ownersMarkdown string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	startIndex := bytes.Index(content, []byte(startMarker))
	endIndex := bytes.Index(content, []byte(endMarker))

	if startIndex == -1 || endIndex == -1 || startIndex >= endIndex {
		return fmt.Errorf("OWNERS_START or OWNERS_END markers not found or are in invalid order in %s", path)
	}

	var buffer bytes.Buffer
	buffer.Write(content[:startIndex+len(startMarker)])
	buffer.WriteString("\n")
	buffer.WriteString(ownersMarkdown)
	buffer.Write(content[endIndex:])

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, buffer.Bytes(), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write updated %s: %w", path, err)
	}

	return nil
}
