package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/takaryo1010/privdict/dictionary"
)

// YAML writes d as a YAML mapping of owners to tag keys. Each definition
// is a flow sequence [vr, vm, name, retired]; owners are separated by a
// blank line.
func YAML(w io.Writer, d dictionary.PrivateDictionary) error {
	if len(d) == 0 {
		_, err := io.WriteString(w, "{}\n")
		return err
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, owner := range d.Owners() {
		tags := d[owner]
		inner := &yaml.Node{Kind: yaml.MappingNode}
		for _, key := range tags.Keys() {
			def := tags[key]
			seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
			for _, v := range []string{def.VR, def.VM, def.Name, def.Retired} {
				seq.Content = append(seq.Content, strNode(v))
			}
			inner.Content = append(inner.Content, strNode(string(key)), seq)
		}
		root.Content = append(root.Content, strNode(owner), inner)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}

	// Separate top-level entries with a blank line.
	lines := strings.Split(buf.String(), "\n")
	formatted := make([]string, 0, len(lines)+len(d))
	for i, line := range lines {
		if i > 0 && line != "" && !strings.HasPrefix(line, " ") {
			formatted = append(formatted, "")
		}
		formatted = append(formatted, line)
	}
	_, err := io.WriteString(w, strings.Join(formatted, "\n"))
	return err
}

func strNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}
