// Package obsidian reads and writes markdown notes with YAML frontmatter.
package obsidian

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// Note is a markdown document with YAML frontmatter and body content.
type Note struct {
	Frontmatter *Frontmatter
	Body        string
}

// Frontmatter is an ordered set of YAML fields. Keys are kept sorted so output is stable.
type Frontmatter struct {
	fields map[string]any
	keys   []string
}

// NewFrontmatter creates an empty Frontmatter.
func NewFrontmatter() *Frontmatter {
	return &Frontmatter{fields: make(map[string]any)}
}

// ParseMarkdown splits content into frontmatter and body. A document without a complete
// frontmatter block is all body.
func ParseMarkdown(content []byte) (*Note, error) {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")

	rest, ok := strings.CutPrefix(text, delimiter+"\n")
	if !ok {
		return &Note{Frontmatter: NewFrontmatter(), Body: text}, nil
	}

	var header, body string
	if after, ok := strings.CutPrefix(rest, delimiter+"\n"); ok {
		body = after
	} else if end := strings.Index(rest, "\n"+delimiter+"\n"); end >= 0 {
		header, body = rest[:end], rest[end+len(delimiter)+2:]
	} else if h, ok := strings.CutSuffix(rest, "\n"+delimiter); ok {
		header = h
	} else {
		return &Note{Frontmatter: NewFrontmatter(), Body: text}, nil
	}

	var data map[string]any
	if err := yaml.Unmarshal([]byte(header), &data); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	fm := NewFrontmatter()
	for key, value := range data {
		fm.Set(key, value)
	}

	return &Note{Frontmatter: fm, Body: strings.TrimPrefix(body, "\n")}, nil
}

// Build serializes the note. Tags are written in flow style.
func (n *Note) Build() ([]byte, error) {
	var buf bytes.Buffer

	if n.Frontmatter != nil && len(n.Frontmatter.keys) > 0 {
		header, err := yaml.Marshal(n.Frontmatter)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal frontmatter: %w", err)
		}
		buf.WriteString(delimiter + "\n")
		buf.Write(header)
		buf.WriteString(delimiter + "\n")
	}

	buf.WriteString(n.Body)
	return buf.Bytes(), nil
}

// Get returns the raw value for key.
func (f *Frontmatter) Get(key string) (any, bool) {
	val, ok := f.fields[key]
	return val, ok
}

// Set stores value under key.
func (f *Frontmatter) Set(key string, value any) {
	if _, exists := f.fields[key]; !exists {
		idx, _ := slices.BinarySearch(f.keys, key)
		f.keys = slices.Insert(f.keys, idx, key)
	}
	f.fields[key] = value
}

// SetIfPresent stores *value under key when value is non-nil.
func SetIfPresent[T any](f *Frontmatter, key string, value *T) {
	if value != nil {
		f.Set(key, *value)
	}
}

// Delete removes key.
func (f *Frontmatter) Delete(key string) {
	if _, ok := f.fields[key]; !ok {
		return
	}
	delete(f.fields, key)
	if idx, found := slices.BinarySearch(f.keys, key); found {
		f.keys = slices.Delete(f.keys, idx, idx+1)
	}
}

// GetString returns the string value for key, or "".
func (f *Frontmatter) GetString(key string) string {
	str, _ := f.fields[key].(string)
	return str
}

// GetInt returns an integer value for key. The bool is false when the key is missing or
// not a whole number.
func (f *Frontmatter) GetInt(key string) (int, bool) {
	switch v := f.fields[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint64:
		return int(v), true
	case float64:
		if v == float64(int(v)) {
			return int(v), true
		}
	}
	return 0, false
}

// GetFloat returns a numeric value for key. YAML decodes whole numbers as ints, so both
// kinds are accepted.
func (f *Frontmatter) GetFloat(key string) (float64, bool) {
	switch v := f.fields[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}

// GetStringArray returns a string list for key; missing or mistyped values give an empty
// slice.
func (f *Frontmatter) GetStringArray(key string) []string {
	return TagsFromAny(f.fields[key])
}

// Keys returns a copy of the sorted keys.
func (f *Frontmatter) Keys() []string {
	return slices.Clone(f.keys)
}

// MarshalYAML writes the fields in key order with tags as a flow sequence.
func (f *Frontmatter) MarshalYAML() (any, error) {
	node := &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: make([]*yaml.Node, 0, len(f.keys)*2),
	}

	for _, key := range f.keys {
		valueNode := &yaml.Node{}
		if key == "tags" {
			valueNode.Kind = yaml.SequenceNode
			valueNode.Style = yaml.FlowStyle
			for _, tag := range TagsFromAny(f.fields[key]) {
				valueNode.Content = append(valueNode.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: tag})
			}
		} else if err := valueNode.Encode(f.fields[key]); err != nil {
			return nil, err
		}

		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, valueNode)
	}

	return node, nil
}
