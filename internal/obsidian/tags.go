package obsidian

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	hyphenRun     = regexp.MustCompile(`-+`)
	slashRun      = regexp.MustCompile(`/+`)
	invalidTagRun = regexp.MustCompile(`[^\p{L}\p{N}_/-]+`)
)

// NormalizeTag turns free text into an Obsidian tag. Case is preserved, & becomes "and",
// whitespace becomes hyphens and anything other than letters, digits, "_", "-" and "/" is
// dropped. "/" is kept for nested tags.
func NormalizeTag(tag string) string {
	tag = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
	if tag == "" {
		return ""
	}

	tag = strings.ReplaceAll(tag, "&", "and")
	tag = strings.ReplaceAll(tag, "#", "")
	tag = whitespaceRun.ReplaceAllString(tag, "-")
	tag = invalidTagRun.ReplaceAllString(tag, "")
	tag = hyphenRun.ReplaceAllString(tag, "-")
	tag = strings.ReplaceAll(tag, "-/", "/")
	tag = strings.ReplaceAll(tag, "/-", "/")
	tag = slashRun.ReplaceAllString(tag, "/")

	return strings.Trim(tag, "-/")
}

// TagValue prepares a free-text value for use under a tag prefix such as "genre/", so a
// slash inside the value does not start another nesting level.
func TagValue(value string) string {
	return strings.ReplaceAll(value, "/", "-")
}

// TagSet collects normalized, deduplicated tags.
type TagSet struct {
	tags map[string]struct{}
}

// NewTagSet creates an empty TagSet.
func NewTagSet() *TagSet {
	return &TagSet{tags: make(map[string]struct{})}
}

// Add normalizes and adds tag; empty results are ignored.
func (ts *TagSet) Add(tag string) {
	if normalized := NormalizeTag(tag); normalized != "" {
		ts.tags[normalized] = struct{}{}
	}
}

// AddFormat adds a formatted tag.
func (ts *TagSet) AddFormat(format string, args ...any) {
	ts.Add(fmt.Sprintf(format, args...))
}

// AddIf adds tag when condition holds.
func (ts *TagSet) AddIf(condition bool, tag string) {
	if condition {
		ts.Add(tag)
	}
}

// GetSorted returns the tags in sorted order.
func (ts *TagSet) GetSorted() []string {
	result := make([]string, 0, len(ts.tags))
	for tag := range ts.tags {
		result = append(result, tag)
	}
	sort.Strings(result)
	return result
}

// DecadeTag returns the year/<decade> tag for a release year.
func DecadeTag(year int) string {
	if year < 1970 {
		return "year/pre-1970s"
	}
	return fmt.Sprintf("year/%ds", year/10*10)
}

// TagsFromAny extracts a string slice from a decoded YAML value.
func TagsFromAny(val any) []string {
	switch v := val.(type) {
	case []string:
		result := make([]string, 0, len(v))
		for _, s := range v {
			if s != "" {
				result = append(result, s)
			}
		}
		return result
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				result = append(result, s)
			}
		}
		return result
	}
	return []string{}
}
