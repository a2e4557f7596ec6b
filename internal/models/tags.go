package models

import "strings"

// TagDelimiter separates labels inside the stored tags field
const TagDelimiter = ","

// SplitTags splits a raw tags field into trimmed, non-empty labels
func SplitTags(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, TagDelimiter) {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// NormalizeTags rewrites user input like " a,,b " as "a, b"
func NormalizeTags(raw string) string {
	return strings.Join(SplitTags(raw), TagDelimiter+" ")
}
