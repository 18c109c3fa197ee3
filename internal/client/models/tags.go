package models

import "strings"

// TagSeparator joins tags in the wire form of Review.Tags.
const TagSeparator = ","

// ParseTags splits the wire form into a tag list. The empty string yields an
// empty, non-nil list.
func ParseTags(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, TagSeparator)
}

// JoinTags is the inverse of ParseTags.
func JoinTags(tags []string) string {
	return strings.Join(tags, TagSeparator)
}
