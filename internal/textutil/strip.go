package textutil

import (
	"html"
	"regexp"
	"strings"
)

var (
	mediaPattern = regexp.MustCompile(`(?i)<img[^>]*?src=["']?([^"'>\s]+)["']?[^>]*>`)
	tagPattern   = regexp.MustCompile(`(?s)<[^>]*>`)
)

// StripHTML removes markup from s, keeping image file names, and decodes
// entities. Used for note checksums.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	s = mediaPattern.ReplaceAllString(s, " ${1} ")
	s = tagPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(html.UnescapeString(s))
}
