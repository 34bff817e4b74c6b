package notify

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SafeFilename derives the scratch filename for an enclosure download from
// the episode title: every character outside [A-Za-z0-9._-] becomes an
// underscore and the extension comes from the enclosure URL's path.
func SafeFilename(title, enclosureURL string) string {
	name := unsafeFilenameChars.ReplaceAllString(title, "_")
	if name == "" {
		name = "episode"
	}

	ext := enclosureExtension(enclosureURL)
	if ext == "" || strings.HasSuffix(strings.ToLower(name), "."+ext) {
		return name
	}
	return name + "." + ext
}

func enclosureExtension(enclosureURL string) string {
	parsed, err := url.Parse(enclosureURL)
	if err != nil {
		return strings.ToLower(strings.TrimPrefix(path.Ext(enclosureURL), "."))
	}
	p := parsed.Path
	if p == "" {
		p = enclosureURL
	}
	return strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
}
