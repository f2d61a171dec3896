package resolver

import (
	"path/filepath"
	"sort"
)

// FallbackContentType is used for extensions missing from the table.
const FallbackContentType = "text/plain"

// contentTypes is the fixed extension table. Lookups are exact and
// case-sensitive on the final extension.
var contentTypes = map[string]string{
	".html": "text/html",
	".json": "application/json",
	".js":   "text/javascript",
	".css":  "text/css",
}

// ContentTypeFor returns the MIME type for the extension of name.
func ContentTypeFor(name string) string {
	if ct, ok := contentTypes[filepath.Ext(name)]; ok {
		return ct
	}
	return FallbackContentType
}

// ContentTypeEntry is one row of the extension table.
type ContentTypeEntry struct {
	Extension   string `json:"extension" yaml:"extension" toml:"extension"`
	ContentType string `json:"content_type" yaml:"content_type" toml:"content_type"`
}

// ContentTypes returns a copy of the table sorted by extension.
func ContentTypes() []ContentTypeEntry {
	out := make([]ContentTypeEntry, 0, len(contentTypes))
	for ext, ct := range contentTypes {
		out = append(out, ContentTypeEntry{Extension: ext, ContentType: ct})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Extension < out[j].Extension })
	return out
}
