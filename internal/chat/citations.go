package chat

import (
	"strconv"
	"strings"

	"pdf-chat/internal/api"
)

const (
	sourcesPrefix     = "Sources: "
	sourcesSeparator  = " • "
	unnamedSourceName = "PDF"
)

// FormatSources renders citations as a single line, e.g.
// "Sources: policy.pdf p.3 • terms.pdf". It returns "" for no sources.
func FormatSources(sources []api.Source) string {
	if len(sources) == 0 {
		return ""
	}

	parts := make([]string, 0, len(sources))
	for _, s := range sources {
		parts = append(parts, formatCitation(s))
	}
	return sourcesPrefix + strings.Join(parts, sourcesSeparator)
}

// formatCitation uses the last path segment of the source as the name.
// Page 0 is a real page and is rendered.
func formatCitation(s api.Source) string {
	name := unnamedSourceName
	if s.Source != nil && *s.Source != "" {
		src := *s.Source
		name = src[strings.LastIndex(src, "/")+1:]
	}

	if s.Page != nil {
		return name + " p." + strconv.Itoa(*s.Page)
	}
	return name
}
