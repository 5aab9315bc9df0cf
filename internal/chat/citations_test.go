package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"pdf-chat/internal/api"
)

func TestFormatSources(t *testing.T) {
	tests := []struct {
		name    string
		sources []api.Source
		want    string
	}{
		{
			name: "none",
			want: "",
		},
		{
			name:    "path and page",
			sources: []api.Source{{Source: strPtr("docs/policy.pdf"), Page: intPtr(3)}},
			want:    "Sources: policy.pdf p.3",
		},
		{
			name:    "page zero is rendered",
			sources: []api.Source{{Source: strPtr("a.pdf"), Page: intPtr(0)}},
			want:    "Sources: a.pdf p.0",
		},
		{
			name:    "missing source",
			sources: []api.Source{{Page: intPtr(2)}},
			want:    "Sources: PDF p.2",
		},
		{
			name:    "empty source",
			sources: []api.Source{{Source: strPtr("")}},
			want:    "Sources: PDF",
		},
		{
			name:    "missing page",
			sources: []api.Source{{Source: strPtr("/var/tmp/tmpab12.pdf")}},
			want:    "Sources: tmpab12.pdf",
		},
		{
			name: "joined with bullets",
			sources: []api.Source{
				{Source: strPtr("x/one.pdf"), Page: intPtr(1)},
				{Source: strPtr("two.pdf"), Page: intPtr(12)},
			},
			want: "Sources: one.pdf p.1 • two.pdf p.12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSources(tt.sources))
		})
	}
}

func TestFormatSources_FragmentCount(t *testing.T) {
	for n := 1; n <= 6; n++ {
		sources := make([]api.Source, n)
		for i := range sources {
			sources[i] = api.Source{Source: strPtr("f.pdf"), Page: intPtr(i)}
		}
		out := strings.TrimPrefix(FormatSources(sources), "Sources: ")
		assert.Len(t, strings.Split(out, " • "), n)
	}
}
