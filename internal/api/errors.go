package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Error is returned for any non-success HTTP response from the backend.
type Error struct {
	StatusCode int
	Message    string
}

// Error returns the backend message so it can be shown to the user as is.
func (e *Error) Error() string {
	return e.Message
}

// maxErrorText bounds messages extracted from non-JSON bodies.
const maxErrorText = 200

// newError builds an *Error from a response body. The JSON "error" field is
// preferred; HTML bodies (proxy error pages) are reduced to their visible
// text; otherwise fallback is used.
func newError(status int, body []byte, fallback string) *Error {
	e := &Error{StatusCode: status, Message: fallback}

	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil {
		if er.Error != "" {
			e.Message = er.Error
		}
		return e
	}

	if looksLikeHTML(body) {
		if text := extractText(body); text != "" {
			e.Message = truncate(text, maxErrorText)
		}
	}
	return e
}

func looksLikeHTML(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && trimmed[0] == '<'
}

// extractText returns the visible text of an HTML document, skipping
// script and style elements.
func extractText(body []byte) string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "head") {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(sb.String()), " ")
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// statusText formats a status for log lines.
func statusText(code int) string {
	return fmt.Sprintf("HTTP %d", code)
}
