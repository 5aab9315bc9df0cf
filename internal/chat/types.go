package chat

import (
	"errors"
	"time"
)

var (
	// ErrNoFiles is returned by Upload when no files were selected.
	ErrNoFiles = errors.New("no files selected")

	// ErrNoSession is returned when asking before any upload succeeded.
	ErrNoSession = errors.New("no active session")

	// ErrEmptyQuestion is returned by Ask for blank input.
	ErrEmptyQuestion = errors.New("empty question")

	// ErrBusy is returned when the same workflow is already in flight.
	ErrBusy = errors.New("request already in flight")
)

// User-facing texts
const (
	MsgChooseFiles    = "Please choose at least one PDF."
	MsgIndexing       = "Indexing PDFs..."
	MsgIndexed        = "Indexed ✔ Ready to chat."
	MsgWelcome        = "Your PDFs are indexed. Ask me anything about them!"
	MsgUploadFirst    = "Please upload PDFs first."
	MsgNoAnswer       = "(no answer)"
	MsgHistoryCleared = "Chat history cleared for this session."
	errorPrefix       = "Error: "
)

// Role tags a transcript entry
type Role string

const (
	RoleUser   Role = "user"
	RoleBot    Role = "bot"
	RoleSource Role = "source"
)

// Message represents a single transcript entry. Messages are never
// mutated once appended.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is the server-issued handle that scopes asks and resets.
type Session struct {
	ID        string
	StartedAt time.Time
}

// Stats summarizes the transcript
type Stats struct {
	Total     int
	Questions int
	Responses int
}

// View is what the chat workflows render through. Implementations must
// keep the newest entry visible after every append.
type View interface {
	AppendMessage(msg Message)
	AppendSources(msg Message)
	SetStatus(text string)
	SetUploadEnabled(enabled bool)
	SetAskEnabled(enabled bool)
}
