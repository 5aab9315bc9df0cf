package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Transcript is the ordered, append-only list of displayed messages.
// It lives in memory only.
type Transcript struct {
	mu       sync.RWMutex
	messages []Message
}

// NewTranscript creates an empty transcript
func NewTranscript() *Transcript {
	return &Transcript{messages: []Message{}}
}

// Append adds a new message and returns it with ID and timestamp filled in
func (t *Transcript) Append(role Role, text string) Message {
	msg := Message{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	}

	t.mu.Lock()
	t.messages = append(t.messages, msg)
	t.mu.Unlock()

	return msg
}

// Messages returns a copy of every message in order
func (t *Transcript) Messages() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Recent returns the last N messages
func (t *Transcript) Recent(limit int) []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if limit <= 0 {
		return []Message{}
	}
	start := 0
	if len(t.messages) > limit {
		start = len(t.messages) - limit
	}

	out := make([]Message, len(t.messages)-start)
	copy(out, t.messages[start:])
	return out
}

// Len returns the number of messages
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

// Stats counts user questions and bot responses. Source entries count
// towards the total only.
func (t *Transcript) Stats() Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := Stats{Total: len(t.messages)}
	for _, m := range t.messages {
		switch m.Role {
		case RoleUser:
			s.Questions++
		case RoleBot:
			s.Responses++
		}
	}
	return s
}
