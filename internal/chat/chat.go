package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"pdf-chat/internal/api"
	"pdf-chat/internal/logger"
)

const logModule = "chat"

// Backend is the remote question-answering service
type Backend interface {
	Upload(ctx context.Context, paths []string) (string, error)
	Ask(ctx context.Context, sessionID, question string) (*api.AskResponse, error)
	Reset(ctx context.Context, sessionID string) error
	HealthCheck(ctx context.Context) error
}

// Chat owns the active session and drives the upload, ask and reset
// workflows, rendering every outcome through the View.
type Chat struct {
	backend    Backend
	view       View
	log        logger.Logger
	transcript *Transcript

	mu        sync.Mutex
	session   *Session
	uploading bool
	asking    bool
}

// New creates a chat with no active session
func New(backend Backend, view View, log logger.Logger) *Chat {
	if log == nil {
		log = logger.NewNop()
	}
	return &Chat{
		backend:    backend,
		view:       view,
		log:        log,
		transcript: NewTranscript(),
	}
}

// Session returns the active session, if any
func (c *Chat) Session() (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// Transcript returns the chat transcript
func (c *Chat) Transcript() *Transcript {
	return c.transcript
}

// Upload indexes the given files and, on success, makes the returned
// session the active one. Failures are shown in the status area and leave
// the current session untouched.
func (c *Chat) Upload(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		c.view.SetStatus(MsgChooseFiles)
		return ErrNoFiles
	}

	c.mu.Lock()
	if c.uploading {
		c.mu.Unlock()
		return ErrBusy
	}
	c.uploading = true
	c.mu.Unlock()

	c.view.SetStatus(MsgIndexing)
	c.view.SetUploadEnabled(false)
	defer func() {
		c.mu.Lock()
		c.uploading = false
		c.mu.Unlock()
		c.view.SetUploadEnabled(true)
	}()

	c.log.Info(logModule, "uploading files", map[string]interface{}{"count": len(paths)})

	sessionID, err := c.backend.Upload(ctx, paths)
	if err != nil {
		c.log.Error(logModule, "upload failed", map[string]interface{}{"error": err})
		c.view.SetStatus(errorPrefix + err.Error())
		return err
	}

	c.mu.Lock()
	c.session = &Session{ID: sessionID, StartedAt: time.Now()}
	c.mu.Unlock()

	c.log.Info(logModule, "session started", map[string]interface{}{"session_id": sessionID})
	c.view.SetStatus(MsgIndexed)
	c.post(RoleBot, MsgWelcome)
	return nil
}

// Ask sends a question in the active session. The question is echoed to
// the transcript before the request goes out, so it always precedes the
// answer or error.
func (c *Chat) Ask(ctx context.Context, input string) error {
	question := strings.TrimSpace(input)
	if question == "" {
		return ErrEmptyQuestion
	}

	c.mu.Lock()
	if c.session == nil {
		c.mu.Unlock()
		c.post(RoleBot, MsgUploadFirst)
		return ErrNoSession
	}
	if c.asking {
		c.mu.Unlock()
		return ErrBusy
	}
	c.asking = true
	sessionID := c.session.ID
	c.mu.Unlock()

	c.post(RoleUser, question)
	c.view.SetAskEnabled(false)
	defer func() {
		c.mu.Lock()
		c.asking = false
		c.mu.Unlock()
		c.view.SetAskEnabled(true)
	}()

	resp, err := c.backend.Ask(ctx, sessionID, question)
	if err != nil {
		c.log.Error(logModule, "ask failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err,
		})
		c.post(RoleBot, errorPrefix+err.Error())
		return err
	}

	answer := resp.Answer
	if answer == "" {
		answer = MsgNoAnswer
	}
	c.post(RoleBot, answer)

	if citations := FormatSources(resp.Sources); citations != "" {
		c.post(RoleSource, citations)
	}

	c.log.Debug(logModule, "answer received", map[string]interface{}{
		"session_id": sessionID,
		"sources":    len(resp.Sources),
	})
	return nil
}

// Reset clears the server-side history of the active session. It is a
// no-op without a session. Transport errors are logged, never shown.
// The local transcript and the session itself are kept.
func (c *Chat) Reset(ctx context.Context) error {
	c.mu.Lock()
	if c.session == nil {
		c.mu.Unlock()
		return nil
	}
	sessionID := c.session.ID
	c.mu.Unlock()

	if err := c.backend.Reset(ctx, sessionID); err != nil {
		c.log.Error(logModule, "reset failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err,
		})
		return nil
	}

	c.log.Info(logModule, "session history cleared", map[string]interface{}{"session_id": sessionID})
	c.post(RoleBot, MsgHistoryCleared)
	return nil
}

// StatusReport is a point-in-time summary for the status command
type StatusReport struct {
	SessionID string
	StartedAt time.Time
	Active    bool
	Stats     Stats
	HealthErr error
}

// ShortSessionID returns the first 8 characters of the session id
func (r StatusReport) ShortSessionID() string {
	runes := []rune(r.SessionID)
	if len(runes) <= 8 {
		return r.SessionID
	}
	return string(runes[:8])
}

// Status reports the session, transcript metrics and backend health
func (c *Chat) Status(ctx context.Context) StatusReport {
	report := StatusReport{Stats: c.transcript.Stats()}
	if s, ok := c.Session(); ok {
		report.SessionID = s.ID
		report.StartedAt = s.StartedAt
		report.Active = true
	}
	report.HealthErr = c.backend.HealthCheck(ctx)
	return report
}

// post appends to the transcript and renders the entry
func (c *Chat) post(role Role, text string) {
	msg := c.transcript.Append(role, text)
	if role == RoleSource {
		c.view.AppendSources(msg)
		return
	}
	c.view.AppendMessage(msg)
}
