package api

// UploadResponse is the body returned by POST /upload
type UploadResponse struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message,omitempty"`
}

// AskRequest is the body sent to POST /ask
type AskRequest struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
}

// AskResponse is the body returned by POST /ask
type AskResponse struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// Source is a single citation attached to an answer. Both fields are
// optional on the wire and may be null.
type Source struct {
	Source  *string `json:"source,omitempty"`
	Page    *int    `json:"page,omitempty"`
	Snippet string  `json:"snippet,omitempty"`
}

// ResetRequest is the body sent to POST /reset
type ResetRequest struct {
	SessionID string `json:"session_id"`
}

// HealthResponse is the body returned by GET /health
type HealthResponse struct {
	Status string `json:"status"`
}

// errorResponse is the body of any non-success response
type errorResponse struct {
	Error string `json:"error"`
}
