package model

import (
	"encoding/json"
	"time"
)

// ThreadStatus partitions the thread list into the regular and archived views.
type ThreadStatus string

const (
	StatusRegular  ThreadStatus = "regular"
	StatusArchived ThreadStatus = "archived"
)

// DefaultTitle is the placeholder title a thread carries until it is named,
// either manually or by the title generator.
const DefaultTitle = "New Chat"

// Roles a message can be authored by.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Thread is a conversation container.
type Thread struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Status    ThreadStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// NewThread carries the optional fields for thread creation. Zero values
// fall back to the defaults (DefaultTitle, StatusRegular).
type NewThread struct {
	Title  string
	Status ThreadStatus
}

// ThreadPatch is a partial update. Nil fields are left untouched;
// updated_at is refreshed on every applied patch.
type ThreadPatch struct {
	Title  *string
	Status *ThreadStatus
}

// Message is one turn in a thread. Content is either a plain string or a
// JSON-encoded array of content parts; it is stored as text either way.
type Message struct {
	ID        string    `json:"id"`
	ThreadID  string    `json:"thread_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMessage carries the fields for message creation.
type NewMessage struct {
	ThreadID string
	Role     string
	Content  string
}

// ContentPart is one typed segment of a structured message payload.
type ContentPart struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// TextContent extracts the plain text from a message content value. Structured
// content (a JSON array of parts) yields the text parts concatenated without a
// separator, matching how streamed deltas are assembled; anything else is
// returned as-is.
func TextContent(raw string) string {
	var parts []ContentPart
	if err := json.Unmarshal([]byte(raw), &parts); err != nil {
		return raw
	}
	var out string
	for _, p := range parts {
		if p.Type == "text" {
			out += p.Text
		}
	}
	return out
}
