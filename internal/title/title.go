// Package title derives short display titles for threads from their first
// user message, either with local string heuristics or by delegating to the
// completion upstream with a heuristic fallback.
package title

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"threadline/backend/internal/model"
)

// MinLength is the shortest acceptable generated title; anything shorter
// falls back to the default.
const MinLength = 3

// Options control the heuristic transform.
type Options struct {
	// MaxLength caps the title length; 0 means the default of 50.
	MaxLength int
	// KeepStarters disables stripping of leading filler phrases.
	KeepStarters bool
}

func (o Options) maxLength() int {
	if o.MaxLength <= 0 {
		return 50
	}
	return o.MaxLength
}

// Leading filler phrases stripped from the start of a title. Only the first
// matching phrase is removed.
var starters = []string{
	"can you", "could you", "please", "i need", "i want", "how do i",
	"what is", "tell me", "explain", "help me", "show me", "give me",
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	unsafeRe     = regexp.MustCompile(`[^\w\s\-.,!?]`)
)

// FromContent produces a title from plain message text. The result is never
// longer than the configured maximum and never shorter than MinLength; inputs
// that clean down to nothing yield model.DefaultTitle.
func FromContent(content string, opts Options) string {
	max := opts.maxLength()

	title := strings.TrimSpace(content)
	title = whitespaceRe.ReplaceAllString(title, " ")
	title = unsafeRe.ReplaceAllString(title, "")

	if !opts.KeepStarters {
		title = stripStarter(title)
	}

	title = capitalize(title)

	runes := []rune(title)
	if len(runes) > max {
		truncated := runes[:max]
		lastSpace := lastIndexSpace(truncated)
		// A word boundary close to the limit reads better than a hard cut,
		// but one too early would leave a stub.
		if lastSpace > int(float64(max)*0.7) {
			title = string(truncated[:lastSpace]) + "..."
		} else {
			title = string(truncated) + "..."
		}
	}

	if utf8.RuneCountInString(strings.TrimSpace(title)) < MinLength {
		return model.DefaultTitle
	}
	return title
}

// FromMessages produces a title from the first user message in a
// conversation. Fewer than two messages, or no user message, yields the
// default title.
func FromMessages(messages []model.Message, opts Options) string {
	if len(messages) < 2 {
		return model.DefaultTitle
	}
	for _, msg := range messages {
		if msg.Role == model.RoleUser {
			return FromContent(model.TextContent(msg.Content), opts)
		}
	}
	return model.DefaultTitle
}

// ShouldUpdate reports whether a thread is due for a generated title: it is
// still carrying the default title, the first exchange has completed, and at
// least one message came from the user.
func ShouldUpdate(currentTitle string, messages []model.Message) bool {
	if currentTitle != model.DefaultTitle || len(messages) < 2 {
		return false
	}
	for _, msg := range messages {
		if msg.Role == model.RoleUser {
			return true
		}
	}
	return false
}

// stripStarter removes the first matching filler phrase from the front of the
// title. It does not strip repeatedly.
func stripStarter(title string) string {
	lower := strings.ToLower(title)
	for _, starter := range starters {
		if strings.HasPrefix(lower, starter+" ") {
			return title[len(starter)+1:]
		}
	}
	return title
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func lastIndexSpace(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return -1
}
