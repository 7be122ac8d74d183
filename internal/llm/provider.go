package llm

import (
	"context"
	"io"
)

// Message is one turn sent to the completion upstream.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the payload for both blocking and streaming calls.
type CompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Stream      bool      `json:"stream"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// CompletionResponse is the result of a blocking completion call.
type CompletionResponse struct {
	Text string `json:"text"`
}

// CompletionProvider is the contract for the text-completion upstream. The
// streaming variant returns the raw body; callers decode it incrementally
// with a FrameDecoder and must close it.
type CompletionProvider interface {
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)
	StreamCompletion(ctx context.Context, req *CompletionRequest) (io.ReadCloser, error)
}
