package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type httpProvider struct {
	client *http.Client
	url    string
}

// NewHTTPProvider returns a CompletionProvider talking to the chat completion
// endpoint at the given base URL.
func NewHTTPProvider(url string) CompletionProvider {
	return &httpProvider{
		client: &http.Client{},
		url:    url,
	}
}

func (p *httpProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	req.Stream = false
	resp, err := p.post(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out CompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("could not decode completion response: %w", err)
	}
	return &out, nil
}

func (p *httpProvider) StreamCompletion(ctx context.Context, req *CompletionRequest) (io.ReadCloser, error) {
	req.Stream = true
	resp, err := p.post(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (p *httpProvider) post(ctx context.Context, req *CompletionRequest) (*http.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url+"/api/chat", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("api returned non-200 status %d: %s", resp.StatusCode, string(bodyBytes))
	}
	return resp, nil
}
