package llm

import (
	"bytes"
	"encoding/json"

	"threadline/backend/internal/model"
)

// The streaming endpoint emits line-delimited frames, each tagged with a
// one-character-plus-colon prefix. Tag '0' carries a JSON payload with
// incremental text content. Unknown or malformed frames are skipped, never
// fatal: a transport chunk boundary may split a frame, so the decoder holds
// back the trailing incomplete line until the next read completes it.

// FrameDecoder is an incremental line-buffering decoder for the completion
// stream. Feed it raw chunks; it yields complete frame lines.
type FrameDecoder struct {
	buf []byte
}

// Feed appends a chunk and returns all frame lines completed by it.
func (d *FrameDecoder) Feed(chunk []byte) []string {
	d.buf = append(d.buf, chunk...)

	var lines []string
	for {
		i := bytes.IndexByte(d.buf, '\n')
		if i < 0 {
			break
		}
		line := string(bytes.TrimRight(d.buf[:i], "\r"))
		d.buf = d.buf[i+1:]
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Flush returns the final buffered line once the transport has closed. A
// stream that ends without a trailing newline still delivers its last frame.
func (d *FrameDecoder) Flush() []string {
	if len(d.buf) == 0 {
		return nil
	}
	line := string(bytes.TrimRight(d.buf, "\r"))
	d.buf = nil
	if line == "" {
		return nil
	}
	return []string{line}
}

type textDeltaPayload struct {
	Content []model.ContentPart `json:"content"`
}

// TextDelta extracts the incremental text from a frame line. It returns false
// for frames with other tags or payloads that do not parse.
func TextDelta(line string) (string, bool) {
	if len(line) < 2 || line[0] != '0' || line[1] != ':' {
		return "", false
	}
	var payload textDeltaPayload
	if err := json.Unmarshal([]byte(line[2:]), &payload); err != nil {
		return "", false
	}
	var text string
	for _, part := range payload.Content {
		if part.Type == "" || part.Type == "text" {
			text += part.Text
		}
	}
	if text == "" {
		return "", false
	}
	return text, true
}
