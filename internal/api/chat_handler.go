package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"threadline/backend/internal/interfaces"
	"threadline/backend/internal/model"
)

// ChatHandler handles the streaming send endpoint and title generation.
type ChatHandler struct {
	engine interfaces.ConversationEngine
	titles interfaces.TitleGenerator
}

func NewChatHandler(engine interfaces.ConversationEngine, titles interfaces.TitleGenerator) *ChatHandler {
	return &ChatHandler{engine: engine, titles: titles}
}

// SendMessageRequest is the DTO for POST /threads/{threadID}/send.
type SendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// MessagePayload is one conversation turn in a title generation request.
type MessagePayload struct {
	Role    string `json:"role" validate:"required"`
	Content string `json:"content"`
}

// GenerateTitleRequest is the DTO for POST /generate-title.
type GenerateTitleRequest struct {
	Messages []MessagePayload `json:"messages" validate:"required,min=1,dive"`
}

// StreamChunk is one SSE data event of the send stream.
type StreamChunk struct {
	Content string `json:"content,omitempty"`
	Done    bool   `json:"done,omitempty"`
}

// SendMessage godoc
// @Summary      Send a message and stream the response
// @Description  Appends a user message, streams the assistant response as SSE data events, and persists it on completion.
// @Tags         Chat
// @Accept       json
// @Produce      text/event-stream
// @Param        threadID  path  string              true  "Thread ID"
// @Param        message   body  SendMessageRequest  true  "User message"
// @Success      200  {object}  StreamChunk
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /v1/threads/{threadID}/send [post]
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	threadID := chi.URLParam(r, "threadID")
	if err := h.engine.SwitchThread(r.Context(), threadID); err != nil {
		respondWithError(w, err)
		return
	}

	// Headers are deferred until the first event so pre-stream failures
	// (busy thread, dead upstream) can still carry a proper status code.
	started := false
	start := func() {
		if started {
			return
		}
		started = true
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
	}

	_, err := h.engine.Send(r.Context(), threadID, req.Content, func(delta string) {
		start()
		if err := writeStreamEvent(w, StreamChunk{Content: delta}); err != nil {
			slog.Warn("Client disconnected during stream", "error", err)
		}
	})
	if err != nil {
		if !started {
			respondWithError(w, err)
			return
		}
		sendStreamError(w, "Response generation failed.")
		return
	}

	start()
	if err := writeStreamEvent(w, StreamChunk{Done: true}); err != nil {
		slog.Warn("Failed to write final stream event", "error", err)
	}
}

// GenerateTitle godoc
// @Summary      Generate a thread title
// @Description  Derives a short display title from the conversation's first user message. Falls back to a heuristic when the upstream is unavailable.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        messages  body  GenerateTitleRequest  true  "Conversation messages"
// @Success      200  {object}  TitleResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /v1/generate-title [post]
func (h *ChatHandler) GenerateTitle(w http.ResponseWriter, r *http.Request) {
	var req GenerateTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	messages := make([]model.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, model.Message{Role: m.Role, Content: m.Content})
	}

	respondWithJSON(w, http.StatusOK, TitleResponse{Title: h.titles.Generate(r.Context(), messages)})
}
