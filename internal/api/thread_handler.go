package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"threadline/backend/internal/interfaces"
)

// ThreadHandler handles the thread and message CRUD endpoints.
type ThreadHandler struct {
	threads interfaces.ThreadService
}

func NewThreadHandler(threads interfaces.ThreadService) *ThreadHandler {
	return &ThreadHandler{threads: threads}
}

// UpdateThreadRequest is the DTO for PATCH /threads/{threadID}.
type UpdateThreadRequest struct {
	Title  *string `json:"title,omitempty" validate:"omitempty,min=1,max=100" example:"My Custom Thread Title"`
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=regular archived"`
}

// CreateMessageRequest is the DTO for POST /threads/{threadID}/messages.
type CreateMessageRequest struct {
	Role    string `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content" validate:"required"`
}

// GetThreads godoc
// @Summary      List threads
// @Description  Lists threads in a status partition, most recently active first.
// @Tags         Threads
// @Produce      json
// @Param        status  query  string  false  "Partition"  Enums(regular, archived)
// @Success      200  {array}   model.Thread
// @Failure      400  {object}  ErrorResponse
// @Router       /v1/threads [get]
func (h *ThreadHandler) GetThreads(w http.ResponseWriter, r *http.Request) {
	threads, err := h.threads.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, threads)
}

// CreateThread godoc
// @Summary      Create a thread
// @Description  Creates an empty thread with default title and status.
// @Tags         Threads
// @Produce      json
// @Success      201  {object}  model.Thread
// @Router       /v1/threads [post]
func (h *ThreadHandler) CreateThread(w http.ResponseWriter, r *http.Request) {
	thread, err := h.threads.Create(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, thread)
}

// GetThread godoc
// @Summary      Get a thread
// @Tags         Threads
// @Produce      json
// @Param        threadID  path  string  true  "Thread ID"
// @Success      200  {object}  model.Thread
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/threads/{threadID} [get]
func (h *ThreadHandler) GetThread(w http.ResponseWriter, r *http.Request) {
	thread, err := h.threads.Get(r.Context(), chi.URLParam(r, "threadID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, thread)
}

// UpdateThread godoc
// @Summary      Rename or archive a thread
// @Description  Applies a rename and/or status change and returns the updated thread.
// @Tags         Threads
// @Accept       json
// @Produce      json
// @Param        threadID  path  string               true  "Thread ID"
// @Param        patch     body  UpdateThreadRequest  true  "Fields to update"
// @Success      200  {object}  model.Thread
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/threads/{threadID} [patch]
func (h *ThreadHandler) UpdateThread(w http.ResponseWriter, r *http.Request) {
	var req UpdateThreadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	thread, err := h.threads.Update(r.Context(), chi.URLParam(r, "threadID"), req.Title, req.Status)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, thread)
}

// DeleteThread godoc
// @Summary      Delete a thread
// @Description  Deletes a thread and, via cascade, all its messages. Idempotent.
// @Tags         Threads
// @Param        threadID  path  string  true  "Thread ID"
// @Success      204
// @Router       /v1/threads/{threadID} [delete]
func (h *ThreadHandler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	if err := h.threads.Delete(r.Context(), chi.URLParam(r, "threadID")); err != nil {
		respondWithError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetMessages godoc
// @Summary      List a thread's messages
// @Description  Returns the thread's messages ordered oldest first.
// @Tags         Messages
// @Produce      json
// @Param        threadID  path  string  true  "Thread ID"
// @Success      200  {array}   model.Message
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/threads/{threadID}/messages [get]
func (h *ThreadHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.threads.Messages(r.Context(), chi.URLParam(r, "threadID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, messages)
}

// CreateMessage godoc
// @Summary      Append a message
// @Description  Appends a message to a thread and bumps the thread's activity timestamp.
// @Tags         Messages
// @Accept       json
// @Produce      json
// @Param        threadID  path  string                true  "Thread ID"
// @Param        message   body  CreateMessageRequest  true  "Message"
// @Success      201  {object}  model.Message
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/threads/{threadID}/messages [post]
func (h *ThreadHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	msg, err := h.threads.AddMessage(r.Context(), chi.URLParam(r, "threadID"), req.Role, req.Content)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, msg)
}
