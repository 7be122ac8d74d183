// Package conversation implements the in-memory view of the current thread
// and its messages, kept consistent with the repository across thread
// switches, archival, deletion, and incremental assistant-response streaming.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "threadline/backend/internal/errors"
	"threadline/backend/internal/llm"
	"threadline/backend/internal/model"
	"threadline/backend/internal/repository"
	"threadline/backend/internal/title"
)

// State is the per-thread send state. All non-send operations leave the
// thread Idle.
type State int

const (
	StateIdle State = iota
	StateSending
	StateStreaming
	StatePersisting
)

// Summary is the thread-list view of a thread.
type Summary struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Status    model.ThreadStatus `json:"status"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// Snapshot is a copy of the engine's in-memory state.
type Snapshot struct {
	ActiveThreadID string          `json:"active_thread_id"`
	Threads        []Summary       `json:"threads"`
	Messages       []model.Message `json:"messages"`
}

// Regular returns the non-archived summaries, most recently updated first.
func (s Snapshot) Regular() []Summary {
	return filterStatus(s.Threads, model.StatusRegular)
}

// Archived returns the archived summaries.
func (s Snapshot) Archived() []Summary {
	return filterStatus(s.Threads, model.StatusArchived)
}

func filterStatus(threads []Summary, status model.ThreadStatus) []Summary {
	var out []Summary
	for _, t := range threads {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// Engine owns the in-memory mirror of at most one thread's messages plus the
// thread summary list. The repository stays authoritative: every reconcile
// point (thread switch, persist completion) re-reads or patches the mirror so
// it never diverges beyond one in-flight operation.
//
// A single consumer is assumed. The mutex serializes snapshot mutation; the
// per-thread state map enforces at most one in-flight completion per thread.
type Engine struct {
	repo     repository.Repository
	provider llm.CompletionProvider
	titles   *title.Generator
	model    string

	mu       sync.Mutex
	active   string
	threads  []Summary
	messages []model.Message
	states   map[string]State
}

func NewEngine(repo repository.Repository, provider llm.CompletionProvider, titles *title.Generator, completionModel string) *Engine {
	return &Engine{
		repo:     repo,
		provider: provider,
		titles:   titles,
		model:    completionModel,
		states:   make(map[string]State),
	}
}

// Load initialises the snapshot: all thread summaries, a fresh thread if no
// regular one exists, and the messages of the most recently updated thread.
func (e *Engine) Load(ctx context.Context) error {
	regular, err := e.repo.ListThreads(ctx, model.StatusRegular)
	if err != nil {
		return fmt.Errorf("could not list threads: %w", err)
	}
	archived, err := e.repo.ListThreads(ctx, model.StatusArchived)
	if err != nil {
		return fmt.Errorf("could not list archived threads: %w", err)
	}

	if len(regular) == 0 {
		created, err := e.repo.CreateThread(ctx, model.NewThread{})
		if err != nil {
			return fmt.Errorf("could not create default thread: %w", err)
		}
		regular = []*model.Thread{created}
	}

	threads := make([]Summary, 0, len(regular)+len(archived))
	for _, t := range append(regular, archived...) {
		threads = append(threads, summarize(t))
	}

	activeID := regular[0].ID
	messages, err := e.repo.GetThreadMessages(ctx, activeID)
	if err != nil {
		return fmt.Errorf("could not load thread messages: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.active = activeID
	e.threads = threads
	e.messages = messages
	return nil
}

// Snapshot returns a copy of the current in-memory state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	snap := Snapshot{
		ActiveThreadID: e.active,
		Threads:        make([]Summary, len(e.threads)),
		Messages:       make([]model.Message, len(e.messages)),
	}
	copy(snap.Threads, e.threads)
	copy(snap.Messages, e.messages)
	return snap
}

// ThreadState reports the send state of a thread.
func (e *Engine) ThreadState(threadID string) State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.states[threadID]
}

// SwitchThread makes the given thread active and fully replaces the
// in-memory message list with a fresh read. No merging with the prior
// thread's messages.
func (e *Engine) SwitchThread(ctx context.Context, threadID string) error {
	if _, err := e.repo.GetThread(ctx, threadID); err != nil {
		return translateRepoErr(err)
	}
	messages, err := e.repo.GetThreadMessages(ctx, threadID)
	if err != nil {
		return fmt.Errorf("could not load thread messages: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.active = threadID
	e.messages = messages
	return nil
}

// NewThread creates a fresh thread, prepends it to the summary list, and
// makes it active with an empty message list.
func (e *Engine) NewThread(ctx context.Context) (*model.Thread, error) {
	created, err := e.repo.CreateThread(ctx, model.NewThread{})
	if err != nil {
		return nil, fmt.Errorf("could not create thread: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.threads = append([]Summary{summarize(created)}, e.threads...)
	e.active = created.ID
	e.messages = nil
	return created, nil
}

// RenameThread patches the in-memory summary optimistically while the
// authoritative write runs against the repository.
func (e *Engine) RenameThread(ctx context.Context, threadID, newTitle string) error {
	e.patchSummary(threadID, func(s *Summary) { s.Title = newTitle })
	if _, err := e.repo.UpdateThread(ctx, threadID, model.ThreadPatch{Title: &newTitle}); err != nil {
		e.resyncSummary(ctx, threadID)
		return translateRepoErr(err)
	}
	return nil
}

// ArchiveThread moves a thread to the archived partition.
func (e *Engine) ArchiveThread(ctx context.Context, threadID string) error {
	return e.setStatus(ctx, threadID, model.StatusArchived)
}

// UnarchiveThread moves a thread back to the regular partition.
func (e *Engine) UnarchiveThread(ctx context.Context, threadID string) error {
	return e.setStatus(ctx, threadID, model.StatusRegular)
}

func (e *Engine) setStatus(ctx context.Context, threadID string, status model.ThreadStatus) error {
	e.patchSummary(threadID, func(s *Summary) { s.Status = status })
	if _, err := e.repo.UpdateThread(ctx, threadID, model.ThreadPatch{Status: &status}); err != nil {
		e.resyncSummary(ctx, threadID)
		return translateRepoErr(err)
	}
	return nil
}

// DeleteThread removes a thread. Deleting the active thread switches to the
// most recently updated remaining regular thread, or creates a fresh one if
// none remain. Deleting a non-active thread only drops its summary.
func (e *Engine) DeleteThread(ctx context.Context, threadID string) error {
	if err := e.repo.DeleteThread(ctx, threadID); err != nil {
		return fmt.Errorf("could not delete thread: %w", err)
	}

	e.mu.Lock()
	wasActive := e.active == threadID
	remaining := e.threads[:0:0]
	for _, t := range e.threads {
		if t.ID != threadID {
			remaining = append(remaining, t)
		}
	}
	e.threads = remaining
	delete(e.states, threadID)

	var next string
	if wasActive {
		for _, t := range e.threads {
			if t.Status == model.StatusRegular {
				next = t.ID
				break
			}
		}
		e.active = ""
		e.messages = nil
	}
	e.mu.Unlock()

	if !wasActive {
		return nil
	}
	if next != "" {
		return e.SwitchThread(ctx, next)
	}
	_, err := e.NewThread(ctx)
	return err
}

// Send appends a user message to the given thread, streams the assistant
// response into a single synthetic message, and persists the accumulated text
// once the stream completes. An empty threadID targets the active thread. On
// the thread's first exchange a title is generated and persisted; title
// failure leaves the previous title.
//
// At most one send may be in flight per thread; a second attempt is rejected
// with ErrBusy. Only the active thread's mirror is updated while streaming;
// sends addressed to another thread persist normally but render nothing.
// onDelta, if non-nil, is invoked for every incremental text chunk.
func (e *Engine) Send(ctx context.Context, threadID, content string, onDelta func(delta string)) (*model.Message, error) {
	e.mu.Lock()
	if threadID == "" {
		threadID = e.active
	}
	if threadID == "" {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: no active thread", apperrors.ErrNotFound)
	}
	if e.states[threadID] != StateIdle {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: thread %s", apperrors.ErrBusy, threadID)
	}
	e.states[threadID] = StateSending
	mirrored := e.active == threadID
	var history []llm.Message
	if mirrored {
		history = make([]llm.Message, 0, len(e.messages)+1)
		for _, m := range e.messages {
			history = append(history, llm.Message{Role: m.Role, Content: model.TextContent(m.Content)})
		}
	}
	e.mu.Unlock()

	defer e.setState(threadID, StateIdle)

	if !mirrored {
		stored, err := e.repo.GetThreadMessages(ctx, threadID)
		if err != nil {
			return nil, fmt.Errorf("could not load thread messages: %w", err)
		}
		history = make([]llm.Message, 0, len(stored)+1)
		for _, m := range stored {
			history = append(history, llm.Message{Role: m.Role, Content: model.TextContent(m.Content)})
		}
	}
	priorCount := len(history)

	userMsg, err := e.repo.CreateMessage(ctx, model.NewMessage{
		ThreadID: threadID,
		Role:     model.RoleUser,
		Content:  content,
	})
	if err != nil {
		return nil, translateRepoErr(err)
	}
	e.appendMessage(threadID, *userMsg)
	history = append(history, llm.Message{Role: model.RoleUser, Content: content})

	stream, err := e.provider.StreamCompletion(ctx, &llm.CompletionRequest{
		Model:    e.model,
		Messages: history,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
	}
	defer stream.Close()

	e.setState(threadID, StateStreaming)

	var decoder llm.FrameDecoder
	var accumulated strings.Builder
	var syntheticID string

	apply := func(lines []string) {
		for _, line := range lines {
			delta, ok := llm.TextDelta(line)
			if !ok {
				continue
			}
			accumulated.WriteString(delta)
			syntheticID = e.applyDelta(threadID, syntheticID, accumulated.String())
			if onDelta != nil {
				onDelta(delta)
			}
		}
	}

	buf := make([]byte, 4096)
	for {
		n, readErr := stream.Read(buf)
		if n > 0 {
			apply(decoder.Feed(buf[:n]))
		}
		if readErr == io.EOF {
			apply(decoder.Flush())
			break
		}
		if readErr != nil {
			if ctx.Err() != nil {
				// Abandoned mid-stream: the unpersisted partial response is
				// discarded, never partially written.
				e.removeMessage(threadID, syntheticID)
				return nil, ctx.Err()
			}
			// Already-rendered partial output stays in the snapshot; it is
			// not persisted.
			return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstream, readErr)
		}
	}

	full := accumulated.String()
	if full == "" {
		return nil, fmt.Errorf("%w: empty completion", apperrors.ErrUpstream)
	}

	e.setState(threadID, StatePersisting)

	persisted, err := e.repo.CreateMessage(ctx, model.NewMessage{
		ThreadID: threadID,
		Role:     model.RoleAssistant,
		Content:  full,
	})
	if err != nil {
		return nil, translateRepoErr(err)
	}
	e.replaceMessage(threadID, syntheticID, *persisted)
	e.touchSummary(threadID, persisted.CreatedAt)

	// First round-trip names the thread.
	if priorCount <= 1 {
		e.maybeGenerateTitle(ctx, threadID, content, full)
	}

	return persisted, nil
}

func (e *Engine) maybeGenerateTitle(ctx context.Context, threadID, userText, assistantText string) {
	thread, err := e.repo.GetThread(ctx, threadID)
	if err != nil {
		slog.Warn("Could not read thread for title generation", "thread_id", threadID, "error", err)
		return
	}
	pair := []model.Message{
		{Role: model.RoleUser, Content: userText},
		{Role: model.RoleAssistant, Content: assistantText},
	}
	if !title.ShouldUpdate(thread.Title, pair) {
		return
	}
	generated := e.titles.Generate(ctx, pair)
	if generated == "" || generated == model.DefaultTitle {
		return
	}
	if _, err := e.repo.UpdateThread(ctx, threadID, model.ThreadPatch{Title: &generated}); err != nil {
		slog.Warn("Could not persist generated title", "thread_id", threadID, "error", err)
		return
	}
	e.patchSummary(threadID, func(s *Summary) { s.Title = generated })
}

func (e *Engine) setState(threadID string, state State) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if state == StateIdle {
		delete(e.states, threadID)
		return
	}
	e.states[threadID] = state
}

// appendMessage adds a message to the mirror when its thread is still active.
func (e *Engine) appendMessage(threadID string, msg model.Message) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active != threadID {
		return
	}
	e.messages = append(e.messages, msg)
}

// applyDelta updates the synthetic assistant message at the tail of the list,
// creating it on the first chunk. One response never yields a second
// assistant message.
func (e *Engine) applyDelta(threadID, syntheticID, accumulated string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active != threadID {
		return syntheticID
	}
	if syntheticID != "" {
		for i := range e.messages {
			if e.messages[i].ID == syntheticID {
				e.messages[i].Content = accumulated
				return syntheticID
			}
		}
	}
	synthetic := model.Message{
		ID:        uuid.NewString(),
		ThreadID:  threadID,
		Role:      model.RoleAssistant,
		Content:   accumulated,
		CreatedAt: time.Now().UTC(),
	}
	e.messages = append(e.messages, synthetic)
	return synthetic.ID
}

func (e *Engine) removeMessage(threadID, id string) {
	if id == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active != threadID {
		return
	}
	for i := range e.messages {
		if e.messages[i].ID == id {
			e.messages = append(e.messages[:i], e.messages[i+1:]...)
			return
		}
	}
}

// replaceMessage swaps the synthetic streaming message for the persisted row.
func (e *Engine) replaceMessage(threadID, syntheticID string, persisted model.Message) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active != threadID {
		return
	}
	for i := range e.messages {
		if e.messages[i].ID == syntheticID {
			e.messages[i] = persisted
			return
		}
	}
	e.messages = append(e.messages, persisted)
}

func (e *Engine) patchSummary(threadID string, patch func(*Summary)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.threads {
		if e.threads[i].ID == threadID {
			patch(&e.threads[i])
			return
		}
	}
}

// touchSummary refreshes a thread's activity timestamp and moves it to the
// front of the list, mirroring the repository's updated_at ordering.
func (e *Engine) touchSummary(threadID string, at time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.threads {
		if e.threads[i].ID == threadID {
			s := e.threads[i]
			s.UpdatedAt = at
			e.threads = append(e.threads[:i], e.threads[i+1:]...)
			e.threads = append([]Summary{s}, e.threads...)
			return
		}
	}
}

func (e *Engine) resyncSummary(ctx context.Context, threadID string) {
	thread, err := e.repo.GetThread(ctx, threadID)
	if err != nil {
		return
	}
	e.patchSummary(threadID, func(s *Summary) {
		s.Title = thread.Title
		s.Status = thread.Status
		s.UpdatedAt = thread.UpdatedAt
	})
}

func summarize(t *model.Thread) Summary {
	return Summary{ID: t.ID, Title: t.Title, Status: t.Status, UpdatedAt: t.UpdatedAt}
}

func translateRepoErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrThreadNotFound):
		return fmt.Errorf("%w: %v", apperrors.ErrNotFound, err)
	default:
		return err
	}
}
