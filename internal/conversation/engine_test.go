package conversation_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"threadline/backend/internal/conversation"
	apperrors "threadline/backend/internal/errors"
	"threadline/backend/internal/llm"
	mock_llm "threadline/backend/internal/llm/mocks"
	"threadline/backend/internal/model"
	"threadline/backend/internal/repository"
	"threadline/backend/internal/repository/mocks"
	"threadline/backend/internal/title"
)

// chunkStream delivers one chunk per Read, then EOF, so a test can force
// frame boundaries to land mid-line.
type chunkStream struct {
	chunks []string
	i      int
	closed bool
}

func (s *chunkStream) Read(p []byte) (int, error) {
	if s.i >= len(s.chunks) {
		return 0, io.EOF
	}
	n := copy(p, s.chunks[s.i])
	s.i++
	return n, nil
}

func (s *chunkStream) Close() error {
	s.closed = true
	return nil
}

// blockingStream holds its reader until released.
type blockingStream struct {
	release chan struct{}
}

func (s *blockingStream) Read(p []byte) (int, error) {
	<-s.release
	return 0, io.EOF
}

func (s *blockingStream) Close() error { return nil }

// failingStream yields one chunk, then fails with whatever fail returns.
type failingStream struct {
	chunk string
	sent  bool
	fail  func() error
}

func (s *failingStream) Read(p []byte) (int, error) {
	if !s.sent {
		s.sent = true
		return copy(p, s.chunk), nil
	}
	return 0, s.fail()
}

func (s *failingStream) Close() error { return nil }

func testThread(id string) *model.Thread {
	now := time.Now().UTC().Truncate(time.Second)
	return &model.Thread{ID: id, Title: model.DefaultTitle, Status: model.StatusRegular, CreatedAt: now, UpdatedAt: now}
}

func heuristicTitles() *title.Generator {
	return title.NewGenerator(nil, "", title.StrategyHeuristic, title.Options{})
}

// loadedEngine builds an engine whose snapshot holds the given thread as
// active with the given messages.
func loadedEngine(t *testing.T, repo *mocks.MockRepository, provider llm.CompletionProvider, thread *model.Thread, messages []model.Message) *conversation.Engine {
	t.Helper()
	e := conversation.NewEngine(repo, provider, heuristicTitles(), "test-model")
	repo.On("ListThreads", mock.Anything, model.StatusRegular).Return([]*model.Thread{thread}, nil).Once()
	repo.On("ListThreads", mock.Anything, model.StatusArchived).Return(nil, nil).Once()
	repo.On("GetThreadMessages", mock.Anything, thread.ID).Return(messages, nil).Once()
	require.NoError(t, e.Load(context.Background()))
	return e
}

func TestEngine_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("Activates the most recently updated regular thread", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		recent := testThread("t-recent")
		older := testThread("t-older")
		archived := testThread("t-archived")
		archived.Status = model.StatusArchived
		existing := []model.Message{{ID: "m1", ThreadID: "t-recent", Role: model.RoleUser, Content: "hello"}}

		repo.On("ListThreads", ctx, model.StatusRegular).Return([]*model.Thread{recent, older}, nil).Once()
		repo.On("ListThreads", ctx, model.StatusArchived).Return([]*model.Thread{archived}, nil).Once()
		repo.On("GetThreadMessages", ctx, "t-recent").Return(existing, nil).Once()

		e := conversation.NewEngine(repo, nil, heuristicTitles(), "test-model")
		require.NoError(t, e.Load(ctx))

		snap := e.Snapshot()
		assert.Equal(t, "t-recent", snap.ActiveThreadID)
		assert.Len(t, snap.Threads, 3)
		assert.Len(t, snap.Regular(), 2)
		assert.Len(t, snap.Archived(), 1)
		assert.Equal(t, existing, snap.Messages)
	})

	t.Run("Creates a fresh thread when no regular thread exists", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		created := testThread("t-new")

		repo.On("ListThreads", ctx, model.StatusRegular).Return(nil, nil).Once()
		repo.On("ListThreads", ctx, model.StatusArchived).Return(nil, nil).Once()
		repo.On("CreateThread", ctx, model.NewThread{}).Return(created, nil).Once()
		repo.On("GetThreadMessages", ctx, "t-new").Return(nil, nil).Once()

		e := conversation.NewEngine(repo, nil, heuristicTitles(), "test-model")
		require.NoError(t, e.Load(ctx))

		snap := e.Snapshot()
		assert.Equal(t, "t-new", snap.ActiveThreadID)
		assert.Empty(t, snap.Messages)
	})
}

func TestEngine_Send(t *testing.T) {
	ctx := context.Background()
	userContent := "Can you help me write a Python function?"

	t.Run("Streams into one synthetic message and persists on completion", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		provider := mock_llm.NewMockCompletionProvider(t)
		thread := testThread("t1")

		stream := &chunkStream{chunks: []string{
			`0:{"content":[{"te`,
			"xt\":\"Hel\"}]}\n",
			"0:{\"content\":[{\"text\":\"lo\"}]}\ne:{\"finishReason\":\"stop\"}\n",
		}}

		userMsg := &model.Message{ID: "m-user", ThreadID: "t1", Role: model.RoleUser, Content: userContent}
		assistantMsg := &model.Message{ID: "m-assistant", ThreadID: "t1", Role: model.RoleAssistant, Content: "Hello"}

		repo.On("CreateMessage", ctx, model.NewMessage{ThreadID: "t1", Role: model.RoleUser, Content: userContent}).
			Return(userMsg, nil).Once()
		provider.On("StreamCompletion", ctx, mock.MatchedBy(func(req *llm.CompletionRequest) bool {
			return req.Model == "test-model" && len(req.Messages) == 1 && req.Messages[0].Content == userContent
		})).Return(stream, nil).Once()
		repo.On("CreateMessage", ctx, model.NewMessage{ThreadID: "t1", Role: model.RoleAssistant, Content: "Hello"}).
			Return(assistantMsg, nil).Once()

		// First exchange: the thread still carries the default title.
		repo.On("GetThread", ctx, "t1").Return(thread, nil).Once()
		repo.On("UpdateThread", ctx, "t1", mock.MatchedBy(func(p model.ThreadPatch) bool {
			return p.Title != nil && *p.Title == "Help me write a Python function?"
		})).Return(thread, nil).Once()

		e := loadedEngine(t, repo, provider, thread, nil)

		var deltas []string
		got, err := e.Send(ctx, "t1", userContent, func(d string) { deltas = append(deltas, d) })

		require.NoError(t, err)
		assert.Equal(t, assistantMsg, got)
		assert.Equal(t, []string{"Hel", "lo"}, deltas)
		assert.True(t, stream.closed)

		snap := e.Snapshot()
		require.Len(t, snap.Messages, 2)
		assert.Equal(t, "m-user", snap.Messages[0].ID)
		assert.Equal(t, "m-assistant", snap.Messages[1].ID)
		assert.Equal(t, "Hello", snap.Messages[1].Content)
		assert.Equal(t, "Help me write a Python function?", snap.Threads[0].Title)
		assert.Equal(t, conversation.StateIdle, e.ThreadState("t1"))
	})

	t.Run("Skips title generation after the first exchange", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		provider := mock_llm.NewMockCompletionProvider(t)
		thread := testThread("t1")
		existing := []model.Message{
			{ID: "m1", ThreadID: "t1", Role: model.RoleUser, Content: "earlier question"},
			{ID: "m2", ThreadID: "t1", Role: model.RoleAssistant, Content: "earlier answer"},
		}

		repo.On("CreateMessage", ctx, model.NewMessage{ThreadID: "t1", Role: model.RoleUser, Content: "follow-up"}).
			Return(&model.Message{ID: "m3", ThreadID: "t1", Role: model.RoleUser, Content: "follow-up"}, nil).Once()
		provider.On("StreamCompletion", ctx, mock.MatchedBy(func(req *llm.CompletionRequest) bool {
			return len(req.Messages) == 3
		})).Return(&chunkStream{chunks: []string{"0:{\"content\":[{\"text\":\"Sure\"}]}\n"}}, nil).Once()
		repo.On("CreateMessage", ctx, model.NewMessage{ThreadID: "t1", Role: model.RoleAssistant, Content: "Sure"}).
			Return(&model.Message{ID: "m4", ThreadID: "t1", Role: model.RoleAssistant, Content: "Sure"}, nil).Once()

		e := loadedEngine(t, repo, provider, thread, existing)

		_, err := e.Send(ctx, "t1", "follow-up", nil)
		require.NoError(t, err)
		assert.Len(t, e.Snapshot().Messages, 4)
	})

	t.Run("Rejects a concurrent send on the same thread", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		provider := mock_llm.NewMockCompletionProvider(t)
		thread := testThread("t1")
		stream := &blockingStream{release: make(chan struct{})}

		repo.On("CreateMessage", ctx, mock.Anything).
			Return(&model.Message{ID: "m-user", ThreadID: "t1", Role: model.RoleUser, Content: "first"}, nil).Once()
		provider.On("StreamCompletion", ctx, mock.Anything).Return(stream, nil).Once()

		e := loadedEngine(t, repo, provider, thread, nil)

		firstDone := make(chan error, 1)
		go func() {
			_, err := e.Send(ctx, "t1", "first", nil)
			firstDone <- err
		}()

		require.Eventually(t, func() bool {
			return e.ThreadState("t1") == conversation.StateStreaming
		}, time.Second, 5*time.Millisecond)

		_, err := e.Send(ctx, "t1", "second", nil)
		assert.ErrorIs(t, err, apperrors.ErrBusy)

		close(stream.release)
		// The blocked stream produced no text, so the first send fails too,
		// but only after releasing the thread.
		assert.ErrorIs(t, <-firstDone, apperrors.ErrUpstream)
		assert.Equal(t, conversation.StateIdle, e.ThreadState("t1"))
	})

	t.Run("Wraps upstream connection failures", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		provider := mock_llm.NewMockCompletionProvider(t)
		thread := testThread("t1")

		repo.On("CreateMessage", ctx, mock.Anything).
			Return(&model.Message{ID: "m-user", ThreadID: "t1", Role: model.RoleUser, Content: "hello"}, nil).Once()
		provider.On("StreamCompletion", ctx, mock.Anything).Return(nil, errors.New("connection refused")).Once()

		e := loadedEngine(t, repo, provider, thread, nil)

		_, err := e.Send(ctx, "t1", "hello", nil)
		assert.ErrorIs(t, err, apperrors.ErrUpstream)
		// The user message was already persisted and stays visible.
		assert.Len(t, e.Snapshot().Messages, 1)
		assert.Equal(t, conversation.StateIdle, e.ThreadState("t1"))
	})

	t.Run("Rejects an empty completion", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		provider := mock_llm.NewMockCompletionProvider(t)
		thread := testThread("t1")

		repo.On("CreateMessage", ctx, mock.Anything).
			Return(&model.Message{ID: "m-user", ThreadID: "t1", Role: model.RoleUser, Content: "hello"}, nil).Once()
		provider.On("StreamCompletion", ctx, mock.Anything).
			Return(&chunkStream{chunks: []string{"e:{\"finishReason\":\"stop\"}\n"}}, nil).Once()

		e := loadedEngine(t, repo, provider, thread, nil)

		_, err := e.Send(ctx, "t1", "hello", nil)
		assert.ErrorIs(t, err, apperrors.ErrUpstream)
	})

	t.Run("Discards the partial response when the context is cancelled", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		provider := mock_llm.NewMockCompletionProvider(t)
		thread := testThread("t1")

		sendCtx, cancel := context.WithCancel(ctx)
		stream := &failingStream{
			chunk: "0:{\"content\":[{\"text\":\"partial\"}]}\n",
			fail: func() error {
				cancel()
				return errors.New("context canceled")
			},
		}

		repo.On("CreateMessage", mock.Anything, mock.Anything).
			Return(&model.Message{ID: "m-user", ThreadID: "t1", Role: model.RoleUser, Content: "hello"}, nil).Once()
		provider.On("StreamCompletion", mock.Anything, mock.Anything).Return(stream, nil).Once()

		e := loadedEngine(t, repo, provider, thread, nil)

		_, err := e.Send(sendCtx, "t1", "hello", nil)
		assert.ErrorIs(t, err, context.Canceled)

		// Only the user message remains; the synthetic assistant message is gone.
		snap := e.Snapshot()
		require.Len(t, snap.Messages, 1)
		assert.Equal(t, model.RoleUser, snap.Messages[0].Role)
	})

	t.Run("Keeps the partial text when the stream dies mid-response", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		provider := mock_llm.NewMockCompletionProvider(t)
		thread := testThread("t1")

		stream := &failingStream{
			chunk: "0:{\"content\":[{\"text\":\"partial answer\"}]}\n",
			fail:  func() error { return errors.New("connection reset by peer") },
		}

		repo.On("CreateMessage", ctx, mock.Anything).
			Return(&model.Message{ID: "m-user", ThreadID: "t1", Role: model.RoleUser, Content: "hello"}, nil).Once()
		provider.On("StreamCompletion", ctx, mock.Anything).Return(stream, nil).Once()

		e := loadedEngine(t, repo, provider, thread, nil)

		_, err := e.Send(ctx, "t1", "hello", nil)
		assert.ErrorIs(t, err, apperrors.ErrUpstream)

		// The already-rendered text stays visible; nothing is persisted.
		snap := e.Snapshot()
		require.Len(t, snap.Messages, 2)
		assert.Equal(t, model.RoleAssistant, snap.Messages[1].Role)
		assert.Equal(t, "partial answer", snap.Messages[1].Content)
		assert.Equal(t, conversation.StateIdle, e.ThreadState("t1"))
	})

	t.Run("Targets a non-active thread without touching the mirror", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		provider := mock_llm.NewMockCompletionProvider(t)
		active := testThread("t1")
		activeMessages := []model.Message{{ID: "m1", ThreadID: "t1", Role: model.RoleUser, Content: "active thread"}}
		stored := []model.Message{
			{ID: "m5", ThreadID: "t2", Role: model.RoleUser, Content: "earlier"},
			{ID: "m6", ThreadID: "t2", Role: model.RoleAssistant, Content: "reply"},
		}

		repo.On("GetThreadMessages", ctx, "t2").Return(stored, nil).Once()
		repo.On("CreateMessage", ctx, model.NewMessage{ThreadID: "t2", Role: model.RoleUser, Content: "background"}).
			Return(&model.Message{ID: "m7", ThreadID: "t2", Role: model.RoleUser, Content: "background"}, nil).Once()
		provider.On("StreamCompletion", ctx, mock.MatchedBy(func(req *llm.CompletionRequest) bool {
			return len(req.Messages) == 3
		})).Return(&chunkStream{chunks: []string{"0:{\"content\":[{\"text\":\"Done\"}]}\n"}}, nil).Once()
		repo.On("CreateMessage", ctx, model.NewMessage{ThreadID: "t2", Role: model.RoleAssistant, Content: "Done"}).
			Return(&model.Message{ID: "m8", ThreadID: "t2", Role: model.RoleAssistant, Content: "Done"}, nil).Once()

		e := loadedEngine(t, repo, provider, active, activeMessages)

		var deltas []string
		got, err := e.Send(ctx, "t2", "background", func(d string) { deltas = append(deltas, d) })
		require.NoError(t, err)
		assert.Equal(t, "m8", got.ID)
		assert.Equal(t, []string{"Done"}, deltas)

		// The active thread's message list is untouched by the background send.
		snap := e.Snapshot()
		assert.Equal(t, "t1", snap.ActiveThreadID)
		assert.Equal(t, activeMessages, snap.Messages)
	})

	t.Run("Title failure keeps the previous title", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		provider := mock_llm.NewMockCompletionProvider(t)
		thread := testThread("t1")

		repo.On("CreateMessage", ctx, mock.MatchedBy(func(m model.NewMessage) bool { return m.Role == model.RoleUser })).
			Return(&model.Message{ID: "m-user", ThreadID: "t1", Role: model.RoleUser, Content: userContent}, nil).Once()
		provider.On("StreamCompletion", ctx, mock.Anything).
			Return(&chunkStream{chunks: []string{"0:{\"content\":[{\"text\":\"Hello\"}]}\n"}}, nil).Once()
		repo.On("CreateMessage", ctx, mock.MatchedBy(func(m model.NewMessage) bool { return m.Role == model.RoleAssistant })).
			Return(&model.Message{ID: "m-assistant", ThreadID: "t1", Role: model.RoleAssistant, Content: "Hello"}, nil).Once()
		repo.On("GetThread", ctx, "t1").Return(thread, nil).Once()
		repo.On("UpdateThread", ctx, "t1", mock.Anything).Return(nil, errors.New("disk I/O error")).Once()

		e := loadedEngine(t, repo, provider, thread, nil)

		got, err := e.Send(ctx, "t1", userContent, nil)
		require.NoError(t, err)
		assert.Equal(t, "m-assistant", got.ID)
		assert.Equal(t, model.DefaultTitle, e.Snapshot().Threads[0].Title)
	})
}

func TestEngine_SwitchThread(t *testing.T) {
	ctx := context.Background()

	t.Run("Replaces the message list with the target thread's", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		active := testThread("t1")
		other := testThread("t2")
		current := []model.Message{{ID: "m1", ThreadID: "t1", Role: model.RoleUser, Content: "old"}}
		replacement := []model.Message{
			{ID: "m5", ThreadID: "t2", Role: model.RoleUser, Content: "other thread"},
			{ID: "m6", ThreadID: "t2", Role: model.RoleAssistant, Content: "reply"},
		}

		repo.On("GetThread", ctx, "t2").Return(other, nil).Once()
		repo.On("GetThreadMessages", ctx, "t2").Return(replacement, nil).Once()

		e := loadedEngine(t, repo, nil, active, current)

		require.NoError(t, e.SwitchThread(ctx, "t2"))

		snap := e.Snapshot()
		assert.Equal(t, "t2", snap.ActiveThreadID)
		assert.Equal(t, replacement, snap.Messages)
	})

	t.Run("Unknown thread is not found and leaves the snapshot alone", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		active := testThread("t1")

		repo.On("GetThread", ctx, "missing").Return(nil, repository.ErrNotFound).Once()

		e := loadedEngine(t, repo, nil, active, nil)

		err := e.SwitchThread(ctx, "missing")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.Equal(t, "t1", e.Snapshot().ActiveThreadID)
	})
}

func TestEngine_NewThread(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockRepository(t)
	existing := testThread("t1")
	created := testThread("t2")

	repo.On("CreateThread", ctx, model.NewThread{}).Return(created, nil).Once()

	e := loadedEngine(t, repo, nil, existing, []model.Message{{ID: "m1", ThreadID: "t1"}})

	got, err := e.NewThread(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t2", got.ID)

	snap := e.Snapshot()
	assert.Equal(t, "t2", snap.ActiveThreadID)
	assert.Empty(t, snap.Messages)
	require.Len(t, snap.Threads, 2)
	assert.Equal(t, "t2", snap.Threads[0].ID)
}

func TestEngine_RenameThread(t *testing.T) {
	ctx := context.Background()

	t.Run("Updates the summary", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		thread := testThread("t1")

		title := "Renamed"
		repo.On("UpdateThread", ctx, "t1", mock.MatchedBy(func(p model.ThreadPatch) bool {
			return p.Title != nil && *p.Title == title
		})).Return(thread, nil).Once()

		e := loadedEngine(t, repo, nil, thread, nil)

		require.NoError(t, e.RenameThread(ctx, "t1", title))
		assert.Equal(t, title, e.Snapshot().Threads[0].Title)
	})

	t.Run("Rolls the optimistic patch back on failure", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		thread := testThread("t1")

		repo.On("UpdateThread", ctx, "t1", mock.Anything).Return(nil, repository.ErrNotFound).Once()
		repo.On("GetThread", ctx, "t1").Return(thread, nil).Once()

		e := loadedEngine(t, repo, nil, thread, nil)

		err := e.RenameThread(ctx, "t1", "Renamed")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.Equal(t, model.DefaultTitle, e.Snapshot().Threads[0].Title)
	})
}

func TestEngine_ArchiveThread(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockRepository(t)
	thread := testThread("t1")

	repo.On("UpdateThread", ctx, "t1", mock.MatchedBy(func(p model.ThreadPatch) bool {
		return p.Status != nil && *p.Status == model.StatusArchived
	})).Return(thread, nil).Once()

	e := loadedEngine(t, repo, nil, thread, nil)

	require.NoError(t, e.ArchiveThread(ctx, "t1"))

	snap := e.Snapshot()
	assert.Empty(t, snap.Regular())
	require.Len(t, snap.Archived(), 1)
	assert.Equal(t, "t1", snap.Archived()[0].ID)
}

func TestEngine_DeleteThread(t *testing.T) {
	ctx := context.Background()

	t.Run("Switches to the next regular thread when the active one goes", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		active := testThread("t1")
		next := testThread("t2")

		repo.On("ListThreads", ctx, model.StatusRegular).Return([]*model.Thread{active, next}, nil).Once()
		repo.On("ListThreads", ctx, model.StatusArchived).Return(nil, nil).Once()
		repo.On("GetThreadMessages", ctx, "t1").Return(nil, nil).Once()

		e := conversation.NewEngine(repo, nil, heuristicTitles(), "test-model")
		require.NoError(t, e.Load(ctx))

		repo.On("DeleteThread", ctx, "t1").Return(nil).Once()
		repo.On("GetThread", ctx, "t2").Return(next, nil).Once()
		repo.On("GetThreadMessages", ctx, "t2").Return(nil, nil).Once()

		require.NoError(t, e.DeleteThread(ctx, "t1"))

		snap := e.Snapshot()
		assert.Equal(t, "t2", snap.ActiveThreadID)
		require.Len(t, snap.Threads, 1)
		assert.Equal(t, "t2", snap.Threads[0].ID)
	})

	t.Run("Creates a fresh thread when the last one goes", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		only := testThread("t1")
		created := testThread("t-new")

		repo.On("DeleteThread", ctx, "t1").Return(nil).Once()
		repo.On("CreateThread", ctx, model.NewThread{}).Return(created, nil).Once()

		e := loadedEngine(t, repo, nil, only, []model.Message{{ID: "m1", ThreadID: "t1"}})

		require.NoError(t, e.DeleteThread(ctx, "t1"))

		snap := e.Snapshot()
		assert.Equal(t, "t-new", snap.ActiveThreadID)
		assert.Empty(t, snap.Messages)
	})

	t.Run("Deleting a non-active thread keeps the active one", func(t *testing.T) {
		repo := mocks.NewMockRepository(t)
		active := testThread("t1")
		other := testThread("t2")

		repo.On("ListThreads", ctx, model.StatusRegular).Return([]*model.Thread{active, other}, nil).Once()
		repo.On("ListThreads", ctx, model.StatusArchived).Return(nil, nil).Once()
		repo.On("GetThreadMessages", ctx, "t1").Return(nil, nil).Once()

		e := conversation.NewEngine(repo, nil, heuristicTitles(), "test-model")
		require.NoError(t, e.Load(ctx))

		repo.On("DeleteThread", ctx, "t2").Return(nil).Once()

		require.NoError(t, e.DeleteThread(ctx, "t2"))

		snap := e.Snapshot()
		assert.Equal(t, "t1", snap.ActiveThreadID)
		require.Len(t, snap.Threads, 1)
	})
}
