package repository

import (
	"context"

	"threadline/backend/internal/model"
)

// Repository defines the interface for data storage operations. It is the
// only component permitted to mutate persisted state.
type Repository interface {
	CreateThread(ctx context.Context, partial model.NewThread) (*model.Thread, error)
	GetThread(ctx context.Context, id string) (*model.Thread, error)
	ListThreads(ctx context.Context, status model.ThreadStatus) ([]*model.Thread, error)
	UpdateThread(ctx context.Context, id string, patch model.ThreadPatch) (*model.Thread, error)
	ArchiveThread(ctx context.Context, id string) (*model.Thread, error)
	UnarchiveThread(ctx context.Context, id string) (*model.Thread, error)
	DeleteThread(ctx context.Context, id string) error

	CreateMessage(ctx context.Context, msg model.NewMessage) (*model.Message, error)
	GetThreadMessages(ctx context.Context, threadID string) ([]model.Message, error)
	CountThreadMessages(ctx context.Context, threadID string) (int, error)
	DeleteMessage(ctx context.Context, id string) error
	DeleteThreadMessages(ctx context.Context, threadID string) error
}
