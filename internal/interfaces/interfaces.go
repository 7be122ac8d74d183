package interfaces

import (
	"context"

	"threadline/backend/internal/model"
)

// Contracts consumed by the API layer. Handlers depend on these instead of
// the concrete implementations so they can be tested against mocks.

// ThreadService is the thread/message CRUD surface.
type ThreadService interface {
	List(ctx context.Context, status string) ([]*model.Thread, error)
	Create(ctx context.Context) (*model.Thread, error)
	Get(ctx context.Context, id string) (*model.Thread, error)
	Update(ctx context.Context, id string, title, status *string) (*model.Thread, error)
	Delete(ctx context.Context, id string) error
	Messages(ctx context.Context, threadID string) ([]model.Message, error)
	AddMessage(ctx context.Context, threadID, role, content string) (*model.Message, error)
}

// TitleGenerator produces a display title for a conversation. It degrades
// internally and never fails.
type TitleGenerator interface {
	Generate(ctx context.Context, messages []model.Message) string
}

// ConversationEngine is the send surface of the sync engine used by the
// streaming endpoint.
type ConversationEngine interface {
	SwitchThread(ctx context.Context, threadID string) error
	Send(ctx context.Context, threadID, content string, onDelta func(delta string)) (*model.Message, error)
}
