package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apperrors "threadline/backend/internal/errors"
	"threadline/backend/internal/model"
	"threadline/backend/internal/repository"
)

// ThreadService wraps the repository with input checks and domain-error
// translation for the HTTP layer.
type ThreadService struct {
	repo repository.Repository
}

func NewThreadService(repo repository.Repository) *ThreadService {
	return &ThreadService{repo: repo}
}

func (s *ThreadService) List(ctx context.Context, status string) ([]*model.Thread, error) {
	parsed, err := parseStatus(status)
	if err != nil {
		return nil, err
	}
	threads, err := s.repo.ListThreads(ctx, parsed)
	if err != nil {
		return nil, translate(err)
	}
	return threads, nil
}

func (s *ThreadService) Create(ctx context.Context) (*model.Thread, error) {
	thread, err := s.repo.CreateThread(ctx, model.NewThread{})
	if err != nil {
		return nil, translate(err)
	}
	return thread, nil
}

func (s *ThreadService) Get(ctx context.Context, id string) (*model.Thread, error) {
	thread, err := s.repo.GetThread(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return thread, nil
}

// Update applies a rename and/or a status change. At least one field must be
// present.
func (s *ThreadService) Update(ctx context.Context, id string, title, status *string) (*model.Thread, error) {
	if title == nil && status == nil {
		return nil, fmt.Errorf("%w: nothing to update", apperrors.ErrValidation)
	}
	patch := model.ThreadPatch{Title: title}
	if status != nil {
		parsed, err := parseStatus(*status)
		if err != nil {
			return nil, err
		}
		patch.Status = &parsed
	}
	thread, err := s.repo.UpdateThread(ctx, id, patch)
	if err != nil {
		return nil, translate(err)
	}
	return thread, nil
}

func (s *ThreadService) Delete(ctx context.Context, id string) error {
	slog.Info("Deleting thread", "thread_id", id)
	return translate(s.repo.DeleteThread(ctx, id))
}

func (s *ThreadService) Messages(ctx context.Context, threadID string) ([]model.Message, error) {
	if _, err := s.repo.GetThread(ctx, threadID); err != nil {
		return nil, translate(err)
	}
	messages, err := s.repo.GetThreadMessages(ctx, threadID)
	if err != nil {
		return nil, translate(err)
	}
	return messages, nil
}

func (s *ThreadService) AddMessage(ctx context.Context, threadID, role, content string) (*model.Message, error) {
	switch role {
	case model.RoleUser, model.RoleAssistant, model.RoleSystem:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}
	msg, err := s.repo.CreateMessage(ctx, model.NewMessage{
		ThreadID: threadID,
		Role:     role,
		Content:  content,
	})
	if err != nil {
		return nil, translate(err)
	}
	return msg, nil
}

func parseStatus(status string) (model.ThreadStatus, error) {
	switch status {
	case "", string(model.StatusRegular):
		return model.StatusRegular, nil
	case string(model.StatusArchived):
		return model.StatusArchived, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, status)
	}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrThreadNotFound):
		return fmt.Errorf("%w: %v", apperrors.ErrNotFound, err)
	default:
		return err
	}
}
