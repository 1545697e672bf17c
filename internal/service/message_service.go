package service

import (
	"context"
	"strings"

	"devchatClient/internal/models"
)

type MessageService interface {
	Reply(ctx context.Context, threadID int64, content string) (*models.Message, error)
	Update(ctx context.Context, id int64, content string) (*models.Message, error)
	Delete(ctx context.Context, id int64) error
}

type messageService struct {
	gateway Gateway
}

func NewMessageService(gateway Gateway) MessageService {
	return &messageService{gateway: gateway}
}

func (s *messageService) Reply(ctx context.Context, threadID int64, content string) (*models.Message, error) {
	return s.gateway.CreateMessage(ctx, models.MessageRequest{
		ThreadID: threadID,
		Content:  strings.TrimSpace(content),
	})
}

func (s *messageService) Update(ctx context.Context, id int64, content string) (*models.Message, error) {
	return s.gateway.UpdateMessage(ctx, id, models.MessageRequest{Content: strings.TrimSpace(content)})
}

func (s *messageService) Delete(ctx context.Context, id int64) error {
	return s.gateway.DeleteMessage(ctx, id)
}
