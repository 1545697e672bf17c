package service

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"devchatClient/internal/models"
)

// ThreadDetail is a thread together with its replies.
type ThreadDetail struct {
	Thread   models.Thread
	Messages []models.Message
}

type ThreadService interface {
	List(ctx context.Context, keyword string) ([]models.Thread, error)
	Get(ctx context.Context, id int64) (*ThreadDetail, error)
	Create(ctx context.Context, req models.ThreadRequest) (*models.Thread, error)
	Update(ctx context.Context, id int64, req models.ThreadRequest) (*models.Thread, error)
	Delete(ctx context.Context, id int64) error
}

type threadService struct {
	gateway Gateway
}

func NewThreadService(gateway Gateway) ThreadService {
	return &threadService{gateway: gateway}
}

// List returns every thread, or only the matching ones when keyword is set.
func (s *threadService) List(ctx context.Context, keyword string) ([]models.Thread, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return s.gateway.ListThreads(ctx)
	}
	return s.gateway.SearchThreads(ctx, keyword)
}

func (s *threadService) Get(ctx context.Context, id int64) (*ThreadDetail, error) {
	var (
		thread   *models.Thread
		messages []models.Message
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		thread, err = s.gateway.GetThread(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		messages, err = s.gateway.ListMessages(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ThreadDetail{Thread: *thread, Messages: messages}, nil
}

func (s *threadService) Create(ctx context.Context, req models.ThreadRequest) (*models.Thread, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	return s.gateway.CreateThread(ctx, req)
}

func (s *threadService) Update(ctx context.Context, id int64, req models.ThreadRequest) (*models.Thread, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	return s.gateway.UpdateThread(ctx, id, req)
}

func (s *threadService) Delete(ctx context.Context, id int64) error {
	return s.gateway.DeleteThread(ctx, id)
}
