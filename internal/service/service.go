package service

import (
	"context"

	"devchatClient/internal/config"
	"devchatClient/internal/models"
	"devchatClient/internal/session"
	"devchatClient/internal/storage"
)

// Gateway is the part of the DevChat API the services talk to. *api.Client
// implements it.
type Gateway interface {
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)

	ListThreads(ctx context.Context) ([]models.Thread, error)
	SearchThreads(ctx context.Context, keyword string) ([]models.Thread, error)
	GetThread(ctx context.Context, id int64) (*models.Thread, error)
	CreateThread(ctx context.Context, req models.ThreadRequest) (*models.Thread, error)
	UpdateThread(ctx context.Context, id int64, req models.ThreadRequest) (*models.Thread, error)
	DeleteThread(ctx context.Context, id int64) error

	ListMessages(ctx context.Context, threadID int64) ([]models.Message, error)
	CreateMessage(ctx context.Context, req models.MessageRequest) (*models.Message, error)
	UpdateMessage(ctx context.Context, id int64, req models.MessageRequest) (*models.Message, error)
	DeleteMessage(ctx context.Context, id int64) error

	Vote(ctx context.Context, req models.VoteRequest) (models.VoteResult, error)
	VoteCounts(ctx context.Context, messageID int64) (models.VoteCounts, error)

	PendingUsers(ctx context.Context) ([]models.User, error)
	VerifyUser(ctx context.Context, userID int64) error
	AllUsers(ctx context.Context) ([]models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type Service struct {
	Auth    AuthService
	Thread  ThreadService
	Message MessageService
	Vote    VoteService
	Admin   AdminService
	Health  HealthService
}

func NewService(gw Gateway, store *session.Store, st storage.Storage, cfg *config.Config) *Service {
	return &Service{
		Auth:    NewAuthService(gw, store),
		Thread:  NewThreadService(gw),
		Message: NewMessageService(gw),
		Vote:    NewVoteService(gw, cfg),
		Admin:   NewAdminService(gw),
		Health:  NewHealthService(st),
	}
}
