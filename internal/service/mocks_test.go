package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"devchatClient/internal/models"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.AuthResponse), args.Error(1)
}

func (m *MockGateway) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.AuthResponse), args.Error(1)
}

func (m *MockGateway) ListThreads(ctx context.Context) ([]models.Thread, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Thread), args.Error(1)
}

func (m *MockGateway) SearchThreads(ctx context.Context, keyword string) ([]models.Thread, error) {
	args := m.Called(ctx, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Thread), args.Error(1)
}

func (m *MockGateway) GetThread(ctx context.Context, id int64) (*models.Thread, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thread), args.Error(1)
}

func (m *MockGateway) CreateThread(ctx context.Context, req models.ThreadRequest) (*models.Thread, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thread), args.Error(1)
}

func (m *MockGateway) UpdateThread(ctx context.Context, id int64, req models.ThreadRequest) (*models.Thread, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thread), args.Error(1)
}

func (m *MockGateway) DeleteThread(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGateway) ListMessages(ctx context.Context, threadID int64) ([]models.Message, error) {
	args := m.Called(ctx, threadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockGateway) CreateMessage(ctx context.Context, req models.MessageRequest) (*models.Message, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockGateway) UpdateMessage(ctx context.Context, id int64, req models.MessageRequest) (*models.Message, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockGateway) DeleteMessage(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGateway) Vote(ctx context.Context, req models.VoteRequest) (models.VoteResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.VoteResult), args.Error(1)
}

func (m *MockGateway) VoteCounts(ctx context.Context, messageID int64) (models.VoteCounts, error) {
	args := m.Called(ctx, messageID)
	return args.Get(0).(models.VoteCounts), args.Error(1)
}

func (m *MockGateway) PendingUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockGateway) VerifyUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockGateway) AllUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockGateway) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}
