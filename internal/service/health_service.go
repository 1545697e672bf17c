package service

import (
	"context"

	"devchatClient/internal/storage"
)

// namespaceCounter is implemented by backends that can count their clients.
type namespaceCounter interface {
	Namespaces(ctx context.Context) (int, error)
}

type Health struct {
	Storage    string `json:"storage"`
	Namespaces *int   `json:"namespaces,omitempty"`
}

type HealthService interface {
	Check(ctx context.Context) (Health, error)
}

type healthService struct {
	storage storage.Storage
}

func NewHealthService(st storage.Storage) HealthService {
	return &healthService{storage: st}
}

func (h *healthService) Check(ctx context.Context) (Health, error) {
	if err := h.storage.Ping(ctx); err != nil {
		return Health{Storage: "unavailable"}, err
	}

	report := Health{Storage: "ok"}
	if counter, ok := h.storage.(namespaceCounter); ok {
		count, err := counter.Namespaces(ctx)
		if err != nil {
			return Health{Storage: "degraded"}, err
		}
		report.Namespaces = &count
	}
	return report, nil
}
