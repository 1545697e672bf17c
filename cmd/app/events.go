package app

import (
	"context"

	"go.uber.org/zap"

	"devchatClient/internal/logger"
	"devchatClient/internal/metrics"
	"devchatClient/internal/session"
)

// WatchSessions logs and counts session changes until ctx is done. The
// returned channel is closed once the watcher has stopped.
func WatchSessions(ctx context.Context, store *session.Store) <-chan struct{} {
	done := make(chan struct{})
	events := store.Watch(ctx)

	go func() {
		defer close(done)
		for ev := range events {
			metrics.SessionEvents.WithLabelValues(string(ev.Kind)).Inc()
			logger.Log.Info("session changed",
				zap.String("namespace", ev.Namespace),
				zap.String("kind", string(ev.Kind)),
				zap.String("role", string(ev.Role)),
				zap.Bool("verified", ev.Verified),
				zap.Time("at", ev.At),
			)
		}
	}()

	return done
}
