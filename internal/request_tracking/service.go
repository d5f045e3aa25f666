package request_tracking

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vlearn/vlearn-backend/internal/config"
	"github.com/vlearn/vlearn-backend/internal/logger"
)

// Service asynchronously persists generation request logs through a worker
// pool so the request path never blocks on the database.
type Service struct {
	store                Store
	logChan              chan logRequest
	workerPool           sync.WaitGroup
	shutdown             chan struct{}
	closed               atomic.Bool
	logger               *logger.Logger
	droppedRequestsTotal atomic.Int64
}

type logRequest struct {
	ctx  context.Context
	info RequestInfo
}

func NewService(store Store, logger *logger.Logger) *Service {
	s := &Service{
		store:    store,
		logChan:  make(chan logRequest, config.AppConfig.TrackingBufferSize),
		shutdown: make(chan struct{}),
		logger:   logger,
	}

	for i := 0; i < config.AppConfig.TrackingWorkerPoolSize; i++ {
		s.workerPool.Add(1)
		go s.logWorker()
	}

	return s
}

// logWorker processes log requests from the channel.
func (s *Service) logWorker() {
	defer s.workerPool.Done()

	for {
		select {
		case logReq := <-s.logChan:
			s.handleLogRequest(logReq)
		case <-s.shutdown:
			// Drain remaining log requests before exit.
			for {
				select {
				case logReq := <-s.logChan:
					s.handleLogRequest(logReq)
				default:
					return
				}
			}
		}
	}
}

// handleLogRequest ensures each request has a reasonable timeout and then
// persists it.
func (s *Service) handleLogRequest(lr logRequest) {
	ctx := lr.ctx

	var cancel context.CancelFunc
	if dl, ok := ctx.Deadline(); !ok || time.Until(dl) < time.Second {
		ctx, cancel = context.WithTimeout(context.Background(), time.Duration(config.AppConfig.TrackingTimeoutSeconds)*time.Second)
	}

	if err := s.store.InsertRequestLog(ctx, lr.info); err != nil {
		s.logger.Error("failed to insert generation log",
			slog.String("user_id", lr.info.UserID),
			slog.String("task", lr.info.Task),
			slog.String("error", err.Error()))
	}

	if cancel != nil {
		cancel()
	}
}

// LogRequestAsync queues a log request to be processed by the worker pool.
func (s *Service) LogRequestAsync(ctx context.Context, info RequestInfo) error {
	if s.closed.Load() {
		s.logger.Warn("tracking service is shutting down, dropping request",
			slog.String("user_id", info.UserID),
			slog.String("task", info.Task))
		return fmt.Errorf("service shutting down")
	}

	logReq := logRequest{
		ctx:  ctx,
		info: info,
	}

	select {
	case s.logChan <- logReq:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		dropped := s.droppedRequestsTotal.Add(1)
		s.logger.Error("generation log queue full, request dropped",
			slog.String("user_id", info.UserID),
			slog.String("task", info.Task),
			slog.Int64("total_dropped", dropped),
			slog.Int("queue_size", config.AppConfig.TrackingBufferSize))
		return fmt.Errorf("log queue is full, dropping request")
	}
}

// DroppedRequests returns the number of log records dropped due to overflow.
func (s *Service) DroppedRequests() int64 {
	return s.droppedRequestsTotal.Load()
}

// CheckRateLimit reports whether the user is under the daily request limit.
func (s *Service) CheckRateLimit(ctx context.Context, userID string, maxRequestsPerDay int64) (bool, error) {
	count, err := s.store.CountRequestsToday(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit: %w", err)
	}

	return count < maxRequestsPerDay, nil
}

// GetUserRequestCountToday returns the user's request count for the current
// UTC day.
func (s *Service) GetUserRequestCountToday(ctx context.Context, userID string) (int64, error) {
	return s.store.CountRequestsToday(ctx, userID)
}

// Shutdown gracefully shuts down the worker pool.
func (s *Service) Shutdown() {
	s.closed.Store(true)

	close(s.shutdown)
	s.workerPool.Wait()
	close(s.logChan)
}
