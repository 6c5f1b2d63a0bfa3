// Package job runs background work on Asynq, a Redis-backed task queue.
//
// The API process enqueues tasks through JobService; the same process
// also runs the worker server that executes them.
package job

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/raceboard/backend/internal/config"
)

// Enqueuer is the producer half of asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	client Enqueuer
	server *asynq.Server
	mailer Mailer
	logger *zerolog.Logger
}

// NewJobService creates a JobService configured to use Redis from cfg.
// Tasks are delivered with mailer.
func NewJobService(logger *zerolog.Logger, cfg *config.Config, mailer Mailer) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		client: asynq.NewClient(redisOpt),
		server: server,
		mailer: mailer,
		logger: logger,
	}
}

// Mux routes task types to their handlers.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskSignupConfirmation, j.handleSignupConfirmationTask)
	mux.HandleFunc(TaskPasswordReset, j.handlePasswordResetTask)
	return mux
}

// Start starts the worker server. It returns once the workers are running.
func (j *JobService) Start() error {
	j.logger.Info().Msg("starting background job server")
	return j.server.Start(j.Mux())
}

// Stop waits for running tasks and closes the Redis connections.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}

// EnqueueSignupConfirmation schedules delivery of a signup confirmation code.
func (j *JobService) EnqueueSignupConfirmation(ctx context.Context, to, firstName, code string, expiresIn time.Duration) error {
	return j.enqueue(ctx, TaskSignupConfirmation, CodeEmailPayload{To: to, FirstName: firstName, Code: code, ExpiresIn: expiresIn})
}

// EnqueuePasswordReset schedules delivery of a password reset code.
func (j *JobService) EnqueuePasswordReset(ctx context.Context, to, firstName, code string, expiresIn time.Duration) error {
	return j.enqueue(ctx, TaskPasswordReset, CodeEmailPayload{To: to, FirstName: firstName, Code: code, ExpiresIn: expiresIn})
}

func (j *JobService) enqueue(ctx context.Context, taskType string, p CodeEmailPayload) error {
	task, err := NewCodeEmailTask(taskType, p)
	if err != nil {
		return fmt.Errorf("failed to build %s task: %w", taskType, err)
	}

	info, err := j.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s task: %w", taskType, err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("type", taskType).
		Str("queue", info.Queue).
		Msg("task enqueued")

	return nil
}
