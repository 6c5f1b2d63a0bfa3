package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// Mailer sends the code emails. *email.Client implements it.
type Mailer interface {
	SendSignupConfirmation(ctx context.Context, to, firstName, code string, expiresIn time.Duration) error
	SendPasswordReset(ctx context.Context, to, firstName, code string, expiresIn time.Duration) error
}

func (j *JobService) handleSignupConfirmationTask(ctx context.Context, t *asynq.Task) error {
	return j.handleCodeEmail(ctx, t, "signup_confirmation", j.mailer.SendSignupConfirmation)
}

func (j *JobService) handlePasswordResetTask(ctx context.Context, t *asynq.Task) error {
	return j.handleCodeEmail(ctx, t, "password_reset", j.mailer.SendPasswordReset)
}

type sendCodeFunc func(ctx context.Context, to, firstName, code string, expiresIn time.Duration) error

func (j *JobService) handleCodeEmail(ctx context.Context, t *asynq.Task, kind string, send sendCodeFunc) error {
	var p CodeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// Retrying cannot fix a malformed payload.
		return fmt.Errorf("failed to unmarshal %s email payload: %v: %w", kind, err, asynq.SkipRetry)
	}

	j.logger.Info().
		Str("type", kind).
		Str("to", p.To).
		Msg("processing email task")

	if err := send(ctx, p.To, p.FirstName, p.Code, p.ExpiresIn); err != nil {
		j.logger.Error().
			Str("type", kind).
			Str("to", p.To).
			Err(err).
			Msg("failed to send email")
		return err
	}

	j.logger.Info().
		Str("type", kind).
		Str("to", p.To).
		Msg("email sent")

	return nil
}
