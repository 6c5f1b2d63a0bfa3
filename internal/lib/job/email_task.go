package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskSignupConfirmation delivers the account confirmation code.
	TaskSignupConfirmation = "email:signup_confirmation"

	// TaskPasswordReset delivers the password reset code.
	TaskPasswordReset = "email:password_reset"
)

// CodeEmailPayload is the JSON payload of both code email tasks.
type CodeEmailPayload struct {
	To        string        `json:"to"`
	FirstName string        `json:"first_name"`
	Code      string        `json:"code"`
	ExpiresIn time.Duration `json:"expires_in"`
}

// NewCodeEmailTask builds a task of taskType carrying p.
//
// Codes are useless once expired, so the task must not outlive them:
// retries stop at the code's expiry via asynq.Deadline.
func NewCodeEmailTask(taskType string, p CodeEmailPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		taskType,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("critical"),
		asynq.Timeout(30*time.Second),
		asynq.Deadline(time.Now().Add(p.ExpiresIn)),
	), nil
}
