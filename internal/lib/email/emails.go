package email

import (
	"context"
	"time"
)

// CodeData is the template data of both code emails.
type CodeData struct {
	FirstName        string
	Code             string
	ExpiresInMinutes int
}

func newCodeData(firstName, code string, expiresIn time.Duration) CodeData {
	return CodeData{
		FirstName:        firstName,
		Code:             code,
		ExpiresInMinutes: int(expiresIn.Round(time.Minute) / time.Minute),
	}
}

// SendSignupConfirmation mails the account confirmation code.
func (c *Client) SendSignupConfirmation(ctx context.Context, to, firstName, code string, expiresIn time.Duration) error {
	return c.SendEmail(
		ctx,
		to,
		"Confirm your Raceboard account",
		TemplateSignupConfirmation,
		newCodeData(firstName, code, expiresIn),
	)
}

// SendPasswordReset mails the password reset code.
func (c *Client) SendPasswordReset(ctx context.Context, to, firstName, code string, expiresIn time.Duration) error {
	return c.SendEmail(
		ctx,
		to,
		"Your Raceboard password reset code",
		TemplatePasswordReset,
		newCodeData(firstName, code, expiresIn),
	)
}
