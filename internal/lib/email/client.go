// Package email sends transactional emails through Resend.
//
// Bodies are rendered from HTML templates embedded in the binary, with
// the sprig function set available inside templates.
package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/raceboard/backend/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

// Client renders templates and hands the result to Resend.
type Client struct {
	emails    resend.EmailsSvc
	from      string
	templates *template.Template
	logger    *zerolog.Logger
}

// NewClient creates an email Client using the Resend key from config.
func NewClient(cfg *config.Config, logger *zerolog.Logger) (*Client, error) {
	return newClient(resend.NewClient(cfg.Integration.ResendAPIKey).Emails, cfg.Integration.EmailFrom, logger)
}

func newClient(emails resend.EmailsSvc, from string, logger *zerolog.Logger) (*Client, error) {
	tmpl, err := template.New("emails").Funcs(sprig.FuncMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse email templates")
	}

	return &Client{
		emails:    emails,
		from:      from,
		templates: tmpl,
		logger:    logger,
	}, nil
}

// Render executes the named template with data.
func (c *Client) Render(name Template, data any) (string, error) {
	var body bytes.Buffer
	if err := c.templates.ExecuteTemplate(&body, name.file(), data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", name)
	}
	return body.String(), nil
}

// SendEmail renders templateName with data and sends it to a single recipient.
func (c *Client) SendEmail(ctx context.Context, to, subject string, templateName Template, data any) error {
	body, err := c.Render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}

	sent, err := c.emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Debug().
		Str("template", string(templateName)).
		Str("email_id", sent.Id).
		Msg("email accepted by provider")

	return nil
}
