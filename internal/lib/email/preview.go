package email

import "time"

// PreviewData holds sample template data for rendering emails locally
// (`raceboard email-preview <template>`).
var PreviewData = map[Template]any{
	TemplateSignupConfirmation: newCodeData("john", "482913", 15*time.Minute),
	TemplatePasswordReset:      newCodeData("john", "105577", 15*time.Minute),
}
