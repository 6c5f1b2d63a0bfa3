package email

// Template names an embedded email template.
type Template string

const (
	// TemplateSignupConfirmation corresponds to templates/signup_confirmation.html
	TemplateSignupConfirmation Template = "signup_confirmation"

	// TemplatePasswordReset corresponds to templates/password_reset.html
	TemplatePasswordReset Template = "password_reset"
)

// Templates lists every embedded template.
func Templates() []Template {
	return []Template{TemplateSignupConfirmation, TemplatePasswordReset}
}

func (t Template) file() string {
	return string(t) + ".html"
}
