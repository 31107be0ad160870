package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

// Template names accepted in EmailJob.Template.
const (
	ResetPassword = "reset_password"
	VerifyEmail   = "verify_email"
	Welcome       = "welcome"
)

var subjects = map[string]string{
	ResetPassword: "Password Reset Request",
	VerifyEmail:   "Verify your email address",
	Welcome:       "Welcome to EventApp",
}

var bodies = map[string]*template.Template{
	ResetPassword: template.Must(template.New(ResetPassword).Parse(`
<h2>Password Reset Request</h2>
<p>Hi {{.Name}},</p>
<p>You requested a password reset for your EventApp account.</p>
<p>Click the link below to reset your password:</p>
<p><a href="{{.ResetURL}}">Reset Password</a></p>
<p>This link will expire in {{.ExpiresIn}}.</p>
<p>If you didn't request this, please ignore this email.</p>
`)),
	VerifyEmail: template.Must(template.New(VerifyEmail).Parse(`
<h2>Verify your email</h2>
<p>Hi {{.Name}},</p>
<p>Confirm your email address for EventApp by clicking the link below:</p>
<p><a href="{{.VerifyURL}}">Verify Email</a></p>
<p>If you didn't create an account, please ignore this email.</p>
`)),
	Welcome: template.Must(template.New(Welcome).Parse(`
<h2>Welcome to EventApp, {{.Name}}!</h2>
<p>Your account is ready. Browse upcoming events or create your own.</p>
<p><a href="{{.FrontendURL}}">Open EventApp</a></p>
`)),
}

// Render resolves a template name into subject and HTML body.
func Render(name string, data map[string]any) (subject, html string, err error) {
	tpl, ok := bodies[name]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return subjects[name], buf.String(), nil
}
