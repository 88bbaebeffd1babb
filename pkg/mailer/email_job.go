package mailer

import (
	mailtpl "github.com/oksasatya/workspace-hub/pkg/mailer/templates"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template (+ Data) or Subject with Text/HTML must be set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "welcome"
	Data     map[string]any `json:"data,omitempty"`
}

// NewWelcomeJob builds the job queued after a successful registration.
func NewWelcomeJob(to, name, appName, signInURL string) EmailJob {
	data := mailtpl.NewEmailData(name, to, appName, mailtpl.WithSignInURL(signInURL))
	return EmailJob{
		To:       to,
		Template: mailtpl.Welcome,
		Data:     mailtpl.ToMap(data),
	}
}
