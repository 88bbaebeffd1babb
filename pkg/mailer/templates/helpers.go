package templates

import (
	"strings"
	"time"
)

// Option pattern
type Option func(*EmailData)

func WithSignInURL(url string) Option { return func(d *EmailData) { d.SignInURL = url } }

func WithTime(t time.Time) Option {
	return func(d *EmailData) { d.Time = t.UTC().Format("02 January 2006, 15:04") }
}

// NewEmailData fills the common fields and applies opts. The time defaults to now.
func NewEmailData(name, email, appName string, opts ...Option) EmailData {
	d := EmailData{
		Name:    strings.TrimSpace(name),
		Email:   email,
		AppName: appName,
	}
	WithTime(time.Now())(&d)
	for _, opt := range opts {
		opt(&d)
	}
	return d
}
