package templates

import "time"

// Option sets one optional field of EmailData.
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) { d.Time = t.UTC().Format("02 January 2006, 15:04") }
}

func WithResetURL(url string) Option { return func(d *EmailData) { d.ResetURL = url } }

func WithExpiresAt(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.ExpiresAt = utc
		d.ExpiresAtText = utc.Format("02 January 2006, 15:04 MST")
	}
}

// Branding carries the company fields shared by every template.
type Branding struct {
	AppName     string
	CompanyName string
	SupportURL  string
}

// NewBaseEmailData fills the common fields and applies options.
func NewBaseEmailData(b Branding, typ string, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:        name,
		Email:       email,
		Type:        typ,
		AppName:     b.AppName,
		CompanyName: b.CompanyName,
		SupportURL:  b.SupportURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewForgotPasswordData(b Branding, name, email string, opts ...Option) EmailData {
	return NewBaseEmailData(b, ForgotPassword, name, email, opts...)
}
