package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Subject/Text/HTML are already rendered, or Template and Data are set
// and the worker renders them.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "forgot_password"
	Data     map[string]any `json:"data,omitempty"`
}
