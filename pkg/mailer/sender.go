package mailer

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// Message is a rendered email.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers a message or reports why it could not.
type Sender interface {
	Deliver(ctx context.Context, msg Message) error
}

// Publisher is the part of the RabbitMQ publisher used to enqueue jobs.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// QueueSender hands messages to the email worker through RabbitMQ.
type QueueSender struct {
	Pub Publisher
}

func NewQueueSender(pub Publisher) *QueueSender { return &QueueSender{Pub: pub} }

func (q *QueueSender) Deliver(ctx context.Context, msg Message) error {
	if q.Pub == nil {
		return errors.New("email queue not configured")
	}
	return q.Pub.PublishJSON(ctx, EmailJob{To: msg.To, Subject: msg.Subject, Text: msg.Text, HTML: msg.HTML})
}

// LogSender only records that an email would have been sent.
type LogSender struct {
	Logger *logrus.Logger
}

func (l LogSender) Deliver(_ context.Context, msg Message) error {
	if l.Logger != nil {
		l.Logger.WithFields(logrus.Fields{"to": msg.To, "subject": msg.Subject}).Info("email sending disabled; message dropped")
	}
	return nil
}
