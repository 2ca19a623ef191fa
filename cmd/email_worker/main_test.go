package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/bootcamp-directory/pkg/helpers"
	"github.com/oksasatya/bootcamp-directory/pkg/mailer"
)

type ack struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (a *ack) Ack(uint64, bool) error { a.acked = true; return nil }

func (a *ack) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked, a.requeue = true, requeue
	return nil
}

func (a *ack) Reject(_ uint64, requeue bool) error { return a.Nack(0, false, requeue) }

type outbox struct {
	sent []mailer.Message
	err  error
}

func (o *outbox) Deliver(_ context.Context, msg mailer.Message) error {
	if o.err != nil {
		return o.err
	}
	o.sent = append(o.sent, msg)
	return nil
}

func delivery(t *testing.T, a *ack, job any) amqp.Delivery {
	t.Helper()
	var body []byte
	if s, ok := job.(string); ok {
		body = []byte(s)
	} else {
		var err error
		body, err = json.Marshal(job)
		require.NoError(t, err)
	}
	return amqp.Delivery{Acknowledger: a, Body: body}
}

func TestHandleRenderedJobIsAcked(t *testing.T) {
	a, out := &ack{}, &outbox{}
	handle(context.Background(), out, delivery(t, a, mailer.EmailJob{To: "john@gmail.com", Subject: "Hi", Text: "hello"}), helpers.NopLogger())

	assert.True(t, a.acked)
	require.Len(t, out.sent, 1)
	assert.Equal(t, "Hi", out.sent[0].Subject)
}

func TestHandleRendersTemplate(t *testing.T) {
	a, out := &ack{}, &outbox{}
	job := mailer.EmailJob{
		To:       "john@gmail.com",
		Template: "forgot_password",
		Data:     map[string]any{"Name": "John", "ResetURL": "http://localhost/reset/abc"},
	}
	handle(context.Background(), out, delivery(t, a, job), helpers.NopLogger())

	assert.True(t, a.acked)
	require.Len(t, out.sent, 1)
	assert.Contains(t, out.sent[0].Text, "http://localhost/reset/abc")
	assert.NotEmpty(t, out.sent[0].Subject)
}

func TestHandleDropsBadJobs(t *testing.T) {
	for name, job := range map[string]any{
		"not json":       "{",
		"no recipient":   mailer.EmailJob{Subject: "Hi"},
		"unknown template": mailer.EmailJob{To: "john@gmail.com", Template: "nope"},
	} {
		t.Run(name, func(t *testing.T) {
			a := &ack{}
			handle(context.Background(), &outbox{}, delivery(t, a, job), helpers.NopLogger())
			assert.True(t, a.nacked)
			assert.False(t, a.requeue)
		})
	}
}

func TestHandleRequeuesSendFailures(t *testing.T) {
	a := &ack{}
	handle(context.Background(), &outbox{err: errors.New("mailgun down")}, delivery(t, a, mailer.EmailJob{To: "john@gmail.com", Text: "x"}), helpers.NopLogger())

	assert.True(t, a.nacked)
	assert.True(t, a.requeue)
}
