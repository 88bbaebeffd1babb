package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	to, subject, text, html string
}

type fakeSender struct {
	err  error
	sent []sent
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sent{to, subject, text, html})
	return nil
}

func TestProcessWelcomeJob(t *testing.T) {
	job := NewWelcomeJob("ana@example.com", "Ana", "Workspace Hub", "http://localhost:3000/sign-in")
	body, err := json.Marshal(job)
	require.NoError(t, err)

	s := &fakeSender{}
	out, err := Process(context.Background(), s, body)
	require.NoError(t, err)
	assert.Equal(t, Ack, out)
	require.Len(t, s.sent, 1)

	msg := s.sent[0]
	assert.Equal(t, "ana@example.com", msg.to)
	assert.Equal(t, "Welcome to Workspace Hub", msg.subject)
	assert.Contains(t, msg.text, "Hi Ana,")
	assert.Contains(t, msg.text, "http://localhost:3000/sign-in")
	assert.Contains(t, msg.html, `href="http://localhost:3000/sign-in"`)
}

func TestProcessPlainJob(t *testing.T) {
	body := []byte(`{"to":"a@b.co","subject":"Hello","text":"plain"}`)
	s := &fakeSender{}
	out, err := Process(context.Background(), s, body)
	require.NoError(t, err)
	assert.Equal(t, Ack, out)
	assert.Equal(t, sent{"a@b.co", "Hello", "plain", ""}, s.sent[0])
}

func TestProcessOutcomes(t *testing.T) {
	ctx := context.Background()

	out, err := Process(ctx, &fakeSender{}, []byte(`{not json`))
	assert.Error(t, err)
	assert.Equal(t, Drop, out)

	out, err = Process(ctx, &fakeSender{}, []byte(`{"subject":"x"}`))
	assert.ErrorIs(t, err, ErrNoRecipient)
	assert.Equal(t, Drop, out)

	out, err = Process(ctx, &fakeSender{}, []byte(`{"to":"a@b.co","template":"missing"}`))
	assert.Error(t, err)
	assert.Equal(t, Drop, out)

	out, err = Process(ctx, &fakeSender{err: errors.New("mailgun down")}, []byte(`{"to":"a@b.co","subject":"x","text":"y"}`))
	assert.Error(t, err)
	assert.Equal(t, Requeue, out)
}
