package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/rb-marketplace/pkg/mailer"
)

type sent struct{ to, subject, text, html string }

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

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestProcess_RendersTemplate(t *testing.T) {
	s := &fakeSender{}
	body := mustJSON(t, mailer.EmailJob{
		To:       "buyer@example.com",
		Template: "receipt",
		Data: map[string]any{
			"Name":         "Bo",
			"ArtworkTitle": "Low Tide",
			"Price":        "45.00",
			"Balance":      "1205.00",
			"PurchaseID":   "p-1",
		},
	})

	res, err := process(context.Background(), s, body)
	require.NoError(t, err)
	assert.Equal(t, ack, res)
	require.Len(t, s.sent, 1)
	assert.Equal(t, "buyer@example.com", s.sent[0].to)
	assert.Contains(t, s.sent[0].subject, "Low Tide")
	assert.Contains(t, s.sent[0].text, "45.00 RB")
	assert.Contains(t, s.sent[0].html, "Low Tide")
}

func TestProcess_PlainJob(t *testing.T) {
	s := &fakeSender{}
	body := mustJSON(t, mailer.EmailJob{To: "x@example.com", Text: "hello"})

	res, err := process(context.Background(), s, body)
	require.NoError(t, err)
	assert.Equal(t, ack, res)
	require.Len(t, s.sent, 1)
	assert.Equal(t, "Notification", s.sent[0].subject)
}

func TestProcess_Failures(t *testing.T) {
	tests := []struct {
		name   string
		body   []byte
		sender *fakeSender
		want   outcome
	}{
		{"malformed", []byte("{"), &fakeSender{}, drop},
		{"no recipient", mustJSON(t, mailer.EmailJob{Text: "hi"}), &fakeSender{}, drop},
		{"no content", mustJSON(t, mailer.EmailJob{To: "a@b.c"}), &fakeSender{}, drop},
		{"unknown template", mustJSON(t, mailer.EmailJob{To: "a@b.c", Template: "welcome"}), &fakeSender{}, drop},
		{"send error", mustJSON(t, mailer.EmailJob{To: "a@b.c", Text: "hi"}), &fakeSender{err: errors.New("mailgun down")}, retry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := process(context.Background(), tt.sender, tt.body)
			assert.Error(t, err)
			assert.Equal(t, tt.want, res)
			assert.Empty(t, tt.sender.sent)
		})
	}
}

func TestSettle(t *testing.T) {
	assert.Equal(t, retry, settle(retry, false))
	assert.Equal(t, drop, settle(retry, true))
	assert.Equal(t, ack, settle(ack, true))
	assert.Equal(t, drop, settle(drop, false))
}
