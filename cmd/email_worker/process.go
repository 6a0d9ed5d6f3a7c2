package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oksasatya/rb-marketplace/pkg/helpers"
	"github.com/oksasatya/rb-marketplace/pkg/mailer"
	mailtpl "github.com/oksasatya/rb-marketplace/pkg/mailer/templates"
)

// outcome tells the consumer loop how to settle a delivery.
type outcome int

const (
	ack outcome = iota
	drop
	retry
)

// settle downgrades a retry to a drop once the broker has already
// redelivered the message, so a permanent send failure is attempted twice.
func settle(res outcome, redelivered bool) outcome {
	if res == retry && redelivered {
		return drop
	}
	return res
}

// process decodes, renders and sends a single email job. Malformed jobs and
// render failures are dropped; send failures are requeued.
func process(ctx context.Context, sender mailer.Sender, body []byte) (outcome, error) {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return drop, fmt.Errorf("bad message: %w", err)
	}
	if err := job.Validate(); err != nil {
		return drop, err
	}

	helpers.EnsureRecipientAndEmail(&job)
	helpers.NormalizeTemplate(&job)

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		if !mailtpl.Known(job.Template) {
			return drop, fmt.Errorf("unknown template %q", job.Template)
		}
		s, t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			return drop, fmt.Errorf("render %s: %w", job.Template, err)
		}
		subject, text, html = s, t, h
	}
	if subject == "" {
		subject = helpers.SubjectFallback(&job)
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := sender.Send(c, job.To, subject, text, html); err != nil {
		return retry, fmt.Errorf("send: %w", err)
	}
	return ack, nil
}
