// Package notify alerts the notify list about new postings.
package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"jobboard/domain"
)

//go:embed templates/*.txt
var templateFS embed.FS

// Message is one outgoing notification.
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type Notifier struct {
	From   string
	Mailer Mailer

	tmpl *template.Template
}

func New(from string, mailer Mailer) (*Notifier, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("parse email templates: %w", err)
	}
	return &Notifier{From: from, Mailer: mailer, tmpl: tmpl}, nil
}

// JobPosted mails recipients about j. With no recipients it does nothing.
func (n *Notifier) JobPosted(ctx context.Context, recipients []string, j domain.JobPost) error {
	return n.send(ctx, recipients, "jobpost", j)
}

// ApplicantPosted mails recipients about a. With no recipients it does
// nothing.
func (n *Notifier) ApplicantPosted(ctx context.Context, recipients []string, a domain.ApplicantPost) error {
	return n.send(ctx, recipients, "applicantpost", a)
}

func (n *Notifier) send(ctx context.Context, recipients []string, kind string, data any) error {
	if len(recipients) == 0 {
		return nil
	}
	subject, err := n.render(kind+"_email_subject.txt", data)
	if err != nil {
		return err
	}
	body, err := n.render(kind+"_email.txt", data)
	if err != nil {
		return err
	}
	msg := Message{
		From:    n.From,
		To:      append([]string(nil), recipients...),
		Subject: strings.TrimSpace(subject),
		Body:    body,
	}
	if err := n.Mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send %s notification: %w", kind, err)
	}
	return nil
}

func (n *Notifier) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := n.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
