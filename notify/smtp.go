package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/labstack/echo/v4"
)

// SMTPMailer delivers through an SMTP relay over STARTTLS, authenticating
// with PLAIN when a username is set.
type SMTPMailer struct {
	Addr     string
	Username string
	Password string
	// TLSConfig is used for STARTTLS. Nil verifies against the system roots.
	TLSConfig *tls.Config
}

func (m SMTPMailer) Send(ctx context.Context, msg Message) error {
	from, to, err := addresses(msg)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := writeMessage(&buf, msg, from, to, time.Now()); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	c, err := smtp.DialStartTLS(m.Addr, m.TLSConfig)
	if err != nil {
		return err
	}
	defer c.Close()
	if m.Username != "" {
		if err := c.Auth(sasl.NewPlainClient("", m.Username, m.Password)); err != nil {
			return err
		}
	}
	// The envelope carries bare addresses; display names stay in the headers.
	rcpt := make([]string, 0, len(to))
	for _, a := range to {
		rcpt = append(rcpt, a.Address)
	}
	if err := c.SendMail(from.Address, rcpt, &buf); err != nil {
		return err
	}
	return c.Quit()
}

func addresses(msg Message) (*mail.Address, []*mail.Address, error) {
	from, err := mail.ParseAddress(msg.From)
	if err != nil {
		return nil, nil, fmt.Errorf("parse from address %q: %w", msg.From, err)
	}
	to := make([]*mail.Address, 0, len(msg.To))
	for _, addr := range msg.To {
		a, err := mail.ParseAddress(addr)
		if err != nil {
			return nil, nil, fmt.Errorf("parse recipient %q: %w", addr, err)
		}
		to = append(to, a)
	}
	return from, to, nil
}

// WriteMessage encodes msg as a single-part text/plain RFC 5322 message.
func WriteMessage(w io.Writer, msg Message, date time.Time) error {
	from, to, err := addresses(msg)
	if err != nil {
		return err
	}
	return writeMessage(w, msg, from, to, date)
}

func writeMessage(w io.Writer, msg Message, from *mail.Address, to []*mail.Address, date time.Time) error {
	var h mail.Header
	h.SetDate(date)
	h.SetAddressList("From", []*mail.Address{from})
	h.SetAddressList("To", to)
	h.SetSubject(msg.Subject)
	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
	if err := h.GenerateMessageID(); err != nil {
		return err
	}

	body, err := mail.CreateSingleInlineWriter(w, h)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(body, msg.Body); err != nil {
		return err
	}
	return body.Close()
}

// ConsoleMailer logs messages instead of sending them.
type ConsoleMailer struct {
	Logger echo.Logger
}

func (m ConsoleMailer) Send(_ context.Context, msg Message) error {
	var buf bytes.Buffer
	if err := WriteMessage(&buf, msg, time.Now()); err != nil {
		return err
	}
	m.Logger.Infof("outgoing mail\n%s", buf.String())
	return nil
}
