package mailer

import (
	"Storefront/config"
	"context"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
)

type Sender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// SMTPSender 未配置 smtp 时 NewSender 返回 Noop
type SMTPSender struct {
	conf *config.SmtpConfig
}

func NewSender(conf *config.SmtpConfig) Sender {
	if !conf.Enabled() {
		return Noop{}
	}
	return &SMTPSender{conf: conf}
}

func (s *SMTPSender) SendEmail(ctx context.Context, to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.conf.Host, s.conf.Port)
	var auth smtp.Auth
	if s.conf.User != "" {
		auth = smtp.PlainAuth("", s.conf.User, s.conf.Password, s.conf.Host)
	}

	e := email.NewEmail()
	e.From = s.conf.From
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	return e.Send(addr, auth)
}

type Noop struct{}

func (Noop) SendEmail(context.Context, string, string, string) error {
	return nil
}
