package notifier

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// SMTPSender delivers notification emails over plain SMTP.
type SMTPSender struct {
	host     string
	port     string
	username string
	password string
	from     string
	log      *logrus.Logger
}

func NewSMTPSender(host, port, username, password, from string, log *logrus.Logger) *SMTPSender {
	return &SMTPSender{host: host, port: port, username: username, password: password, from: from, log: log}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	e := email.NewEmail()
	e.From = s.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body + "\n\nEquipo BuscoCredito")

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	if err := e.Send(addr, auth); err != nil {
		s.log.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	s.log.Infof("Email sent to %s: %s", to, subject)
	return nil
}
