package utils

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer sends plain-text notification mail over SMTP.
type Mailer struct {
	Addr string // host:port
	From string
	Pass string
}

func (m *Mailer) Send(to, subject, body string) error {
	host := m.Addr
	if i := strings.Index(host, ":"); i >= 0 {
		host = host[:i]
	}

	msg := fmt.Sprintf("Subject: %s\r\n\r\n%s\r\n", subject, body)

	return smtp.SendMail(
		m.Addr,
		smtp.PlainAuth("", m.From, m.Pass, host),
		m.From,
		[]string{to},
		[]byte(msg),
	)
}
