package smtp

import (
	"fmt"
	smtpPkg "net/smtp"
	"os"
)

type ItfSmtp interface {
	SendHandoffNotice(staffEmail string, sessionID string, reason string) error
}

type smtp struct {
	auth smtpPkg.Auth
	mail string
}

func New() ItfSmtp {
	mail := os.Getenv("SMTP_MAIL")
	password := os.Getenv("SMTP_PASSWORD")
	auth := smtpPkg.PlainAuth("", mail, password, "smtp.gmail.com")

	return &smtp{auth: auth, mail: mail}
}

func (s *smtp) SendHandoffNotice(staffEmail string, sessionID string, reason string) error {
	to := []string{staffEmail}

	message := []byte(fmt.Sprintf(
		"To: %s\r\nSubject: Guest needs assistance\r\n\r\nA guest asked for a human concierge.\r\nSession: %s\r\nReason: %s",
		staffEmail, sessionID, reason))

	if err := smtpPkg.SendMail("smtp.gmail.com:587", s.auth, s.mail, to, message); err != nil {
		return err
	}

	return nil
}
