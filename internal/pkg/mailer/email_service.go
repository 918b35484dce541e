package mailer

import (
	"fmt"
	"html"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendVisitorMessage(message string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	ownerEmail  string
}

func NewEmailService(host string, port int, username, password, senderEmail, ownerEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		ownerEmail:  ownerEmail,
	}
}

// SendVisitorMessage relays a message typed into the terminal to the owner's
// inbox. The message body is escaped before it is embedded in the HTML.
func (s *emailService) SendVisitorMessage(message string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", s.ownerEmail)
	m.SetHeader("Subject", "New message from your portfolio terminal")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Someone left you a message</h2>
			<p>A visitor typed this into the portfolio terminal:</p>
			<blockquote style="border-left: 3px solid #4CAF50; padding-left: 10px; color: #555;">%s</blockquote>
			<p>Reply is not possible from here; there is no sender address.</p>
		</div>
	`, html.EscapeString(message))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to relay visitor message: %v\n", err)
		return err
	}

	fmt.Printf("[MAILER] Visitor message relayed to %s\n", s.ownerEmail)
	return nil
}
