package email

import (
	"fmt"
	"net/smtp"
	"os"

	"folio/models"
)

type EmailService struct {
	host     string
	port     string
	user     string
	password string
	from     string
}

func NewEmailService() *EmailService {
	return &EmailService{
		host:     os.Getenv("SMTP_HOST"),
		port:     os.Getenv("SMTP_PORT"),
		user:     os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     os.Getenv("SMTP_FROM"),
	}
}

// SendContactNotification forwards a contact-form submission to the site
// owner's address.
func (e *EmailService) SendContactNotification(to string, msg models.ContactMessage) error {
	if e.host == "" || to == "" {
		return fmt.Errorf("smtp not configured")
	}

	subject := "New contact message: " + msg.Subject
	body := fmt.Sprintf(`You received a new message through your portfolio contact form.

From: %s <%s>
Subject: %s

%s
`, msg.Name, msg.Email, msg.Subject, msg.Body)

	message := fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Reply-To: %s\r\n"+
		"Subject: %s\r\n"+
		"\r\n"+
		"%s\r\n", e.from, to, msg.Email, subject, body)

	auth := smtp.PlainAuth("", e.user, e.password, e.host)
	addr := fmt.Sprintf("%s:%s", e.host, e.port)

	if err := smtp.SendMail(addr, auth, e.from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}

	return nil
}
