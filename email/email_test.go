package email

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"folio/models"
)

func TestSendContactNotificationUnconfigured(t *testing.T) {
	service := &EmailService{}

	err := service.SendContactNotification("owner@example.com", models.ContactMessage{
		Name:  "Visitor",
		Email: "visitor@example.com",
		Body:  "Hello",
	})

	assert.Error(t, err)
}

func TestSendContactNotificationMissingRecipient(t *testing.T) {
	service := &EmailService{host: "smtp.example.com"}

	err := service.SendContactNotification("", models.ContactMessage{})

	assert.Error(t, err)
}
