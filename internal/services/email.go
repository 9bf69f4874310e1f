package services

import (
	"context"
	"fmt"
	"html"
	"log"

	"conferencecentral/internal/domain"
)

const confirmationSubject = "You created a new Conference!"

type emailService struct {
	mailer domain.Mailer
}

// NewEmailService returns an EmailService that uses the given Mailer.
func NewEmailService(mailer domain.Mailer) domain.EmailService {
	return &emailService{mailer: mailer}
}

// SendConferenceConfirmation emails the organizer a summary of the
// conference they just created.
func (s *emailService) SendConferenceConfirmation(ctx context.Context, data *domain.ConferenceConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("conference confirmation data is nil")
	}
	textBody := fmt.Sprintf("Hi, you have created a following conference:\n%s", data.ConferenceInfo)
	htmlBody := fmt.Sprintf("<p>Hi, you have created a following conference:</p><p>%s</p>", html.EscapeString(data.ConferenceInfo))
	if err := s.mailer.Send(data.Email, confirmationSubject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	log.Printf("[EMAIL] Conference confirmation sent to %s", data.Email)
	return nil
}
