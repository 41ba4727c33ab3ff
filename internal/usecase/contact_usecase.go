package usecase

import (
	"context"
	"strings"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"
	"go-jobportal-backend/pkg/email"
)

type contactUsecase struct {
	emailService *email.EmailService
}

func NewContactUsecase(emailService *email.EmailService) domain.ContactUsecase {
	return &contactUsecase{
		emailService: emailService,
	}
}

// Submit validates the contact form payload and relays it to the configured
// inbox.
func (u *contactUsecase) Submit(ctx context.Context, msg domain.ContactMessage) error {
	name := strings.TrimSpace(msg.Name)
	addr := strings.TrimSpace(msg.Email)
	body := strings.TrimSpace(msg.Message)

	if name == "" || addr == "" || body == "" {
		return apperror.BadRequest("Name, email and message are required")
	}

	if !u.emailService.IsConfigured() {
		return apperror.Internal(nil)
	}

	data := email.ContactEmailData{
		SenderName:  name,
		SenderEmail: addr,
		Message:     body,
	}
	if err := u.emailService.SendContactEmail(data); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
