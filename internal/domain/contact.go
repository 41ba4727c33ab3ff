package domain

import "context"

// ContactMessage is a contact-us form submission
type ContactMessage struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required,max=5000"`
}

type ContactUsecase interface {
	Submit(ctx context.Context, msg ContactMessage) error
}
