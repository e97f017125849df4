package service

import (
	"context"
	"fmt"

	"threadart-backend/internal/domain"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendOrderConfirmation(ctx context.Context, email, name, orderNumber string, totalCents int64) error {
	subject := fmt.Sprintf("Order %s confirmed", orderNumber)
	body := fmt.Sprintf("Hello %s,\n\nThanks for your order %s. Total: $%.2f.\n\nWe will let you know when it ships.",
		name, orderNumber, float64(totalCents)/100)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendOrderStatusUpdate(ctx context.Context, email, name, orderNumber string, status domain.OrderStatus) error {
	subject := fmt.Sprintf("Order %s is now %s", orderNumber, status)
	body := fmt.Sprintf("Hello %s,\n\nYour order %s status changed to: %s.", name, orderNumber, status)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendWithdrawalReceived(ctx context.Context, email, name string, amountCents int64) error {
	subject := "Withdrawal request received"
	body := fmt.Sprintf("Hello %s,\n\nYour withdrawal request for $%.2f was received and is pending review.",
		name, float64(amountCents)/100)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendAdminDigest(ctx context.Context, adminEmail, subject, body string) error {
	return s.send(adminEmail, "Admin", subject, body)
}
