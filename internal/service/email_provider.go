package service

import (
	"context"
	"fmt"
	"log"
)

// OrderEmailData carries order details into confirmation and admin
// alert templates.
type OrderEmailData struct {
	Name            string
	Email           string
	ServiceName     string
	PlanName        string
	SplitBetween    int
	AmountPaid      int
	AmountRemaining int
	TotalAmount     int
	PaymentMethod   string
}

// CredentialsEmailData carries the shared account login delivered to a
// subgroup member.
type CredentialsEmailData struct {
	Name           string
	Email          string
	ServiceName    string
	PlanName       string
	Username       string
	Password       string
	AdditionalInfo string
}

// Notifier is the outbound notification boundary. Every send is
// fire-and-forget from the caller's point of view: business operations
// complete regardless of delivery outcome.
type Notifier interface {
	SendWelcomeEmail(ctx context.Context, email, name string) error
	SendOrderConfirmationEmail(ctx context.Context, data OrderEmailData) error
	SendAdminOrderAlert(ctx context.Context, data OrderEmailData) error
	SendCredentialsEmail(ctx context.Context, data CredentialsEmailData) error
}

// EmailProvider interface for different email services
type EmailProvider interface {
	Notifier
}

// MultiProviderEmailService handles multiple email providers with fallback
type MultiProviderEmailService struct {
	providers []EmailProvider
}

// NewMultiProviderEmailService creates a new multi-provider email service
func NewMultiProviderEmailService(providers []EmailProvider) *MultiProviderEmailService {
	return &MultiProviderEmailService{providers: providers}
}

// GetProviderCount returns the number of configured providers
func (m *MultiProviderEmailService) GetProviderCount() int {
	return len(m.providers)
}

func (m *MultiProviderEmailService) send(ctx context.Context, kind string, fn func(EmailProvider) error) error {
	if len(m.providers) == 0 {
		return fmt.Errorf("no email providers configured")
	}

	var lastErr error
	for i, provider := range m.providers {
		err := fn(provider)
		if err == nil {
			return nil
		}
		log.Printf("MultiProviderEmailService: provider %d failed sending %s email: %v", i+1, kind, err)
		lastErr = err
	}

	return fmt.Errorf("all email providers failed. Last error: %w", lastErr)
}

func (m *MultiProviderEmailService) SendWelcomeEmail(ctx context.Context, email, name string) error {
	return m.send(ctx, "welcome", func(p EmailProvider) error {
		return p.SendWelcomeEmail(ctx, email, name)
	})
}

func (m *MultiProviderEmailService) SendOrderConfirmationEmail(ctx context.Context, data OrderEmailData) error {
	return m.send(ctx, "order confirmation", func(p EmailProvider) error {
		return p.SendOrderConfirmationEmail(ctx, data)
	})
}

func (m *MultiProviderEmailService) SendAdminOrderAlert(ctx context.Context, data OrderEmailData) error {
	return m.send(ctx, "admin alert", func(p EmailProvider) error {
		return p.SendAdminOrderAlert(ctx, data)
	})
}

func (m *MultiProviderEmailService) SendCredentialsEmail(ctx context.Context, data CredentialsEmailData) error {
	return m.send(ctx, "credentials", func(p EmailProvider) error {
		return p.SendCredentialsEmail(ctx, data)
	})
}
