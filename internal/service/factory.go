package service

import (
	"fmt"

	"splitup-be/internal/config"
)

// NewNotifierFromConfig assembles the configured email providers into a
// single Notifier with fallback. Returns nil when notifications are
// disabled or no provider has an API key, callers treat a nil Notifier
// as "skip sends".
func NewNotifierFromConfig(cfg *config.Config) Notifier {
	if cfg.Features.DisableNotifications {
		return nil
	}

	var providers []EmailProvider

	fmt.Printf("Notifier: Initializing email providers - MailerSend: %v, Resend: %v\n",
		cfg.Email.MailerSendAPIKey != "", cfg.Email.ResendAPIKey != "")

	if cfg.Email.MailerSendAPIKey != "" {
		mailerSendService := NewEmailService(
			cfg.Email.MailerSendAPIKey,
			cfg.Email.FromEmail,
			cfg.Email.FromName,
			cfg.Email.AdminEmail,
		)
		providers = append(providers, mailerSendService)
	}

	if cfg.Email.ResendAPIKey != "" {
		resendService := NewResendService(
			cfg.Email.ResendAPIKey,
			cfg.Email.FromEmail,
			cfg.Email.FromName,
			cfg.Email.AdminEmail,
		)
		providers = append(providers, resendService)
	}

	if len(providers) == 0 {
		fmt.Printf("Notifier: No email providers configured, notifications disabled\n")
		return nil
	}

	emailService := NewMultiProviderEmailService(providers)
	fmt.Printf("Notifier: Email service initialized with %d providers\n", len(providers))
	return emailService
}
