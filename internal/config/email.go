package config

import (
	"context"
	"log"
	"os"

	"github.com/resend/resend-go/v2"
	"go.uber.org/fx"
)

type ResendConfig struct {
	APIKey string
	From   string
}

func NewResendConfig() *ResendConfig {
	apiKey := os.Getenv("RESEND_API_KEY")
	fromEmail := os.Getenv("FROM_EMAIL")
	if apiKey == "" || fromEmail == "" {
		log.Fatal("Missing Environment variables")
	}
	return &ResendConfig{
		APIKey: apiKey,
		From:   fromEmail}
}

type EmailService struct {
	Config *ResendConfig
	client *resend.Client
}

func NewEmailService(lc fx.Lifecycle, config *ResendConfig) *EmailService {
	service := &EmailService{Config: config, client: resend.NewClient(config.APIKey)}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Println("Email Service initialized")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Email Service stopped")
			return nil
		},
	})
	return service
}

func (s *EmailService) SendEmail(to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    s.Config.From,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	sent, err := s.client.Emails.Send(params)
	if err != nil {
		log.Println("Failed to send email:", err)
		return err
	}

	log.Println("Email sent:", sent.Id)
	return nil
}
