//go:build integration

package mailer

import (
	"os"
	"strconv"
	"testing"

	"github.com/joho/godotenv"

	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/platform/logger"
)

func TestSendListingCreatedEmail_Integration(t *testing.T) {
	_ = godotenv.Load("../../.env")

	to := os.Getenv("TEST_RECEIVER_EMAIL")
	if to == "" {
		t.Skip("TEST_RECEIVER_EMAIL not set")
	}
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	m := NewSMTPMailer(Config{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		From:     os.Getenv("SMTP_EMAIL"),
		Password: os.Getenv("SMTP_PASSWORD"),
	}, logger.NewNop())

	if err := m.SendListingCreatedEmail(to, "Integration Test Listing"); err != nil {
		t.Errorf("failed to send email: %v", err)
	}
}
