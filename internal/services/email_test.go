package services

import (
	"testing"

	"github.com/tigerapps/tigertaxi/internal/config"
)

func TestEmailService_DisabledIsNoOp(t *testing.T) {
	svc := NewEmailService(&config.MailConfig{Enabled: false})

	if err := svc.Send([]string{"tt1234@princeton.edu"}, "subject", "body"); err != nil {
		t.Errorf("disabled mailer should no-op, got %v", err)
	}
}

func TestEmailService_MissingHostIsNoOp(t *testing.T) {
	svc := NewEmailService(&config.MailConfig{Enabled: true, Host: ""})

	if err := svc.Send([]string{"tt1234@princeton.edu"}, "subject", "body"); err != nil {
		t.Errorf("unconfigured mailer should no-op, got %v", err)
	}
}

func TestEmailService_EmptyRecipientsIsNoOp(t *testing.T) {
	svc := NewEmailService(&config.MailConfig{Enabled: true, Host: "smtp.example.com", Port: 587})

	if err := svc.Send(nil, "subject", "body"); err != nil {
		t.Errorf("empty recipient list should no-op, got %v", err)
	}
}
