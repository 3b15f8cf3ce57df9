package service

import (
	"context"
	"strings"
	"unstablenet/internal/data"
)

// SubscriberRepository defines the interface for database operations on
// newsletter subscribers.
type SubscriberRepository interface {
	CreateSubscriber(ctx context.Context, sub *data.Subscriber) error
	ListSubscribers(ctx context.Context) ([]*data.Subscriber, error)
}

// WelcomeMailer sends the best-effort welcome email after a subscription.
type WelcomeMailer interface {
	SendWelcome(email string)
}

// SubscriberServicer defines the interface for managing subscriptions.
type SubscriberServicer interface {
	Subscribe(ctx context.Context, email string, consent bool) error
}

// SubscriberService provides business logic for newsletter subscriptions.
type SubscriberService struct {
	repo   SubscriberRepository
	mailer WelcomeMailer
}

// NewSubscriberService creates a new SubscriberService. The mailer may be
// nil when outbound email is disabled.
func NewSubscriberService(repo SubscriberRepository, mailer WelcomeMailer) *SubscriberService {
	return &SubscriberService{repo: repo, mailer: mailer}
}

// Subscribe records a subscription. Consent must be explicitly affirmed
// before any insert is attempted. The welcome email is fire-and-forget: a
// send failure never fails the subscription.
func (s *SubscriberService) Subscribe(ctx context.Context, email string, consent bool) error {
	email = strings.TrimSpace(email)
	if !consent {
		return &ValidationError{Field: "policy_agreement", Message: "consent is required"}
	}
	if email == "" || !strings.Contains(email, "@") {
		return &ValidationError{Field: "email", Message: "a valid email address is required"}
	}

	sub := &data.Subscriber{Email: email, PolicyAgreement: consent}
	if err := s.repo.CreateSubscriber(ctx, sub); err != nil {
		return err
	}

	if s.mailer != nil {
		go s.mailer.SendWelcome(email)
	}
	return nil
}
