package service

import (
	"context"
	"errors"
	"testing"
	"time"
	"unstablenet/internal/data"
)

type mockSubscriberRepository struct {
	errToReturn  error
	subs         []*data.Subscriber
	createCalled int
}

var _ SubscriberRepository = (*mockSubscriberRepository)(nil)

func (m *mockSubscriberRepository) CreateSubscriber(ctx context.Context, sub *data.Subscriber) error {
	m.createCalled++
	if m.errToReturn != nil {
		return m.errToReturn
	}
	sub.ID = int64(len(m.subs) + 1)
	m.subs = append(m.subs, sub)
	return nil
}

func (m *mockSubscriberRepository) ListSubscribers(ctx context.Context) ([]*data.Subscriber, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	return m.subs, nil
}

type chanWelcomeMailer struct {
	sent chan string
}

func (m *chanWelcomeMailer) SendWelcome(email string) {
	m.sent <- email
}

func TestSubscriberService_Subscribe(t *testing.T) {
	repo := &mockSubscriberRepository{}
	mailer := &chanWelcomeMailer{sent: make(chan string, 1)}
	svc := NewSubscriberService(repo, mailer)

	if err := svc.Subscribe(context.Background(), " reader@example.com ", true); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	if len(repo.subs) != 1 {
		t.Fatalf("expected 1 subscriber, got %d", len(repo.subs))
	}
	if repo.subs[0].Email != "reader@example.com" {
		t.Errorf("email was not trimmed: %q", repo.subs[0].Email)
	}
	if !repo.subs[0].PolicyAgreement {
		t.Error("consent flag was not persisted")
	}

	select {
	case got := <-mailer.sent:
		if got != "reader@example.com" {
			t.Errorf("welcome sent to %q", got)
		}
	case <-time.After(time.Second):
		t.Fatal("welcome email was never sent")
	}
}

func TestSubscriberService_ConsentCheckedFirst(t *testing.T) {
	repo := &mockSubscriberRepository{}
	svc := NewSubscriberService(repo, nil)

	// Even with an invalid email, a refused consent is the reported error.
	err := svc.Subscribe(context.Background(), "not-an-email", false)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.Field != "policy_agreement" {
		t.Errorf("expected consent error, got field %q", vErr.Field)
	}
	if repo.createCalled != 0 {
		t.Error("refused consent must not reach the repository")
	}
}

func TestSubscriberService_RejectsInvalidEmail(t *testing.T) {
	repo := &mockSubscriberRepository{}
	svc := NewSubscriberService(repo, nil)

	for _, email := range []string{"", "   ", "plainaddress"} {
		err := svc.Subscribe(context.Background(), email, true)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("email %q: expected ValidationError, got %v", email, err)
		}
		if vErr.Field != "email" {
			t.Errorf("email %q: expected email error, got field %q", email, vErr.Field)
		}
	}
	if repo.createCalled != 0 {
		t.Error("invalid email must not reach the repository")
	}
}

func TestSubscriberService_RepositoryErrorSurfaces(t *testing.T) {
	wantErr := errors.New("duplicate entry")
	repo := &mockSubscriberRepository{errToReturn: wantErr}
	mailer := &chanWelcomeMailer{sent: make(chan string, 1)}
	svc := NewSubscriberService(repo, mailer)

	err := svc.Subscribe(context.Background(), "reader@example.com", true)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected repository error, got %v", err)
	}
	select {
	case <-mailer.sent:
		t.Error("no welcome email may be sent when the insert fails")
	case <-time.After(50 * time.Millisecond):
	}
}
