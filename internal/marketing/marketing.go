// Package marketing handles the storefront's outreach surfaces: the
// newsletter signup and the contact form. Both are terminal,
// user-initiated submissions, so unlike the cart core their failures are
// surfaced to the caller as retryable errors.
package marketing

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

var (
	ErrInvalidEmail   = errors.New("invalid email address")
	ErrInvalidMessage = errors.New("invalid contact message")
)

type Subscription struct {
	Email        string    `bson:"email"`
	SubscribedAt time.Time `bson:"subscribed_at"`
}

type ContactMessage struct {
	ID         int64     `bson:"_id"`
	Name       string    `bson:"name"`
	Email      string    `bson:"email"`
	Subject    string    `bson:"subject"`
	Message    string    `bson:"message"`
	ReceivedAt time.Time `bson:"received_at"`
}

type Repository interface {
	AddSubscription(ctx context.Context, sub Subscription) error
	HasSubscription(ctx context.Context, email string) (bool, error)
	AddContactMessage(ctx context.Context, msg ContactMessage) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Subscribe normalizes the address and records it once. A duplicate
// subscription is a silent success, not an error.
func (s *Service) Subscribe(ctx context.Context, email string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return ErrInvalidEmail
	}

	exists, err := s.repo.HasSubscription(ctx, normalized)
	if err != nil {
		return fmt.Errorf("check subscription: %w", err)
	}
	if exists {
		return nil
	}

	sub := Subscription{Email: normalized, SubscribedAt: s.now()}
	if err := s.repo.AddSubscription(ctx, sub); err != nil {
		return fmt.Errorf("add subscription: %w", err)
	}
	return nil
}

// Contact validates and stores a contact-form submission.
func (s *Service) Contact(ctx context.Context, name, email, subject, message string) error {
	name = strings.TrimSpace(name)
	subject = strings.TrimSpace(subject)
	message = strings.TrimSpace(message)
	if name == "" || subject == "" || len(message) < 5 {
		return ErrInvalidMessage
	}
	normalized, err := normalizeEmail(email)
	if err != nil {
		return ErrInvalidEmail
	}

	msg := ContactMessage{
		ID:         s.now().UnixMilli(),
		Name:       name,
		Email:      normalized,
		Subject:    subject,
		Message:    message,
		ReceivedAt: s.now(),
	}
	if err := s.repo.AddContactMessage(ctx, msg); err != nil {
		return fmt.Errorf("add contact message: %w", err)
	}
	return nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return strings.ToLower(addr.Address), nil
}
