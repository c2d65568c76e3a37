// Package moderation implements the contact message queue: anonymous
// submission, admin listing, and the one-way unread to read transition.
package moderation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/openshelf/openshelf/internal/database/messages"
	"github.com/openshelf/openshelf/internal/entities"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var (
	ErrMessageNotFound = messages.ErrMessageNotFound

	ErrNameRequired    = errors.New("name is required")
	ErrEmailRequired   = errors.New("email is required")
	ErrEmailInvalid    = errors.New("invalid email format")
	ErrSubjectRequired = errors.New("subject is required")
	ErrMessageRequired = errors.New("message is required")
)

// Store is the message persistence needed by the moderation service.
type Store interface {
	Create(message *entities.ContactMessage) error
	GetByID(id string) (*entities.ContactMessage, error)
	List(limit, offset int) ([]entities.ContactMessage, int64, error)
	MarkRead(id string) error
	UnreadCount() (int64, error)
}

// Service manages the contact message lifecycle.
type Service struct {
	store Store
}

// NewService creates a moderation service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Submit accepts an anonymous contact form submission.
func (s *Service) Submit(name, email, subject, body string) (*entities.ContactMessage, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	subject = strings.TrimSpace(subject)
	body = strings.TrimSpace(body)

	switch {
	case name == "":
		return nil, ErrNameRequired
	case email == "":
		return nil, ErrEmailRequired
	case len(email) > 254 || !emailPattern.MatchString(email):
		return nil, ErrEmailInvalid
	case subject == "":
		return nil, ErrSubjectRequired
	case body == "":
		return nil, ErrMessageRequired
	}

	message := &entities.ContactMessage{
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: body,
	}
	if err := s.store.Create(message); err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}
	return message, nil
}

// Open returns a message and marks it read if it was unread. Opening an
// already-read message is a no-op beyond the lookup.
func (s *Service) Open(id string) (*entities.ContactMessage, error) {
	message, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !message.IsRead {
		if err := s.store.MarkRead(id); err != nil {
			return nil, fmt.Errorf("failed to mark message read: %w", err)
		}
		message.IsRead = true
	}

	return message, nil
}

// MarkRead transitions a message to read. Idempotent: marking an
// already-read message again succeeds.
func (s *Service) MarkRead(id string) error {
	return s.store.MarkRead(id)
}

// List retrieves messages for the admin surface, newest first.
func (s *Service) List(limit, offset int) ([]entities.ContactMessage, int64, error) {
	return s.store.List(limit, offset)
}

// UnreadCount returns the number of unread messages.
func (s *Service) UnreadCount() (int64, error) {
	return s.store.UnreadCount()
}
