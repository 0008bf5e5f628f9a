package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrNotFound   = errors.New("enquiry not found")
	ErrForbidden  = errors.New("user not authorized to access this enquiry")
	ErrValidation = errors.New("invalid enquiry")
)

const maxMessageLen = 1000

type Status string

const (
	StatusPending   Status = "pending"
	StatusResponded Status = "responded"
	StatusClosed    Status = "closed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusResponded, StatusClosed:
		return true
	}
	return false
}

type Enquiry struct {
	ID         string
	PropertyID string
	UserID     string
	Message    string
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Actor is the authenticated caller.
type Actor struct {
	ID    string
	Admin bool
}

// ValidateMessage trims and checks an enquiry message.
func ValidateMessage(msg string) (string, error) {
	msg = strings.TrimSpace(msg)
	n := utf8.RuneCountInString(msg)
	if n == 0 || n > maxMessageLen {
		return "", fmt.Errorf("%w: message must be between 1 and %d characters", ErrValidation, maxMessageLen)
	}
	return msg, nil
}

type EnquiryRepository interface {
	Create(ctx context.Context, e *Enquiry) error
	FindByID(ctx context.Context, id string) (*Enquiry, error)
	FindAll(ctx context.Context) ([]*Enquiry, error)
	FindByUser(ctx context.Context, userID string) ([]*Enquiry, error)
	FindByProperties(ctx context.Context, propertyIDs []string) ([]*Enquiry, error)
	UpdateStatus(ctx context.Context, id string, status Status, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

// Notifier tells a listing author about a new enquiry.
type Notifier interface {
	SendEnquiryReceivedEmail(toEmail, listingTitle, message string) error
}
