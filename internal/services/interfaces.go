package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/henry215/partyrsvp/internal/models"
)

// GuestServiceInterface defines the contract for guest record operations.
type GuestServiceInterface interface {
	Create(ctx context.Context, params models.CreateGuestParams) (*models.Guest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Guest, error)
	ListAll(ctx context.Context) ([]*models.Guest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.RSVPStatus) error
	UpdateContact(ctx context.Context, id uuid.UUID, params models.UpdateContactParams) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteMany(ctx context.Context, ids []uuid.UUID) (int, error)
}

// SettingsServiceInterface defines the contract for party settings operations.
type SettingsServiceInterface interface {
	GetLatest(ctx context.Context) (*models.PartySettings, error)
	Upsert(ctx context.Context, settings *models.PartySettings) (*models.PartySettings, error)
	Refresh(ctx context.Context) error
}

// RSVPServiceInterface defines the contract for the RSVP workflow.
type RSVPServiceInterface interface {
	SubmitRSVP(ctx context.Context, guestID uuid.UUID, newStatus models.RSVPStatus) (*RSVPResult, error)
	SubmitContact(ctx context.Context, guestID uuid.UUID, email, phone string) (*models.Guest, error)
	SkipContact(ctx context.Context, guestID uuid.UUID) (*RSVPResult, error)
	ResendNotification(ctx context.Context, guestID uuid.UUID, status models.RSVPStatus) (*NotificationOutcome, error)
}

// NotificationServiceInterface defines the contract for organizer
// notifications.
type NotificationServiceInterface interface {
	Notify(ctx context.Context, params NotifyParams) bool
	SendTest(ctx context.Context, recipient string) bool
}

// AdminAuthServiceInterface defines the contract for admin authentication.
type AdminAuthServiceInterface interface {
	Login(ctx context.Context, password string) (string, error)
	ValidateSession(ctx context.Context, token string) error
	Logout(ctx context.Context, token string) error
}
