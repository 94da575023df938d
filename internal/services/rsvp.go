package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/henry215/partyrsvp/internal/format"
	"github.com/henry215/partyrsvp/internal/logging"
	"github.com/henry215/partyrsvp/internal/models"
)

// ConfirmationWindow is how long the "just responded" confirmation state stays
// fresh. The expiry is time-based: clients keep showing the confirmation until
// the deadline passes, regardless of navigation.
const ConfirmationWindow = 5 * time.Second

var (
	ErrInvalidStatus = errors.New("status must be ACCEPTED or DECLINED")
	ErrNoRecipients  = errors.New("no notification recipients configured")
)

// GuestStore is the guest persistence surface the workflow needs.
type GuestStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Guest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.RSVPStatus) error
	UpdateContact(ctx context.Context, id uuid.UUID, params models.UpdateContactParams) error
}

// SettingsSource provides the active party settings for recipient fallbacks.
type SettingsSource interface {
	GetLatest(ctx context.Context) (*models.PartySettings, error)
}

// Notifier delivers organizer notifications; best-effort by contract.
type Notifier interface {
	Notify(ctx context.Context, params NotifyParams) bool
}

// RSVPService drives the guest-facing state machine: pending to
// accepted/declined, with revision, contact collection after acceptance, and
// the single organizer notification per decision.
type RSVPService struct {
	guests         GuestStore
	settings       SettingsSource
	notifier       Notifier
	adminEmail     string
	secondaryEmail string
}

func NewRSVPService(guests GuestStore, settings SettingsSource, notifier Notifier, adminEmail, secondaryEmail string) *RSVPService {
	return &RSVPService{
		guests:         guests,
		settings:       settings,
		notifier:       notifier,
		adminEmail:     adminEmail,
		secondaryEmail: secondaryEmail,
	}
}

// RSVPResult describes the outcome of a decision submission.
type RSVPResult struct {
	Guest *models.Guest `json:"guest"`
	// NeedsContact asks the client to present the contact form, pre-populated
	// from Guest.Email/Guest.Phone.
	NeedsContact bool     `json:"needs_contact"`
	EmailSent    bool     `json:"email_sent"`
	Recipients   []string `json:"recipients"`
	// ConfirmationExpiresAt bounds the "just responded" confirmation display.
	ConfirmationExpiresAt time.Time `json:"confirmation_expires_at"`
}

// SubmitRSVP records a guest's decision. The status write must succeed before
// anything else happens; exactly one notification attempt follows it. A
// notification failure never fails the submission.
func (s *RSVPService) SubmitRSVP(ctx context.Context, guestID uuid.UUID, newStatus models.RSVPStatus) (*RSVPResult, error) {
	if !newStatus.IsDecision() {
		return nil, ErrInvalidStatus
	}

	guest, err := s.guests.GetByID(ctx, guestID)
	if err != nil {
		return nil, err
	}

	if err := s.guests.UpdateStatus(ctx, guestID, newStatus); err != nil {
		return nil, err
	}
	guest.Status = newStatus

	recipients := s.resolveRecipients(ctx)
	sent := s.notifier.Notify(ctx, NotifyParams{
		GuestName:    guest.Name,
		GuestID:      guest.ID,
		Status:       newStatus,
		Recipients:   recipients,
		ContactEmail: guest.Email,
		ContactPhone: guest.Phone,
	})

	return &RSVPResult{
		Guest:                 guest,
		NeedsContact:          newStatus == models.StatusAccepted,
		EmailSent:             sent,
		Recipients:            recipients,
		ConfirmationExpiresAt: time.Now().Add(ConfirmationWindow),
	}, nil
}

// SubmitContact stores the contact info collected after an acceptance. Only
// the contact fields change; the status is untouched and no notification is
// fired, so organizers get one alert per decision, not per field write.
func (s *RSVPService) SubmitContact(ctx context.Context, guestID uuid.UUID, email, phone string) (*models.Guest, error) {
	params := models.UpdateContactParams{}
	if email != "" {
		params.Email = &email
	}
	if canonical := format.CanonicalPhone(phone); canonical != "" {
		params.Phone = &canonical
	}

	if err := s.guests.UpdateContact(ctx, guestID, params); err != nil {
		return nil, err
	}

	return s.guests.GetByID(ctx, guestID)
}

// SkipContact finalizes an acceptance without contact info. It re-asserts the
// ACCEPTED status (a same-state no-op by the state machine) and returns a
// fresh confirmation window; no second notification is fired.
func (s *RSVPService) SkipContact(ctx context.Context, guestID uuid.UUID) (*RSVPResult, error) {
	guest, err := s.guests.GetByID(ctx, guestID)
	if err != nil {
		return nil, err
	}

	if err := s.guests.UpdateStatus(ctx, guestID, models.StatusAccepted); err != nil {
		return nil, err
	}
	guest.Status = models.StatusAccepted

	return &RSVPResult{
		Guest:                 guest,
		EmailSent:             false,
		ConfirmationExpiresAt: time.Now().Add(ConfirmationWindow),
	}, nil
}

// NotificationOutcome reports a manual notification dispatch.
type NotificationOutcome struct {
	Success    bool     `json:"success"`
	EmailSent  bool     `json:"emailSent"`
	Recipients []string `json:"recipients"`
}

// ResendNotification re-fires the organizer notification for a guest without
// touching the stored status. Used by the notification API endpoint.
func (s *RSVPService) ResendNotification(ctx context.Context, guestID uuid.UUID, status models.RSVPStatus) (*NotificationOutcome, error) {
	if !status.IsDecision() {
		return nil, ErrInvalidStatus
	}

	guest, err := s.guests.GetByID(ctx, guestID)
	if err != nil {
		return nil, err
	}

	recipients := s.resolveRecipients(ctx)
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}

	sent := s.notifier.Notify(ctx, NotifyParams{
		GuestName:    guest.Name,
		GuestID:      guest.ID,
		Status:       status,
		Recipients:   recipients,
		ContactEmail: guest.Email,
		ContactPhone: guest.Phone,
	})

	return &NotificationOutcome{
		Success:    true,
		EmailSent:  sent,
		Recipients: recipients,
	}, nil
}

// resolveRecipients applies the recipient policy: environment-configured admin
// address falling back to the settings contact email, plus a secondary address
// (same fallback chain) when present and distinct from the primary. The
// dispatcher is handed a final list and never resolves recipients itself.
func (s *RSVPService) resolveRecipients(ctx context.Context) []string {
	var settings *models.PartySettings
	if s.settings != nil {
		var err error
		settings, err = s.settings.GetLatest(ctx)
		if err != nil {
			logging.Warn("Failed to load party settings for recipient resolution", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	primary := s.adminEmail
	if primary == "" && settings != nil {
		primary = settings.ContactEmail
	}
	if primary == "" {
		return nil
	}

	recipients := []string{primary}

	secondary := s.secondaryEmail
	if secondary == "" && settings != nil {
		secondary = settings.SecondaryEmail
	}
	if secondary != "" && secondary != primary {
		recipients = append(recipients, secondary)
	}

	return recipients
}
