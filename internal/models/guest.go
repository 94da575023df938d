package models

import (
	"time"

	"github.com/google/uuid"
)

// RSVPStatus is a guest's invitation state. PENDING is the initial state and
// is never re-entered; guests may toggle between ACCEPTED and DECLINED.
type RSVPStatus string

const (
	StatusPending  RSVPStatus = "PENDING"
	StatusAccepted RSVPStatus = "ACCEPTED"
	StatusDeclined RSVPStatus = "DECLINED"
)

// IsDecision reports whether s is a submittable guest decision.
func (s RSVPStatus) IsDecision() bool {
	return s == StatusAccepted || s == StatusDeclined
}

// Valid reports whether s is any known status value.
func (s RSVPStatus) Valid() bool {
	return s == StatusPending || s.IsDecision()
}

// Guest is an invited individual. The id doubles as the invitation link token.
type Guest struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Status    RSVPStatus `json:"status"`
	Email     *string    `json:"email"`
	Phone     *string    `json:"phone"`
	CreatedAt time.Time  `json:"created_at"`
}

type CreateGuestParams struct {
	Name string
}

// UpdateContactParams carries the optional contact fields collected after an
// acceptance. Nil clears the stored value.
type UpdateContactParams struct {
	Email *string
	Phone *string
}
