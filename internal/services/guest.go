package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/henry215/partyrsvp/internal/models"
)

var (
	ErrGuestNotFound = errors.New("guest not found")
	ErrNameRequired  = errors.New("guest name is required")
)

// GuestService persists guest records in PostgreSQL.
type GuestService struct {
	db DB
}

func NewGuestService(db DB) *GuestService {
	return &GuestService{db: db}
}

func (s *GuestService) Create(ctx context.Context, params models.CreateGuestParams) (*models.Guest, error) {
	if params.Name == "" {
		return nil, ErrNameRequired
	}

	guest := &models.Guest{}
	err := s.db.QueryRow(ctx,
		`INSERT INTO guests (name, status)
		 VALUES ($1, $2)
		 RETURNING id, name, status, email, phone, created_at`,
		params.Name, models.StatusPending,
	).Scan(&guest.ID, &guest.Name, &guest.Status, &guest.Email, &guest.Phone, &guest.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating guest: %w", err)
	}

	return guest, nil
}

func (s *GuestService) GetByID(ctx context.Context, id uuid.UUID) (*models.Guest, error) {
	guest := &models.Guest{}
	err := s.db.QueryRow(ctx,
		`SELECT id, name, status, email, phone, created_at
		 FROM guests WHERE id = $1`,
		id,
	).Scan(&guest.ID, &guest.Name, &guest.Status, &guest.Email, &guest.Phone, &guest.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrGuestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting guest by id: %w", err)
	}

	return guest, nil
}

// ListAll returns every guest, newest first.
func (s *GuestService) ListAll(ctx context.Context) ([]*models.Guest, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, status, email, phone, created_at
		 FROM guests
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing guests: %w", err)
	}
	defer rows.Close()

	var guests []*models.Guest
	for rows.Next() {
		guest := &models.Guest{}
		if err := rows.Scan(&guest.ID, &guest.Name, &guest.Status, &guest.Email, &guest.Phone, &guest.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning guest: %w", err)
		}
		guests = append(guests, guest)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating guests: %w", err)
	}

	return guests, nil
}

// UpdateStatus overwrites the guest's RSVP status. Last write wins; no
// optimistic-concurrency check is performed.
func (s *GuestService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.RSVPStatus) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE guests SET status = $1 WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("updating guest status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGuestNotFound
	}

	return nil
}

// UpdateContact overwrites the guest's contact fields. Nil values clear the
// stored field.
func (s *GuestService) UpdateContact(ctx context.Context, id uuid.UUID, params models.UpdateContactParams) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE guests SET email = $1, phone = $2 WHERE id = $3`,
		params.Email, params.Phone, id,
	)
	if err != nil {
		return fmt.Errorf("updating guest contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGuestNotFound
	}

	return nil
}

func (s *GuestService) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM guests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting guest: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGuestNotFound
	}

	return nil
}

// DeleteMany removes the given guests and returns how many rows were deleted.
func (s *GuestService) DeleteMany(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tag, err := s.db.Exec(ctx, `DELETE FROM guests WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("deleting guests: %w", err)
	}

	return int(tag.RowsAffected()), nil
}
