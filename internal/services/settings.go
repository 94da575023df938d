package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/henry215/partyrsvp/internal/format"
	"github.com/henry215/partyrsvp/internal/logging"
	"github.com/henry215/partyrsvp/internal/models"
)

const (
	settingsCacheKey = "party:settings"
	settingsCacheTTL = 5 * time.Minute
)

// ValidationError reports a missing or malformed settings field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("settings field %q is required", e.Field)
}

// SettingsService reads and writes the singleton party settings record. Reads
// go through a Redis cache with a short TTL so the invitation page does not
// hit PostgreSQL on every load; Refresh invalidates the cache explicitly.
type SettingsService struct {
	db    DB
	cache KV
}

func NewSettingsService(db DB, cache KV) *SettingsService {
	return &SettingsService{db: db, cache: cache}
}

const settingsColumns = `id, venue_name, address_line1, address_line2, city, state, zip_code,
	 google_maps_url, contact_name, contact_email, contact_phone,
	 secondary_contact_name, secondary_email, secondary_phone,
	 party_date, party_time, party_end_time, waiver_url`

// GetLatest returns the active settings record: the lowest-id row, or the
// built-in defaults when no row exists. It never fails the caller over a cache
// problem; only a database error is surfaced.
func (s *SettingsService) GetLatest(ctx context.Context) (*models.PartySettings, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, settingsCacheKey); err == nil {
			settings := &models.PartySettings{}
			if err := json.Unmarshal([]byte(cached), settings); err == nil {
				return settings, nil
			}
			// Corrupt cache entry; fall through to the database
			_ = s.cache.Del(ctx, settingsCacheKey)
		}
	}

	settings, err := s.fetchLatest(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(settings); err == nil {
			if err := s.cache.Set(ctx, settingsCacheKey, string(data), settingsCacheTTL); err != nil {
				logging.Warn("Failed to cache party settings", map[string]interface{}{"error": err.Error()})
			}
		}
	}

	return settings, nil
}

func (s *SettingsService) fetchLatest(ctx context.Context) (*models.PartySettings, error) {
	settings := &models.PartySettings{}
	err := s.db.QueryRow(ctx,
		`SELECT `+settingsColumns+`
		 FROM party_settings
		 ORDER BY id ASC
		 LIMIT 1`,
	).Scan(
		&settings.ID, &settings.VenueName, &settings.AddressLine1, &settings.AddressLine2,
		&settings.City, &settings.State, &settings.ZipCode,
		&settings.GoogleMapsURL, &settings.ContactName, &settings.ContactEmail, &settings.ContactPhone,
		&settings.SecondaryContactName, &settings.SecondaryEmail, &settings.SecondaryPhone,
		&settings.PartyDate, &settings.PartyTime, &settings.PartyEndTime, &settings.WaiverURL,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return models.DefaultPartySettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching party settings: %w", err)
	}

	return settings, nil
}

// Refresh drops the cached settings so the next read hits the database.
func (s *SettingsService) Refresh(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Del(ctx, settingsCacheKey)
}

// Upsert validates and saves the settings record, recomputing the maps URL
// from the address fields. Updates in place when the record has an id, inserts
// otherwise, and invalidates the cache on success.
func (s *SettingsService) Upsert(ctx context.Context, settings *models.PartySettings) (*models.PartySettings, error) {
	if err := validateSettings(settings); err != nil {
		return nil, err
	}

	settings.GoogleMapsURL = format.GoogleMapsURL(settings)

	var err error
	if settings.ID > 0 {
		err = s.update(ctx, settings)
	} else {
		err = s.insert(ctx, settings)
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, settingsCacheKey); err != nil {
			logging.Warn("Failed to invalidate settings cache", map[string]interface{}{"error": err.Error()})
		}
	}

	return settings, nil
}

func (s *SettingsService) insert(ctx context.Context, settings *models.PartySettings) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO party_settings (
			venue_name, address_line1, address_line2, city, state, zip_code,
			google_maps_url, contact_name, contact_email, contact_phone,
			secondary_contact_name, secondary_email, secondary_phone,
			party_date, party_time, party_end_time, waiver_url
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		 RETURNING id`,
		settings.VenueName, settings.AddressLine1, settings.AddressLine2,
		settings.City, settings.State, settings.ZipCode,
		settings.GoogleMapsURL, settings.ContactName, settings.ContactEmail, settings.ContactPhone,
		settings.SecondaryContactName, settings.SecondaryEmail, settings.SecondaryPhone,
		settings.PartyDate, settings.PartyTime, settings.PartyEndTime, settings.WaiverURL,
	).Scan(&settings.ID)
	if err != nil {
		return fmt.Errorf("inserting party settings: %w", err)
	}
	return nil
}

func (s *SettingsService) update(ctx context.Context, settings *models.PartySettings) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE party_settings SET
			venue_name = $1, address_line1 = $2, address_line2 = $3,
			city = $4, state = $5, zip_code = $6,
			google_maps_url = $7, contact_name = $8, contact_email = $9, contact_phone = $10,
			secondary_contact_name = $11, secondary_email = $12, secondary_phone = $13,
			party_date = $14, party_time = $15, party_end_time = $16, waiver_url = $17,
			updated_at = NOW()
		 WHERE id = $18`,
		settings.VenueName, settings.AddressLine1, settings.AddressLine2,
		settings.City, settings.State, settings.ZipCode,
		settings.GoogleMapsURL, settings.ContactName, settings.ContactEmail, settings.ContactPhone,
		settings.SecondaryContactName, settings.SecondaryEmail, settings.SecondaryPhone,
		settings.PartyDate, settings.PartyTime, settings.PartyEndTime, settings.WaiverURL,
		settings.ID,
	)
	if err != nil {
		return fmt.Errorf("updating party settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("party settings record %d not found", settings.ID)
	}
	return nil
}

func validateSettings(settings *models.PartySettings) error {
	required := []struct {
		field string
		value string
	}{
		{"venue_name", settings.VenueName},
		{"address_line1", settings.AddressLine1},
		{"city", settings.City},
		{"state", settings.State},
		{"zip_code", settings.ZipCode},
		{"contact_email", settings.ContactEmail},
	}
	for _, r := range required {
		if r.value == "" {
			return &ValidationError{Field: r.field}
		}
	}
	return nil
}
