package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/henry215/partyrsvp/internal/models"
)

func TestSettingsGetLatest_DefaultsWhenEmpty(t *testing.T) {
	svc := NewSettingsService(&fakeDB{}, nil)

	settings, err := svc.GetLatest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	defaults := models.DefaultPartySettings()
	if settings.VenueName != defaults.VenueName {
		t.Errorf("expected default venue %q, got %q", defaults.VenueName, settings.VenueName)
	}
	if settings.ID != 0 {
		t.Errorf("defaults must not carry a row id, got %d", settings.ID)
	}
}

func TestSettingsGetLatest_CacheMissFillsCache(t *testing.T) {
	cache := newFakeKV()
	queries := 0
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			queries++
			return rowFromValues(
				int64(1), "The Venue", "1 Main St", "", "Springfield", "IL", "62704",
				"https://maps.example.com", "Host", "host@example.com", "5551234567",
				"", "", "",
				"Saturday, June 7, 2025", "3:00 PM", "5:00 PM", "",
			)
		},
	}
	svc := NewSettingsService(db, cache)

	settings, err := svc.GetLatest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.VenueName != "The Venue" {
		t.Errorf("unexpected venue %q", settings.VenueName)
	}
	if queries != 1 {
		t.Fatalf("expected 1 query, got %d", queries)
	}

	// Second read is served from the cache.
	settings, err = svc.GetLatest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.ContactEmail != "host@example.com" {
		t.Errorf("unexpected cached contact email %q", settings.ContactEmail)
	}
	if queries != 1 {
		t.Errorf("expected cached read, got %d queries", queries)
	}
	if cache.ttls[settingsCacheKey] != settingsCacheTTL {
		t.Errorf("unexpected cache TTL %v", cache.ttls[settingsCacheKey])
	}
}

func TestSettingsGetLatest_CorruptCacheFallsThrough(t *testing.T) {
	cache := newFakeKV()
	cache.data[settingsCacheKey] = "{not json"

	svc := NewSettingsService(&fakeDB{}, cache)
	settings, err := svc.GetLatest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.VenueName == "" {
		t.Error("expected defaults after corrupt cache entry")
	}
}

func TestSettingsGetLatest_CacheErrorIgnored(t *testing.T) {
	cache := newFakeKV()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")

	svc := NewSettingsService(&fakeDB{}, cache)
	if _, err := svc.GetLatest(context.Background()); err != nil {
		t.Fatalf("cache failure leaked to caller: %v", err)
	}
}

func TestSettingsRefresh(t *testing.T) {
	cache := newFakeKV()
	data, _ := json.Marshal(models.DefaultPartySettings())
	cache.data[settingsCacheKey] = string(data)

	svc := NewSettingsService(&fakeDB{}, cache)
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cache.data[settingsCacheKey]; ok {
		t.Error("expected cache entry dropped")
	}
}

func TestSettingsUpsert_Validation(t *testing.T) {
	svc := NewSettingsService(&fakeDB{}, nil)

	settings := models.DefaultPartySettings()
	settings.ContactEmail = ""

	_, err := svc.Upsert(context.Background(), settings)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "contact_email" {
		t.Errorf("unexpected field %q", verr.Field)
	}
}

func TestSettingsUpsert_InsertRecomputesMapsURL(t *testing.T) {
	cache := newFakeKV()
	cache.data[settingsCacheKey] = "stale"

	var insertSQL string
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			insertSQL = sql
			return rowFromValues(int64(7))
		},
	}
	svc := NewSettingsService(db, cache)

	settings := &models.PartySettings{
		VenueName:     "The Venue",
		AddressLine1:  "1 Main St",
		City:          "Springfield",
		State:         "IL",
		ZipCode:       "62704",
		ContactEmail:  "host@example.com",
		GoogleMapsURL: "https://stale.example.com",
	}

	saved, err := svc.Upsert(context.Background(), settings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ID != 7 {
		t.Errorf("expected assigned id 7, got %d", saved.ID)
	}
	if insertSQL == "" {
		t.Fatal("expected an INSERT")
	}
	if saved.GoogleMapsURL == "https://stale.example.com" {
		t.Error("maps URL must be recomputed from the address fields")
	}
	if _, ok := cache.data[settingsCacheKey]; ok {
		t.Error("expected cache invalidated after save")
	}
}

func TestSettingsUpsert_UpdateExisting(t *testing.T) {
	var execSQL string
	db := &fakeDB{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			execSQL = sql
			return pgconn.NewCommandTag("UPDATE 1"), nil
		},
	}
	svc := NewSettingsService(db, nil)

	settings := models.DefaultPartySettings()
	settings.ID = 3
	settings.VenueName = "New Venue"
	settings.ContactEmail = "host@example.com"

	saved, err := svc.Upsert(context.Background(), settings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ID != 3 {
		t.Errorf("id changed to %d", saved.ID)
	}
	if execSQL == "" {
		t.Fatal("expected an UPDATE")
	}
}
