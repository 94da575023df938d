package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/henry215/partyrsvp/internal/models"
	"github.com/henry215/partyrsvp/internal/services"
)

type mockGuestService struct {
	CreateFunc        func(ctx context.Context, params models.CreateGuestParams) (*models.Guest, error)
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*models.Guest, error)
	ListAllFunc       func(ctx context.Context) ([]*models.Guest, error)
	UpdateStatusFunc  func(ctx context.Context, id uuid.UUID, status models.RSVPStatus) error
	UpdateContactFunc func(ctx context.Context, id uuid.UUID, params models.UpdateContactParams) error
	DeleteFunc        func(ctx context.Context, id uuid.UUID) error
	DeleteManyFunc    func(ctx context.Context, ids []uuid.UUID) (int, error)
}

func (m *mockGuestService) Create(ctx context.Context, params models.CreateGuestParams) (*models.Guest, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockGuestService) GetByID(ctx context.Context, id uuid.UUID) (*models.Guest, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, services.ErrGuestNotFound
}

func (m *mockGuestService) ListAll(ctx context.Context) ([]*models.Guest, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockGuestService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.RSVPStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockGuestService) UpdateContact(ctx context.Context, id uuid.UUID, params models.UpdateContactParams) error {
	if m.UpdateContactFunc != nil {
		return m.UpdateContactFunc(ctx, id, params)
	}
	return nil
}

func (m *mockGuestService) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockGuestService) DeleteMany(ctx context.Context, ids []uuid.UUID) (int, error) {
	if m.DeleteManyFunc != nil {
		return m.DeleteManyFunc(ctx, ids)
	}
	return len(ids), nil
}

type mockSettingsService struct {
	GetLatestFunc func(ctx context.Context) (*models.PartySettings, error)
	UpsertFunc    func(ctx context.Context, settings *models.PartySettings) (*models.PartySettings, error)
	RefreshFunc   func(ctx context.Context) error
}

func (m *mockSettingsService) GetLatest(ctx context.Context) (*models.PartySettings, error) {
	if m.GetLatestFunc != nil {
		return m.GetLatestFunc(ctx)
	}
	return models.DefaultPartySettings(), nil
}

func (m *mockSettingsService) Upsert(ctx context.Context, settings *models.PartySettings) (*models.PartySettings, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, settings)
	}
	return settings, nil
}

func (m *mockSettingsService) Refresh(ctx context.Context) error {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx)
	}
	return nil
}

type mockRSVPService struct {
	SubmitRSVPFunc         func(ctx context.Context, guestID uuid.UUID, newStatus models.RSVPStatus) (*services.RSVPResult, error)
	SubmitContactFunc      func(ctx context.Context, guestID uuid.UUID, email, phone string) (*models.Guest, error)
	SkipContactFunc        func(ctx context.Context, guestID uuid.UUID) (*services.RSVPResult, error)
	ResendNotificationFunc func(ctx context.Context, guestID uuid.UUID, status models.RSVPStatus) (*services.NotificationOutcome, error)
}

func (m *mockRSVPService) SubmitRSVP(ctx context.Context, guestID uuid.UUID, newStatus models.RSVPStatus) (*services.RSVPResult, error) {
	if m.SubmitRSVPFunc != nil {
		return m.SubmitRSVPFunc(ctx, guestID, newStatus)
	}
	return nil, nil
}

func (m *mockRSVPService) SubmitContact(ctx context.Context, guestID uuid.UUID, email, phone string) (*models.Guest, error) {
	if m.SubmitContactFunc != nil {
		return m.SubmitContactFunc(ctx, guestID, email, phone)
	}
	return nil, nil
}

func (m *mockRSVPService) SkipContact(ctx context.Context, guestID uuid.UUID) (*services.RSVPResult, error) {
	if m.SkipContactFunc != nil {
		return m.SkipContactFunc(ctx, guestID)
	}
	return nil, nil
}

func (m *mockRSVPService) ResendNotification(ctx context.Context, guestID uuid.UUID, status models.RSVPStatus) (*services.NotificationOutcome, error) {
	if m.ResendNotificationFunc != nil {
		return m.ResendNotificationFunc(ctx, guestID, status)
	}
	return nil, nil
}

type mockNotificationService struct {
	NotifyFunc   func(ctx context.Context, params services.NotifyParams) bool
	SendTestFunc func(ctx context.Context, recipient string) bool
}

func (m *mockNotificationService) Notify(ctx context.Context, params services.NotifyParams) bool {
	if m.NotifyFunc != nil {
		return m.NotifyFunc(ctx, params)
	}
	return true
}

func (m *mockNotificationService) SendTest(ctx context.Context, recipient string) bool {
	if m.SendTestFunc != nil {
		return m.SendTestFunc(ctx, recipient)
	}
	return true
}

type mockAdminAuthService struct {
	LoginFunc           func(ctx context.Context, password string) (string, error)
	ValidateSessionFunc func(ctx context.Context, token string) error
	LogoutFunc          func(ctx context.Context, token string) error
}

func (m *mockAdminAuthService) Login(ctx context.Context, password string) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, password)
	}
	return "token", nil
}

func (m *mockAdminAuthService) ValidateSession(ctx context.Context, token string) error {
	if m.ValidateSessionFunc != nil {
		return m.ValidateSessionFunc(ctx, token)
	}
	return nil
}

func (m *mockAdminAuthService) Logout(ctx context.Context, token string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}
