package services

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"

	"github.com/henry215/partyrsvp/internal/config"
	"github.com/henry215/partyrsvp/internal/format"
	"github.com/henry215/partyrsvp/internal/logging"
	"github.com/henry215/partyrsvp/internal/models"
)

// Email represents an email to be sent.
type Email struct {
	From     string
	FromName string
	To       []string
	Subject  string
	HTML     string
	Text     string
}

// EmailProvider is the interface for sending emails.
type EmailProvider interface {
	Send(ctx context.Context, email *Email) error
}

// NotifyParams describes one RSVP notification to organizers.
type NotifyParams struct {
	GuestName    string
	GuestID      uuid.UUID
	Status       models.RSVPStatus
	Recipients   []string
	ContactEmail *string
	ContactPhone *string
}

// NotificationService delivers best-effort RSVP notifications. Failures are
// logged and reported as false; they never propagate to the caller, because
// the guest's RSVP is already durably recorded by the time Notify runs.
type NotificationService struct {
	provider    EmailProvider
	fromAddress string
	fromName    string
	baseURL     string
}

// NewNotificationService builds the service with a provider selected by
// configuration: resend, smtp (Mailpit in local dev), or console. A resend
// configuration without an API key leaves the provider unset, so Notify
// soft-fails rather than erroring.
func NewNotificationService(cfg *config.EmailConfig, baseURL string) *NotificationService {
	var provider EmailProvider

	switch cfg.Provider {
	case "resend":
		if cfg.ResendAPIKey != "" {
			provider = NewResendProvider(cfg.ResendAPIKey)
		}
	case "smtp":
		provider = NewSMTPProvider(cfg.SMTPHost, cfg.SMTPPort)
	default:
		provider = NewConsoleProvider()
	}

	return &NotificationService{
		provider:    provider,
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		baseURL:     strings.TrimRight(baseURL, "/"),
	}
}

// Notify sends one notification email. It returns true only on a confirmed
// provider-accepted send; any precondition failure or provider error returns
// false.
func (s *NotificationService) Notify(ctx context.Context, params NotifyParams) bool {
	if s.provider == nil {
		logging.Warn("Email provider not configured; notification not sent", map[string]interface{}{
			"guest_id": params.GuestID.String(),
		})
		return false
	}

	recipients := dedupeAddresses(params.Recipients)
	if len(recipients) == 0 {
		logging.Warn("No recipients resolved; notification not sent", map[string]interface{}{
			"guest_id": params.GuestID.String(),
		})
		return false
	}

	// The original deployment had no verified sender and reused the first
	// recipient as the from address; keep that only as a fallback.
	from := s.fromAddress
	if from == "" {
		from = recipients[0]
	}

	statusText := "declined"
	statusGlyph := "❌"
	if params.Status == models.StatusAccepted {
		statusText = "accepted"
		statusGlyph = "✅"
	}

	dashboardURL := s.baseURL + "/admin/dashboard"
	guestURL := s.baseURL + "/admin/guest/" + params.GuestID.String()

	subject := fmt.Sprintf("RSVP Update: %s has %s the invitation %s", params.GuestName, statusText, statusGlyph)
	text := renderNotificationText(params, statusText, dashboardURL, guestURL)
	html := renderNotificationHTML(params, statusText, statusGlyph, dashboardURL, guestURL)

	email := &Email{
		From:     from,
		FromName: s.fromName,
		To:       recipients,
		Subject:  subject,
		HTML:     html,
		Text:     text,
	}

	if err := s.provider.Send(ctx, email); err != nil {
		logging.Error("Failed to send RSVP notification", map[string]interface{}{
			"guest_id":   params.GuestID.String(),
			"status":     string(params.Status),
			"recipients": recipients,
			"error":      err.Error(),
		})
		return false
	}

	logging.Info("RSVP notification sent", map[string]interface{}{
		"guest_id":   params.GuestID.String(),
		"status":     string(params.Status),
		"recipients": recipients,
	})
	return true
}

// SendTest delivers a short diagnostic message so an admin can verify the
// email configuration end to end.
func (s *NotificationService) SendTest(ctx context.Context, recipient string) bool {
	if s.provider == nil || recipient == "" {
		return false
	}

	from := s.fromAddress
	if from == "" {
		from = recipient
	}

	email := &Email{
		From:     from,
		FromName: s.fromName,
		To:       []string{recipient},
		Subject:  "Party RSVP test email",
		Text:     "This is a test email from the Party RSVP server. If you can read this, email delivery is configured correctly.",
		HTML:     "<p>This is a test email from the Party RSVP server. If you can read this, email delivery is configured correctly.</p>",
	}

	if err := s.provider.Send(ctx, email); err != nil {
		logging.Error("Test email failed", map[string]interface{}{
			"recipient": recipient,
			"error":     err.Error(),
		})
		return false
	}
	return true
}

func dedupeAddresses(addrs []string) []string {
	seen := make(map[string]bool, len(addrs))
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		key := strings.ToLower(strings.TrimSpace(a))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, strings.TrimSpace(a))
	}
	return out
}

func contactBlockText(params NotifyParams) string {
	var b strings.Builder
	if params.ContactEmail != nil && *params.ContactEmail != "" {
		fmt.Fprintf(&b, "Email: %s\n", *params.ContactEmail)
	}
	if params.ContactPhone != nil && *params.ContactPhone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", format.PhoneNumber(*params.ContactPhone))
	}
	if b.Len() == 0 {
		return ""
	}
	return "\nContact Information:\n" + b.String()
}

func renderNotificationText(params NotifyParams, statusText, dashboardURL, guestURL string) string {
	return fmt.Sprintf(`Hello,

%s has %s the invitation.%s

You can view all RSVPs on the dashboard: %s
Or view this guest's details: %s

This is an automated notification.
`, params.GuestName, statusText, contactBlockText(params), dashboardURL, guestURL)
}

func renderNotificationHTML(params NotifyParams, statusText, statusGlyph, dashboardURL, guestURL string) string {
	contactBlock := ""
	hasEmail := params.ContactEmail != nil && *params.ContactEmail != ""
	hasPhone := params.ContactPhone != nil && *params.ContactPhone != ""
	if hasEmail || hasPhone {
		var b strings.Builder
		b.WriteString(`<div style="margin-top: 25px; background-color: #f9f9f9; padding: 20px; border-radius: 8px; border-left: 4px solid #FF4E9D;">`)
		b.WriteString(`<h3 style="margin-top: 0; color: #555;">Contact Information:</h3>`)
		if hasEmail {
			fmt.Fprintf(&b, `<p><strong>Email:</strong> %s</p>`, *params.ContactEmail)
		}
		if hasPhone {
			fmt.Fprintf(&b, `<p><strong>Phone:</strong> %s</p>`, format.PhoneNumber(*params.ContactPhone))
		}
		b.WriteString(`</div>`)
		contactBlock = b.String()
	}

	statusColor := "#F44336"
	if statusText == "accepted" {
		statusColor = "#4CAF50"
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: 'Helvetica Neue', Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #6B2FBE; font-size: 24px;">RSVP Update</h1>

  <p style="font-weight: bold; font-size: 20px;">%s</p>
  <p>has <span style="font-weight: bold; color: %s;">%s</span> the invitation. %s</p>

  %s

  <div style="margin-top: 30px;">
    <a href="%s" style="display: inline-block; background-color: #FF4E9D; color: white; padding: 12px 20px; text-decoration: none; border-radius: 6px; margin-right: 5px;">View All RSVPs</a>
    <a href="%s" style="display: inline-block; background-color: #FF4E9D; color: white; padding: 12px 20px; text-decoration: none; border-radius: 6px;">View Guest Details</a>
  </div>

  <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
  <p style="color: #999; font-size: 12px;">This is an automated notification from the Party RSVP system.</p>
</body>
</html>`, params.GuestName, statusColor, statusText, statusGlyph, contactBlock, dashboardURL, guestURL)
}

// ResendProvider sends emails using the Resend API.
type ResendProvider struct {
	client *resend.Client
}

func NewResendProvider(apiKey string) *ResendProvider {
	return &ResendProvider{
		client: resend.NewClient(apiKey),
	}
}

func (p *ResendProvider) Send(ctx context.Context, email *Email) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", email.FromName, email.From),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
	}

	_, err := p.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("sending email via Resend: %w", err)
	}

	return nil
}

// SMTPProvider sends emails via SMTP (for Mailpit in local dev).
type SMTPProvider struct {
	host string
	port int
}

func NewSMTPProvider(host string, port int) *SMTPProvider {
	return &SMTPProvider{host: host, port: port}
}

func (p *SMTPProvider) Send(ctx context.Context, email *Email) error {
	addr := fmt.Sprintf("%s:%d", p.host, p.port)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s <%s>\r\n", email.FromName, email.From)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(email.To, ", "))
	fmt.Fprintf(&buf, "Subject: %s\r\n", email.Subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(email.HTML)

	if err := smtp.SendMail(addr, nil, email.From, email.To, buf.Bytes()); err != nil {
		return fmt.Errorf("sending email via SMTP: %w", err)
	}

	return nil
}

// ConsoleProvider logs emails to stdout (for development).
type ConsoleProvider struct{}

func NewConsoleProvider() *ConsoleProvider {
	return &ConsoleProvider{}
}

func (p *ConsoleProvider) Send(ctx context.Context, email *Email) error {
	fmt.Printf("\n=== EMAIL ===\n")
	fmt.Printf("From: %s <%s>\n", email.FromName, email.From)
	fmt.Printf("To: %s\n", strings.Join(email.To, ", "))
	fmt.Printf("Subject: %s\n", email.Subject)
	fmt.Printf("---\n%s\n=============\n\n", email.Text)
	return nil
}
