package format

import (
	"net/url"
	"strings"

	"github.com/henry215/partyrsvp/internal/models"
)

// GoogleMapsURL builds a maps search link from the non-empty address
// components, in street-to-zip order.
func GoogleMapsURL(s *models.PartySettings) string {
	parts := make([]string, 0, 5)
	for _, p := range []string{s.AddressLine1, s.AddressLine2, s.City, s.State, s.ZipCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	query := url.QueryEscape(strings.Join(parts, ", "))
	return "https://www.google.com/maps/search/?api=1&query=" + query
}

// AddressLines returns the display lines for an address, skipping empty
// components.
func AddressLines(s *models.PartySettings) []string {
	lines := make([]string, 0, 3)
	if s.AddressLine1 != "" {
		lines = append(lines, s.AddressLine1)
	}
	if s.AddressLine2 != "" {
		lines = append(lines, s.AddressLine2)
	}
	if s.City != "" || s.State != "" || s.ZipCode != "" {
		cityLine := s.City
		if s.State != "" || s.ZipCode != "" {
			cityLine = strings.TrimSpace(cityLine + ", " + strings.TrimSpace(s.State+" "+s.ZipCode))
			cityLine = strings.TrimPrefix(cityLine, ", ")
		}
		lines = append(lines, cityLine)
	}
	return lines
}
