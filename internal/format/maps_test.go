package format

import (
	"net/url"
	"strings"
	"testing"

	"github.com/henry215/partyrsvp/internal/models"
)

func TestGoogleMapsURL_RoundTrip(t *testing.T) {
	settings := &models.PartySettings{
		AddressLine1: "123 Air Park Way",
		AddressLine2: "Suite 4",
		City:         "San Jose",
		State:        "CA",
		ZipCode:      "95134",
	}

	raw := GoogleMapsURL(settings)

	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parsing generated URL: %v", err)
	}
	if parsed.Host != "www.google.com" {
		t.Errorf("unexpected host %q", parsed.Host)
	}
	query := parsed.Query().Get("query")
	if query == "" {
		t.Fatal("expected query parameter")
	}

	// Every supplied component must survive the round trip, in order.
	lower := strings.ToLower(query)
	lastIdx := -1
	for _, part := range []string{"123 Air Park Way", "Suite 4", "San Jose", "CA", "95134"} {
		idx := strings.Index(lower, strings.ToLower(part))
		if idx < 0 {
			t.Errorf("component %q missing from query %q", part, query)
			continue
		}
		if idx < lastIdx {
			t.Errorf("component %q out of order in query %q", part, query)
		}
		lastIdx = idx
	}
}

func TestGoogleMapsURL_SkipsEmptyComponents(t *testing.T) {
	settings := &models.PartySettings{
		AddressLine1: "123 Air Park Way",
		City:         "San Jose",
		State:        "CA",
		ZipCode:      "95134",
	}

	raw := GoogleMapsURL(settings)
	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parsing generated URL: %v", err)
	}
	query := parsed.Query().Get("query")
	if strings.Contains(query, ", ,") || strings.Contains(query, ",,") {
		t.Errorf("empty component leaked into query %q", query)
	}
}

func TestAddressLines(t *testing.T) {
	tests := []struct {
		name     string
		settings models.PartySettings
		expected []string
	}{
		{
			name: "full address",
			settings: models.PartySettings{
				AddressLine1: "123 Air Park Way",
				AddressLine2: "Suite 4",
				City:         "San Jose",
				State:        "CA",
				ZipCode:      "95134",
			},
			expected: []string{"123 Air Park Way", "Suite 4", "San Jose, CA 95134"},
		},
		{
			name: "no second line",
			settings: models.PartySettings{
				AddressLine1: "123 Air Park Way",
				City:         "San Jose",
				State:        "CA",
				ZipCode:      "95134",
			},
			expected: []string{"123 Air Park Way", "San Jose, CA 95134"},
		},
		{
			name:     "empty",
			settings: models.PartySettings{},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddressLines(&tt.settings)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %d lines, got %d: %v", len(tt.expected), len(got), got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("line %d: expected %q, got %q", i, tt.expected[i], got[i])
				}
			}
		})
	}
}
