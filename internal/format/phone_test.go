package format

import "testing"

func TestPhoneNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"ten digits", "4155551234", "(415) 555-1234"},
		{"eleven digits with country code", "14155551234", "(415) 555-1234"},
		{"already formatted", "(415) 555-1234", "(415) 555-1234"},
		{"dashes and spaces", "415-555 1234", "(415) 555-1234"},
		{"too short", "123", "123"},
		{"too long", "441632960961", "441632960961"},
		{"eleven digits without leading one", "24155551234", "24155551234"},
		{"empty", "", ""},
		{"letters only", "call me", "call me"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PhoneNumber(tt.input); got != tt.expected {
				t.Errorf("PhoneNumber(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCanonicalPhone(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"(415) 555-1234", "4155551234"},
		{"+1 415 555 1234", "14155551234"},
		{"4155551234", "4155551234"},
		{"", ""},
		{"no digits", ""},
	}

	for _, tt := range tests {
		if got := CanonicalPhone(tt.input); got != tt.expected {
			t.Errorf("CanonicalPhone(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
