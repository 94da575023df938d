package models

// PartySettings is the singleton venue/schedule/contact record. When multiple
// rows exist the lowest id wins; the anomaly is tolerated, not prevented.
type PartySettings struct {
	ID                   int64  `json:"id,omitempty"`
	VenueName            string `json:"venue_name"`
	AddressLine1         string `json:"address_line1"`
	AddressLine2         string `json:"address_line2,omitempty"`
	City                 string `json:"city"`
	State                string `json:"state"`
	ZipCode              string `json:"zip_code"`
	GoogleMapsURL        string `json:"google_maps_url,omitempty"`
	ContactName          string `json:"contact_name,omitempty"`
	ContactEmail         string `json:"contact_email,omitempty"`
	ContactPhone         string `json:"contact_phone,omitempty"`
	SecondaryContactName string `json:"secondary_contact_name,omitempty"`
	SecondaryEmail       string `json:"secondary_email,omitempty"`
	SecondaryPhone       string `json:"secondary_phone,omitempty"`
	PartyDate            string `json:"party_date"`
	PartyTime            string `json:"party_time"`
	PartyEndTime         string `json:"party_end_time"`
	WaiverURL            string `json:"waiver_url,omitempty"`
}

// DefaultPartySettings returns the record served when no settings row exists
// yet, so the invitation page always has something to render.
func DefaultPartySettings() *PartySettings {
	return &PartySettings{
		VenueName:    "Urban Air Trampoline Park",
		AddressLine1: "123 Air Park Way",
		City:         "San Jose",
		State:        "CA",
		ZipCode:      "95134",
		ContactName:  "Sophia's Parents",
		PartyDate:    "Saturday, June 7, 2025",
		PartyTime:    "10:00 AM",
		PartyEndTime: "12:00 PM",
	}
}
