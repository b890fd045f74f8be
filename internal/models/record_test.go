package models

import (
	"testing"
	"time"
)

func TestCommencementPhrase(t *testing.T) {
	tests := []struct {
		day  int
		want string
	}{
		{1, "This 1st day of April 2024"},
		{2, "This 2nd day of April 2024"},
		{3, "This 3rd day of April 2024"},
		{4, "This 4th day of April 2024"},
		{11, "This 11th day of April 2024"},
		{12, "This 12th day of April 2024"},
		{13, "This 13th day of April 2024"},
		{21, "This 21st day of April 2024"},
		{22, "This 22nd day of April 2024"},
		{23, "This 23rd day of April 2024"},
		{30, "This 30th day of April 2024"},
	}

	for _, tt := range tests {
		d := time.Date(2024, time.April, tt.day, 0, 0, 0, 0, time.UTC)
		if got := CommencementPhrase(d); got != tt.want {
			t.Errorf("CommencementPhrase(day %d) = %q, want %q", tt.day, got, tt.want)
		}
	}
}

func TestRecordField(t *testing.T) {
	record := &InstructionRecord{
		LandlordName:      "Grove Mead Ltd",
		TenantName:        "J Smith",
		PropertyReference: "GM-1042",
		PropertyAddress:   "4 Mill Lane",
		PostalAddress:     "PO Box 77",
		SiteDescription:   "ground floor unit",
		CommencementDate:  time.Date(2024, time.April, 3, 0, 0, 0, 0, time.UTC),
		TermYears:         5,
		RentAmount:        "£1,200",
	}

	tests := []struct {
		key  string
		want string
	}{
		{"landlord_name", "Grove Mead Ltd"},
		{"tenant_name", "J Smith"},
		{"property_reference", "GM-1042"},
		{"property_address", "4 Mill Lane"},
		{"postal_address", "PO Box 77"},
		{"site_description", "ground floor unit"},
		{"commencement_date", "3 April 2024"},
		{"commencement_phrase", "This 3rd day of April 2024"},
		{"term_years", "5"},
		{"rent_amount", "£1,200"},
	}

	for _, tt := range tests {
		got, ok := record.Field(tt.key)
		if !ok {
			t.Errorf("Field(%q) reported unknown key", tt.key)
			continue
		}
		if got != tt.want {
			t.Errorf("Field(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}

	if _, ok := record.Field("no_such_key"); ok {
		t.Error("unknown key must report ok=false")
	}
}

func TestRecordFieldZeroValues(t *testing.T) {
	record := &InstructionRecord{}

	if got, ok := record.Field("commencement_date"); !ok || got != "" {
		t.Errorf("zero date = (%q, %v), want empty known field", got, ok)
	}
	if got, ok := record.Field("commencement_phrase"); !ok || got != "" {
		t.Errorf("zero phrase = (%q, %v), want empty known field", got, ok)
	}
	if got, ok := record.Field("term_years"); !ok || got != "" {
		t.Errorf("zero term = (%q, %v), want empty known field", got, ok)
	}
}
