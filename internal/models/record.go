package models

import (
	"fmt"
	"strconv"
	"time"
)

// InstructionRecord is the structured input record supplied by the form
// layer. The ordinal auto-fill mapper consumes only the subset of fields a
// document type's schedule names, in the schedule's order.
type InstructionRecord struct {
	LandlordName      string    `yaml:"landlord_name" json:"landlord_name"`
	TenantName        string    `yaml:"tenant_name" json:"tenant_name"`
	PropertyReference string    `yaml:"property_reference" json:"property_reference"`
	PropertyAddress   string    `yaml:"property_address" json:"property_address"`
	PostalAddress     string    `yaml:"postal_address" json:"postal_address"`
	SiteDescription   string    `yaml:"site_description" json:"site_description"`
	CommencementDate  time.Time `yaml:"commencement_date" json:"commencement_date"`
	TermYears         int       `yaml:"term_years" json:"term_years"`
	RentAmount        string    `yaml:"rent_amount" json:"rent_amount"`
}

// Field resolves a schedule field key to its value. Derived keys such as
// commencement_phrase are formatted here so schedules stay flat lists of
// key names. Unknown keys report ok=false.
func (r *InstructionRecord) Field(key string) (string, bool) {
	switch key {
	case "landlord_name":
		return r.LandlordName, true
	case "tenant_name":
		return r.TenantName, true
	case "property_reference":
		return r.PropertyReference, true
	case "property_address":
		return r.PropertyAddress, true
	case "postal_address":
		return r.PostalAddress, true
	case "site_description":
		return r.SiteDescription, true
	case "commencement_date":
		if r.CommencementDate.IsZero() {
			return "", true
		}
		return r.CommencementDate.Format("2 January 2006"), true
	case "commencement_phrase":
		if r.CommencementDate.IsZero() {
			return "", true
		}
		return CommencementPhrase(r.CommencementDate), true
	case "term_years":
		if r.TermYears == 0 {
			return "", true
		}
		return strconv.Itoa(r.TermYears), true
	case "rent_amount":
		return r.RentAmount, true
	default:
		return "", false
	}
}

// CommencementPhrase formats a date in the deed style used by the lease
// boilerplate, e.g. "This 3rd day of April 2024".
func CommencementPhrase(t time.Time) string {
	return fmt.Sprintf("This %s day of %s %d", ordinal(t.Day()), t.Month().String(), t.Year())
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
		// teens always take "th"
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
