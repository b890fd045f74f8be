// Package config manages document-type configuration for the library.
//
// A schedule is the fixed, ordered sequence of record field keys the ordinal
// auto-fill mapper consumes for one document type. Built-in schedules cover
// the standard lease paperwork; a schedules.yaml in the library root can
// override or extend them without a rebuild.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Schedule is the ordered field list for one document type. Field keys are
// resolved against the instruction record at fill time; the schedule length
// may differ from the number of blanks a given template produces.
type Schedule struct {
	DocType string   `yaml:"doc_type"`
	Name    string   `yaml:"name"`
	Fields  []string `yaml:"fields"`
}

// ScheduleSet holds the active schedules keyed by document type.
type ScheduleSet struct {
	schedules map[string]Schedule
}

// DefaultSchedules returns the built-in document types. The lease-forwarding
// order matches the boilerplate the templates were written against: blanks
// appear in exactly this sequence, with the lease term appearing twice.
func DefaultSchedules() *ScheduleSet {
	builtin := []Schedule{
		{
			DocType: "lease-forwarding",
			Name:    "Lease forwarding letter",
			Fields: []string{
				"landlord_name",
				"property_reference",
				"commencement_phrase",
				"property_address",
				"commencement_date",
				"site_description",
				"postal_address",
				"term_years",
				"term_years",
			},
		},
		{
			DocType: "property-instruction",
			Name:    "Property instruction form",
			Fields: []string{
				"landlord_name",
				"tenant_name",
				"property_reference",
				"property_address",
				"commencement_date",
				"term_years",
				"rent_amount",
			},
		},
	}

	set := &ScheduleSet{schedules: make(map[string]Schedule, len(builtin))}
	for _, s := range builtin {
		set.schedules[s.DocType] = s
	}
	return set
}

// scheduleFile is the on-disk YAML shape.
type scheduleFile struct {
	Schedules []Schedule `yaml:"schedules"`
}

// LoadSchedules returns the defaults merged with any schedules.yaml found in
// baseDir. File entries win over built-ins with the same doc type. A missing
// file is not an error.
func LoadSchedules(baseDir string) (*ScheduleSet, error) {
	set := DefaultSchedules()

	path := filepath.Join(baseDir, "schedules.yaml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return set, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read schedules file: %w", err)
	}

	var file scheduleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse schedules file: %w", err)
	}

	for _, s := range file.Schedules {
		if s.DocType == "" || len(s.Fields) == 0 {
			fmt.Fprintf(os.Stderr, "Warning: skipping schedule with missing doc_type or fields in %s\n", path)
			continue
		}
		set.schedules[s.DocType] = s
	}
	return set, nil
}

// Get returns the schedule for a document type.
func (s *ScheduleSet) Get(docType string) (Schedule, bool) {
	sched, ok := s.schedules[docType]
	return sched, ok
}

// DocTypes lists the known document types in stable order.
func (s *ScheduleSet) DocTypes() []string {
	types := make([]string, 0, len(s.schedules))
	for t := range s.schedules {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
