package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSchedules(t *testing.T) {
	set := DefaultSchedules()

	lease, ok := set.Get("lease-forwarding")
	if !ok {
		t.Fatal("expected built-in lease-forwarding schedule")
	}
	if lease.Fields[0] != "landlord_name" {
		t.Errorf("first field = %q, want landlord_name", lease.Fields[0])
	}
	if len(lease.Fields) != 9 {
		t.Errorf("lease-forwarding field count = %d, want 9", len(lease.Fields))
	}

	if _, ok := set.Get("property-instruction"); !ok {
		t.Error("expected built-in property-instruction schedule")
	}
	if _, ok := set.Get("unknown-type"); ok {
		t.Error("unknown document type must not resolve")
	}
}

func TestLoadSchedulesMissingFileUsesDefaults(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "leasecraft-config-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	set, err := LoadSchedules(tmpDir)
	if err != nil {
		t.Fatalf("missing schedules.yaml must not be an error: %v", err)
	}
	if _, ok := set.Get("lease-forwarding"); !ok {
		t.Error("defaults must survive a missing file")
	}
}

func TestLoadSchedulesFileOverridesBuiltin(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "leasecraft-config-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	yaml := `schedules:
  - doc_type: lease-forwarding
    name: Custom forwarding letter
    fields:
      - tenant_name
      - rent_amount
  - doc_type: licence-to-occupy
    name: Licence to occupy
    fields:
      - landlord_name
      - tenant_name
`
	if err := os.WriteFile(filepath.Join(tmpDir, "schedules.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	set, err := LoadSchedules(tmpDir)
	if err != nil {
		t.Fatalf("LoadSchedules error: %v", err)
	}

	lease, _ := set.Get("lease-forwarding")
	if len(lease.Fields) != 2 || lease.Fields[0] != "tenant_name" {
		t.Errorf("file entry must override built-in, got %+v", lease)
	}

	if _, ok := set.Get("licence-to-occupy"); !ok {
		t.Error("new document types from the file must be added")
	}
	if _, ok := set.Get("property-instruction"); !ok {
		t.Error("untouched built-ins must remain")
	}
}

func TestLoadSchedulesSkipsInvalidEntries(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "leasecraft-config-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	yaml := `schedules:
  - name: No doc type
    fields: [a, b]
  - doc_type: empty-fields
    fields: []
`
	if err := os.WriteFile(filepath.Join(tmpDir, "schedules.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	set, err := LoadSchedules(tmpDir)
	if err != nil {
		t.Fatalf("LoadSchedules error: %v", err)
	}

	if _, ok := set.Get(""); ok {
		t.Error("entry without doc_type must be skipped")
	}
	if _, ok := set.Get("empty-fields"); ok {
		t.Error("entry without fields must be skipped")
	}
}

func TestLoadSchedulesBadYAML(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "leasecraft-config-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	if err := os.WriteFile(filepath.Join(tmpDir, "schedules.yaml"), []byte("{{not yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadSchedules(tmpDir); err == nil {
		t.Error("malformed schedules.yaml must surface an error")
	}
}

func TestDocTypesSorted(t *testing.T) {
	types := DefaultSchedules().DocTypes()
	if len(types) < 2 {
		t.Fatalf("expected at least 2 built-in types, got %v", types)
	}
	for i := 1; i < len(types); i++ {
		if types[i] < types[i-1] {
			t.Errorf("DocTypes not sorted: %v", types)
		}
	}
}
