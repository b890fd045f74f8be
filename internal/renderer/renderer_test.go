package renderer

import (
	"reflect"
	"testing"

	"github.com/grovemead/leasecraft/internal/models"
)

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name string
		text string
		vars map[string]string
		want string
	}{
		{
			name: "known key",
			text: "Dear {{tenant_name}},",
			vars: map[string]string{"tenant_name": "J Smith"},
			want: "Dear J Smith,",
		},
		{
			name: "missing key falls back to bracketed name",
			text: "Tenant: {{tenant_name}}",
			vars: map[string]string{},
			want: "Tenant: [tenant_name]",
		},
		{
			name: "empty value treated as missing",
			text: "Ref: {{reference}}",
			vars: map[string]string{"reference": ""},
			want: "Ref: [reference]",
		},
		{
			name: "whitespace inside braces tolerated",
			text: "Rent: {{ rent_amount }}",
			vars: map[string]string{"rent_amount": "£1,200"},
			want: "Rent: £1,200",
		},
		{
			name: "repeated token substituted globally",
			text: "{{term}} years, renewable for {{term}} more",
			vars: map[string]string{"term": "5"},
			want: "5 years, renewable for 5 more",
		},
		{
			name: "case sensitive keys",
			text: "{{Name}}",
			vars: map[string]string{"name": "lower"},
			want: "[Name]",
		},
		{
			name: "no tokens",
			text: "plain text",
			vars: map[string]string{"a": "b"},
			want: "plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Substitute(tt.text, tt.vars); got != tt.want {
				t.Errorf("Substitute() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSubstituteIsSinglePass(t *testing.T) {
	got := Substitute("Value: {{outer}}", map[string]string{
		"outer": "{{inner}}",
		"inner": "should not appear",
	})

	if got != "Value: {{inner}}" {
		t.Errorf("substitution must not recurse into values, got %q", got)
	}
}

func TestKeys(t *testing.T) {
	keys := Keys("A {{first}} then {{second}} and {{first}} again")

	want := []string{"first", "second"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("Keys() = %v, want %v", keys, want)
	}
}

func TestRenderTextUsesDeclaredDefaults(t *testing.T) {
	tmpl := &models.Template{
		Content: "Landlord: {{landlord}}\nTenant: {{tenant}}",
		Variables: []models.Variable{
			{Name: "landlord", Default: "Grove Mead Ltd"},
			{Name: "tenant", Required: true},
		},
	}

	got := NewRenderer(tmpl).RenderText(map[string]string{})
	want := "Landlord: Grove Mead Ltd\nTenant: [tenant]"
	if got != want {
		t.Errorf("RenderText() = %q, want %q", got, want)
	}

	// Caller values beat declared defaults.
	got = NewRenderer(tmpl).RenderText(map[string]string{"landlord": "Other Ltd"})
	if got != "Landlord: Other Ltd\nTenant: [tenant]" {
		t.Errorf("caller value must override default, got %q", got)
	}
}
