package ui

import (
	"reflect"
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

// Every KeyMap field must carry an actual binding. An unassigned field
// would render as an empty help entry and match no key press.
func TestKeyMapFieldsAreBound(t *testing.T) {
	v := reflect.ValueOf(keys)
	typ := v.Type()

	for i := 0; i < v.NumField(); i++ {
		binding, ok := v.Field(i).Interface().(key.Binding)
		if !ok {
			t.Fatalf("field %s is not a key.Binding", typ.Field(i).Name)
		}
		if len(binding.Keys()) == 0 {
			t.Errorf("binding %s has no keys assigned", typ.Field(i).Name)
		}
		if binding.Help().Desc == "" {
			t.Errorf("binding %s has no help text", typ.Field(i).Name)
		}
	}
}

// FullHelp must only surface bindings that are actually wired.
func TestFullHelpEntriesAreBound(t *testing.T) {
	for _, row := range keys.FullHelp() {
		for _, binding := range row {
			if len(binding.Keys()) == 0 {
				t.Errorf("help entry %q has no keys assigned", binding.Help().Desc)
			}
		}
	}
}
