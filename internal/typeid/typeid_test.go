package typeid

import (
	"strings"
	"testing"
)

func TestNewEntityIDValidates(t *testing.T) {
	id := NewEntityID()
	if !strings.HasPrefix(id, PrefixEntity+"_") {
		t.Fatalf("id %q missing %q prefix", id, PrefixEntity)
	}
	if err := Validate(id, PrefixEntity); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejectsWrongPrefix(t *testing.T) {
	if err := Validate(NewOverlayID(), PrefixEntity); err == nil {
		t.Fatal("expected prefix mismatch error")
	}
	if err := Validate("not-an-id", PrefixEntity); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewEntityID()
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
