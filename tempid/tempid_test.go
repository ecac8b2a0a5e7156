package tempid

import (
	"strings"
	"testing"
)

func TestNewCarriesPrefix(t *testing.T) {
	id := New()
	if !strings.HasPrefix(id, Prefix) {
		t.Fatalf("expected prefix %q, got %q", Prefix, id)
	}
	if !Is(id) {
		t.Fatalf("Is(%q) = false", id)
	}
}

func TestNewIsUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := New()
		if seen[id] {
			t.Fatalf("duplicate identifier %q", id)
		}
		seen[id] = true
	}
}

func TestIsRejectsRealIdentifiers(t *testing.T) {
	for _, id := range []string{"", "64f1c0ffee", "temporary", "TEMP_123"} {
		if Is(id) {
			t.Errorf("Is(%q) = true", id)
		}
	}
}
