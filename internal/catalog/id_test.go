package catalog

import (
	"strings"
	"testing"
)

func TestNewIDFormat(t *testing.T) {
	id := NewID("evt")
	if !strings.HasPrefix(id, "evt-") {
		t.Errorf("Expected prefix evt-, got %q", id)
	}
	if len(strings.Split(id, "-")) != 3 {
		t.Errorf("Expected prefix-timestamp-suffix shape, got %q", id)
	}
}

func TestNewIDUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID("sys")
		if seen[id] {
			t.Fatalf("Duplicate id %q after %d generations", id, i)
		}
		seen[id] = true
	}
}
