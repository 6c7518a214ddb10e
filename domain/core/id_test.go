package core

import (
	"fmt"
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestHashDeterministic tests that equal inputs hash equally
func TestHashDeterministic(t *testing.T) {
	a := NewHash([]byte("yield_model"))
	b := NewHash([]byte("yield_model"))
	c := NewHash([]byte("scaler"))

	if !a.Equals(b) {
		t.Errorf("Expected equal hashes, got %s and %s", a, b)
	}
	if a.Equals(c) {
		t.Error("Expected different hashes for different inputs")
	}
	if len(a.String()) != 64 {
		t.Errorf("Expected 64 hex chars, got %d", len(a.String()))
	}
}

// TestErrorClassification tests sentinel matching through wrapping
func TestErrorClassification(t *testing.T) {
	wrapped := fmt.Errorf("loading scaler: %w", ErrArtifactMismatch)
	if !IsMissingArtifact(wrapped) {
		t.Error("Expected fingerprint mismatch to count as missing artifact")
	}
	if IsUnknownCategory(wrapped) {
		t.Error("Did not expect unknown category match")
	}
	if !IsUnknownCategory(fmt.Errorf("state: %w", ErrUnknownCategory)) {
		t.Error("Expected unknown category match")
	}
}
