package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestEntityPacking(t *testing.T) {
	tests := []struct {
		slot, gen uint32
	}{
		{0, 1},
		{7, 3},
		{1<<32 - 1, 1<<32 - 1},
	}

	for _, tt := range tests {
		e := NewEntity(tt.slot, tt.gen)
		if e.Slot() != tt.slot {
			t.Errorf("Slot() = %d, want %d", e.Slot(), tt.slot)
		}
		if e.Generation() != tt.gen {
			t.Errorf("Generation() = %d, want %d", e.Generation(), tt.gen)
		}
	}

	if NoEntity.Generation() != 0 {
		t.Error("NoEntity must carry generation 0")
	}
	if got := NewEntity(12, 3).String(); got != "e12v3" {
		t.Errorf("String() = %q, want e12v3", got)
	}
}

func TestErrorWrapping(t *testing.T) {
	err := fmt.Errorf("destroy %v: %w", NewEntity(1, 1), ErrInvalidHandle)
	if !errors.Is(err, ErrInvalidHandle) {
		t.Error("wrapped error should match ErrInvalidHandle")
	}
	if errors.Is(err, ErrMissingComponent) {
		t.Error("wrapped error should not match ErrMissingComponent")
	}
}
