// SPDX-License-Identifier: MIT

package tilemap

import (
	"bytes"
	"testing"
)

func TestSparseBitsetGetSetRoundTrip(t *testing.T) {
	s := NewSparseBitset()
	indices := []uint32{0, 1, 63, 64, 1000, 1 << 20, (1 << 30) - 1}
	for _, i := range indices {
		if got := s.Get(i); got != 0 {
			t.Errorf("Get(%d) before Set = %d, want 0", i, got)
		}
		s.Set(i, 1)
		if got := s.Get(i); got != 1 {
			t.Errorf("Get(%d) after Set(1) = %d, want 1", i, got)
		}
	}
	// Unset neighbors must remain 0.
	if got := s.Get(65); got != 0 {
		t.Errorf("Get(65) = %d, want 0 (never set)", got)
	}
}

func TestSparseBitsetClear(t *testing.T) {
	s := NewSparseBitset()
	s.Set(42, 1)
	s.Set(42, 0)
	if got := s.Get(42); got != 0 {
		t.Errorf("Get(42) after clearing = %d, want 0", got)
	}
}

func TestSparseBitsetWriteReadRoundTrip(t *testing.T) {
	s := NewSparseBitset()
	for _, i := range []uint32{0, 5, 64, 2048, 1 << 18} {
		s.Set(i, 1)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}

	got, err := ReadSparseBitset(&buf)
	if err != nil {
		t.Fatal(err)
	}
	for _, i := range []uint32{0, 5, 64, 2048, 1 << 18} {
		if got.Get(i) != 1 {
			t.Errorf("after round-trip, Get(%d) = %d, want 1", i, got.Get(i))
		}
	}
	if got.Get(6) != 0 {
		t.Errorf("after round-trip, Get(6) = %d, want 0 (never set)", got.Get(6))
	}
}

func TestReadSparseBitsetRejectsTruncatedStream(t *testing.T) {
	if _, err := ReadSparseBitset(bytes.NewReader([]byte{1, 2})); err == nil {
		t.Error("expected an error for a truncated stream")
	}
}
