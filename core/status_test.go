package core

import "testing"

func TestMaxStatus(t *testing.T) {
	tests := []struct {
		a, b, want Status
	}{
		{StatusAbsent, StatusAbsent, StatusAbsent},
		{StatusAbsent, StatusIncomplete, StatusIncomplete},
		{StatusIncomplete, StatusAbsent, StatusIncomplete},
		{StatusIncomplete, StatusActive, StatusActive},
		{StatusActive, StatusIncomplete, StatusActive},
		{StatusActive, StatusAbsent, StatusActive},
	}

	for _, tt := range tests {
		if got := MaxStatus(tt.a, tt.b); got != tt.want {
			t.Errorf("MaxStatus(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestParseLimb(t *testing.T) {
	tests := map[string]Limb{
		"right_hand": RightHand,
		"Left Hand":  LeftHand,
		"right-foot": RightFoot,
		" LEFT_FOOT": LeftFoot,
	}
	for in, want := range tests {
		got, err := ParseLimb(in)
		if err != nil {
			t.Fatalf("ParseLimb(%q) error: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseLimb(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseLimb("tail"); err == nil {
		t.Error("Expected error for unknown limb")
	}
}

func TestHandleZero(t *testing.T) {
	if !NoHandle.IsZero() {
		t.Error("NoHandle should be zero")
	}
	if (Handle{Index: 0, Generation: 1}).IsZero() {
		t.Error("Handle with generation should not be zero")
	}
	if Limb(7).Valid() {
		t.Error("Limb 7 should be invalid")
	}
}
