package damper

import "testing"

func TestState_String(t *testing.T) {
	cases := map[State]string{
		StateIdle:    "idle",
		StatePending: "pending",
		StateCooling: "cooling",
		State(999):   "unknown",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}

func TestState_Values(t *testing.T) {
	if StateIdle != 0 {
		t.Errorf("expected StateIdle=0, got %d", StateIdle)
	}
	if StatePending != 1 {
		t.Errorf("expected StatePending=1, got %d", StatePending)
	}
	if StateCooling != 2 {
		t.Errorf("expected StateCooling=2, got %d", StateCooling)
	}
}
