package damper

import "testing"

func TestSignalNames(t *testing.T) {
	cases := []struct {
		name string
		got  string
	}{
		{"damper.debounce.scheduled", DebounceScheduled.Name()},
		{"damper.debounce.canceled", DebounceCanceled.Name()},
		{"damper.debounce.fired", DebounceFired.Name()},
		{"damper.throttle.fired", ThrottleFired.Name()},
		{"damper.throttle.dropped", ThrottleDropped.Name()},
		{"damper.throttle.reset", ThrottleReset.Name()},
		{"damper.target.failed", TargetFailed.Name()},
	}
	for _, tc := range cases {
		if tc.got != tc.name {
			t.Errorf("expected name %q, got %q", tc.name, tc.got)
		}
	}
}
