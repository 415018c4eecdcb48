package damper_test

import (
	"testing"
	"time"

	"github.com/zoobzio/damper"
	damptest "github.com/zoobzio/damper/testing"
)

func TestParsePolicy_YAML(t *testing.T) {
	p, err := damper.ParsePolicy([]byte("name: search\nmode: debounce\ninterval: 300ms"), damper.YAMLCodec{})
	if err != nil {
		t.Fatalf("ParsePolicy() error = %v", err)
	}
	if p.Name != "search" {
		t.Errorf("expected name search, got %q", p.Name)
	}
	if p.Mode != damper.ModeDebounce {
		t.Errorf("expected debounce, got %q", p.Mode)
	}
	if p.Interval.Std() != 300*time.Millisecond {
		t.Errorf("expected 300ms, got %v", p.Interval)
	}
}

func TestParsePolicy_JSONMilliseconds(t *testing.T) {
	p, err := damper.ParsePolicy([]byte(`{"mode": "throttle", "interval": 250}`), damper.JSONCodec{})
	if err != nil {
		t.Fatalf("ParsePolicy() error = %v", err)
	}
	if p.Mode != damper.ModeThrottle {
		t.Errorf("expected throttle, got %q", p.Mode)
	}
	if p.Interval.Std() != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", p.Interval)
	}
}

func TestParsePolicy_YAMLMilliseconds(t *testing.T) {
	p, err := damper.ParsePolicy([]byte("mode: throttle\ninterval: 40"), damper.YAMLCodec{})
	if err != nil {
		t.Fatalf("ParsePolicy() error = %v", err)
	}
	if p.Interval.Std() != 40*time.Millisecond {
		t.Errorf("expected 40ms, got %v", p.Interval)
	}
}

func TestParsePolicy_InvalidMode(t *testing.T) {
	if _, err := damper.ParsePolicy([]byte("mode: batch\ninterval: 1s"), damper.YAMLCodec{}); err == nil {
		t.Fatal("expected validation error for unknown mode")
	}
}

func TestParsePolicy_MissingMode(t *testing.T) {
	if _, err := damper.ParsePolicy([]byte("interval: 1s"), damper.YAMLCodec{}); err == nil {
		t.Fatal("expected validation error for missing mode")
	}
}

func TestParsePolicy_NegativeIntervalPassesThrough(t *testing.T) {
	p, err := damper.ParsePolicy([]byte("mode: debounce\ninterval: -5ms"), damper.YAMLCodec{})
	if err != nil {
		t.Fatalf("expected interval not to be validated, got %v", err)
	}
	if p.Interval.Std() != -5*time.Millisecond {
		t.Errorf("expected -5ms, got %v", p.Interval)
	}
}

func TestParsePolicy_BadDuration(t *testing.T) {
	if _, err := damper.ParsePolicy([]byte("mode: debounce\ninterval: soon"), damper.YAMLCodec{}); err == nil {
		t.Fatal("expected unmarshal error for bad duration")
	}
}

func TestWrap_Debounce(t *testing.T) {
	sched := damper.NewVirtualScheduler()
	rec := damptest.NewRecorder[receiver, string]()
	policy := damper.Policy{Mode: damper.ModeDebounce, Interval: damper.Duration(100 * time.Millisecond)}

	call, err := damper.Wrap(policy, rec.Func(), damper.WithScheduler(sched))
	if err != nil {
		t.Fatalf("Wrap() error = %v", err)
	}
	_ = call(receiver{ID: 1}, "a")
	_ = call(receiver{ID: 2}, "b")
	sched.Advance(100 * time.Millisecond)

	if rec.Count() != 1 {
		t.Fatalf("expected 1 invocation, got %d", rec.Count())
	}
	if last, _ := rec.Last(); last.Recv.ID != 2 {
		t.Errorf("expected receiver 2, got %d", last.Recv.ID)
	}
}

func TestWrap_Throttle(t *testing.T) {
	sched := damper.NewVirtualScheduler()
	rec := damptest.NewRecorder[receiver, string]()
	policy := damper.Policy{Name: "resize", Mode: damper.ModeThrottle, Interval: damper.Duration(100 * time.Millisecond)}

	call, err := damper.Wrap(policy, rec.Func(), damper.WithScheduler(sched))
	if err != nil {
		t.Fatalf("Wrap() error = %v", err)
	}
	_ = call(receiver{ID: 1}, "a")
	_ = call(receiver{ID: 2}, "b")

	if rec.Count() != 1 {
		t.Fatalf("expected 1 invocation, got %d", rec.Count())
	}
	if last, _ := rec.Last(); last.Recv.ID != 1 {
		t.Errorf("expected leading call, got receiver %d", last.Recv.ID)
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := damper.Duration(1500 * time.Millisecond).MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(b) != `"1.5s"` {
		t.Errorf("expected \"1.5s\", got %s", b)
	}
}

func TestWrap_RejectsInvalidMode(t *testing.T) {
	rec := damptest.NewRecorder[receiver, string]()

	for _, mode := range []damper.Mode{"", "batch"} {
		policy := damper.Policy{Mode: mode, Interval: damper.Duration(time.Second)}
		call, err := damper.Wrap(policy, rec.Func(), damper.WithScheduler(damper.NewVirtualScheduler()))
		if err == nil {
			t.Errorf("expected error for mode %q", mode)
		}
		if call != nil {
			t.Errorf("expected no call function for mode %q", mode)
		}
	}
}

func TestParseDuration(t *testing.T) {
	tests := map[string]time.Duration{
		"50":    50 * time.Millisecond,
		"300ms": 300 * time.Millisecond,
		"1.5s":  1500 * time.Millisecond,
		"-5":    -5 * time.Millisecond,
	}
	for in, want := range tests {
		got, err := damper.ParseDuration(in)
		if err != nil {
			t.Errorf("ParseDuration(%q) error = %v", in, err)
			continue
		}
		if got.Std() != want {
			t.Errorf("ParseDuration(%q): expected %v, got %v", in, want, got)
		}
	}

	if _, err := damper.ParseDuration("soon"); err == nil {
		t.Error("expected error for soon")
	}
}
