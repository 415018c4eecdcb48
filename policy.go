package damper

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate is the shared validator instance.
var validate = validator.New()

// Mode selects the wrapper a Policy builds.
type Mode string

const (
	// ModeDebounce builds a Debouncer.
	ModeDebounce Mode = "debounce"
	// ModeThrottle builds a Throttler.
	ModeThrottle Mode = "throttle"
)

// Policy describes a wrapper declaratively.
//
// The interval is not validated: zero or negative values are handed to the
// scheduler unchanged, like the delay of NewDebouncer.
type Policy struct {
	Name     string   `yaml:"name" json:"name"`
	Mode     Mode     `yaml:"mode" json:"mode" validate:"required,oneof=debounce throttle"`
	Interval Duration `yaml:"interval" json:"interval"`
}

// Validate checks the policy's struct tags.
func (p Policy) Validate() error {
	return validate.Struct(p)
}

// ParsePolicy decodes and validates a policy document.
func ParsePolicy(data []byte, codec Codec) (Policy, error) {
	var p Policy
	if err := codec.Unmarshal(data, &p); err != nil {
		return Policy{}, fmt.Errorf("unmarshal failed: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Policy{}, fmt.Errorf("validation failed: %w", err)
	}
	return p, nil
}

// Wrap builds the wrapper described by p around target and returns its call
// function. Debounced calls always return nil; throttled calls return the
// target's error. WithName(p.Name) is applied before opts when the policy is
// named. A policy that fails Validate, such as one with an empty or unknown
// mode, is rejected.
func Wrap[R, A any](p Policy, target Func[R, A], opts ...Option) (func(recv R, args ...A) error, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}
	if p.Name != "" {
		opts = append([]Option{WithName(p.Name)}, opts...)
	}
	interval := p.Interval.Std()

	switch p.Mode {
	case ModeThrottle:
		return Throttle(target, interval, opts...), nil
	case ModeDebounce:
		call := Debounce(target, interval, opts...)
		return func(recv R, args ...A) error {
			call(recv, args...)
			return nil
		}, nil
	default:
		return nil, fmt.Errorf("invalid policy: unknown mode %q", p.Mode)
	}
}

// Duration is a time.Duration that decodes from "300ms"-style strings or
// from a bare integer number of milliseconds.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String formats d like time.Duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalJSON encodes d as a duration string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		*d = Duration(time.Duration(v * float64(time.Millisecond)))
		return nil
	case string:
		return d.parse(v)
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

// MarshalYAML encodes d as a duration string.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("invalid duration at line %d", node.Line)
	}
	return d.parse(node.Value)
}

// ParseDuration parses s the way policy documents do: a bare integer is a
// number of milliseconds, anything else goes through time.ParseDuration.
func ParseDuration(s string) (Duration, error) {
	var d Duration
	if err := d.parse(s); err != nil {
		return 0, err
	}
	return d, nil
}

func (d *Duration) parse(s string) error {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}
