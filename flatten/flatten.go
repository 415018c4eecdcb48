// Package flatten collapses nested maps and slices into a single-level map
// whose keys join the path to each leaf.
package flatten

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultSeparator joins path segments.
const DefaultSeparator = "_"

type options struct {
	sep string
}

// Option configures Flatten.
type Option func(*options)

// WithSeparator sets the string placed between path segments.
func WithSeparator(sep string) Option {
	return func(o *options) {
		o.sep = sep
	}
}

// Flatten walks obj and returns every leaf keyed by its path, prefixed with
// parent. An empty parent yields keys that start at the first segment.
// Slices use the element index as the segment. Nil values are dropped.
func Flatten(obj map[string]any, parent string, opts ...Option) map[string]any {
	o := options{sep: DefaultSeparator}
	for _, opt := range opts {
		opt(&o)
	}

	out := make(map[string]any)
	o.walk(out, parent, obj)
	return out
}

func (o options) join(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + o.sep + key
}

func (o options) walk(out map[string]any, path string, v any) {
	switch v := v.(type) {
	case nil:
	case map[string]any:
		for k, child := range v {
			o.walk(out, o.join(path, k), child)
		}
	case map[any]any:
		for k, child := range v {
			o.walk(out, o.join(path, fmt.Sprint(k)), child)
		}
	case []any:
		for i, child := range v {
			o.walk(out, o.join(path, strconv.Itoa(i)), child)
		}
	default:
		out[path] = v
	}
}

// Decode parses a YAML or JSON document into a map suitable for Flatten.
func Decode(data []byte) (map[string]any, error) {
	var obj map[string]any
	if err := yaml.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}
	if obj == nil {
		obj = map[string]any{}
	}
	return obj, nil
}
