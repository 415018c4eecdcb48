// Package proto implements prototypal delegation: an Object answers property
// lookups from its own properties first and then from the chain of
// prototypes it is linked to.
package proto

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	// ErrCyclicPrototype is returned when linking would make the chain loop.
	ErrCyclicPrototype = errors.New("proto: cyclic prototype chain")

	// ErrNotFound is returned when no object in the chain has the property.
	ErrNotFound = errors.New("proto: property not found")

	// ErrNotCallable is returned when Invoke resolves a non-method property.
	ErrNotCallable = errors.New("proto: property is not a method")
)

// Method is a property that can be invoked. This is the object Invoke was
// called on, which may differ from the object the method was found on.
type Method func(this *Object, args ...any) (any, error)

// Object is a bag of properties with an optional prototype.
type Object struct {
	props map[string]any
	proto *Object
}

// New creates an object with the given own properties and no prototype.
func New(props map[string]any) *Object {
	o := &Object{props: make(map[string]any, len(props))}
	maps.Copy(o.props, props)
	return o
}

// Create creates an empty object whose prototype is proto.
func Create(proto *Object) *Object {
	return &Object{props: make(map[string]any), proto: proto}
}

// Prototype returns the object's prototype, or nil.
func (o *Object) Prototype() *Object {
	return o.proto
}

// SetPrototype links o to p. A nil p detaches o. It fails with
// ErrCyclicPrototype if o is already reachable from p.
func (o *Object) SetPrototype(p *Object) error {
	for cur := p; cur != nil; cur = cur.proto {
		if cur == o {
			return ErrCyclicPrototype
		}
	}
	o.proto = p
	return nil
}

// Set writes an own property. Prototypes are never modified.
func (o *Object) Set(key string, value any) {
	o.props[key] = value
}

// Delete removes an own property, exposing any inherited value again.
func (o *Object) Delete(key string) {
	delete(o.props, key)
}

// Get looks key up on o, then along the prototype chain.
func (o *Object) Get(key string) (any, bool) {
	for cur := o; cur != nil; cur = cur.proto {
		if v, ok := cur.props[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// String returns the property as a string, or "" when missing or not a string.
func (o *Object) String(key string) string {
	v, _ := o.Get(key)
	s, _ := v.(string)
	return s
}

// HasOwn reports whether key is an own property of o.
func (o *Object) HasOwn(key string) bool {
	_, ok := o.props[key]
	return ok
}

// OwnKeys returns o's own property names in sorted order.
func (o *Object) OwnKeys() []string {
	return slices.Sorted(maps.Keys(o.props))
}

// Keys returns every property name visible through o, own and inherited,
// in sorted order.
func (o *Object) Keys() []string {
	seen := make(map[string]struct{})
	for cur := o; cur != nil; cur = cur.proto {
		for k := range cur.props {
			seen[k] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Invoke resolves name through the chain and calls it with o as this.
func (o *Object) Invoke(name string, args ...any) (any, error) {
	v, ok := o.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	m, ok := v.(Method)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotCallable, name)
	}
	return m(o, args...)
}
