package proto

import (
	"errors"
	"slices"
	"testing"
)

func intro(this *Object, _ ...any) (any, error) {
	return this.String("name") + " from " + this.String("city"), nil
}

func TestObject_InheritsFromPrototype(t *testing.T) {
	object := New(map[string]any{
		"name":     "Sid",
		"city":     "Kotdwar",
		"getIntro": Method(intro),
	})
	object2 := New(map[string]any{"name": "Vex"})
	if err := object2.SetPrototype(object); err != nil {
		t.Fatalf("SetPrototype() error = %v", err)
	}

	if got := object2.String("name"); got != "Vex" {
		t.Errorf("expected own name Vex, got %q", got)
	}
	if got := object2.String("city"); got != "Kotdwar" {
		t.Errorf("expected inherited city Kotdwar, got %q", got)
	}

	got, err := object2.Invoke("getIntro")
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if got != "Vex from Kotdwar" {
		t.Errorf("expected method to run against object2, got %q", got)
	}
}

func TestObject_SetShadowsWithoutTouchingPrototype(t *testing.T) {
	base := New(map[string]any{"city": "Kotdwar"})
	child := Create(base)

	child.Set("city", "Gurgaon")

	if got := child.String("city"); got != "Gurgaon" {
		t.Errorf("expected shadowed city, got %q", got)
	}
	if got := base.String("city"); got != "Kotdwar" {
		t.Errorf("expected prototype untouched, got %q", got)
	}

	child.Delete("city")
	if got := child.String("city"); got != "Kotdwar" {
		t.Errorf("expected inherited city after delete, got %q", got)
	}
}

func TestObject_CyclicPrototype(t *testing.T) {
	a := New(nil)
	b := Create(a)
	c := Create(b)

	if err := a.SetPrototype(c); !errors.Is(err, ErrCyclicPrototype) {
		t.Errorf("expected ErrCyclicPrototype, got %v", err)
	}
	if err := a.SetPrototype(a); !errors.Is(err, ErrCyclicPrototype) {
		t.Errorf("expected ErrCyclicPrototype for self link, got %v", err)
	}
	if a.Prototype() != nil {
		t.Error("expected failed link to leave prototype unchanged")
	}
}

func TestObject_Invoke_Errors(t *testing.T) {
	o := New(map[string]any{"name": "Sid"})

	if _, err := o.Invoke("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := o.Invoke("name"); !errors.Is(err, ErrNotCallable) {
		t.Errorf("expected ErrNotCallable, got %v", err)
	}
}

func TestObject_Keys(t *testing.T) {
	base := New(map[string]any{"city": "Kotdwar", "name": "Sid"})
	child := Create(base)
	child.Set("age", 24)
	child.Set("name", "Vex")

	if got, want := child.OwnKeys(), []string{"age", "name"}; !slices.Equal(got, want) {
		t.Errorf("expected own keys %v, got %v", want, got)
	}
	if got, want := child.Keys(), []string{"age", "city", "name"}; !slices.Equal(got, want) {
		t.Errorf("expected keys %v, got %v", want, got)
	}
	if !child.HasOwn("age") || child.HasOwn("city") {
		t.Error("expected HasOwn to ignore inherited properties")
	}
}

func TestNew_CopiesProps(t *testing.T) {
	props := map[string]any{"name": "Sid"}
	o := New(props)
	props["name"] = "Changed"

	if got := o.String("name"); got != "Sid" {
		t.Errorf("expected properties copied at creation, got %q", got)
	}
}
