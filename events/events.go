// Package events models event propagation through a tree of nodes:
// a capturing pass from the root down to the target, the target itself, and
// a bubbling pass back up to the root.
//
// Listeners are registered per node and per event type, either for the
// capturing pass (capture=true) or for the bubbling pass (capture=false).
// At the target node, capturing listeners run before bubbling ones.
package events

import "slices"

// Phase is the propagation phase an event is in.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseCapturing
	PhaseAtTarget
	PhaseBubbling
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseNone:
		return "none"
	case PhaseCapturing:
		return "capturing"
	case PhaseAtTarget:
		return "at-target"
	case PhaseBubbling:
		return "bubbling"
	default:
		return "unknown"
	}
}

// Event is dispatched to a target node and travels along its ancestor path.
type Event struct {
	Type string

	// Target is the node the event was dispatched to.
	Target *Node

	// CurrentTarget is the node whose listeners are running.
	CurrentTarget *Node

	Phase Phase

	stopped bool
}

// NewEvent creates an event of the given type.
func NewEvent(typ string) *Event {
	return &Event{Type: typ}
}

// StopPropagation prevents the event from reaching further nodes. Remaining
// listeners on the current node still run.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Stopped reports whether StopPropagation was called.
func (e *Event) Stopped() bool {
	return e.stopped
}

// Listener handles an event.
type Listener func(e *Event)

type registration struct {
	typ      string
	listener Listener
	capture  bool
}

// Node is an element of the tree.
type Node struct {
	ID     string
	Tag    string
	Attrs  map[string]string
	Value  string
	Parent *Node

	children  []*Node
	listeners []registration
}

// NewNode creates a detached node.
func NewNode(id, tag string) *Node {
	return &Node{ID: id, Tag: tag, Attrs: make(map[string]string)}
}

// Append attaches child under n and returns child.
func (n *Node) Append(child *Node) *Node {
	child.Parent = n
	n.children = append(n.children, child)
	return child
}

// Children returns the direct children of n.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// SetAttr sets an attribute and returns n.
func (n *Node) SetAttr(key, value string) *Node {
	n.Attrs[key] = value
	return n
}

// HasAttr reports whether the attribute is present.
func (n *Node) HasAttr(key string) bool {
	_, ok := n.Attrs[key]
	return ok
}

// AddEventListener registers l for events of type typ. With capture set the
// listener runs on the way down, otherwise on the way up.
func (n *Node) AddEventListener(typ string, l Listener, capture bool) {
	n.listeners = append(n.listeners, registration{typ: typ, listener: l, capture: capture})
}

// Find returns the first node in n's subtree, n included, with the given id.
func (n *Node) Find(id string) *Node {
	if n.ID == id {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// path returns the ancestors of n from the root down, excluding n.
func (n *Node) path() []*Node {
	var out []*Node
	for p := n.Parent; p != nil; p = p.Parent {
		out = append(out, p)
	}
	slices.Reverse(out)
	return out
}

// Dispatch sends e to target. It returns false if propagation was stopped.
func Dispatch(target *Node, e *Event) bool {
	e.Target = target
	e.stopped = false
	ancestors := target.path()

	e.Phase = PhaseCapturing
	for _, n := range ancestors {
		if !invoke(n, e, true) {
			return finish(e)
		}
	}

	e.Phase = PhaseAtTarget
	if !invoke(target, e, true) {
		return finish(e)
	}
	if !invoke(target, e, false) {
		return finish(e)
	}

	e.Phase = PhaseBubbling
	for i := len(ancestors) - 1; i >= 0; i-- {
		if !invoke(ancestors[i], e, false) {
			return finish(e)
		}
	}
	return finish(e)
}

func finish(e *Event) bool {
	e.Phase = PhaseNone
	e.CurrentTarget = nil
	return !e.stopped
}

// invoke runs n's matching listeners and reports whether propagation may
// continue.
func invoke(n *Node, e *Event, capture bool) bool {
	e.CurrentTarget = n
	for _, r := range slices.Clone(n.listeners) {
		if r.typ == e.Type && r.capture == capture {
			r.listener(e)
		}
	}
	return !e.stopped
}

// Delegate registers a single bubbling listener on root that calls l for
// events whose target matches. Descendants added later are covered too.
func Delegate(root *Node, typ string, match func(*Node) bool, l Listener) {
	root.AddEventListener(typ, func(e *Event) {
		if match(e.Target) {
			l(e)
		}
	}, false)
}

// ByTag matches nodes with the given tag.
func ByTag(tag string) func(*Node) bool {
	return func(n *Node) bool {
		return n.Tag == tag
	}
}

// ByAttr matches nodes that carry the given attribute.
func ByAttr(key string) func(*Node) bool {
	return func(n *Node) bool {
		return n.HasAttr(key)
	}
}
