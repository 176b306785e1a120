package node

import (
	"fmt"
	"sort"
)

// HandlerKind discriminates click descriptors
type HandlerKind string

const (
	// HandlerRender mounts a component under a target element
	HandlerRender HandlerKind = "render"
	// HandlerCall invokes a named page function
	HandlerCall HandlerKind = "call"
)

// Arg is a named literal argument of a call descriptor
type Arg struct {
	Name  string
	Value any
}

// Handler is the tagged union attached to elements as click handler or
// component on-load hook.
type Handler struct {
	Kind HandlerKind

	// Render fields
	Component string
	Target    string

	// Call fields
	Name string
	Args []Arg
}

// Render builds a descriptor mounting component under the element with id target
func Render(component, target string) Handler {
	return Handler{Kind: HandlerRender, Component: component, Target: target}
}

// Call builds a descriptor invoking the page function name
func Call(name string, args ...Arg) Handler {
	return Handler{Kind: HandlerCall, Name: name, Args: args}
}

// Valid reports whether the descriptor is well formed
func (h Handler) Valid() bool {
	switch h.Kind {
	case HandlerRender:
		return h.Component != "" && h.Target != ""
	case HandlerCall:
		if h.Name == "" {
			return false
		}
		for _, a := range h.Args {
			if !isLiteral(a.Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (h Handler) String() string {
	switch h.Kind {
	case HandlerRender:
		return fmt.Sprintf("Render(component=%q, target=%q)", h.Component, h.Target)
	case HandlerCall:
		return fmt.Sprintf("Call(name=%q, args=%d)", h.Name, len(h.Args))
	default:
		return fmt.Sprintf("Handler(kind=%q)", string(h.Kind))
	}
}

// HandlerFromMap parses the map form of a descriptor:
//
//	{"kind": "render", "component": "Card", "target": "slot"}
//	{"kind": "call", "name": "f", "args": {"n": 1}}
//
// Call arguments given as a map are ordered by name. ok is false for any
// malformed shape.
func HandlerFromMap(m map[string]any) (h Handler, ok bool) {
	kind, _ := m["kind"].(string)
	switch HandlerKind(kind) {
	case HandlerRender:
		component, _ := m["component"].(string)
		target, _ := m["target"].(string)
		h = Render(component, target)
	case HandlerCall:
		name, _ := m["name"].(string)
		h = Handler{Kind: HandlerCall, Name: name}
		switch args := m["args"].(type) {
		case nil:
		case map[string]any:
			names := make([]string, 0, len(args))
			for k := range args {
				names = append(names, k)
			}
			sort.Strings(names)
			for _, k := range names {
				h.Args = append(h.Args, Arg{Name: k, Value: args[k]})
			}
		case []Arg:
			h.Args = args
		default:
			return Handler{}, false
		}
	default:
		return Handler{}, false
	}
	return h, h.Valid()
}

func isLiteral(v any) bool {
	switch v.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}
