// Package script lowers values and click descriptors into JavaScript
// source shared by the markup and DOM-instruction emitters.
package script

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/recera/scc/pkg/node"
)

// Sigil marks a value as a raw expression instead of a string literal
const Sigil = '$'

// DefaultRenderFunc is the runtime entry used by render descriptors
const DefaultRenderFunc = "renderComponent"

// Quote returns s as a JSON string literal
func Quote(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		// strings always marshal
		return strconv.Quote(s)
	}
	return string(b)
}

// Value lowers v as a literal, or as a raw expression when it starts with
// the sigil.
func Value(v string) string {
	if expr, ok := Raw(v); ok {
		return expr
	}
	return Quote(v)
}

// Raw reports whether v is a sigil reference and returns the expression
func Raw(v string) (string, bool) {
	if len(v) > 0 && v[0] == Sigil {
		return v[1:], true
	}
	return "", false
}

// Literal encodes a call argument: strings quoted, numbers and booleans raw
func Literal(v any) string {
	switch x := v.(type) {
	case string:
		return Quote(x)
	case bool:
		return strconv.FormatBool(x)
	case float32:
		if f := float64(x); math.IsInf(f, 0) || math.IsNaN(f) {
			return nonFinite(f)
		}
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return nonFinite(x)
		}
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

func nonFinite(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	default:
		return "NaN"
	}
}

// Call lowers a descriptor to a call expression. renderFunc names the
// runtime entry for render descriptors.
func Call(h node.Handler, renderFunc string) string {
	if renderFunc == "" {
		renderFunc = DefaultRenderFunc
	}
	switch h.Kind {
	case node.HandlerRender:
		return renderFunc + "(" + Quote(h.Component) + ", " + Quote(h.Target) + ")"
	case node.HandlerCall:
		args := make([]string, len(h.Args))
		for i, a := range h.Args {
			args[i] = Literal(a.Value)
		}
		return h.Name + "(" + strings.Join(args, ", ") + ")"
	default:
		return ""
	}
}
