package jsx

import (
	"reflect"
	"regexp"
	"runtime"
	"strings"

	"github.com/recera/scc/pkg/node"
	"github.com/recera/scc/pkg/styling"
)

// InlineSuffix marks a definition whose element is spliced into the
// caller instead of becoming a component boundary.
const InlineSuffix = "Inline"

// Props are the properties passed to elements and components
type Props map[string]any

// Func is an authored component: it receives the builder and its props
// and returns the tree it renders.
type Func func(b *Builder, p Props) node.Node

// Def is a named component definition
type Def struct {
	// Name is the registry key and must be unique across a build
	Name string

	// Params are the declared parameter names, in order. They become the
	// generated factory's parameters and are filled with sigil
	// placeholders when the compiler evaluates the definition.
	Params []string

	Render Func

	// OnLoad descriptors run once the page has loaded
	OnLoad []node.Handler

	// Styles is a top-level selector mapping shipped with the component
	Styles styling.Rules

	fragment bool
}

// IsInline reports whether the definition splices into its caller
func (d *Def) IsInline() bool {
	return strings.HasSuffix(d.Name, InlineSuffix) && d.Name != InlineSuffix
}

// Placeholders returns props mapping every declared parameter to its
// sigil reference ($name).
func (d *Def) Placeholders() Props {
	p := make(Props, len(d.Params))
	for _, name := range d.Params {
		p[name] = "$" + name
	}
	return p
}

// Resolve turns a callable value into a definition. ok is false when v
// is not callable.
func Resolve(v any) (def *Def, ok bool) {
	switch f := v.(type) {
	case *Def:
		return f, f != nil
	case Def:
		return &f, true
	case Func:
		if f == nil {
			return nil, false
		}
		return &Def{Name: FuncName(f), Render: f}, true
	case func(*Builder, Props) node.Node:
		if f == nil {
			return nil, false
		}
		return &Def{Name: FuncName(f), Render: f}, true
	}
	return nil, false
}

var closureSegment = regexp.MustCompile(`^(func|glob\.func)?\d+$`)

// FuncName returns the identifier of a Go function value, without
// package path, receiver or closure suffixes. Closures report the name of
// the function that declared them.
func FuncName(f any) string {
	v := reflect.ValueOf(f)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	fn := runtime.FuncForPC(v.Pointer())
	if fn == nil {
		return ""
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "-fm")

	parts := strings.Split(name, ".")
	for i := len(parts) - 1; i > 0; i-- {
		if !closureSegment.MatchString(parts[i]) {
			return parts[i]
		}
	}
	return name
}
