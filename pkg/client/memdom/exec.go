package memdom

import (
	"errors"
	"fmt"

	"github.com/recera/scc/pkg/client"
	"github.com/recera/scc/pkg/renderer/dom"
)

// ErrNoResult is returned when a program ends without returning an element
var ErrNoResult = errors.New("program returned no element")

// Lookup resolves component factories for mount steps
type Lookup func(key string) (client.Factory, bool)

// Env is the evaluation environment of a program
type Env struct {
	// Params binds raw expressions to values. Unbound expressions
	// evaluate to "undefined" as they would in a browser.
	Params map[string]any
	// Lookup resolves mounted components
	Lookup Lookup
	// Raw keeps sigil references as written instead of resolving them
	Raw bool
}

// Exec runs p and returns the element it returns
func Exec(p dom.Program, env Env) (*Element, error) {
	vars := make(map[string]*Element, len(p))
	get := func(in dom.Instruction, v string) (*Element, error) {
		el, ok := vars[v]
		if !ok {
			return nil, fmt.Errorf("%s: undefined variable %s", in.Op, v)
		}
		return el, nil
	}

	for _, in := range p {
		if in.Op == dom.OpCreate {
			vars[in.Var] = NewElement(in.Name)
			continue
		}
		if in.Op == dom.OpMount {
			el, err := mount(env, in.Name)
			if err != nil {
				return nil, err
			}
			vars[in.Var] = el
			continue
		}

		el, err := get(in, in.Var)
		if err != nil {
			return nil, err
		}
		switch in.Op {
		case dom.OpClassName:
			el.ClassName = in.Value
		case dom.OpSetAttribute:
			el.SetAttribute(in.Name, env.resolve(in.Value))
		case dom.OpStyle:
			el.SetAttribute("style", env.resolve(in.Value))
		case dom.OpText:
			el.Text = env.resolve(in.Value)
		case dom.OpOnClick:
			if in.Handler != nil {
				h := *in.Handler
				el.OnClick = &h
			}
		case dom.OpAppend:
			child, err := get(in, in.Child)
			if err != nil {
				return nil, err
			}
			el.AppendChild(child)
		case dom.OpReturn:
			return el, nil
		default:
			return nil, fmt.Errorf("unsupported instruction %s", in.Op)
		}
	}
	return nil, ErrNoResult
}

func mount(env Env, key string) (*Element, error) {
	if env.Lookup == nil {
		return nil, fmt.Errorf("mount %s: %w", key, client.ErrFactoryMissing)
	}
	f, ok := env.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("mount %s: %w", key, client.ErrFactoryMissing)
	}
	out, err := f()
	if err != nil {
		return nil, fmt.Errorf("mount %s: %w", key, err)
	}
	el, ok := out.(*Element)
	if !ok || el == nil {
		return nil, fmt.Errorf("mount %s: factory returned %T", key, out)
	}
	return el, nil
}

func (env Env) resolve(v string) string {
	expr, ok := dom.RawExpr(v)
	if !ok || env.Raw {
		return v
	}
	val, bound := env.Params[expr]
	if !bound || val == nil {
		return "undefined"
	}
	return fmt.Sprint(val)
}

// Factory turns a compiled program into a runtime factory. Positional
// arguments bind to params in order.
func Factory(p dom.Program, params []string, lookup Lookup) client.Factory {
	return func(args ...any) (client.Element, error) {
		bound := make(map[string]any, len(params))
		for i, name := range params {
			if i < len(args) {
				bound[name] = args[i]
			}
		}
		el, err := Exec(p, Env{Params: bound, Lookup: lookup})
		if err != nil {
			return nil, err
		}
		return el, nil
	}
}
