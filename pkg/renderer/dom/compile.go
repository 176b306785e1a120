// Package dom lowers an element tree into the imperative steps that
// rebuild it inside a live document.
package dom

import (
	"fmt"
	"strings"

	"github.com/recera/scc/pkg/node"
	"github.com/recera/scc/pkg/renderer/internal/script"
)

const (
	// DefaultVarPrefix prefixes generated local variable names
	DefaultVarPrefix = "el"
	// DefaultRegistry is the global factory registry expression
	DefaultRegistry = "window.components"
)

// Option configures Compile
type Option func(*compiler)

// WithVarPrefix changes the generated variable prefix
func WithVarPrefix(prefix string) Option {
	return func(c *compiler) {
		if prefix != "" {
			c.prefix = prefix
		}
	}
}

// WithRegistry changes the registry expression component mounts read from
func WithRegistry(registry string) Option {
	return func(c *compiler) {
		if registry != "" {
			c.registry = registry
		}
	}
}

// WithRenderFunc renames the runtime function render descriptors call
func WithRenderFunc(name string) Option {
	return func(c *compiler) {
		if name != "" {
			c.renderFunc = name
		}
	}
}

// compiler holds state for one Compile call
type compiler struct {
	prefix     string
	registry   string
	renderFunc string
	counter    int
	program    Program
}

// Compile lowers el into a program. Variable numbering restarts on every
// call, so structurally identical trees produce identical programs.
func Compile(el *node.Element, opts ...Option) Program {
	c := &compiler{
		prefix:     DefaultVarPrefix,
		registry:   DefaultRegistry,
		renderFunc: script.DefaultRenderFunc,
		program:    make(Program, 0, 16),
	}
	for _, opt := range opts {
		opt(c)
	}
	if el == nil {
		return nil
	}

	root := c.walk(el)
	c.emit(Instruction{Op: OpReturn, Var: root})
	return c.program
}

func (c *compiler) nextVar() string {
	c.counter++
	return fmt.Sprintf("%s%d", c.prefix, c.counter)
}

func (c *compiler) emit(in Instruction) {
	in.registry = c.registry
	in.renderFunc = c.renderFunc
	c.program = append(c.program, in)
}

func (c *compiler) walk(el *node.Element) string {
	v := c.nextVar()

	c.emit(Instruction{Op: OpCreate, Var: v, Name: el.Tag()})
	c.emit(Instruction{Op: OpClassName, Var: v, Value: el.ClassName()})

	for _, a := range el.Attributes() {
		switch a.Name {
		case "class":
			continue
		case "style":
			// cssText sidesteps setAttribute quirks on style
			c.emit(Instruction{Op: OpStyle, Var: v, Value: a.Value})
		default:
			c.emit(Instruction{Op: OpSetAttribute, Var: v, Name: a.Name, Value: a.Value})
		}
	}

	// children take priority over text, matching the markup emitter
	if text, ok := el.Text(); ok && !el.HasChildren() {
		c.emit(Instruction{Op: OpText, Var: v, Value: text})
	}

	if h := el.OnClick(); h != nil {
		handler := *h
		c.emit(Instruction{Op: OpOnClick, Var: v, Handler: &handler})
	}

	for _, child := range el.Children() {
		switch ch := child.(type) {
		case *node.Component:
			// mounted through the registry so components ship separately
			cv := c.nextVar()
			c.emit(Instruction{Op: OpMount, Var: cv, Name: ch.Key()})
			c.emit(Instruction{Op: OpAppend, Var: v, Child: cv})
		case *node.Element:
			cv := c.walk(ch)
			c.emit(Instruction{Op: OpAppend, Var: v, Child: cv})
		}
	}

	return v
}

// FactoryScript wraps a program as a factory assigned into registry
func FactoryScript(registry, key string, params []string, p Program) string {
	if registry == "" {
		registry = DefaultRegistry
	}
	var b strings.Builder
	b.WriteString(registry)
	b.WriteString("[")
	b.WriteString(script.Quote(key))
	b.WriteString("] = function(")
	b.WriteString(strings.Join(params, ", "))
	b.WriteString(") {\n")
	b.WriteString(p.String())
	b.WriteString("\n};")
	return b.String()
}

// RawExpr reports whether an instruction value is a raw expression
// reference and returns the expression without its sigil.
func RawExpr(v string) (string, bool) {
	return script.Raw(v)
}

// CallExpr lowers a descriptor to the call expression used in handlers
// and on-load scripts. An empty renderFunc selects renderComponent.
func CallExpr(h node.Handler, renderFunc string) string {
	return script.Call(h, renderFunc)
}
