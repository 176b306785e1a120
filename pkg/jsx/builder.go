// Package jsx evaluates authored component definitions into node trees.
//
// A Builder plays the role of a JSX factory: every H call becomes an
// element, a component boundary, or an inline splice.
//
//	b := jsx.NewBuilder()
//	tree := b.H("div", jsx.Props{"class": "app"},
//		b.H("h1", nil, "Hi"),
//		b.H("button", jsx.Props{"onClick": node.Call("f", node.Arg{Name: "n", Value: 1})}),
//	)
package jsx

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/recera/scc/pkg/node"
	"github.com/recera/scc/pkg/styling"
)

var (
	// ErrNotCallable is recorded when H receives a type that is neither a
	// tag name nor a component definition.
	ErrNotCallable = errors.New("component is not callable")

	// ErrBadResult is recorded when a definition renders neither an
	// element nor a component.
	ErrBadResult = errors.New("component did not return an element or component")

	// ErrSharedNode is recorded when a node is passed as a child after it
	// was already attached elsewhere
	ErrSharedNode = node.ErrSharedNode
)

// TextPolicy decides how several scalar children share the single text slot
type TextPolicy uint8

const (
	// TextLastWins keeps the last scalar child
	TextLastWins TextPolicy = iota
	// TextConcat joins all scalar children in order
	TextConcat
)

// Option configures a Builder
type Option func(*Builder)

// WithIDGenerator injects the identity token source
func WithIDGenerator(g *node.IDGenerator) Option {
	return func(b *Builder) {
		if g != nil {
			b.ids = g
		}
	}
}

// WithIDPrefix changes the identity token prefix
func WithIDPrefix(prefix string) Option {
	return func(b *Builder) {
		b.ids = node.NewIDGenerator(prefix)
	}
}

// WithTextPolicy selects how scalar children are combined
func WithTextPolicy(p TextPolicy) Option {
	return func(b *Builder) {
		b.text = p
	}
}

// Builder evaluates definitions into trees. It owns the identity counter
// for one build and is not safe for concurrent use.
type Builder struct {
	ids  *node.IDGenerator
	text TextPolicy
	err  error
}

// NewBuilder creates a builder with a fresh identity counter
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{ids: node.NewIDGenerator(node.DefaultIDPrefix)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Reset clears the recorded error and restarts identity tokens
func (b *Builder) Reset() {
	b.err = nil
	b.ids.Reset()
}

// Err returns the first failure recorded while building
func (b *Builder) Err() error { return b.err }

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// H builds one node. typ is a tag name or a callable (see Resolve).
// After the first failure H returns nil and Err reports the cause.
func (b *Builder) H(typ any, props Props, children ...any) node.Node {
	if b.err != nil {
		return nil
	}

	if tag, ok := typ.(string); ok {
		return b.element(tag, props, children)
	}

	def, ok := Resolve(typ)
	if !ok || def.Render == nil {
		b.fail(fmt.Errorf("%T: %w", typ, ErrNotCallable))
		return nil
	}
	if def.fragment {
		return b.fragment(withChildren(props, children))
	}
	return b.call(def, withChildren(props, children), false)
}

// El is H for tag names, typed as an element
func (b *Builder) El(tag string, props Props, children ...any) *node.Element {
	if b.err != nil {
		return nil
	}
	return b.element(tag, props, children)
}

// Instantiate evaluates def with props and always wraps the result in a
// component boundary, inline suffix or not.
func (b *Builder) Instantiate(def *Def, props Props) (*node.Component, error) {
	if def == nil || def.Render == nil {
		return nil, ErrNotCallable
	}
	n := b.call(def, props, true)
	if b.err != nil {
		return nil, b.err
	}
	c, ok := n.(*node.Component)
	if !ok {
		return nil, fmt.Errorf("%s: %w", def.Name, ErrBadResult)
	}
	return c, nil
}

func (b *Builder) call(def *Def, props Props, boundary bool) node.Node {
	if props == nil {
		props = Props{}
	}

	var root *node.Element
	var hooks []node.Handler
	switch out := def.Render(b, props).(type) {
	case *node.Element:
		root = out
	case *node.Component:
		if out != nil {
			// the inner boundary folds into this one
			root, _ = out.Root()
			hooks = out.OnLoadHooks()
		}
	}
	if b.err != nil {
		return nil
	}
	if root == nil {
		b.fail(fmt.Errorf("%s: %w", def.Name, ErrBadResult))
		return nil
	}

	if def.IsInline() && !boundary {
		return root
	}

	c := node.NewComponent(root, def.Name, def.Params)
	for _, h := range def.OnLoad {
		c.AddOnLoadHook(h)
	}
	for _, h := range hooks {
		c.AddOnLoadHook(h)
	}
	return c
}

// withChildren merges collapsed children into a copy of props: one child
// as itself, several as a slice, none removes the key.
func withChildren(props Props, children []any) Props {
	merged := make(Props, len(props)+1)
	for k, v := range props {
		merged[k] = v
	}
	switch len(children) {
	case 0:
		delete(merged, "children")
	case 1:
		merged["children"] = children[0]
	default:
		merged["children"] = children
	}
	return merged
}

func (b *Builder) element(tag string, props Props, children []any) *node.Element {
	el := node.NewElement(tag, b.ids.Next())

	if h, ok := handlerFrom(props["onClick"]); ok {
		el.SetOnClick(h)
	}

	switch style := props["style"].(type) {
	case string:
		el.SetAttribute("style", style)
	case map[string]any:
		el.SetAttribute("style", styling.InlineStyle(styling.FromMap(style)))
	case Props:
		el.SetAttribute("style", styling.InlineStyle(styling.FromMap(style)))
	case map[string]string:
		m := make(map[string]any, len(style))
		for k, v := range style {
			m[k] = v
		}
		el.SetAttribute("style", styling.InlineStyle(styling.FromMap(m)))
	case styling.Rules:
		el.SetAttribute("style", styling.InlineStyle(style))
	}

	keys := make([]string, 0, len(props))
	for k := range props {
		switch k {
		case "children", "onClick", "style":
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v, ok := scalar(props[k], true); ok {
			el.SetAttribute(k, v)
		}
	}

	kids := children
	if len(kids) == 0 {
		kids = []any{props["children"]}
	}
	b.appendChildren(el, kids)
	return el
}

func (b *Builder) appendChildren(el *node.Element, kids []any) {
	var texts []string
	for _, kid := range flattenChildren(kids) {
		switch c := kid.(type) {
		case nil, bool:
			continue
		case node.Node:
			b.adopt(el, c)
		default:
			if s, ok := scalar(c, false); ok {
				texts = append(texts, s)
			}
		}
	}
	if len(texts) == 0 {
		return
	}
	switch b.text {
	case TextConcat:
		el.SetText(strings.Join(texts, ""))
	default:
		el.SetText(texts[len(texts)-1])
	}
}

// adopt attaches child to parent, recording a shared node as the build error
func (b *Builder) adopt(parent *node.Element, child node.Node) {
	if err := parent.AddChild(child); err != nil {
		b.fail(fmt.Errorf("<%s>: %w", parent.Tag(), err))
	}
}

func flattenChildren(kids []any) []any {
	out := make([]any, 0, len(kids))
	for _, kid := range kids {
		switch c := kid.(type) {
		case []any:
			out = append(out, flattenChildren(c)...)
		case []node.Node:
			for _, n := range c {
				out = append(out, n)
			}
		case []*node.Element:
			for _, n := range c {
				out = append(out, n)
			}
		case []string:
			for _, s := range c {
				out = append(out, s)
			}
		default:
			out = append(out, kid)
		}
	}
	return out
}

// scalar converts attribute and text values. Functions, maps, slices and
// structs have no string form and are dropped.
func scalar(v any, allowBool bool) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), allowBool
	case int:
		return strconv.Itoa(x), true
	case int8, int16, int32, int64:
		return fmt.Sprint(x), true
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(x), true
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32), true
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), true
	case fmt.Stringer:
		return x.String(), true
	}
	return "", false
}

func handlerFrom(v any) (node.Handler, bool) {
	switch h := v.(type) {
	case node.Handler:
		return h, h.Valid()
	case *node.Handler:
		if h == nil {
			return node.Handler{}, false
		}
		return *h, h.Valid()
	case map[string]any:
		return node.HandlerFromMap(h)
	case Props:
		return node.HandlerFromMap(h)
	}
	return node.Handler{}, false
}
