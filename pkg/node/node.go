// Package node holds the tree every emitter reads: elements, component
// boundaries and the click descriptors attached to them.
package node

import (
	"errors"
	"fmt"
	"sync"
)

// Kind identifies the variant of a Node
type Kind uint8

const (
	// KindElement is a single markup tag
	KindElement Kind = iota + 1
	// KindComponent is a named, independently loadable boundary
	KindComponent
)

func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindComponent:
		return "component"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// Node is either an *Element or a *Component. The set is closed.
type Node interface {
	Kind() Kind
	sealed()
}

var (
	// ErrNotRendered is returned by Component.Root when the component has no root
	ErrNotRendered = errors.New("component not rendered yet")

	// ErrSharedNode is returned when a node that already has an owner is
	// attached again. Each node belongs to exactly one parent.
	ErrSharedNode = errors.New("node already has an owner")
)

// DefaultIDPrefix is prepended to the counter by IDGenerator
const DefaultIDPrefix = "sc-el-"

// IDGenerator hands out identity tokens in construction order
type IDGenerator struct {
	mu      sync.Mutex
	prefix  string
	counter uint64
}

// NewIDGenerator creates a generator whose first token is <prefix>1
func NewIDGenerator(prefix string) *IDGenerator {
	if prefix == "" {
		prefix = DefaultIDPrefix
	}
	return &IDGenerator{prefix: prefix}
}

// Next returns the next identity token
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("%s%d", g.prefix, g.counter)
}

// Reset restarts the counter. Tokens handed out before the reset may be
// issued again, so only call it between builds.
func (g *IDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter = 0
}

// Attr is a single attribute in insertion order
type Attr struct {
	Name  string
	Value string
}

// Element represents one markup tag
type Element struct {
	tag      string
	id       string
	attrs    []Attr
	index    map[string]int
	children []Node
	text     string
	hasText  bool
	onClick  *Handler
	owned    bool
}

// NewElement creates an element carrying the identity token id
func NewElement(tag, id string) *Element {
	return &Element{
		tag:   tag,
		id:    id,
		index: make(map[string]int),
	}
}

func (*Element) Kind() Kind { return KindElement }
func (*Element) sealed()    {}

// Tag returns the element tag name
func (e *Element) Tag() string { return e.tag }

// ID returns the identity token assigned at construction
func (e *Element) ID() string { return e.id }

// AddChild appends a child and takes ownership of it. Nil children are
// ignored. A child that already belongs to an element or component is
// rejected with ErrSharedNode and left where it is.
func (e *Element) AddChild(child Node) error {
	switch c := child.(type) {
	case *Element:
		if c == nil {
			return nil
		}
		if c.owned || c == e {
			return fmt.Errorf("%s: %w", c.id, ErrSharedNode)
		}
		c.owned = true
	case *Component:
		if c == nil {
			return nil
		}
		if c.owned {
			return fmt.Errorf("%s: %w", c.key, ErrSharedNode)
		}
		c.owned = true
	case nil:
		return nil
	}
	e.children = append(e.children, child)
	return nil
}

// Children returns the ordered child list
func (e *Element) Children() []Node { return e.children }

// HasChildren reports whether the element has at least one child
func (e *Element) HasChildren() bool { return len(e.children) > 0 }

// SetText replaces the text content
func (e *Element) SetText(text string) {
	e.text = text
	e.hasText = true
}

// Text returns the text content and whether it was set
func (e *Element) Text() (string, bool) { return e.text, e.hasText }

// SetAttribute sets an attribute. A repeated name keeps its first
// position and takes the last value.
func (e *Element) SetAttribute(name, value string) {
	if i, ok := e.index[name]; ok {
		e.attrs[i].Value = value
		return
	}
	e.index[name] = len(e.attrs)
	e.attrs = append(e.attrs, Attr{Name: name, Value: value})
}

// Attribute returns the value of a single attribute
func (e *Element) Attribute(name string) (string, bool) {
	i, ok := e.index[name]
	if !ok {
		return "", false
	}
	return e.attrs[i].Value, true
}

// Attributes returns the attributes in insertion order
func (e *Element) Attributes() []Attr { return e.attrs }

// ClassName merges the identity token ahead of any user classes
func (e *Element) ClassName() string {
	if user, ok := e.Attribute("class"); ok && user != "" {
		return e.id + " " + user
	}
	return e.id
}

// SetOnClick attaches a click descriptor
func (e *Element) SetOnClick(h Handler) {
	e.onClick = &h
}

// OnClick returns the click descriptor, or nil
func (e *Element) OnClick() *Handler { return e.onClick }

// Component wraps a root element behind a named boundary
type Component struct {
	root   *Element
	key    string
	params []string
	hooks  []Handler
	owned  bool
}

// NewComponent creates a component that owns root
func NewComponent(root *Element, key string, params []string) *Component {
	return &Component{
		root:   root,
		key:    key,
		params: append([]string(nil), params...),
	}
}

func (*Component) Kind() Kind { return KindComponent }
func (*Component) sealed()    {}

// Key returns the component name used as registry key
func (c *Component) Key() string { return c.key }

// Params returns the declared parameter names in order
func (c *Component) Params() []string { return c.params }

// AddOnLoadHook registers a descriptor to run once the page has loaded
func (c *Component) AddOnLoadHook(h Handler) {
	c.hooks = append(c.hooks, h)
}

// OnLoadHooks returns the registered hooks
func (c *Component) OnLoadHooks() []Handler { return c.hooks }

// Root returns the owned root element
func (c *Component) Root() (*Element, error) {
	if c.root == nil {
		return nil, fmt.Errorf("%s: %w", c.key, ErrNotRendered)
	}
	return c.root, nil
}

// MustRoot is Root for callers holding a component built by NewComponent
// with a non-nil root.
func (c *Component) MustRoot() *Element {
	root, err := c.Root()
	if err != nil {
		panic(err)
	}
	return root
}

// Walk visits every element reachable from root in pre-order, descending
// through component boundaries. Returning false from fn skips the
// element's subtree.
func Walk(root *Element, fn func(el *Element, owner *Component) bool) {
	walk(root, nil, fn)
}

func walk(el *Element, owner *Component, fn func(*Element, *Component) bool) {
	if el == nil || !fn(el, owner) {
		return
	}
	for _, child := range el.children {
		switch c := child.(type) {
		case *Element:
			walk(c, owner, fn)
		case *Component:
			walk(c.root, c, fn)
		}
	}
}
