// Package memdom is an in-memory document that executes DOM
// construction programs. It backs the runtime in tests and lets the
// build verify generated factories without a browser.
package memdom

import (
	"strings"

	"github.com/recera/scc/pkg/client"
	"github.com/recera/scc/pkg/node"
)

// Attr is an element attribute
type Attr struct {
	Name  string
	Value string
}

// Element is an in-memory document element
type Element struct {
	Tag       string
	ClassName string
	Text      string
	OnClick   *node.Handler

	attrs    []Attr
	parent   *Element
	children []*Element
}

// NewElement creates a detached element
func NewElement(tag string) *Element {
	return &Element{Tag: tag}
}

// SetAttribute sets or replaces an attribute, keeping its first position
func (e *Element) SetAttribute(name, value string) {
	for i := range e.attrs {
		if e.attrs[i].Name == name {
			e.attrs[i].Value = value
			return
		}
	}
	e.attrs = append(e.attrs, Attr{Name: name, Value: value})
}

// Attribute returns an attribute value
func (e *Element) Attribute(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Attributes returns the attributes in assignment order
func (e *Element) Attributes() []Attr {
	out := make([]Attr, len(e.attrs))
	copy(out, e.attrs)
	return out
}

// ID returns the id attribute
func (e *Element) ID() string {
	id, _ := e.Attribute("id")
	return id
}

// Classes splits the class name on whitespace
func (e *Element) Classes() []string {
	return strings.Fields(e.ClassName)
}

// HasClass reports whether class is present on the element
func (e *Element) HasClass(class string) bool {
	for _, c := range e.Classes() {
		if c == class {
			return true
		}
	}
	return false
}

// Parent returns the parent element, or nil when detached
func (e *Element) Parent() *Element {
	return e.parent
}

// Children returns the child elements
func (e *Element) Children() []*Element {
	return e.children
}

// TextContent concatenates the text of e and its descendants
func (e *Element) TextContent() string {
	if len(e.children) == 0 {
		return e.Text
	}
	var b strings.Builder
	b.WriteString(e.Text)
	for _, c := range e.children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// AppendChild moves child under e. Elements from other documents are
// ignored.
func (e *Element) AppendChild(child client.Element) {
	c, ok := child.(*Element)
	if !ok || c == nil {
		return
	}
	c.detach()
	c.parent = e
	e.children = append(e.children, c)
}

// CloneNode copies e. The copy is detached and, when deep, carries copies
// of all descendants.
func (e *Element) CloneNode(deep bool) client.Element {
	return e.clone(deep)
}

func (e *Element) clone(deep bool) *Element {
	c := &Element{
		Tag:       e.Tag,
		ClassName: e.ClassName,
		Text:      e.Text,
		attrs:     e.Attributes(),
	}
	if e.OnClick != nil {
		h := *e.OnClick
		c.OnClick = &h
	}
	if deep {
		for _, child := range e.children {
			cc := child.clone(true)
			cc.parent = c
			c.children = append(c.children, cc)
		}
	}
	return c
}

// Remove detaches e from its parent
func (e *Element) Remove() {
	e.detach()
}

func (e *Element) detach() {
	p := e.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == e {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	e.parent = nil
}

// Find returns the first element in pre-order whose id matches
func (e *Element) Find(id string) *Element {
	if e.ID() == id {
		return e
	}
	for _, c := range e.children {
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// FindByClass returns the first element in pre-order carrying class
func (e *Element) FindByClass(class string) *Element {
	if e.HasClass(class) {
		return e
	}
	for _, c := range e.children {
		if found := c.FindByClass(class); found != nil {
			return found
		}
	}
	return nil
}

// Document is an in-memory document rooted at a body element
type Document struct {
	Body *Element
}

// NewDocument creates an empty document
func NewDocument() *Document {
	return &Document{Body: NewElement("body")}
}

// GetElementByID implements client.Document
func (d *Document) GetElementByID(id string) client.Element {
	if el := d.Body.Find(id); el != nil {
		return el
	}
	return nil
}

// Mount appends a new element with id under the body and returns it
func (d *Document) Mount(tag, id string) *Element {
	el := NewElement(tag)
	el.SetAttribute("id", id)
	d.Body.AppendChild(el)
	return el
}
