package html

import (
	"fmt"
	"io"
	"strings"

	"github.com/recera/scc/pkg/node"
	"github.com/recera/scc/pkg/renderer/internal/script"
)

var (
	attrEscaper = strings.NewReplacer(`&`, "&amp;", `"`, "&quot;")
	textEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;", `"`, "&quot;")
)

// EscapeAttr escapes an attribute value for a double-quoted attribute
func EscapeAttr(s string) string { return attrEscaper.Replace(s) }

// EscapeText escapes element text content
func EscapeText(s string) string { return textEscaper.Replace(s) }

// Option configures a Renderer
type Option func(*Renderer)

// WithRenderFunc renames the runtime function render descriptors call
func WithRenderFunc(name string) Option {
	return func(r *Renderer) {
		r.renderFunc = name
	}
}

// Renderer serializes element trees to markup
type Renderer struct {
	w          io.Writer
	renderFunc string
	err        error
}

// NewRenderer creates a renderer writing to w
func NewRenderer(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{
		w:          w,
		renderFunc: script.DefaultRenderFunc,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes el and its subtree
func (r *Renderer) Render(el *node.Element) error {
	if el == nil {
		return fmt.Errorf("html: nil root element")
	}
	r.renderElement(el)
	return r.err
}

// write helper that tracks errors
func (r *Renderer) write(s string) {
	if r.err != nil {
		return
	}
	_, r.err = io.WriteString(r.w, s)
}

func (r *Renderer) renderElement(el *node.Element) {
	if r.err != nil {
		return
	}

	tag := el.Tag()
	r.write("<")
	r.write(tag)
	r.writeAttr("class", el.ClassName())
	for _, a := range el.Attributes() {
		if a.Name == "class" {
			continue
		}
		r.writeAttr(a.Name, a.Value)
	}
	if h := el.OnClick(); h != nil {
		r.writeAttr("onclick", script.Call(*h, r.renderFunc))
	}
	r.write(">")

	if children := el.Children(); len(children) > 0 {
		r.write("\n")
		for i, child := range children {
			if i > 0 {
				r.write("\n")
			}
			switch c := child.(type) {
			case *node.Element:
				r.renderElement(c)
			case *node.Component:
				// the boundary itself never reaches the markup
				root, err := c.Root()
				if err != nil {
					r.err = err
					return
				}
				r.renderElement(root)
			}
		}
		r.write("\n")
	} else if text, ok := el.Text(); ok {
		r.write(EscapeText(text))
	}

	r.write("</")
	r.write(tag)
	r.write(">")
}

func (r *Renderer) writeAttr(name, value string) {
	r.write(" ")
	r.write(name)
	r.write(`="`)
	r.write(EscapeAttr(value))
	r.write(`"`)
}

// RenderToString is a convenience function to render an element to a string
func RenderToString(el *node.Element, opts ...Option) (string, error) {
	var buf strings.Builder
	if err := NewRenderer(&buf, opts...).Render(el); err != nil {
		return "", err
	}
	return buf.String(), nil
}
