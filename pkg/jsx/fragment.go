package jsx

import "github.com/recera/scc/pkg/node"

// Fragment groups children without introducing a component boundary:
//
//	b.H(jsx.Fragment, nil, first, second)
var Fragment = &Def{Name: "Fragment", fragment: true, Render: func(b *Builder, p Props) node.Node {
	return b.fragment(p)
}}

// FragmentStyle keeps the fragment wrapper out of layout
const FragmentStyle = "display:contents"

// Frag builds a fragment from children directly
func (b *Builder) Frag(children ...any) *node.Element {
	if b.err != nil {
		return nil
	}
	return b.fragment(withChildren(nil, children))
}

// fragment returns a transparent wrapper holding the element and
// component children of p. Scalars are not carried over.
func (b *Builder) fragment(p Props) *node.Element {
	wrapper := node.NewElement("div", b.ids.Next())
	wrapper.SetAttribute("style", FragmentStyle)
	for _, kid := range flattenChildren([]any{p["children"]}) {
		if n, ok := kid.(node.Node); ok {
			b.adopt(wrapper, n)
		}
	}
	return wrapper
}
