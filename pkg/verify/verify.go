// Package verify checks that the markup and the DOM program generated
// for one tree describe the same elements, so handlers wired through
// identity tokens resolve in both.
package verify

import (
	"fmt"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/recera/scc/pkg/client"
	"github.com/recera/scc/pkg/client/memdom"
	"github.com/recera/scc/pkg/node"
	"github.com/recera/scc/pkg/renderer/dom"
	"github.com/recera/scc/pkg/renderer/html"
)

// MismatchError reports the first element where the two artifacts disagree
type MismatchError struct {
	Path   string
	Field  string
	Markup string
	DOM    string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("verify: %s: %s differs: markup %q, dom %q", e.Path, e.Field, e.Markup, e.DOM)
}

// Tree renders root both ways and compares the results element by
// element in pre-order. Component children are mounted from programs
// compiled off the same instances.
func Tree(root *node.Element) error {
	markup, err := html.RenderToString(root)
	if err != nil {
		return err
	}

	parsed, err := parseMarkup(markup)
	if err != nil {
		return err
	}

	built, err := replay(root)
	if err != nil {
		return err
	}

	return compare(parsed, built, root.Tag())
}

// Component verifies the root of c
func Component(c *node.Component) error {
	root, err := c.Root()
	if err != nil {
		return err
	}
	if err := Tree(root); err != nil {
		return fmt.Errorf("%s: %w", c.Key(), err)
	}
	return nil
}

func parseMarkup(markup string) (*xhtml.Node, error) {
	body := &xhtml.Node{Type: xhtml.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := xhtml.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return nil, fmt.Errorf("verify: parse markup: %w", err)
	}

	var roots []*xhtml.Node
	for _, n := range nodes {
		if n.Type == xhtml.ElementNode {
			roots = append(roots, n)
		}
	}
	if len(roots) != 1 {
		return nil, fmt.Errorf("verify: markup has %d top-level elements, want 1", len(roots))
	}
	return roots[0], nil
}

// replay executes the program of root, mounting component children from
// their own programs in the order the program requests them.
func replay(root *node.Element) (*memdom.Element, error) {
	// mounts run in program order: a component's own mounts execute when
	// it is mounted, before its later siblings
	var queue []*node.Component
	var collect func(el *node.Element)
	collect = func(el *node.Element) {
		for _, child := range el.Children() {
			switch c := child.(type) {
			case *node.Component:
				queue = append(queue, c)
				if r, err := c.Root(); err == nil {
					collect(r)
				}
			case *node.Element:
				collect(c)
			}
		}
	}
	collect(root)

	var lookup memdom.Lookup
	lookup = func(key string) (client.Factory, bool) {
		if len(queue) == 0 || queue[0].Key() != key {
			return nil, false
		}
		c := queue[0]
		queue = queue[1:]
		return func(...any) (client.Element, error) {
			r, err := c.Root()
			if err != nil {
				return nil, err
			}
			el, err := memdom.Exec(dom.Compile(r), memdom.Env{Lookup: lookup, Raw: true})
			if err != nil {
				return nil, err
			}
			return el, nil
		}, true
	}

	return memdom.Exec(dom.Compile(root), memdom.Env{Lookup: lookup, Raw: true})
}
