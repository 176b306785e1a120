package verify

import (
	"fmt"
	"strings"

	xhtml "golang.org/x/net/html"

	"github.com/recera/scc/pkg/client/memdom"
)

func compare(m *xhtml.Node, d *memdom.Element, path string) error {
	mismatch := func(field, mv, dv string) error {
		return &MismatchError{Path: path, Field: field, Markup: mv, DOM: dv}
	}

	if m.Data != d.Tag {
		return mismatch("tag", m.Data, d.Tag)
	}

	class := attr(m, "class")
	if class != d.ClassName {
		mc, dc := strings.Fields(class), d.Classes()
		if len(mc) == 0 || len(dc) == 0 || mc[0] != dc[0] {
			return mismatch("token", first(mc), first(dc))
		}
		return mismatch("class", class, d.ClassName)
	}

	for _, a := range d.Attributes() {
		if got := attr(m, a.Name); got != a.Value {
			return mismatch("attribute "+a.Name, got, a.Value)
		}
	}
	if hasAttr(m, "onclick") != (d.OnClick != nil) {
		return mismatch("onclick", attr(m, "onclick"), fmt.Sprint(d.OnClick))
	}

	kids := elementChildren(m)
	dkids := d.Children()
	if len(kids) != len(dkids) {
		return mismatch("children", fmt.Sprint(len(kids)), fmt.Sprint(len(dkids)))
	}
	if len(kids) == 0 {
		if text := textOf(m); text != d.Text {
			return mismatch("text", text, d.Text)
		}
		return nil
	}

	for i := range kids {
		if err := compare(kids[i], dkids[i], fmt.Sprintf("%s/%s[%d]", path, dkids[i].Tag, i)); err != nil {
			return err
		}
	}
	return nil
}

func elementChildren(n *xhtml.Node) []*xhtml.Node {
	var out []*xhtml.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xhtml.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

func textOf(n *xhtml.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xhtml.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func attr(n *xhtml.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *xhtml.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}
