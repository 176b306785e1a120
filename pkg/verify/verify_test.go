package verify

import (
	"errors"
	"testing"

	"github.com/recera/scc/pkg/jsx"
	"github.com/recera/scc/pkg/node"
)

func Badge(b *jsx.Builder, p jsx.Props) node.Node {
	return b.H("span", jsx.Props{"class": "badge"}, p["label"])
}

func Panel(b *jsx.Builder, p jsx.Props) node.Node {
	return b.H("section", nil,
		b.H("h3", nil, p["title"]),
		b.H(Badge, jsx.Props{"label": "inner"}),
	)
}

func TestTree(t *testing.T) {
	b := jsx.NewBuilder()
	tree := b.El("main", jsx.Props{"class": "app", "data-x": `a"b&c`},
		b.H("p", jsx.Props{"style": map[string]any{"fontSize": "12px"}}, `<b>&"</b>`),
		b.H(Panel, jsx.Props{"title": "$title"}),
		b.H("ul", nil,
			b.H("li", nil, b.H(Badge, jsx.Props{"label": "deep"})),
			b.H("li", jsx.Props{"onClick": node.Call("pick", node.Arg{Name: "i", Value: 2})}, "two"),
		),
		b.H(Badge, jsx.Props{"label": "last"}),
	)
	if err := b.Err(); err != nil {
		t.Fatal(err)
	}

	if err := Tree(tree); err != nil {
		t.Errorf("Tree() = %v", err)
	}
}

func TestComponent(t *testing.T) {
	b := jsx.NewBuilder()
	c, err := b.Instantiate(&jsx.Def{Name: "Panel", Params: []string{"title"}, Render: Panel},
		jsx.Props{"title": "$title"})
	if err != nil {
		t.Fatal(err)
	}
	if err := Component(c); err != nil {
		t.Errorf("Component() = %v", err)
	}

	if err := Component(node.NewComponent(nil, "Ghost", nil)); !errors.Is(err, node.ErrNotRendered) {
		t.Errorf("Component(Ghost) = %v, want ErrNotRendered", err)
	}
}

func TestTree_Mismatch(t *testing.T) {
	// a block element inside a paragraph is hoisted by the HTML parser
	p := node.NewElement("p", "t1")
	p.AddChild(node.NewElement("div", "t2"))

	err := Tree(p)
	if err == nil {
		t.Fatal("Tree() accepted markup the parser restructures")
	}

	wrap := node.NewElement("div", "t0")
	wrap.AddChild(p)
	var mm *MismatchError
	if err := Tree(wrap); !errors.As(err, &mm) {
		t.Fatalf("Tree() = %v, want *MismatchError", err)
	}
	if mm.Field != "children" {
		t.Errorf("Field = %q, want children", mm.Field)
	}
}
