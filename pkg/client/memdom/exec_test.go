package memdom

import (
	"errors"
	"testing"

	"github.com/recera/scc/pkg/client"
	"github.com/recera/scc/pkg/node"
	"github.com/recera/scc/pkg/renderer/dom"
)

func buildCard() *node.Element {
	ids := node.NewIDGenerator(node.DefaultIDPrefix)
	title := node.NewElement("h2", ids.Next())
	title.SetText("$title")
	root := node.NewElement("div", ids.Next())
	root.SetAttribute("class", "card")
	root.SetAttribute("data-kind", "$kind")
	root.SetOnClick(node.Call("select", node.Arg{Name: "id", Value: 1}))
	root.AddChild(title)
	return root
}

func TestFactory_BindsParams(t *testing.T) {
	prog := dom.Compile(buildCard())
	f := Factory(prog, []string{"title", "kind"}, nil)

	out, err := f("Hello")
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	el := out.(*Element)

	if el.Tag != "div" {
		t.Errorf("tag = %s, want div", el.Tag)
	}
	if el.ClassName != "sc-el-2 card" {
		t.Errorf("className = %q", el.ClassName)
	}
	if got, _ := el.Attribute("data-kind"); got != "undefined" {
		t.Errorf("unbound param = %q, want undefined", got)
	}
	if got := el.TextContent(); got != "Hello" {
		t.Errorf("text = %q, want Hello", got)
	}
	if el.OnClick == nil || el.OnClick.Name != "select" {
		t.Errorf("onclick = %v", el.OnClick)
	}
}

func TestExec_Mount(t *testing.T) {
	ids := node.NewIDGenerator(node.DefaultIDPrefix)
	inner := node.NewElement("span", ids.Next())
	inner.SetText("inner")
	comp := node.NewComponent(inner, "Inner", nil)
	outer := node.NewElement("section", ids.Next())
	outer.AddChild(comp)
	prog := dom.Compile(outer)

	registry := map[string]client.Factory{
		"Inner": Factory(dom.Compile(inner), nil, nil),
	}
	lookup := func(key string) (client.Factory, bool) {
		f, ok := registry[key]
		return f, ok
	}

	el, err := Exec(prog, Env{Lookup: lookup})
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if len(el.Children()) != 1 || el.Children()[0].Tag != "span" {
		t.Fatalf("children = %v", el.Children())
	}
	if got := el.TextContent(); got != "inner" {
		t.Errorf("text = %q", got)
	}

	if _, err := Exec(prog, Env{}); !errors.Is(err, client.ErrFactoryMissing) {
		t.Errorf("Exec without lookup error = %v, want ErrFactoryMissing", err)
	}
}

func TestExec_NoReturn(t *testing.T) {
	prog := dom.Program{{Op: dom.OpCreate, Var: "el1", Name: "div"}}
	if _, err := Exec(prog, Env{}); !errors.Is(err, ErrNoResult) {
		t.Errorf("error = %v, want ErrNoResult", err)
	}
}

func TestDocument(t *testing.T) {
	doc := NewDocument()
	doc.Mount("div", "a")

	if doc.GetElementByID("a") == nil {
		t.Error("GetElementByID(a) = nil")
	}
	if got := doc.GetElementByID("b"); got != nil {
		t.Errorf("GetElementByID(b) = %v, want nil", got)
	}
}
