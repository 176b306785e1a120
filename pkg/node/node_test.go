package node

import (
	"errors"
	"reflect"
	"sync"
	"testing"
)

func TestIDGenerator(t *testing.T) {
	g := NewIDGenerator(DefaultIDPrefix)
	if got := g.Next(); got != "sc-el-1" {
		t.Errorf("first token = %s, want sc-el-1", got)
	}

	seen := make(map[string]bool)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := g.Next()
				mu.Lock()
				if seen[id] {
					t.Errorf("token %s reused", id)
				}
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	g.Reset()
	if got := g.Next(); got != "sc-el-1" {
		t.Errorf("token after Reset = %s, want sc-el-1", got)
	}
}

func TestElement_Attributes(t *testing.T) {
	el := NewElement("a", "sc-el-1")
	el.SetAttribute("href", "/one")
	el.SetAttribute("class", "link")
	el.SetAttribute("href", "/two")

	attrs := el.Attributes()
	if len(attrs) != 2 {
		t.Fatalf("len(attrs) = %d, want 2", len(attrs))
	}
	if attrs[0] != (Attr{Name: "href", Value: "/two"}) {
		t.Errorf("attrs[0] = %+v", attrs[0])
	}
	if got := el.ClassName(); got != "sc-el-1 link" {
		t.Errorf("ClassName() = %q", got)
	}

	bare := NewElement("p", "sc-el-2")
	if got := bare.ClassName(); got != "sc-el-2" {
		t.Errorf("ClassName() without class = %q", got)
	}
}

func TestElement_AddChildIgnoresNil(t *testing.T) {
	el := NewElement("div", "sc-el-1")
	var e *Element
	var c *Component
	el.AddChild(nil)
	el.AddChild(e)
	el.AddChild(c)
	if el.HasChildren() {
		t.Errorf("children = %v, want none", el.Children())
	}
}

func TestElement_AddChildSingleOwner(t *testing.T) {
	child := NewElement("span", "sc-el-1")
	first := NewElement("div", "sc-el-2")
	second := NewElement("div", "sc-el-3")

	if err := first.AddChild(child); err != nil {
		t.Fatalf("AddChild() error = %v", err)
	}
	tests := []struct {
		name   string
		parent *Element
		child  Node
	}{
		{"same parent twice", first, child},
		{"second parent", second, child},
		{"itself", second, second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.parent.AddChild(tt.child); !errors.Is(err, ErrSharedNode) {
				t.Errorf("AddChild() error = %v, want ErrSharedNode", err)
			}
		})
	}
	if n := len(first.Children()); n != 1 {
		t.Errorf("first has %d children, want 1", n)
	}
	if second.HasChildren() {
		t.Errorf("second children = %v, want none", second.Children())
	}

	comp := NewComponent(NewElement("p", "sc-el-5"), "Card", nil)
	if err := first.AddChild(comp); err != nil {
		t.Fatalf("AddChild(component) error = %v", err)
	}
	if err := second.AddChild(comp); !errors.Is(err, ErrSharedNode) {
		t.Errorf("AddChild(component) again error = %v, want ErrSharedNode", err)
	}
}

func TestComponent_Root(t *testing.T) {
	root := NewElement("div", "sc-el-1")
	c := NewComponent(root, "Card", []string{"title"})
	got, err := c.Root()
	if err != nil || got != root {
		t.Errorf("Root() = %v, %v", got, err)
	}

	empty := NewComponent(nil, "Ghost", nil)
	if _, err := empty.Root(); !errors.Is(err, ErrNotRendered) {
		t.Errorf("Root() error = %v, want ErrNotRendered", err)
	}
}

func TestWalk(t *testing.T) {
	ids := NewIDGenerator("t")
	inner := NewElement("span", ids.Next())
	comp := NewComponent(inner, "Inner", nil)
	leaf := NewElement("b", ids.Next())
	root := NewElement("div", ids.Next())
	root.AddChild(comp)
	root.AddChild(leaf)

	var order []string
	var owners []string
	Walk(root, func(el *Element, owner *Component) bool {
		order = append(order, el.Tag())
		if owner != nil {
			owners = append(owners, owner.Key())
		}
		return true
	})

	if got := len(order); got != 3 || order[0] != "div" || order[1] != "span" || order[2] != "b" {
		t.Errorf("order = %v", order)
	}
	if len(owners) != 1 || owners[0] != "Inner" {
		t.Errorf("owners = %v", owners)
	}
}

func TestHandlerFromMap(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
		want Handler
		ok   bool
	}{
		{
			name: "render",
			in:   map[string]any{"kind": "render", "component": "Card", "target": "slot"},
			want: Render("Card", "slot"),
			ok:   true,
		},
		{
			name: "call with sorted args",
			in:   map[string]any{"kind": "call", "name": "f", "args": map[string]any{"z": 2, "a": "x"}},
			want: Call("f", Arg{Name: "a", Value: "x"}, Arg{Name: "z", Value: 2}),
			ok:   true,
		},
		{
			name: "render without target",
			in:   map[string]any{"kind": "render", "component": "Card"},
		},
		{
			name: "call with object arg",
			in:   map[string]any{"kind": "call", "name": "f", "args": map[string]any{"o": map[string]any{}}},
		},
		{
			name: "unknown kind",
			in:   map[string]any{"kind": "hover"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := HandlerFromMap(tt.in)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("HandlerFromMap() = %s, want %s", got, tt.want)
			}
		})
	}
}
