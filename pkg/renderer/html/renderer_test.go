package html_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/recera/scc/pkg/jsx"
	"github.com/recera/scc/pkg/node"
	"github.com/recera/scc/pkg/renderer/html"
)

func TestRender_EndToEnd(t *testing.T) {
	b := jsx.NewBuilder()
	tree := b.El("div", jsx.Props{"class": "app"},
		b.H("h1", nil, "Hi"),
		b.H("button", jsx.Props{"onClick": node.Call("f", node.Arg{Name: "n", Value: 1})}),
	)

	got, err := html.RenderToString(tree)
	if err != nil {
		t.Fatalf("RenderToString: %v", err)
	}

	want := `<div class="sc-el-3 app">
<h1 class="sc-el-1">Hi</h1>
<button class="sc-el-2" onclick="f(1)"></button>
</div>`
	if got != want {
		t.Errorf("markup =\n%s\nwant\n%s", got, want)
	}
}

func TestRender_Elements(t *testing.T) {
	tests := []struct {
		name  string
		build func() *node.Element
		want  string
	}{
		{
			name: "empty pair",
			build: func() *node.Element {
				return node.NewElement("br", "t1")
			},
			want: `<br class="t1"></br>`,
		},
		{
			name: "text escaping",
			build: func() *node.Element {
				el := node.NewElement("p", "t1")
				el.SetText(`<b>&"</b>`)
				return el
			},
			want: `<p class="t1">&lt;b&gt;&amp;&quot;&lt;/b&gt;</p>`,
		},
		{
			name: "attribute escaping",
			build: func() *node.Element {
				el := node.NewElement("input", "t1")
				el.SetAttribute("value", `a"b`)
				el.SetAttribute("title", "x&y")
				return el
			},
			want: `<input class="t1" value="a&quot;b" title="x&amp;y"></input>`,
		},
		{
			name: "render descriptor",
			build: func() *node.Element {
				el := node.NewElement("button", "t1")
				el.SetOnClick(node.Render("Card", "slot"))
				return el
			},
			want: `<button class="t1" onclick="renderComponent(&quot;Card&quot;, &quot;slot&quot;)"></button>`,
		},
		{
			name: "string call argument",
			build: func() *node.Element {
				el := node.NewElement("a", "t1")
				el.SetOnClick(node.Call("go", node.Arg{Name: "to", Value: "home"}, node.Arg{Name: "now", Value: true}))
				return el
			},
			want: `<a class="t1" onclick="go(&quot;home&quot;, true)"></a>`,
		},
		{
			name: "children win over text",
			build: func() *node.Element {
				el := node.NewElement("div", "t1")
				el.SetText("ignored")
				el.AddChild(node.NewElement("span", "t2"))
				return el
			},
			want: "<div class=\"t1\">\n<span class=\"t2\"></span>\n</div>",
		},
		{
			name: "component is transparent",
			build: func() *node.Element {
				root := node.NewElement("section", "t2")
				root.SetText("inside")
				el := node.NewElement("main", "t1")
				el.AddChild(node.NewComponent(root, "Inner", nil))
				return el
			},
			want: "<main class=\"t1\">\n<section class=\"t2\">inside</section>\n</main>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := html.RenderToString(tt.build())
			if err != nil {
				t.Fatalf("RenderToString: %v", err)
			}
			if got != tt.want {
				t.Errorf("markup =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestRender_JoinKey(t *testing.T) {
	b := jsx.NewBuilder()
	tree := b.El("ul", jsx.Props{"class": "list"}, b.H("li", nil, "a"), b.H("li", nil, "b"))

	var ids []string
	node.Walk(tree, func(el *node.Element, _ *node.Component) bool {
		ids = append(ids, el.ID())
		return true
	})

	for i := 0; i < 2; i++ {
		out, err := html.RenderToString(tree)
		if err != nil {
			t.Fatal(err)
		}
		for _, id := range ids {
			if !strings.Contains(out, `class="`+id) {
				t.Errorf("pass %d: token %s not leading a class attribute in\n%s", i, id, out)
			}
		}
	}
}

func TestRender_Errors(t *testing.T) {
	if _, err := html.RenderToString(nil); err == nil {
		t.Error("nil root rendered")
	}

	el := node.NewElement("div", "t1")
	el.AddChild(node.NewComponent(nil, "Ghost", nil))
	if _, err := html.RenderToString(el); !errors.Is(err, node.ErrNotRendered) {
		t.Errorf("error = %v, want ErrNotRendered", err)
	}
}

type failWriter struct{ n int }

func (w *failWriter) Write(p []byte) (int, error) {
	w.n++
	return 0, errors.New("disk full")
}

func TestRender_WriteErrorSticks(t *testing.T) {
	el := node.NewElement("div", "t1")
	el.AddChild(node.NewElement("span", "t2"))

	w := &failWriter{}
	if err := html.NewRenderer(w).Render(el); err == nil {
		t.Fatal("Render succeeded on failing writer")
	}
	if w.n != 1 {
		t.Errorf("writer called %d times after failure, want 1", w.n)
	}
}
