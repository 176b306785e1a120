// Package components is the demo application compiled by cmd/scc.
package components

import (
	_ "embed"

	"github.com/recera/scc/pkg/compiler"
	"github.com/recera/scc/pkg/jsx"
	"github.com/recera/scc/pkg/node"
	"github.com/recera/scc/pkg/styling"
)

//go:embed demo.js
var demoJS string

// Project returns the demo project
func Project() compiler.Project {
	return compiler.Project{
		Title:      "scc demo",
		Root:       App,
		Components: []any{Nav, Card, About, Counter, Modal},
		Scripts:    []compiler.Script{{Src: "demo.js", Body: demoJS}},
		Styles:     []styling.Sheet{{Name: "base", Rules: base}},
	}
}

var base = styling.Rules{
	styling.Block("body",
		styling.Prop("margin", "0"),
		styling.Prop("fontFamily", "system-ui, sans-serif"),
		styling.Prop("color", "#0f172a"),
	),
	styling.Block(".app",
		styling.Prop("maxWidth", "960px"),
		styling.Prop("margin", "0 auto"),
		styling.Block(".hero",
			styling.Prop("padding", "48px 0"),
			styling.Block("h1", styling.Prop("fontSize", "2.5rem")),
		),
		styling.Block(".actions", styling.Prop("display", "flex"), styling.Prop("gap", "8px")),
	),
	styling.Block(".dark",
		styling.Prop("background", "#0f172a"),
		styling.Prop("color", "#f8fafc"),
	),
}

// App is the page root
func App(b *jsx.Builder, p jsx.Props) node.Node {
	return b.H("div", jsx.Props{"class": "app", "id": "app"},
		b.H(Nav, nil),
		b.H("section", jsx.Props{"class": "hero"},
			b.H("h1", nil, "Static components, mounted on demand"),
			b.H("p", nil, "Every panel below ships as its own script and is built on click."),
			b.H("div", jsx.Props{"class": "actions"},
				b.H(ButtonInline, jsx.Props{"label": "About", "onClick": node.Render("About", "panel")}),
				b.H(ButtonInline, jsx.Props{"label": "Counter", "onClick": node.Render("Counter", "panel")}),
				b.H(ButtonInline, jsx.Props{"label": "Open modal", "onClick": node.Render("Modal", "overlay")}),
				b.H(ButtonInline, jsx.Props{"label": "Clear", "onClick": node.Call("clearPanel", node.Arg{Name: "id", Value: "panel"})}),
			),
		),
		b.H("div", jsx.Props{"id": "panel"}, b.H(SpinnerInline, nil)),
		b.H("div", jsx.Props{"id": "overlay"}),
	)
}
