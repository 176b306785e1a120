package components

import (
	"github.com/recera/scc/pkg/jsx"
	"github.com/recera/scc/pkg/node"
	"github.com/recera/scc/pkg/styling"
)

var navStyles = styling.Rules{
	styling.Block(".nav",
		styling.Prop("display", "flex"),
		styling.Prop("justifyContent", "space-between"),
		styling.Prop("alignItems", "center"),
		styling.Prop("padding", "16px 0"),
		styling.Block("a",
			styling.Prop("marginLeft", "16px"),
			styling.Prop("textDecoration", "none"),
			styling.Block(":hover", styling.Prop("color", "#3b82f6")),
		),
	),
}

// Nav is the top navigation bar
var Nav = &jsx.Def{
	Name:   "Nav",
	Styles: navStyles,
	Render: func(b *jsx.Builder, p jsx.Props) node.Node {
		return b.H("nav", jsx.Props{"class": "nav"},
			b.H("strong", nil, "scc"),
			b.H("div", nil,
				b.H("a", jsx.Props{"href": "#about", "onClick": node.Render("About", "panel")}, "About"),
				b.H("a", jsx.Props{"href": "#counter", "onClick": node.Render("Counter", "panel")}, "Counter"),
				b.H("button", jsx.Props{"class": "theme", "onClick": node.Call("toggleTheme")}, "Theme"),
			),
		)
	},
}
