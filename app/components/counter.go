package components

import (
	"github.com/recera/scc/pkg/jsx"
	"github.com/recera/scc/pkg/node"
	"github.com/recera/scc/pkg/styling"
)

// Counter keeps its count in the page script
var Counter = &jsx.Def{
	Name:   "Counter",
	Params: []string{"start"},
	Styles: styling.Rules{
		styling.Block(".counter",
			styling.Prop("display", "flex"),
			styling.Prop("alignItems", "center"),
			styling.Prop("gap", "12px"),
			styling.Block("output", styling.Prop("fontVariantNumeric", "tabular-nums")),
		),
	},
	Render: func(b *jsx.Builder, p jsx.Props) node.Node {
		return b.H("div", jsx.Props{"class": "counter"},
			b.H(ButtonInline, jsx.Props{"label": "-", "onClick": node.Call("increment", node.Arg{Name: "by", Value: -1})}),
			b.H("output", jsx.Props{"id": "count"}, p["start"]),
			b.H(ButtonInline, jsx.Props{"label": "+", "onClick": node.Call("increment", node.Arg{Name: "by", Value: 1})}),
		)
	},
}

// Modal overlays a card with a close button
var Modal = &jsx.Def{
	Name: "Modal",
	Styles: styling.Rules{
		styling.Block(".modal",
			styling.Prop("position", "fixed"),
			styling.Prop("inset", "0"),
			styling.Prop("display", "grid"),
			styling.Prop("placeItems", "center"),
			styling.Prop("background", "rgba(15,23,42,0.5)"),
		),
	},
	Render: func(b *jsx.Builder, p jsx.Props) node.Node {
		return b.H("div", jsx.Props{"class": "modal", "id": "modal"},
			b.H(jsx.Fragment, nil,
				b.H(Card, jsx.Props{"title": "Hello", "body": "This dialog was built by its factory script."}),
				b.H(ButtonInline, jsx.Props{"label": "Close", "onClick": node.Call("closeModal")}),
			),
		)
	},
}
