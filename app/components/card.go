package components

import (
	"github.com/recera/scc/pkg/jsx"
	"github.com/recera/scc/pkg/node"
	"github.com/recera/scc/pkg/styling"
)

// Card frames a titled block of content
var Card = &jsx.Def{
	Name:   "Card",
	Params: []string{"title", "body"},
	Styles: styling.Rules{
		styling.Block(".card",
			styling.Prop("border", "1px solid #e2e8f0"),
			styling.Prop("borderRadius", "8px"),
			styling.Prop("padding", "16px"),
			styling.Prop("boxShadow", "0 1px 3px rgba(0,0,0,0.1)"),
			styling.Block("&.card-hoverable:hover", styling.Prop("boxShadow", "0 4px 12px rgba(0,0,0,0.15)")),
			styling.Block("h2", styling.Prop("marginTop", "0")),
		),
	},
	Render: func(b *jsx.Builder, p jsx.Props) node.Node {
		return b.H("div", jsx.Props{"class": "card card-hoverable"},
			b.H("h2", nil, p["title"]),
			b.H("p", nil, p["body"]),
		)
	},
}

// About describes the demo inside a card
var About = &jsx.Def{
	Name:   "About",
	OnLoad: []node.Handler{node.Call("track", node.Arg{Name: "page", Value: "about"})},
	Render: func(b *jsx.Builder, p jsx.Props) node.Node {
		return b.H(Card, jsx.Props{
			"title": "About scc",
			"body":  "Markup and factories come from the same tree, so their identity tokens always line up.",
		})
	},
}

// ButtonInline is spliced into its caller
func ButtonInline(b *jsx.Builder, p jsx.Props) node.Node {
	return b.H("button", jsx.Props{"class": "btn", "type": "button", "onClick": p["onClick"]}, p["label"])
}

// SpinnerInline is a placeholder shown until a panel is mounted
func SpinnerInline(b *jsx.Builder, p jsx.Props) node.Node {
	return b.H("div", jsx.Props{"class": "spinner", "role": "status", "aria-label": "loading"})
}
