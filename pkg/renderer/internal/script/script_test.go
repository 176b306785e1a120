package script

import (
	"math"
	"testing"

	"github.com/recera/scc/pkg/node"
)

func TestValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{"$title", "title"},
		{"$", ""},
		{"", `""`},
	}

	for _, tt := range tests {
		if got := Value(tt.in); got != tt.want {
			t.Errorf("Value(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestCall(t *testing.T) {
	tests := []struct {
		name string
		h    node.Handler
		want string
	}{
		{
			name: "render",
			h:    node.Render("Card1", "slot"),
			want: `renderComponent("Card1", "slot")`,
		},
		{
			name: "call with mixed literals",
			h: node.Call("notify",
				node.Arg{Name: "msg", Value: "hello"},
				node.Arg{Name: "count", Value: 42},
				node.Arg{Name: "ratio", Value: 0.5},
				node.Arg{Name: "loud", Value: true},
			),
			want: `notify("hello", 42, 0.5, true)`,
		},
		{
			name: "call without args",
			h:    node.Call("reset"),
			want: "reset()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Call(tt.h, ""); got != tt.want {
				t.Errorf("Call() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"x", `"x"`},
		{7, "7"},
		{uint8(3), "3"},
		{1.25, "1.25"},
		{float32(0.5), "0.5"},
		{false, "false"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{float32(math.Inf(-1)), "-Infinity"},
		{math.NaN(), "NaN"},
	}

	for _, tt := range tests {
		if got := Literal(tt.in); got != tt.want {
			t.Errorf("Literal(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
