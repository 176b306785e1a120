package dom

import (
	"fmt"
	"strings"

	"github.com/recera/scc/pkg/node"
	"github.com/recera/scc/pkg/renderer/internal/script"
)

// Op represents the type of a construction step
type Op uint8

const (
	// OpCreate creates an element bound to Var
	OpCreate Op = iota + 1
	// OpClassName assigns the merged class list
	OpClassName
	// OpSetAttribute sets a non-class, non-style attribute
	OpSetAttribute
	// OpStyle assigns inline style text
	OpStyle
	// OpText assigns text content
	OpText
	// OpOnClick assigns the click handler
	OpOnClick
	// OpMount calls a component factory and binds the result to Var
	OpMount
	// OpAppend appends Child under Var
	OpAppend
	// OpReturn returns Var from the factory
	OpReturn
)

func (op Op) String() string {
	switch op {
	case OpCreate:
		return "Create"
	case OpClassName:
		return "ClassName"
	case OpSetAttribute:
		return "SetAttribute"
	case OpStyle:
		return "Style"
	case OpText:
		return "Text"
	case OpOnClick:
		return "OnClick"
	case OpMount:
		return "Mount"
	case OpAppend:
		return "Append"
	case OpReturn:
		return "Return"
	default:
		return fmt.Sprintf("Op(%d)", uint8(op))
	}
}

// Instruction is a single construction step. Which fields are used
// depends on Op:
//
//	Create        Var, Name (tag)
//	ClassName     Var, Value
//	SetAttribute  Var, Name, Value
//	Style, Text   Var, Value
//	OnClick       Var, Handler
//	Mount         Var, Name (component key)
//	Append        Var (parent), Child
//	Return        Var
type Instruction struct {
	Op      Op
	Var     string
	Child   string
	Name    string
	Value   string
	Handler *node.Handler

	registry   string
	renderFunc string
}

// JS returns the JavaScript statement for the instruction
func (in Instruction) JS() string {
	switch in.Op {
	case OpCreate:
		return fmt.Sprintf("const %s = document.createElement(%s);", in.Var, script.Quote(in.Name))
	case OpClassName:
		// the identity token is never a sigil reference
		return fmt.Sprintf("%s.className = %s;", in.Var, script.Quote(in.Value))
	case OpSetAttribute:
		return fmt.Sprintf("%s.setAttribute(%s, %s);", in.Var, script.Quote(in.Name), script.Value(in.Value))
	case OpStyle:
		return fmt.Sprintf("%s.style.cssText = %s;", in.Var, script.Value(in.Value))
	case OpText:
		return fmt.Sprintf("%s.textContent = %s;", in.Var, script.Value(in.Value))
	case OpOnClick:
		if in.Handler == nil {
			return ""
		}
		return fmt.Sprintf("%s.onclick = function() { %s; };", in.Var, script.Call(*in.Handler, in.renderFunc))
	case OpMount:
		return fmt.Sprintf("const %s = %s[%s]();", in.Var, in.registryName(), script.Quote(in.Name))
	case OpAppend:
		return fmt.Sprintf("%s.appendChild(%s);", in.Var, in.Child)
	case OpReturn:
		return fmt.Sprintf("return %s;", in.Var)
	default:
		return ""
	}
}

func (in Instruction) registryName() string {
	if in.registry == "" {
		return DefaultRegistry
	}
	return in.registry
}

// String returns a human-readable representation of the instruction
func (in Instruction) String() string {
	switch in.Op {
	case OpCreate:
		return fmt.Sprintf("Create(%s, tag=%q)", in.Var, in.Name)
	case OpSetAttribute:
		return fmt.Sprintf("SetAttribute(%s, %q=%q)", in.Var, in.Name, in.Value)
	case OpClassName, OpStyle, OpText:
		return fmt.Sprintf("%s(%s, %q)", in.Op, in.Var, in.Value)
	case OpOnClick:
		if in.Handler == nil {
			return fmt.Sprintf("OnClick(%s)", in.Var)
		}
		return fmt.Sprintf("OnClick(%s, %s)", in.Var, in.Handler)
	case OpMount:
		return fmt.Sprintf("Mount(%s, component=%q)", in.Var, in.Name)
	case OpAppend:
		return fmt.Sprintf("Append(%s, %s)", in.Var, in.Child)
	case OpReturn:
		return fmt.Sprintf("Return(%s)", in.Var)
	default:
		return in.Op.String()
	}
}

// Program is the ordered instruction sequence for one element tree
type Program []Instruction

// String joins the JavaScript of every instruction with newlines
func (p Program) String() string {
	lines := make([]string, 0, len(p))
	for _, in := range p {
		lines = append(lines, in.JS())
	}
	return strings.Join(lines, "\n")
}

// Root returns the variable the program returns
func (p Program) Root() string {
	if len(p) == 0 || p[len(p)-1].Op != OpReturn {
		return ""
	}
	return p[len(p)-1].Var
}

// Mounts returns the component keys the program instantiates, in order
// of first appearance.
func (p Program) Mounts() []string {
	var keys []string
	seen := make(map[string]bool)
	for _, in := range p {
		if in.Op == OpMount && !seen[in.Name] {
			seen[in.Name] = true
			keys = append(keys, in.Name)
		}
	}
	return keys
}
