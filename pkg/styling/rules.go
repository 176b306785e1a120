// Package styling flattens nested style rules into plain CSS text.
package styling

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Decl is one entry of a rule mapping: either a property/value pair or,
// when Nested is non-nil, a nested selector with its own rules.
type Decl struct {
	Property string
	Value    string
	Nested   Rules
}

// IsBlock reports whether the entry is a nested selector
func (d Decl) IsBlock() bool { return d.Nested != nil }

// Rules is an ordered rule mapping
type Rules []Decl

// Prop builds a property/value entry
func Prop(property, value string) Decl {
	return Decl{Property: property, Value: value}
}

// Block builds a nested selector entry
func Block(selector string, rules ...Decl) Decl {
	if rules == nil {
		rules = Rules{}
	}
	return Decl{Property: selector, Nested: rules}
}

// FromMap converts a Go map into Rules. Keys are sorted since maps carry
// no order; use ParseYAML or literal Rules when order matters.
func FromMap(m map[string]any) Rules {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rules := make(Rules, 0, len(keys))
	for _, k := range keys {
		switch v := m[k].(type) {
		case nil:
			continue
		case map[string]any:
			rules = append(rules, Decl{Property: k, Nested: FromMap(v)})
		case map[string]string:
			nested := make(map[string]any, len(v))
			for nk, nv := range v {
				nested[nk] = nv
			}
			rules = append(rules, Decl{Property: k, Nested: FromMap(nested)})
		case Rules:
			rules = append(rules, Decl{Property: k, Nested: v})
		default:
			rules = append(rules, Decl{Property: k, Value: fmt.Sprint(v)})
		}
	}
	return rules
}

// ParseYAML reads a rule mapping from YAML, keeping document order
func ParseYAML(data []byte) (Rules, error) {
	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, err
	}
	if rules == nil {
		rules = Rules{}
	}
	return rules, nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (r *Rules) UnmarshalYAML(value *yaml.Node) error {
	rules, err := rulesFromNode(value)
	if err != nil {
		return err
	}
	*r = rules
	return nil
}

func rulesFromNode(n *yaml.Node) (Rules, error) {
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return Rules{}, nil
		}
		n = n.Content[0]
	}
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of rules", n.Line)
	}

	rules := make(Rules, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if val.Kind == yaml.AliasNode {
			val = val.Alias
		}
		switch val.Kind {
		case yaml.MappingNode:
			nested, err := rulesFromNode(val)
			if err != nil {
				return nil, err
			}
			rules = append(rules, Decl{Property: key.Value, Nested: nested})
		case yaml.ScalarNode:
			if val.Tag == "!!null" {
				continue
			}
			rules = append(rules, Decl{Property: key.Value, Value: val.Value})
		default:
			return nil, fmt.Errorf("line %d: %q must be a scalar or a mapping", val.Line, key.Value)
		}
	}
	return rules, nil
}

// Kebab converts a camelCase property name to its CSS form
// (fontSize -> font-size). Names already in kebab case and custom
// properties (--mainColor) are unchanged.
func Kebab(name string) string {
	if strings.HasPrefix(name, "--") {
		return name
	}
	var b strings.Builder
	b.Grow(len(name) + 4)
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// InlineStyle renders the scalar entries of rules as an inline style
// attribute value (font-size:12px;color:red). Nested entries are ignored.
func InlineStyle(rules Rules) string {
	parts := make([]string, 0, len(rules))
	for _, d := range rules {
		if d.IsBlock() {
			continue
		}
		parts = append(parts, Kebab(d.Property)+":"+d.Value)
	}
	return strings.Join(parts, ";")
}
