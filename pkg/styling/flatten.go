package styling

import "strings"

// Flatten lowers the rules nested under selector into flat CSS. A block is
// written only when it has at least one property; nested blocks follow
// their parent in declaration order. Cascade order is left to the browser.
func Flatten(selector string, rules Rules) string {
	var blocks []string
	flatten(selector, rules, &blocks)
	return strings.Join(blocks, "\n")
}

// FlattenSheet flattens a top-level mapping of selectors to rules.
// Top-level scalar entries have no selector and are skipped.
func FlattenSheet(sheet Rules) string {
	var blocks []string
	for _, d := range sheet {
		if d.IsBlock() {
			flatten(d.Property, d.Nested, &blocks)
		}
	}
	return strings.Join(blocks, "\n")
}

func flatten(selector string, rules Rules, out *[]string) {
	var b strings.Builder
	for _, d := range rules {
		if d.IsBlock() {
			continue
		}
		b.WriteString(" ")
		b.WriteString(Kebab(d.Property))
		b.WriteString(": ")
		b.WriteString(d.Value)
		b.WriteString(";")
	}
	if b.Len() > 0 {
		*out = append(*out, selector+" {"+b.String()+" }")
	}

	for _, d := range rules {
		if d.IsBlock() {
			flatten(NestedSelector(selector, d.Property), d.Nested, out)
		}
	}
}

// NestedSelector resolves a nested key against its parent selector:
// ":hover" appends, "&.active" substitutes the parent for every "&",
// anything else is a descendant.
func NestedSelector(parent, key string) string {
	switch {
	case strings.HasPrefix(key, ":"):
		return parent + key
	case strings.HasPrefix(key, "&"):
		return strings.ReplaceAll(key, "&", parent)
	case parent == "":
		return key
	default:
		return parent + " " + key
	}
}
