package compiler

import (
	"path"
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/recera/scc/internal/assets"
	"github.com/recera/scc/pkg/node"
	"github.com/recera/scc/pkg/renderer/dom"
)

// Output file names
const (
	PageFile   = "index.html"
	StylesFile = "styles.css"
)

// ComponentFile returns the output path of a component script
func ComponentFile(componentsPath, key string) string {
	return path.Join(componentsPath, key+".js")
}

// OnLoadScript wires hooks to the window load event. It returns "" when
// there are no hooks.
func OnLoadScript(hooks []node.Handler, renderFunc string) string {
	var lines []string
	for _, hook := range hooks {
		if !hook.Valid() {
			continue
		}
		lines = append(lines, "  "+dom.CallExpr(hook, renderFunc)+";")
	}
	if len(lines) == 0 {
		return ""
	}
	return "window.addEventListener(\"load\", function() {\n" + strings.Join(lines, "\n") + "\n});"
}

// registryInit creates every object on the registry path that is missing
func registryInit(registry string) string {
	expr := "window"
	var lines []string
	for _, part := range strings.Split(strings.TrimPrefix(registry, "window."), ".") {
		expr += "." + part
		lines = append(lines, expr+" = "+expr+" || {};")
	}
	return strings.Join(lines, "\n")
}

func (a *Artifacts) page(lang string, o Options) (string, error) {
	if lang == "" {
		lang = "en"
	}
	title := a.Title
	if title == "" {
		title = a.Root().Key
	}

	var head []g.Node
	head = append(head,
		h.Meta(h.Charset("UTF-8")),
		h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1.0")),
		h.TitleEl(g.Text(title)),
	)
	if a.CSS != "" {
		if o.Inline {
			head = append(head, h.StyleEl(g.Raw(a.CSS)))
		} else {
			head = append(head, h.Link(h.Rel("stylesheet"), h.Href(StylesFile)))
		}
	}

	body := []g.Node{g.Raw(a.Markup)}
	for _, s := range a.Extra {
		body = append(body, h.Script(h.Src(s.Src)))
	}

	registry := registryInit(o.Registry)
	runtimeAttrs := g.Group{
		g.Attr("data-components", o.ComponentsPath),
		g.Attr("data-registry", strings.TrimPrefix(o.Registry, "window.")),
		g.Attr("data-render", o.RenderFunc),
	}
	if o.Inline {
		body = append(body, h.Script(runtimeAttrs, g.Raw(a.Runtime)))
		factories := []string{registry}
		for _, key := range a.Order {
			factories = append(factories, a.Scripts[key])
		}
		body = append(body, h.Script(g.Raw(strings.Join(factories, "\n"))))
	} else {
		body = append(body,
			h.Script(h.Src(assets.RuntimeFile), runtimeAttrs),
			h.Script(g.Raw(registry)),
		)
		for _, key := range a.Order {
			body = append(body, h.Script(h.Src(ComponentFile(o.ComponentsPath, key))))
		}
	}
	if a.OnLoad != "" {
		body = append(body, h.Script(g.Raw(a.OnLoad)))
	}

	doc := h.Doctype(
		h.HTML(h.Lang(lang),
			h.Head(head...),
			h.Body(body...),
		),
	)

	var b strings.Builder
	if err := doc.Render(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}
