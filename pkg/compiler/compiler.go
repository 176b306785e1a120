// Package compiler turns a project of component definitions into the
// files a page needs: static markup, one factory script per component,
// flattened CSS and the browser runtime.
package compiler

import (
	"errors"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/recera/scc/internal/assets"
	"github.com/recera/scc/pkg/jsx"
	"github.com/recera/scc/pkg/node"
	"github.com/recera/scc/pkg/renderer/dom"
	"github.com/recera/scc/pkg/renderer/html"
	"github.com/recera/scc/pkg/styling"
)

var (
	// ErrNoRoot is returned when the project has no root component
	ErrNoRoot = errors.New("no root component")

	// ErrNotCallable is returned for a component entry that cannot be invoked
	ErrNotCallable = jsx.ErrNotCallable

	// ErrBadResult is returned when a component renders neither an element
	// nor a component
	ErrBadResult = jsx.ErrBadResult

	// ErrDuplicateKey is returned when two components share a name
	ErrDuplicateKey = errors.New("duplicate component key")

	// ErrUnknownComponent is returned when a tree mounts or renders a
	// component that is not part of the build
	ErrUnknownComponent = errors.New("unknown component")

	// ErrInvalidName is returned for a registry path or render function
	// name the runtime cannot address
	ErrInvalidName = errors.New("invalid runtime name")
)

var identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Script is an extra page script. Body, when set, is written to Src in
// the output directory; otherwise Src is referenced as is.
type Script struct {
	Src  string
	Body string
}

// Project selects the definitions that take part in a build. Root and
// Components accept anything jsx.Resolve accepts.
type Project struct {
	Title      string
	Lang       string
	Root       any
	Components []any
	Scripts    []Script
	Styles     []styling.Sheet
}

// Options holds compiler configuration
type Options struct {
	Inline         bool
	Registry       string
	RenderFunc     string
	ComponentsPath string
	Minifier       Minifier
	Logger         *log.Logger
	BuilderOptions []jsx.Option
}

// Option configures Compile
type Option func(*Options)

// WithInline embeds CSS, the runtime and every factory in the page
func WithInline(inline bool) Option {
	return func(o *Options) {
		o.Inline = inline
	}
}

// WithRegistry changes the global factory registry. registry is a
// dotted property path below window, such as "app.components".
func WithRegistry(registry string) Option {
	return func(o *Options) {
		if registry != "" {
			o.Registry = registry
		}
	}
}

// WithRenderFunc renames the runtime entry used by render descriptors.
// The runtime defines it on window.
func WithRenderFunc(name string) Option {
	return func(o *Options) {
		if name != "" {
			o.RenderFunc = name
		}
	}
}

// WithComponentsPath changes where factory scripts are written and
// loaded from, relative to the page
func WithComponentsPath(dir string) Option {
	return func(o *Options) {
		if dir != "" {
			o.ComponentsPath = strings.TrimSuffix(dir, "/") + "/"
		}
	}
}

// WithMinifier passes text artifacts through m
func WithMinifier(m Minifier) Option {
	return func(o *Options) {
		o.Minifier = m
	}
}

// WithLogger sets the build logger
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithBuilderOptions configures the tree builder
func WithBuilderOptions(opts ...jsx.Option) Option {
	return func(o *Options) {
		o.BuilderOptions = append(o.BuilderOptions, opts...)
	}
}

// DefaultOptions returns the default compiler options
func DefaultOptions() Options {
	return Options{
		Registry:       dom.DefaultRegistry,
		RenderFunc:     "renderComponent",
		ComponentsPath: "components/",
		Logger:         log.New(os.Stderr, "", log.LstdFlags),
	}
}

// Unit is one compiled component
type Unit struct {
	Key       string
	Params    []string
	Component *node.Component
	Program   dom.Program
	Script    string
}

// Artifacts are the text outputs of one build
type Artifacts struct {
	Title   string
	Markup  string
	Page    string
	Scripts map[string]string
	Order   []string
	CSS     string
	Runtime string
	OnLoad  string
	Extra   []Script

	// ComponentsPath is the output directory of factory scripts
	ComponentsPath string

	// Units holds the compiled components in Order, root first
	Units []*Unit
}

// Unit returns the compiled component with key
func (a *Artifacts) Unit(key string) (*Unit, bool) {
	for _, u := range a.Units {
		if u.Key == key {
			return u, true
		}
	}
	return nil, false
}

// Root returns the root unit
func (a *Artifacts) Root() *Unit {
	if len(a.Units) == 0 {
		return nil
	}
	return a.Units[0]
}

// Compile builds every definition in p. The root comes first and its
// markup becomes the page body; every definition, root included, ships as
// a factory keyed by its name.
func Compile(p Project, opts ...Option) (*Artifacts, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if p.Root == nil {
		return nil, ErrNoRoot
	}
	path, err := registryPath(o.Registry)
	if err != nil {
		return nil, err
	}
	o.Registry = "window." + strings.Join(path, ".")
	if !identifier.MatchString(o.RenderFunc) {
		return nil, fmt.Errorf("render function %q: %w", o.RenderFunc, ErrInvalidName)
	}

	defs, err := resolveAll(p)
	if err != nil {
		return nil, err
	}

	b := jsx.NewBuilder(o.BuilderOptions...)
	sheets := styling.NewRegistry()
	for _, s := range p.Styles {
		sheets.Register(s)
	}

	a := &Artifacts{
		Title:   p.Title,
		Scripts: make(map[string]string, len(defs)),
		Runtime: string(assets.RuntimeJS),
		Extra:   p.Scripts,

		ComponentsPath: o.ComponentsPath,
	}
	var hooks []node.Handler

	for _, def := range defs {
		c, err := b.Instantiate(def, def.Placeholders())
		if err != nil {
			return nil, fmt.Errorf("component %s: %w", def.Name, err)
		}
		root, err := c.Root()
		if err != nil {
			return nil, err
		}

		prog := dom.Compile(root, dom.WithRegistry(o.Registry), dom.WithRenderFunc(o.RenderFunc))
		u := &Unit{
			Key:       def.Name,
			Params:    def.Params,
			Component: c,
			Program:   prog,
			Script:    dom.FactoryScript(o.Registry, def.Name, def.Params, prog),
		}
		a.Units = append(a.Units, u)
		a.Order = append(a.Order, u.Key)
		a.Scripts[u.Key] = u.Script
		hooks = append(hooks, c.OnLoadHooks()...)

		if len(def.Styles) > 0 {
			sheets.Register(styling.Sheet{Name: def.Name, Rules: def.Styles})
		}
	}

	if err := checkReferences(a); err != nil {
		return nil, err
	}

	markup, err := html.RenderToString(a.Root().Component.MustRoot(), html.WithRenderFunc(o.RenderFunc))
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", a.Root().Key, err)
	}
	a.Markup = markup
	a.CSS = sheets.CSS()
	a.OnLoad = OnLoadScript(hooks, o.RenderFunc)

	if o.Minifier != nil {
		if err := a.minify(o.Minifier); err != nil {
			return nil, err
		}
	}

	page, err := a.page(p.Lang, o)
	if err != nil {
		return nil, err
	}
	a.Page = page
	if o.Minifier != nil {
		if a.Page, err = o.Minifier.Minify(KindHTML, a.Page); err != nil {
			return nil, fmt.Errorf("minify page: %w", err)
		}
	}

	o.Logger.Printf("compiled %d components (%d on-load hooks)", len(a.Units), len(hooks))
	return a, nil
}

func resolveAll(p Project) ([]*jsx.Def, error) {
	entries := append([]any{p.Root}, p.Components...)
	defs := make([]*jsx.Def, 0, len(entries))
	seen := make(map[string]bool, len(entries))

	for i, entry := range entries {
		def, ok := jsx.Resolve(entry)
		if !ok || def.Render == nil {
			return nil, fmt.Errorf("entry %d (%T): %w", i, entry, ErrNotCallable)
		}
		if def.Name == "" {
			d := *def
			d.Name = jsx.FuncName(def.Render)
			def = &d
		}
		if seen[def.Name] {
			return nil, fmt.Errorf("%s: %w", def.Name, ErrDuplicateKey)
		}
		seen[def.Name] = true
		defs = append(defs, def)
	}
	return defs, nil
}

// registryPath splits a registry expression into the property path below
// window: "window.app.reg" and "app.reg" both yield [app reg].
func registryPath(expr string) ([]string, error) {
	parts := strings.Split(strings.TrimPrefix(expr, "window."), ".")
	for _, part := range parts {
		if !identifier.MatchString(part) || part == "window" {
			return nil, fmt.Errorf("registry %q: %w", expr, ErrInvalidName)
		}
	}
	return parts, nil
}

// checkReferences rejects programs that mount, and descriptors that
// render, components without a factory in this build.
func checkReferences(a *Artifacts) error {
	known := make(map[string]bool, len(a.Order))
	for _, key := range a.Order {
		known[key] = true
	}

	for _, u := range a.Units {
		for _, key := range u.Program.Mounts() {
			if !known[key] {
				return fmt.Errorf("%s mounts %s: %w", u.Key, key, ErrUnknownComponent)
			}
		}
		for _, in := range u.Program {
			if in.Op != dom.OpOnClick || in.Handler == nil {
				continue
			}
			if h := *in.Handler; h.Kind == node.HandlerRender && !known[h.Component] {
				return fmt.Errorf("%s renders %s on click: %w", u.Key, h.Component, ErrUnknownComponent)
			}
		}
		for _, h := range u.Component.OnLoadHooks() {
			if h.Kind == node.HandlerRender && !known[h.Component] {
				return fmt.Errorf("%s renders %s on load: %w", u.Key, h.Component, ErrUnknownComponent)
			}
		}
	}
	return nil
}

func (a *Artifacts) minify(m Minifier) error {
	var err error
	for _, u := range a.Units {
		if u.Script, err = m.Minify(KindJS, u.Script); err != nil {
			return fmt.Errorf("minify %s: %w", u.Key, err)
		}
		a.Scripts[u.Key] = u.Script
	}
	if a.CSS != "" {
		if a.CSS, err = m.Minify(KindCSS, a.CSS); err != nil {
			return fmt.Errorf("minify css: %w", err)
		}
	}
	if a.Runtime, err = m.Minify(KindJS, a.Runtime); err != nil {
		return fmt.Errorf("minify runtime: %w", err)
	}
	return nil
}
