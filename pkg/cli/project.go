package cli

import (
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"

	"github.com/recera/scc/internal/cache"
	"github.com/recera/scc/pkg/cli/internal/config"
	"github.com/recera/scc/pkg/compiler"
	"github.com/recera/scc/pkg/jsx"
	"github.com/recera/scc/pkg/styling"
)

// scriptsDir is where configured scripts are copied in the output
const scriptsDir = "scripts"

// loadConfig reads scc.yaml from the working directory, falling back to
// the defaults with a warning.
func loadConfig() *config.Config {
	cfg, err := config.Load(".")
	if err != nil {
		log.Printf("⚠️  Failed to load %s: %v (using defaults)", config.FileName, err)
		cfg = config.DefaultConfig()
	}
	return cfg
}

// configure merges cfg into p and returns the compiler options it implies
func configure(p compiler.Project, cfg *config.Config) (compiler.Project, []compiler.Option, error) {
	if cfg.Title != "" {
		p.Title = cfg.Title
	}
	if cfg.Lang != "" {
		p.Lang = cfg.Lang
	}

	components, err := selectComponents(p.Components, cfg.Components)
	if err != nil {
		return p, nil, err
	}
	p.Components = components

	p.Styles = append([]styling.Sheet(nil), p.Styles...)
	for _, file := range cfg.Styles {
		data, err := os.ReadFile(file)
		if err != nil {
			return p, nil, fmt.Errorf("failed to read style sheet: %w", err)
		}
		rules, err := styling.ParseYAML(data)
		if err != nil {
			return p, nil, fmt.Errorf("%s: %w", file, err)
		}
		p.Styles = append(p.Styles, styling.Sheet{Name: filepath.ToSlash(file), Rules: rules})
	}

	p.Scripts = append([]compiler.Script(nil), p.Scripts...)
	for _, file := range cfg.Scripts {
		data, err := os.ReadFile(file)
		if err != nil {
			return p, nil, fmt.Errorf("failed to read script: %w", err)
		}
		p.Scripts = append(p.Scripts, compiler.Script{
			Src:  path.Join(scriptsDir, filepath.Base(file)),
			Body: string(data),
		})
	}

	opts := []compiler.Option{
		compiler.WithInline(cfg.Inline),
		compiler.WithComponentsPath(cfg.ComponentsPath),
		compiler.WithLogger(log.Default()),
	}
	if cfg.Minify != nil && cfg.Minify.Command != "" {
		m, err := compiler.ParseCommandMinifier(cfg.Minify.Command)
		if err != nil {
			return p, nil, err
		}
		for _, k := range cfg.Minify.Kinds {
			m.Kinds = append(m.Kinds, compiler.Kind(k))
		}
		opts = append(opts, compiler.WithMinifier(m))
	}
	return p, opts, nil
}

// selectComponents orders components by names. Empty names keeps every
// component in registration order.
func selectComponents(components []any, names []string) ([]any, error) {
	if len(names) == 0 {
		return components, nil
	}

	byName := make(map[string]any, len(components))
	for _, c := range components {
		if def, ok := jsx.Resolve(c); ok {
			name := def.Name
			if name == "" {
				name = jsx.FuncName(def.Render)
			}
			byName[name] = c
		}
	}

	selected := make([]any, 0, len(names))
	for _, name := range names {
		c, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown component %q", name)
		}
		selected = append(selected, c)
	}
	return selected, nil
}

// inputs lists the files a build reads besides the Go sources
func inputs(cfg *config.Config) []string {
	files := []string{config.FileName}
	files = append(files, cfg.Styles...)
	return append(files, cfg.Scripts...)
}

// compile configures and compiles p
func compile(p compiler.Project, cfg *config.Config) (*compiler.Artifacts, error) {
	p, opts, err := configure(p, cfg)
	if err != nil {
		return nil, err
	}
	return compiler.Compile(p, opts...)
}

// buildResult summarises one build
type buildResult struct {
	Artifacts *compiler.Artifacts
	Changed   []string
	Failed    []error
	Cache     *cache.Stats
}

// build compiles p, optionally verifies it and writes the changed files
// to the output directory. clean forgets the cache first so every file is
// rewritten.
func build(p compiler.Project, cfg *config.Config, clean bool) (*buildResult, error) {
	a, err := compile(p, cfg)
	if err != nil {
		return nil, err
	}

	res := &buildResult{Artifacts: a}
	if cfg.Verify {
		res.Failed = verifyAll(a)
		if len(res.Failed) > 0 {
			return res, fmt.Errorf("%d of %d components failed verification", len(res.Failed), len(a.Units))
		}
	}

	c, err := cache.Open(cfg.Output)
	if err != nil {
		log.Printf("⚠️  Failed to open build cache: %v", err)
		c = nil
	}
	if c != nil && clean {
		c.Clear()
	}

	res.Changed, err = compiler.Write(cfg.Output, a, c)
	if err != nil {
		return res, err
	}
	if c != nil {
		stats := c.GetStats()
		res.Cache = &stats
	}
	return res, nil
}
