package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/recera/scc/pkg/cli/internal/config"
	"github.com/recera/scc/pkg/compiler"
	"github.com/recera/scc/pkg/jsx"
	"github.com/recera/scc/pkg/node"
)

func Home(b *jsx.Builder, p jsx.Props) node.Node {
	return b.H("main", jsx.Props{"class": "home"},
		b.H("h1", nil, "Welcome"),
		b.H("button", jsx.Props{"onClick": node.Render("Greeting", "out")}, "Greet"),
		b.H("div", jsx.Props{"id": "out"}),
	)
}

func Greeting(b *jsx.Builder, p jsx.Props) node.Node {
	return b.H("p", jsx.Props{"class": "greeting"}, "Hello")
}

var farewell = &jsx.Def{
	Name:   "Farewell",
	Params: []string{"name"},
	Render: func(b *jsx.Builder, p jsx.Props) node.Node {
		return b.H("p", nil, "Bye ", p["name"])
	},
}

func testProject() compiler.Project {
	return compiler.Project{
		Title:      "Test",
		Root:       Home,
		Components: []any{Greeting, farewell},
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Output = filepath.Join(t.TempDir(), "dist")
	return cfg
}

func TestSelectComponents(t *testing.T) {
	components := []any{Greeting, farewell}

	tests := []struct {
		name    string
		names   []string
		want    []string
		wantErr bool
	}{
		{name: "all", want: []string{"Greeting", "Farewell"}},
		{name: "reordered", names: []string{"Farewell", "Greeting"}, want: []string{"Farewell", "Greeting"}},
		{name: "subset", names: []string{"Farewell"}, want: []string{"Farewell"}},
		{name: "unknown", names: []string{"Missing"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := selectComponents(components, tt.names)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("selectComponents: %v", err)
			}

			var names []string
			for _, c := range got {
				def, _ := jsx.Resolve(c)
				names = append(names, def.Name)
			}
			if diff := cmp.Diff(tt.want, names); diff != "" {
				t.Errorf("selection mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConfigure(t *testing.T) {
	dir := t.TempDir()
	sheet := filepath.Join(dir, "base.yaml")
	if err := os.WriteFile(sheet, []byte("body:\n  margin: 0\n  .home:\n    color: red\n"), 0644); err != nil {
		t.Fatal(err)
	}
	script := filepath.Join(dir, "analytics.js")
	if err := os.WriteFile(script, []byte("function greet() {}"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig(t)
	cfg.Title = "Configured"
	cfg.Styles = []string{sheet}
	cfg.Scripts = []string{script}

	a, err := compile(testProject(), cfg)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if a.Title != "Configured" {
		t.Errorf("Title = %q", a.Title)
	}

	wantCSS := "body { margin: 0; }\nbody .home { color: red; }"
	if !strings.Contains(a.CSS, wantCSS) {
		t.Errorf("CSS missing %q:\n%s", wantCSS, a.CSS)
	}
	if len(a.Extra) != 1 || a.Extra[0].Src != "scripts/analytics.js" {
		t.Errorf("Extra = %+v", a.Extra)
	}
	if !strings.Contains(a.Page, `src="scripts/analytics.js"`) {
		t.Errorf("page does not load the script:\n%s", a.Page)
	}

	cfg.Styles = []string{filepath.Join(dir, "missing.yaml")}
	if _, err := compile(testProject(), cfg); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing sheet error = %v", err)
	}
}

func TestBuild(t *testing.T) {
	cfg := testConfig(t)
	cfg.Verify = true

	res, err := build(testProject(), cfg, false)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(res.Failed) != 0 {
		t.Errorf("verification failures: %v", res.Failed)
	}

	for _, name := range []string{"index.html", "runtime.js", "components/Home.js", "components/Greeting.js", "components/Farewell.js"} {
		if _, err := os.Stat(filepath.Join(cfg.Output, filepath.FromSlash(name))); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}

	res, err = build(testProject(), cfg, false)
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if len(res.Changed) != 0 {
		t.Errorf("unchanged build wrote %v", res.Changed)
	}
	summary := buildSummary(cfg, res)
	for _, want := range []string{"0 of 5 files", "5 hits, 0 misses"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}

	res, err = build(testProject(), cfg, true)
	if err != nil {
		t.Fatalf("clean build: %v", err)
	}
	if len(res.Changed) != 5 {
		t.Errorf("clean build wrote %v, want every file", res.Changed)
	}
	if !strings.Contains(buildSummary(cfg, res), "0 hits, 5 misses") {
		t.Errorf("clean summary:\n%s", buildSummary(cfg, res))
	}
}

func TestBuild_Selection(t *testing.T) {
	cfg := testConfig(t)
	if _, err := build(testProject(), cfg, false); err != nil {
		t.Fatalf("build: %v", err)
	}

	cfg.Components = []string{"Greeting"}
	res, err := build(testProject(), cfg, false)
	if err != nil {
		t.Fatalf("narrowed build: %v", err)
	}
	if diff := cmp.Diff([]string{"index.html", "components/Farewell.js"}, res.Changed); diff != "" {
		t.Errorf("changed mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(filepath.Join(cfg.Output, "components", "Farewell.js")); !os.IsNotExist(err) {
		t.Errorf("Farewell.js still on disk: %v", err)
	}

	cfg.Components = []string{"Farewell"}
	if _, err := build(testProject(), cfg, false); !errors.Is(err, compiler.ErrUnknownComponent) {
		t.Errorf("build without Greeting error = %v, want ErrUnknownComponent", err)
	}
}

func TestInspectEntries(t *testing.T) {
	a, err := compile(testProject(), testConfig(t))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	entries, err := inspectEntries(a)
	if err != nil {
		t.Fatalf("inspectEntries: %v", err)
	}

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	want := []string{"Home", "Greeting", "Farewell", compiler.StylesFile, compiler.PageFile}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	home := entries[0]
	if home.Note != "root" {
		t.Errorf("root note = %q", home.Note)
	}
	if !strings.HasPrefix(home.Views[0].Body, `<main class="`) {
		t.Errorf("markup view = %q", home.Views[0].Body)
	}
	if !strings.Contains(home.Views[1].Body, `Create(el1, tag="main")`) {
		t.Errorf("program view = %q", home.Views[1].Body)
	}
	if entries[2].Note != "(name)" {
		t.Errorf("Farewell note = %q", entries[2].Note)
	}
}

func TestVerifyCommand(t *testing.T) {
	cmd := NewRootCommand(testProject())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"verify"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("verify: %v\n%s", err, out.String())
	}
	for _, key := range []string{"Home", "Greeting", "Farewell"} {
		if !strings.Contains(out.String(), key) {
			t.Errorf("output missing %s:\n%s", key, out.String())
		}
	}
}
