package compiler

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/recera/scc/internal/assets"
	"github.com/recera/scc/internal/cache"
)

// File is one output file
type File struct {
	Name string
	Data []byte
	Deps []string
}

// Files lists the output files of a, page first
func (a *Artifacts) Files() []File {
	componentsPath := a.ComponentsPath
	if componentsPath == "" {
		componentsPath = DefaultOptions().ComponentsPath
	}

	files := []File{{Name: PageFile, Data: []byte(a.Page), Deps: a.Order}}
	if a.CSS != "" {
		files = append(files, File{Name: StylesFile, Data: []byte(a.CSS), Deps: a.Order})
	}
	files = append(files, File{Name: assets.RuntimeFile, Data: []byte(a.Runtime)})
	for _, key := range a.Order {
		files = append(files, File{
			Name: filepath.ToSlash(ComponentFile(componentsPath, key)),
			Data: []byte(a.Scripts[key]),
			Deps: []string{key},
		})
	}
	for _, s := range a.Extra {
		if s.Body != "" {
			files = append(files, File{Name: s.Src, Data: []byte(s.Body)})
		}
	}
	return files
}

// Write stores the artifacts under dir and returns the names of the files
// it wrote, followed by those it removed. Files whose content matches the
// cache and still exist on disk are skipped. Files the cache recorded for
// a previous build that a no longer produces are removed. A nil cache
// writes everything and removes nothing.
func Write(dir string, a *Artifacts, c *cache.Cache) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	files := a.Files()
	var removed []string
	if c != nil {
		var err error
		if removed, err = prune(dir, a.Order, files, c); err != nil {
			return removed, err
		}
	}

	var changed []string
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f.Name))
		if c != nil && c.Unchanged(f.Name, f.Data) && exists(path) {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return changed, fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, f.Data, 0644); err != nil {
			return changed, fmt.Errorf("failed to write %s: %w", f.Name, err)
		}
		if c != nil {
			c.Record(f.Name, f.Data, f.Deps...)
		}
		changed = append(changed, f.Name)
	}
	changed = append(changed, removed...)

	if c != nil {
		if err := c.Save(); err != nil {
			return changed, fmt.Errorf("failed to save cache index: %w", err)
		}
	}
	return changed, nil
}

// prune deletes recorded files that are no longer produced. Entries that
// depend on a component which left the build are invalidated first, so
// the page and style sheet that listed it are rewritten.
func prune(dir string, order []string, files []File, c *cache.Cache) ([]string, error) {
	current := make(map[string]bool, len(order))
	for _, key := range order {
		current[key] = true
	}
	produced := make(map[string]bool, len(files))
	for _, f := range files {
		produced[f.Name] = true
	}

	var removed []string
	for _, name := range c.Keys() {
		if e, ok := c.Get(name); ok {
			for _, dep := range e.Dependencies {
				if !current[dep] {
					c.InvalidateByDependency(dep)
				}
			}
		}
		if produced[name] {
			continue
		}
		err := os.Remove(filepath.Join(dir, filepath.FromSlash(name)))
		if err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("failed to remove %s: %w", name, err)
		}
		c.Delete(name)
		removed = append(removed, name)
	}
	return removed, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
