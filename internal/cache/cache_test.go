package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCache_UnchangedRecord(t *testing.T) {
	c := Memory()
	data := []byte("<div></div>")

	if c.Unchanged("index.html", data) {
		t.Fatal("unrecorded artifact reported unchanged")
	}
	c.Record("index.html", data)
	if !c.Unchanged("index.html", data) {
		t.Error("recorded artifact reported changed")
	}
	if c.Unchanged("index.html", []byte("<p></p>")) {
		t.Error("different content reported unchanged")
	}

	stats := c.GetStats()
	if stats.Hits != 1 || stats.Misses != 2 {
		t.Errorf("stats = %+v, want 1 hit 2 misses", stats)
	}

	e, ok := c.Get("index.html")
	if !ok || e.Size != int64(len(data)) {
		t.Errorf("Get() = %+v, %v", e, ok)
	}
}

func TestCache_Persistence(t *testing.T) {
	dir := t.TempDir()

	c, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	c.Record("styles.css", []byte(".a { color: red; }"))
	if err := c.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if !reopened.Unchanged("styles.css", []byte(".a { color: red; }")) {
		t.Error("index not restored")
	}
}

func TestCache_CorruptIndex(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, IndexFile), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(c.Keys()) != 0 {
		t.Errorf("keys = %v, want none", c.Keys())
	}
}

func TestCache_InvalidateByDependency(t *testing.T) {
	c := Memory()
	c.Record("components/Card.js", []byte("a"), "Card")
	c.Record("components/Nav.js", []byte("b"), "Nav")
	c.Record("index.html", []byte("c"), "Card", "Nav")

	if n := c.InvalidateByDependency("Card"); n != 2 {
		t.Errorf("invalidated %d, want 2", n)
	}
	if got := c.Keys(); len(got) != 1 || got[0] != "components/Nav.js" {
		t.Errorf("keys = %v", got)
	}

	c.Delete("components/Nav.js")
	if _, ok := c.Get("components/Nav.js"); ok {
		t.Error("Delete kept the entry")
	}

	c.Record("index.html", []byte("c"))
	c.Unchanged("index.html", []byte("c"))
	c.Clear()
	if len(c.Keys()) != 0 {
		t.Error("Clear left entries")
	}
	if s := c.GetStats(); s != (Stats{}) {
		t.Errorf("stats after Clear = %+v", s)
	}
}

func TestKeyFromFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.go")
	if err := os.WriteFile(file, []byte("package a"), 0644); err != nil {
		t.Fatal(err)
	}

	k1, err := KeyFromFiles(file)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(file, []byte("package a // changed"), 0644); err != nil {
		t.Fatal(err)
	}
	k2, _ := KeyFromFiles(file)
	if k1 == k2 {
		t.Error("key did not change with content")
	}

	os.Remove(file)
	k3, err := KeyFromFiles(file)
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if k3 == k2 {
		t.Error("key did not change after deletion")
	}
}
