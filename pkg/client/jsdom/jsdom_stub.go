//go:build !js || !wasm
// +build !js !wasm

// Package jsdom binds the runtime to the browser document through
// syscall/js. Outside a js/wasm build every entry reports ErrUnsupported.
package jsdom

import (
	"context"
	"errors"

	"github.com/recera/scc/pkg/client"
)

// ErrUnsupported is returned outside a js/wasm build
var ErrUnsupported = errors.New("jsdom requires GOOS=js GOARCH=wasm")

// Document is unavailable outside the browser
type Document struct{}

// NewDocument returns an empty document
func NewDocument() *Document {
	return &Document{}
}

// GetElementByID always returns nil
func (d *Document) GetElementByID(string) client.Element {
	return nil
}

// ScriptLoader is unavailable outside the browser
type ScriptLoader struct {
	BaseURL  string
	Registry string
}

// Load always fails
func (l *ScriptLoader) Load(context.Context, string) (client.Factory, error) {
	return nil, ErrUnsupported
}

// Console discards output
type Console struct{}

func (Console) Write(p []byte) (int, error) {
	return len(p), nil
}

// Export is a no-op
func Export(*client.Context) {}
