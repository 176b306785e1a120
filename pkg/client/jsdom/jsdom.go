//go:build js && wasm
// +build js,wasm

// Package jsdom binds the runtime to the browser document through
// syscall/js.
package jsdom

import (
	"context"
	"fmt"
	"syscall/js"

	"github.com/recera/scc/pkg/client"
)

type element struct {
	v js.Value
}

func wrap(v js.Value) client.Element {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return &element{v: v}
}

func (e *element) AppendChild(child client.Element) {
	if c, ok := child.(*element); ok {
		e.v.Call("appendChild", c.v)
	}
}

func (e *element) CloneNode(deep bool) client.Element {
	return &element{v: e.v.Call("cloneNode", deep)}
}

func (e *element) Remove() {
	e.v.Call("remove")
}

// Document is the browser document
type Document struct {
	doc js.Value
}

// NewDocument returns the global document
func NewDocument() *Document {
	return &Document{doc: js.Global().Get("document")}
}

// GetElementByID implements client.Document
func (d *Document) GetElementByID(id string) client.Element {
	return wrap(d.doc.Call("getElementById", id))
}

// FactoryFromJS adapts a factory function defined by a component script
func FactoryFromJS(fn js.Value) client.Factory {
	return func(args ...any) (client.Element, error) {
		out := fn.Invoke(args...)
		el := wrap(out)
		if el == nil {
			return nil, fmt.Errorf("factory returned %s", out.Type())
		}
		return el, nil
	}
}

// ScriptLoader injects component scripts and picks their factory from
// the global registry once they execute.
type ScriptLoader struct {
	// BaseURL is prepended to "<key>.js"
	BaseURL string
	// Registry is the global object factories are assigned into
	Registry string
}

// Load implements client.Loader. It must not be called from a js.FuncOf
// callback because it blocks until the script settles.
func (l *ScriptLoader) Load(ctx context.Context, key string) (client.Factory, error) {
	if fn := l.registry().Get(key); fn.Type() == js.TypeFunction {
		return FactoryFromJS(fn), nil
	}

	doc := js.Global().Get("document")
	done := make(chan error, 1)

	s := doc.Call("createElement", "script")
	s.Set("src", l.BaseURL+key+".js")
	var onLoad, onError js.Func
	onLoad = js.FuncOf(func(this js.Value, args []js.Value) any {
		done <- nil
		return nil
	})
	onError = js.FuncOf(func(this js.Value, args []js.Value) any {
		done <- fmt.Errorf("script %s failed to load", key)
		return nil
	})
	defer onLoad.Release()
	defer onError.Release()
	s.Set("onload", onLoad)
	s.Set("onerror", onError)
	doc.Get("head").Call("appendChild", s)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-done:
		if err != nil {
			return nil, err
		}
	}

	fn := l.registry().Get(key)
	if fn.Type() != js.TypeFunction {
		return nil, client.ErrFactoryMissing
	}
	return FactoryFromJS(fn), nil
}

func (l *ScriptLoader) registry() js.Value {
	name := l.Registry
	if name == "" {
		name = "components"
	}
	return js.Global().Get(name)
}

// Console writes log output to the browser console
type Console struct{}

func (Console) Write(p []byte) (int, error) {
	js.Global().Get("console").Call("log", string(p))
	return len(p), nil
}

// Export installs the runtime entry points on window so generated
// markup and factories reach the Go runtime. Factories already in the
// registry are adopted.
func Export(rt *client.Context) {
	window := js.Global()
	reg := window.Get("components")
	if reg.IsUndefined() {
		reg = js.Global().Get("Object").New()
		window.Set("components", reg)
	}
	keys := js.Global().Get("Object").Call("keys", reg)
	for i := 0; i < keys.Length(); i++ {
		k := keys.Index(i).String()
		rt.Register(k, FactoryFromJS(reg.Get(k)))
	}

	window.Set("renderComponent", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 2 {
			return nil
		}
		key := args[0].String()
		if !rt.Registered(key) {
			// component scripts may run after Export
			if fn := window.Get("components").Get(key); fn.Type() == js.TypeFunction {
				rt.Register(key, FactoryFromJS(fn))
			}
		}
		rest := make([]any, 0, len(args)-2)
		for _, a := range args[2:] {
			rest = append(rest, a)
		}
		if el, ok := rt.RenderComponent(key, args[1].String(), rest...).(*element); ok {
			return el.v
		}
		return nil
	}))

	window.Set("removeComponent", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			rt.RemoveComponent(args[0].String())
		}
		return nil
	}))

	window.Set("loadComponent", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		key := args[0].String()
		handler := js.FuncOf(func(this js.Value, p []js.Value) any {
			resolve, reject := p[0], p[1]
			go func() {
				if err := <-rt.LoadComponent(context.Background(), key); err != nil {
					reject.Invoke(err.Error())
					return
				}
				resolve.Invoke()
			}()
			return nil
		})
		return js.Global().Get("Promise").New(handler)
	}))
}
