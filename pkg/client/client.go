// Package client is the page-side runtime that mounts generated
// component factories on demand.
//
// One Context lives for a page session. It holds the factory registry
// (filled as component scripts load) and a cache of constructed roots so
// every factory runs at most once while each mount site receives its own
// clone. Failures never propagate: a missing target or factory is logged
// and the call returns.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

var (
	// ErrFactoryMissing is reported when no factory is registered for a key
	ErrFactoryMissing = errors.New("component factory not found")

	// ErrNoLoader is reported by LoadComponent when no Loader is configured
	ErrNoLoader = errors.New("no component loader configured")
)

// Element is a node of the host document
type Element interface {
	AppendChild(child Element)
	CloneNode(deep bool) Element
	Remove()
}

// Document resolves elements by id. GetElementByID returns nil when the
// element does not exist.
type Document interface {
	GetElementByID(id string) Element
}

// Factory constructs a component root from its parameters
type Factory func(args ...any) (Element, error)

// Loader fetches the compiled script of a component and returns the
// factory it registered.
type Loader interface {
	Load(ctx context.Context, key string) (Factory, error)
}

// LoaderFunc adapts a function to Loader
type LoaderFunc func(ctx context.Context, key string) (Factory, error)

// Load implements Loader
func (f LoaderFunc) Load(ctx context.Context, key string) (Factory, error) {
	return f(ctx, key)
}

// Option configures a Context
type Option func(*Context)

// WithLogger sets the logger used for non-fatal failures
func WithLogger(l *log.Logger) Option {
	return func(c *Context) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithLogOutput logs to w with the default prefix
func WithLogOutput(w io.Writer) Option {
	return func(c *Context) {
		c.logger = log.New(w, "[scc] ", 0)
	}
}

// WithLoader sets the loader used by LoadComponent
func WithLoader(l Loader) Option {
	return func(c *Context) {
		c.loader = l
	}
}

// Context is the registry and cache of one page session
type Context struct {
	mu       sync.Mutex
	doc      Document
	registry map[string]Factory
	cache    map[string]Element
	pending  map[string][]chan error
	loader   Loader
	logger   *log.Logger
}

// NewContext creates the runtime for doc
func NewContext(doc Document, opts ...Option) *Context {
	c := &Context{
		doc:      doc,
		registry: make(map[string]Factory),
		cache:    make(map[string]Element),
		pending:  make(map[string][]chan error),
		logger:   log.New(os.Stderr, "[scc] ", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register stores the factory for key, replacing any earlier one. The
// cached root built by an earlier factory is kept.
func (c *Context) Register(key string, f Factory) {
	if f == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.registry[key] = f
}

// Lookup returns the factory registered for key
func (c *Context) Lookup(key string) (Factory, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, ok := c.registry[key]
	return f, ok
}

// Registered reports whether a factory exists for key
func (c *Context) Registered(key string) bool {
	_, ok := c.Lookup(key)
	return ok
}

// RenderComponent appends a fresh copy of component key under the element
// with id parentID and returns it. The factory runs only on the first
// call for a key; later args are ignored because the cached root is
// cloned. Returns nil after logging when the target or factory is missing.
func (c *Context) RenderComponent(key, parentID string, args ...any) Element {
	parent := c.doc.GetElementByID(parentID)
	if parent == nil {
		c.logger.Printf("render target not found: #%s", parentID)
		return nil
	}

	c.mu.Lock()
	factory, ok := c.registry[key]
	cached, hit := c.cache[key]
	c.mu.Unlock()

	if !hit {
		if !ok {
			c.logger.Printf("component not found: %s", key)
			return nil
		}
		el, err := factory(args...)
		if err != nil {
			c.logger.Printf("component %s failed to build: %v", key, err)
			return nil
		}
		if el == nil {
			c.logger.Printf("component %s built nothing", key)
			return nil
		}

		c.mu.Lock()
		if existing, raced := c.cache[key]; raced {
			el = existing
		} else {
			c.cache[key] = el
		}
		c.mu.Unlock()
		cached = el
	}

	clone := cached.CloneNode(true)
	parent.AppendChild(clone)
	return clone
}

// RemoveComponent detaches the element with id. A missing element is
// logged and ignored.
func (c *Context) RemoveComponent(id string) {
	el := c.doc.GetElementByID(id)
	if el == nil {
		c.logger.Printf("component not found: #%s", id)
		return
	}
	el.Remove()
}

// LoadComponent makes sure a factory for key is registered. The returned
// channel yields the outcome once and is then closed; it is already
// closed when the factory was registered before the call. Concurrent
// requests for one key share a single Loader call.
func (c *Context) LoadComponent(ctx context.Context, key string) <-chan error {
	done := make(chan error, 1)

	c.mu.Lock()
	if _, ok := c.registry[key]; ok {
		c.mu.Unlock()
		close(done)
		return done
	}
	if c.loader == nil {
		c.mu.Unlock()
		done <- fmt.Errorf("%s: %w", key, ErrNoLoader)
		close(done)
		return done
	}
	waiters, inflight := c.pending[key]
	c.pending[key] = append(waiters, done)
	c.mu.Unlock()

	if !inflight {
		go c.load(ctx, key)
	}
	return done
}

func (c *Context) load(ctx context.Context, key string) {
	f, err := c.loader.Load(ctx, key)
	if err == nil && f == nil {
		err = ErrFactoryMissing
	}
	if err != nil {
		err = fmt.Errorf("load %s: %w", key, err)
		c.logger.Print(err)
	}

	c.mu.Lock()
	if err == nil {
		c.registry[key] = f
	}
	waiters := c.pending[key]
	delete(c.pending, key)
	c.mu.Unlock()

	for _, w := range waiters {
		w <- err
		close(w)
	}
}
