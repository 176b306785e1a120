package client_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/recera/scc/pkg/client"
	"github.com/recera/scc/pkg/client/memdom"
)

func cardFactory(calls *int32) client.Factory {
	return func(args ...any) (client.Element, error) {
		atomic.AddInt32(calls, 1)
		root := memdom.NewElement("div")
		root.ClassName = "sc-el-1"
		child := memdom.NewElement("span")
		child.Text = "card"
		root.AppendChild(child)
		return root, nil
	}
}

func TestRenderComponent_FactoryCalledOnce(t *testing.T) {
	doc := memdom.NewDocument()
	slot := doc.Mount("div", "slot")
	ctx := client.NewContext(doc, client.WithLogOutput(&bytes.Buffer{}))

	var calls int32
	ctx.Register("Card1", cardFactory(&calls))

	first := ctx.RenderComponent("Card1", "slot")
	second := ctx.RenderComponent("Card1", "slot")

	if first == nil || second == nil {
		t.Fatal("RenderComponent returned nil")
	}
	if calls != 1 {
		t.Errorf("factory called %d times, want 1", calls)
	}
	if len(slot.Children()) != 2 {
		t.Fatalf("slot has %d children, want 2", len(slot.Children()))
	}
	if first == second {
		t.Error("mounts share one element")
	}

	// clones are independent
	a := first.(*memdom.Element)
	a.Children()[0].Text = "changed"
	b := second.(*memdom.Element)
	if got := b.TextContent(); got != "card" {
		t.Errorf("second clone text = %q, want %q", got, "card")
	}
}

func TestRenderComponent_Failures(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		target  string
		factory client.Factory
		want    string
	}{
		{
			name:   "missing target",
			key:    "Card1",
			target: "nope",
			want:   "render target not found: #nope",
		},
		{
			name:   "missing factory",
			key:    "Ghost",
			target: "slot",
			want:   "component not found: Ghost",
		},
		{
			name:   "factory error",
			key:    "Card1",
			target: "slot",
			factory: func(...any) (client.Element, error) {
				return nil, errors.New("boom")
			},
			want: "component Card1 failed to build: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := memdom.NewDocument()
			slot := doc.Mount("div", "slot")
			var logs bytes.Buffer
			ctx := client.NewContext(doc, client.WithLogOutput(&logs))
			var calls int32
			if tt.factory != nil {
				ctx.Register("Card1", tt.factory)
			} else {
				ctx.Register("Card1", cardFactory(&calls))
			}

			if got := ctx.RenderComponent(tt.key, tt.target); got != nil {
				t.Errorf("RenderComponent() = %v, want nil", got)
			}
			if !strings.Contains(logs.String(), tt.want) {
				t.Errorf("log = %q, want it to contain %q", logs.String(), tt.want)
			}
			if len(slot.Children()) != 0 {
				t.Errorf("slot has %d children, want 0", len(slot.Children()))
			}
		})
	}
}

func TestRemoveComponent(t *testing.T) {
	doc := memdom.NewDocument()
	slot := doc.Mount("div", "slot")
	child := memdom.NewElement("p")
	child.SetAttribute("id", "gone")
	slot.AppendChild(child)

	var logs bytes.Buffer
	ctx := client.NewContext(doc, client.WithLogOutput(&logs))

	ctx.RemoveComponent("gone")
	if len(slot.Children()) != 0 {
		t.Errorf("element still attached")
	}

	ctx.RemoveComponent("gone")
	if !strings.Contains(logs.String(), "component not found: #gone") {
		t.Errorf("log = %q", logs.String())
	}
}

func TestLoadComponent(t *testing.T) {
	doc := memdom.NewDocument()
	doc.Mount("div", "slot")

	var loads int32
	release := make(chan struct{})
	loader := client.LoaderFunc(func(ctx context.Context, key string) (client.Factory, error) {
		atomic.AddInt32(&loads, 1)
		<-release
		if key == "Missing" {
			return nil, nil
		}
		var calls int32
		return cardFactory(&calls), nil
	})
	ctx := client.NewContext(doc, client.WithLoader(loader), client.WithLogOutput(&bytes.Buffer{}))

	var wg sync.WaitGroup
	errs := make([]error, 3)
	for i := range errs {
		ch := ctx.LoadComponent(context.Background(), "Card1")
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = <-ch
		}(i)
	}
	close(release)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("load %d: %v", i, err)
		}
	}
	if loads != 1 {
		t.Errorf("loader called %d times, want 1", loads)
	}
	if !ctx.Registered("Card1") {
		t.Fatal("Card1 not registered after load")
	}

	// already registered resolves without the loader
	select {
	case err := <-ctx.LoadComponent(context.Background(), "Card1"):
		if err != nil {
			t.Errorf("reload: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("reload did not resolve")
	}
	if loads != 1 {
		t.Errorf("loader called %d times, want 1", loads)
	}

	if err := <-ctx.LoadComponent(context.Background(), "Missing"); !errors.Is(err, client.ErrFactoryMissing) {
		t.Errorf("missing load error = %v, want ErrFactoryMissing", err)
	}
	if ctx.Registered("Missing") {
		t.Error("failed load registered a factory")
	}
}

func TestLoadComponent_NoLoader(t *testing.T) {
	ctx := client.NewContext(memdom.NewDocument(), client.WithLogOutput(&bytes.Buffer{}))
	if err := <-ctx.LoadComponent(context.Background(), "Card1"); !errors.Is(err, client.ErrNoLoader) {
		t.Errorf("error = %v, want ErrNoLoader", err)
	}
}
