//go:build js && wasm

// Command scc-wasm replaces runtime.js with the Go client runtime. Load
// it after wasm_exec.js; factory scripts register into window.components
// as usual and are picked up on start.
package main

import (
	"github.com/recera/scc/pkg/client"
	"github.com/recera/scc/pkg/client/jsdom"
)

func main() {
	rt := client.NewContext(jsdom.NewDocument(),
		client.WithLogOutput(jsdom.Console{}),
		client.WithLoader(&jsdom.ScriptLoader{BaseURL: "components/"}),
	)
	jsdom.Export(rt)

	// Keep the WASM runtime alive
	select {}
}
