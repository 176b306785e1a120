// Package assets embeds the browser runtime shipped with every build.
package assets

import _ "embed"

// RuntimeJS mounts generated component factories in the page. It defines
// renderComponent, removeComponent and loadComponent on window. Its script
// tag may carry data-registry (dotted path of the factory registry below
// window), data-render (name of the render function) and data-components
// (base URL of factory scripts).
//
//go:embed runtime.js
var RuntimeJS []byte

// RuntimeFile is the output name of RuntimeJS
const RuntimeFile = "runtime.js"
