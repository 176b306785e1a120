package main

import (
	"github.com/recera/scc/app/components"
	"github.com/recera/scc/pkg/cli"
)

func main() {
	cli.Execute(components.Project())
}
