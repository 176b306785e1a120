package compiler

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Kind identifies the language of a text artifact
type Kind string

const (
	KindHTML Kind = "html"
	KindJS   Kind = "js"
	KindCSS  Kind = "css"
)

// Minifier shrinks text artifacts. Implementations are external tools;
// the compiler ships none.
type Minifier interface {
	Minify(kind Kind, text string) (string, error)
}

// MinifierFunc adapts a function to Minifier
type MinifierFunc func(kind Kind, text string) (string, error)

// Minify implements Minifier
func (f MinifierFunc) Minify(kind Kind, text string) (string, error) {
	return f(kind, text)
}

// CommandMinifier pipes each artifact through an external command. The
// artifact kind is passed in SCC_ASSET_KIND and "{kind}" in the argument
// list is replaced by it.
type CommandMinifier struct {
	Command string
	Args    []string
	Timeout time.Duration
	// Kinds limits the artifacts sent to the command; empty means all
	Kinds []Kind
}

// ParseCommandMinifier splits a command line such as
// "esbuild --minify --loader={kind}".
func ParseCommandMinifier(cmdline string) (*CommandMinifier, error) {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty minify command")
	}
	return &CommandMinifier{Command: fields[0], Args: fields[1:], Timeout: 30 * time.Second}, nil
}

// Minify implements Minifier
func (m *CommandMinifier) Minify(kind Kind, text string) (string, error) {
	if !m.accepts(kind) {
		return text, nil
	}

	ctx := context.Background()
	if m.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.Timeout)
		defer cancel()
	}

	args := make([]string, len(m.Args))
	for i, a := range m.Args {
		args[i] = strings.ReplaceAll(a, "{kind}", string(kind))
	}

	cmd := exec.CommandContext(ctx, m.Command, args...)
	cmd.Env = append(os.Environ(), "SCC_ASSET_KIND="+string(kind))
	cmd.Stdin = strings.NewReader(text)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %w: %s", m.Command, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

func (m *CommandMinifier) accepts(kind Kind) bool {
	if len(m.Kinds) == 0 {
		return true
	}
	for _, k := range m.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}
