package cli

import (
	"fmt"

	"github.com/recera/scc/pkg/cli/internal/ui"
	"github.com/recera/scc/pkg/compiler"
	"github.com/recera/scc/pkg/verify"
	"github.com/spf13/cobra"
)

func newVerifyCommand(p compiler.Project) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that markup and factory scripts build the same trees",
		Long: `Compiles every component, parses its markup and replays its factory
program into an in-memory document, then compares the two trees node by
node using the identity tokens as join keys.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := compile(p, loadConfig())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, u := range a.Units {
				if err := verify.Component(u.Component); err != nil {
					failed++
					fmt.Fprintln(out, ui.Error("%s: %v", u.Key, err))
					continue
				}
				fmt.Fprintln(out, ui.Success("%s", u.Key))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d components failed verification", failed, len(a.Units))
			}
			return nil
		},
	}
}

// verifyAll checks every compiled unit and returns one error per failure
func verifyAll(a *compiler.Artifacts) []error {
	var errs []error
	for _, u := range a.Units {
		if err := verify.Component(u.Component); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", u.Key, err))
		}
	}
	return errs
}
