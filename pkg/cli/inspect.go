package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/recera/scc/pkg/cli/internal/ui"
	"github.com/recera/scc/pkg/compiler"
	"github.com/recera/scc/pkg/renderer/html"
	"github.com/spf13/cobra"
)

func newInspectCommand(p compiler.Project) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Browse the compiled components interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := compile(p, loadConfig())
			if err != nil {
				return err
			}
			entries, err := inspectEntries(a)
			if err != nil {
				return err
			}

			prog := tea.NewProgram(ui.NewInspector("scc inspect", entries), tea.WithAltScreen())
			_, err = prog.Run()
			return err
		},
	}
}

// inspectEntries lists one entry per unit, followed by the page-wide
// artifacts.
func inspectEntries(a *compiler.Artifacts) ([]ui.Entry, error) {
	entries := make([]ui.Entry, 0, len(a.Units)+2)
	for i, u := range a.Units {
		markup, err := html.RenderToString(u.Component.MustRoot())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", u.Key, err)
		}

		ops := make([]string, 0, len(u.Program))
		for _, in := range u.Program {
			ops = append(ops, in.String())
		}

		note := fmt.Sprintf("(%s)", strings.Join(u.Params, ", "))
		if i == 0 {
			note = "root"
		}
		entries = append(entries, ui.Entry{
			Name: u.Key,
			Note: note,
			Views: []ui.View{
				{Title: "Markup", Body: markup},
				{Title: "Program", Body: strings.Join(ops, "\n")},
				{Title: "Script", Body: u.Script},
			},
		})
	}

	entries = append(entries,
		ui.Entry{Name: compiler.StylesFile, Views: []ui.View{{Title: "CSS", Body: a.CSS}}},
		ui.Entry{Name: compiler.PageFile, Views: []ui.View{
			{Title: "Page", Body: a.Page},
			{Title: "On load", Body: a.OnLoad},
		}},
	)
	return entries, nil
}
