package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/recera/scc/pkg/cli/internal/config"
	"github.com/recera/scc/pkg/cli/internal/ui"
	"github.com/recera/scc/pkg/compiler"
	"github.com/spf13/cobra"
)

func newBuildCommand(p compiler.Project) *cobra.Command {
	var output string
	var inline bool
	var verify bool
	var minifyCmd string
	var clean bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile the components into the output directory",
		Long: `Compiles every component into index.html, styles.css, runtime.js and
one factory script per component. Files whose content did not change
since the previous build are left untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			flags := cmd.Flags()
			if flags.Changed("output") {
				cfg.Output = output
			}
			if flags.Changed("inline-scripts") {
				cfg.Inline = inline
			}
			if flags.Changed("verify") {
				cfg.Verify = verify
			}
			if flags.Changed("minify-cmd") {
				cfg.Minify = &config.MinifyConfig{Command: minifyCmd}
			}
			return runBuild(cmd, p, cfg, clean)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "dist", "Output directory")
	cmd.Flags().BoolVar(&inline, "inline-scripts", false, "Embed CSS, runtime and factories in index.html")
	cmd.Flags().BoolVar(&verify, "verify", false, "Check that markup and factories agree before writing")
	cmd.Flags().BoolVar(&clean, "clean", false, "Ignore the build cache and rewrite every file")
	cmd.Flags().StringVar(&minifyCmd, "minify-cmd", "", `External minifier command, e.g. "esbuild --minify --loader={kind}"`)

	return cmd
}

func runBuild(cmd *cobra.Command, p compiler.Project, cfg *config.Config, clean bool) error {
	log.Println("🚀 Building components...")
	start := time.Now()

	res, err := build(p, cfg, clean)
	if err != nil {
		if res != nil {
			for _, f := range res.Failed {
				log.Printf("❌ %v", f)
			}
		}
		return fmt.Errorf("build failed: %w", err)
	}

	log.Printf("✅ Build complete in %v", time.Since(start).Round(time.Millisecond))
	fmt.Fprintln(cmd.OutOrStdout(), buildSummary(cfg, res))
	return nil
}

func buildSummary(cfg *config.Config, res *buildResult) string {
	a := res.Artifacts
	stats := []ui.Stat{
		{Label: "output", Value: cfg.Output},
		{Label: "components", Value: fmt.Sprint(len(a.Units))},
		{Label: "css", Value: formatBytes(len(a.CSS))},
		{Label: "page", Value: formatBytes(len(a.Page))},
		{Label: "written", Value: fmt.Sprintf("%d of %d files", len(res.Changed), len(a.Files()))},
	}
	if res.Cache != nil {
		stats = append(stats, ui.Stat{Label: "cache", Value: fmt.Sprintf("%d hits, %d misses", res.Cache.Hits, res.Cache.Misses)})
	}
	if cfg.Verify {
		stats = append(stats, ui.Stat{Label: "verified", Value: ui.Success("%d components", len(a.Units))})
	}
	return ui.Summary("scc build", stats, res.Changed)
}

func formatBytes(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}
