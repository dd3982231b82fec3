package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sketchpad/pkg/editor"
)

// drawCommand creates the interactive draw command.
func (c *CLI) drawCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		seed    uint64
	)

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Sketch in the terminal",
		Long: `Sketch in the terminal with the mouse.

Drag with the left button to draw with the active tool. Moving without a
button shows where the next shape will land.

Keys:
  1-9, tab      select a tool
  a             add a custom sticker (type a symbol, enter to confirm)
  u, r          undo, redo
  c             clear
  e             export PNG to --output
  q             quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if seed != 0 {
				cfg.Seed = seed
			}
			e, err := editor.New(cfg.NewRegistry())
			if err != nil {
				return err
			}
			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}

			prog := newProgress(loggerFromContext(cmd.Context()), "closed sketch")
			m := NewDrawModel(cmd.Context(), e, cfg, runner, basePath(output, ""))
			p := tea.NewProgram(m,
				tea.WithAltScreen(),
				tea.WithMouseAllMotion(),
				tea.WithContext(contextOrBackground(cmd.Context())),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("draw: %w", err)
			}

			prog.done("shapes", len(e.DisplayList()), "tools", e.Tools().Len())
			if n := len(e.DisplayList()); n > 0 {
				printInfo("Finished with %d shapes", n)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "sketch.png", "export path (the extension is replaced by the format)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for sticker rotations")

	return cmd
}
