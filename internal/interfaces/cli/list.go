package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	configpkg "github.com/YA-androidapp/baserow/internal/config"
	plugindomain "github.com/YA-androidapp/baserow/internal/core/domain/plugin"
	"github.com/YA-androidapp/baserow/internal/plugins"
)

var (
	listHeaderStyle      = lipgloss.NewStyle().Bold(true)
	listDescriptionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// newListCommand creates the startup listing command.
func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed plugins",
		Long: `Enumerate every plugin directory under the plugins root and print its
name and, when its descriptor provides one, its description.

The output is informational only: it is written once at container
startup so the logs record which plugins the image carries. A missing or
malformed descriptor never blocks startup.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configpkg.Load()
			if err != nil {
				return err
			}

			discovery := plugins.NewDiscoveryWithWarnings(cfg.PluginDir, cmd.ErrOrStderr())
			found, err := discovery.List()
			if err != nil {
				return err
			}

			printPlugins(cmd.OutOrStdout(), found)
			return nil
		},
	}
}

// printPlugins writes the line-oriented plugin listing: a header, then
// per plugin " - <name>" with an optional indented description.
func printPlugins(w io.Writer, found []plugindomain.Plugin) {
	fmt.Fprintln(w, listHeaderStyle.Render("Installed plugins:"))
	for _, p := range found {
		fmt.Fprintf(w, " - %s\n", p.Name)
		if p.Description != "" {
			fmt.Fprintf(w, "     %s\n", listDescriptionStyle.Render(p.Description))
		}
	}
}
