package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the baserow-plugin command tree.
func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "baserow-plugin",
		Short: "Baserow plugin build, install, and discovery tool",
		Long: `baserow-plugin manages optional Baserow plugins inside a container image.

It is invoked at image build time to copy a plugin into the plugins root
under the correct build identity and install it, and at container startup
to enumerate the installed plugins.`,
		Example: `  # Image build: materialize and install a plugin in development mode
  baserow-plugin build --folder /tmp/my-plugin

  # Install an already-materialized plugin for production
  baserow-plugin install --folder /baserow/plugins/my-plugin

  # Container startup: list installed plugins
  baserow-plugin list`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.AddCommand(newBuildCommand())
	rootCmd.AddCommand(newInstallCommand())
	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newWatchCommand())

	return rootCmd
}
