package cli

import (
	plugindomain "github.com/YA-androidapp/baserow/internal/core/domain/plugin"
	"github.com/YA-androidapp/baserow/internal/plugins"
	"github.com/spf13/cobra"
)

// newInstallCommand creates the installer command.
func newInstallCommand() *cobra.Command {
	var (
		folder string
		dev    bool
	)

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install a plugin directory for the Baserow runtime",
		Long: `Run a plugin's installation procedure so its code can be loaded by the
Baserow runtime.

Production mode runs only the plugin's declared dependency installation
and registration steps. Development mode additionally installs the
plugin's development requirements and switches the backend install to an
editable one, so code changes are picked up without a rebuild. The
procedure is safe to re-run during image rebuilds.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := plugindomain.ModeProduction
			if dev {
				mode = plugindomain.ModeDevelopment
			}

			runner := &plugins.OSRunner{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
			installer := plugins.NewInstaller(runner, cmd.OutOrStdout())

			return installer.Install(cmd.Context(), folder, mode)
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "Path to the plugin directory")
	cmd.Flags().BoolVar(&dev, "dev", false, "Install in development mode")
	_ = cmd.MarkFlagRequired("folder")

	return cmd
}
