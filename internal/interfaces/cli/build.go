package cli

import (
	configpkg "github.com/YA-androidapp/baserow/internal/config"
	"github.com/YA-androidapp/baserow/internal/plugins"
	"github.com/spf13/cobra"
)

// newBuildCommand creates the image-build command.
func newBuildCommand() *cobra.Command {
	var folder string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Copy a plugin into the plugins root and install it in development mode",
		Long: `Copy a plugin source tree into the plugins root and install it in
development mode.

When PLUGIN_BUILD_UID/PLUGIN_BUILD_GID differ from the image's baked-in
service account, ownership of the entire plugins root is rewritten to
that identity first, pre-existing plugins included, so the runtime
process can read every file it will touch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configpkg.Load()
			if err != nil {
				return err
			}

			runner := &plugins.OSRunner{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
			installer := plugins.NewInstaller(runner, cmd.OutOrStdout())
			builder := plugins.NewBuilder(&plugins.BuilderConfig{
				Root:     cfg.PluginDir,
				Identity: cfg.BuildIdentity(),
				Out:      cmd.OutOrStdout(),
			}, installer)

			return builder.Build(cmd.Context(), folder)
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "Path to the plugin source tree")
	_ = cmd.MarkFlagRequired("folder")

	return cmd
}
