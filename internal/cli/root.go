package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bulletins/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Bulletins manages styled bulletin templates, bulletins and cards",
		Long:         `Bulletins serves and edits agro-climatic bulletin documents whose fields inherit their style from the containers they live in.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/bulletins/config.toml)")
	root.PersistentFlags().StringVar(&c.serverURL, "server", "", "server URL for document commands (default $"+envServerURL+" or "+defaultServerURL+")")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.styleCommand())
	root.AddCommand(c.docCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// versionCommand prints build information, optionally that of the server.
func (c *CLI) versionCommand() *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
			if !remote {
				return nil
			}
			info, err := c.client().Version(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "server: %s (%s)\n", info.Version, info.Commit)
			return nil
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "also query the server")
	return cmd
}
