package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bulletins/pkg/document"
	"github.com/matzehuels/bulletins/pkg/inherit"
	docio "github.com/matzehuels/bulletins/pkg/io"
	"github.com/matzehuels/bulletins/pkg/style"
)

// styleFlags are shared by the style subcommands.
type styleFlags struct {
	format string
	remote bool
}

func (f *styleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "output", "o", "json", "output format: json or yaml")
	cmd.Flags().BoolVar(&f.remote, "remote", false, "evaluate on the server instead of locally")
}

func (f *styleFlags) write(cmd *cobra.Command, v any) error {
	format, err := docio.ParseFormat(f.format)
	if err != nil {
		return err
	}
	return docio.WriteValue(cmd.OutOrStdout(), format, v)
}

// styleCommand creates the style command group.
func (c *CLI) styleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "style",
		Short: "Combine, resolve and propagate styles from files",
		Long: `Run the style inheritance engine over JSON or YAML files.

Style files hold a style_config object; field files hold a field as stored
in documents. Results are written to stdout.`,
	}

	cmd.AddCommand(c.styleCombineCommand())
	cmd.AddCommand(c.styleResolveCommand())
	cmd.AddCommand(c.stylePropagateCommand())
	cmd.AddCommand(c.stylePropsCommand())

	return cmd
}

// styleCombineCommand creates the "style combine" subcommand.
func (c *CLI) styleCombineCommand() *cobra.Command {
	var flags styleFlags
	cmd := &cobra.Command{
		Use:   "combine <parent> <child>",
		Short: "Combine a parent and a child style",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var parent, child style.Config
			if err := docio.ReadFile(args[0], &parent); err != nil {
				return err
			}
			if err := docio.ReadFile(args[1], &child); err != nil {
				return err
			}

			var out style.Config
			err := c.evaluate(cmd.Context(), flags.remote, func(ctx context.Context) (err error) {
				out, err = c.client().Combine(ctx, &parent, &child)
				return err
			}, func() {
				out = style.Combine(&parent, &child)
			})
			if err != nil {
				return err
			}
			return flags.write(cmd, out)
		},
	}
	flags.register(cmd)
	return cmd
}

// styleResolveCommand creates the "style resolve" subcommand.
func (c *CLI) styleResolveCommand() *cobra.Command {
	var (
		flags     styleFlags
		container string
	)
	cmd := &cobra.Command{
		Use:   "resolve <field>",
		Short: "Resolve the effective style of a field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var f document.Field
			if err := docio.ReadFile(args[0], &f); err != nil {
				return err
			}
			cs, err := readContainerStyle(container)
			if err != nil {
				return err
			}

			var out style.Config
			err = c.evaluate(cmd.Context(), flags.remote, func(ctx context.Context) (err error) {
				out, err = c.client().Resolve(ctx, f, cs)
				return err
			}, func() {
				out = inherit.Resolve(f, cs)
			})
			if err != nil {
				return err
			}
			return flags.write(cmd, out)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&container, "container", "c", "", "container style file")
	return cmd
}

// stylePropagateCommand creates the "style propagate" subcommand.
func (c *CLI) stylePropagateCommand() *cobra.Command {
	var (
		flags     styleFlags
		container string
	)
	cmd := &cobra.Command{
		Use:   "propagate <fields>",
		Short: "Apply a container style to a list of fields",
		Long: `Apply a container style to a list of fields.

Fields whose style was edited by hand are left unchanged; the others get
the container's heritable properties beneath their own.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var fields []document.Field
			if err := docio.ReadFile(args[0], &fields); err != nil {
				return err
			}
			cs, err := readContainerStyle(container)
			if err != nil {
				return err
			}

			var out []document.Field
			err = c.evaluate(cmd.Context(), flags.remote, func(ctx context.Context) (err error) {
				out, err = c.client().Propagate(ctx, fields, cs)
				return err
			}, func() {
				out = inherit.Propagate(fields, cs)
			})
			if err != nil {
				return err
			}

			inheriting, manual := countStates(out)
			c.Logger.Debug("propagated", "inheriting", inheriting, "manual", manual)
			return flags.write(cmd, out)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&container, "container", "c", "", "container style file")
	return cmd
}

// stylePropsCommand creates the "style props" subcommand.
func (c *CLI) stylePropsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "props",
		Short: "List style properties and whether fields inherit them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), propertyTable())
			return nil
		},
	}
}

// evaluate runs remote against the server behind a spinner, or local.
func (c *CLI) evaluate(ctx context.Context, remote bool, viaServer func(context.Context) error, local func()) error {
	if !remote {
		local()
		return nil
	}
	return withSpinner(ctx, "Asking server...", viaServer)
}

func readContainerStyle(path string) (*style.Config, error) {
	if path == "" {
		return nil, nil
	}
	var cs style.Config
	if err := docio.ReadFile(path, &cs); err != nil {
		return nil, err
	}
	return &cs, nil
}

func countStates(fields []document.Field) (inheriting, manual int) {
	for _, f := range fields {
		if inherit.StateOf(f) == inherit.Manual {
			manual++
		} else {
			inheriting++
		}
	}
	return inheriting, manual
}

func propertyTable() string {
	rows := make([][]string, 0, len(style.HeritableProperties)+len(style.LocalProperties))
	for _, p := range style.HeritableProperties {
		rows = append(rows, []string{string(p), "heritable"})
	}
	for _, p := range style.LocalProperties {
		rows = append(rows, []string{string(p), "local"})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Property", "Scope").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 1 && rows[row][1] == "local" {
				return lipgloss.NewStyle().Foreground(colorYellow)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}
