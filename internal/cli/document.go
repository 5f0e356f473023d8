package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bulletins/pkg/document"
	docio "github.com/matzehuels/bulletins/pkg/io"
)

// docCommand creates the document command group.
func (c *CLI) docCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "doc",
		Aliases: []string{"document"},
		Short:   "Work with templates, bulletins and cards",
		Long: `Work with templates, bulletins and cards.

All subcommands except inspect talk to a running server (see --server).
Kinds may be given singular or plural: template, bulletins, card.`,
	}

	cmd.AddCommand(c.docImportCommand())
	cmd.AddCommand(c.docExportCommand())
	cmd.AddCommand(c.docListCommand())
	cmd.AddCommand(c.docShowCommand())
	cmd.AddCommand(c.docPublishCommand())
	cmd.AddCommand(c.docArchiveCommand())
	cmd.AddCommand(c.docInspectCommand())

	return cmd
}

// docImportCommand creates the "doc import" subcommand.
func (c *CLI) docImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a document file as a new master",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := docio.ImportFile(args[0])
			if err != nil {
				return err
			}
			c.Logger.Debug("read document", "kind", doc.Master.Kind, "fields", len(doc.Content.Fields()))

			prog := newProgress(c.Logger)
			var m document.Master
			err = withSpinner(cmd.Context(), "Importing "+doc.Master.Name+"...", func(ctx context.Context) (err error) {
				m, err = c.client().Import(ctx, doc)
				return err
			})
			if err != nil {
				return err
			}
			prog.done("Imported " + m.ID)
			printSuccess("Imported %s %s", m.Kind, StyleHighlight.Render(m.Name))
			printKeyValue("id", m.ID)
			printKeyValue("version", strconv.Itoa(m.CurrentVersion))
			return nil
		},
	}
}

// docExportCommand creates the "doc export" subcommand.
func (c *CLI) docExportCommand() *cobra.Command {
	var (
		output string
		format string
	)
	cmd := &cobra.Command{
		Use:   "export <kind> <id>",
		Short: "Export a master with its current content",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := document.ParseKind(args[0])
			if err != nil {
				return err
			}

			var doc document.Document
			err = withSpinner(cmd.Context(), "Exporting...", func(ctx context.Context) (err error) {
				doc, err = c.client().Documents(kind).Export(ctx, args[1])
				return err
			})
			if err != nil {
				return err
			}

			if output == "" {
				f, err := docio.ParseFormat(format)
				if err != nil {
					return err
				}
				return docio.Write(cmd.OutOrStdout(), f, doc)
			}
			if err := docio.ExportFile(output, doc); err != nil {
				return err
			}
			printSuccess("Exported %s", StyleHighlight.Render(doc.Master.Name))
			printFile(output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json, .yaml); stdout when empty")
	cmd.Flags().StringVar(&format, "format", "yaml", "stdout format: json or yaml")
	return cmd
}

// docListCommand creates the "doc list" subcommand.
func (c *CLI) docListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <kind>",
		Short: "List the masters of a kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := document.ParseKind(args[0])
			if err != nil {
				return err
			}
			masters, err := c.client().Documents(kind).List(cmd.Context())
			if err != nil {
				return err
			}
			if len(masters) == 0 {
				printInfo("No %ss", kind)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), masterTable(masters))
			return nil
		},
	}
}

// docShowCommand creates the "doc show" subcommand.
func (c *CLI) docShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <kind> <id>",
		Short: "Show a master and its current version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := document.ParseKind(args[0])
			if err != nil {
				return err
			}
			docs := c.client().Documents(kind)
			m, err := docs.Get(cmd.Context(), args[1])
			if err != nil {
				return err
			}

			fmt.Fprintln(stdout, StyleTitle.Render(m.Name))
			printKeyValue("id", m.ID)
			printKeyValue("kind", string(m.Kind))
			printKeyValue("status", string(m.Status))
			printKeyValue("version", strconv.Itoa(m.CurrentVersion))
			if m.TemplateID != "" {
				printKeyValue("template", m.TemplateID)
			}
			printKeyValue("updated", m.UpdatedAt.Local().Format(time.DateTime))
			if m.CurrentVersion == 0 {
				return nil
			}

			v, err := docs.Version(cmd.Context(), m.ID, 0)
			if err != nil {
				return err
			}
			inheriting, manual := countStates(v.Content.Fields())
			fmt.Fprintln(stdout)
			printInfo("%d sections", len(v.Content.Sections))
			printFieldStats(inheriting, manual)
			return nil
		},
	}
}

// docPublishCommand creates the "doc publish" subcommand.
func (c *CLI) docPublishCommand() *cobra.Command {
	var comment string
	cmd := &cobra.Command{
		Use:   "publish <kind> <id> <file>",
		Short: "Publish the content of a document file as a new version",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := document.ParseKind(args[0])
			if err != nil {
				return err
			}
			doc, err := docio.ImportFile(args[2])
			if err != nil {
				return err
			}

			var v document.Version
			err = withSpinner(cmd.Context(), "Publishing...", func(ctx context.Context) (err error) {
				v, err = c.client().Documents(kind).Publish(ctx, args[1], comment, doc.Content)
				return err
			})
			if err != nil {
				return err
			}
			printSuccess("Published version %d", v.Number)
			return nil
		},
	}
	cmd.Flags().StringVarP(&comment, "message", "m", "", "version comment")
	return cmd
}

// docArchiveCommand creates the "doc archive" subcommand.
func (c *CLI) docArchiveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <kind> <id>",
		Short: "Archive a master",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := document.ParseKind(args[0])
			if err != nil {
				return err
			}
			m, err := c.client().Documents(kind).Archive(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			printSuccess("Archived %s", StyleHighlight.Render(m.Name))
			return nil
		},
	}
}

func masterTable(masters []document.Master) string {
	rows := make([][]string, 0, len(masters))
	for _, m := range masters {
		rows = append(rows, []string{m.ID, m.Name, string(m.Status), strconv.Itoa(m.CurrentVersion)})
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Status", "Version").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 2 && rows[row][2] == string(document.StatusArchived) {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
