package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bulletins/pkg/document"
	"github.com/matzehuels/bulletins/pkg/editor"
	"github.com/matzehuels/bulletins/pkg/inherit"
	docio "github.com/matzehuels/bulletins/pkg/io"
	"github.com/matzehuels/bulletins/pkg/style"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// docInspectCommand creates the "doc inspect" subcommand.
func (c *CLI) docInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Browse the fields of a document file and their inheritance state",
		Long: `Browse the fields of a local document file.

Each field shows its container, whether it inherits its style and the style
a renderer would apply. Press r to reset a field to inheriting, m to mark it
manual and s to save the file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := docio.ImportFile(args[0])
			if err != nil {
				return err
			}
			model := newInspectModel(args[0], doc)
			if len(model.rows) == 0 {
				printInfo("%s has no fields", args[0])
				return nil
			}

			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(inspectModel); ok && m.dirty {
				printInfo("Unsaved changes discarded")
			}
			return nil
		},
	}
}

// =============================================================================
// inspectModel - Interactive field browser
// =============================================================================

// fieldRow is one field in document order.
type fieldRow struct {
	ref   document.ContainerRef
	field document.Field
}

// inspectModel is the bubbletea model behind "doc inspect".
type inspectModel struct {
	path     string
	doc      document.Document
	rows     []fieldRow
	resolved map[string]style.Config

	cursor int
	offset int
	height int

	dirty  bool
	status string
}

func newInspectModel(path string, doc document.Document) inspectModel {
	m := inspectModel{path: path, doc: doc, height: 15}
	m.refresh()
	return m
}

// refresh rebuilds the rows and resolved styles from the document content.
func (m *inspectModel) refresh() {
	m.rows = nil
	m.doc.Content.Walk(func(ref document.ContainerRef, ct *document.Container) bool {
		for _, f := range ct.Fields {
			m.rows = append(m.rows, fieldRow{ref: ref, field: f})
		}
		return true
	})
	m.resolved = editor.ResolveAll(m.doc.Content)
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
}

// apply runs an edit on the selected field.
func (m *inspectModel) apply(verb string, edit func(document.Content, string) (document.Content, error)) {
	if len(m.rows) == 0 {
		return
	}
	id := m.rows[m.cursor].field.ID
	content, err := edit(m.doc.Content, id)
	if err != nil {
		m.status = styleIconError.Render(iconError) + " " + err.Error()
		return
	}
	m.doc.Content = content
	m.dirty = true
	m.status = styleIconSuccess.Render(iconSuccess) + " " + verb + " " + id
	m.refresh()
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "r":
			m.apply("reset", editor.ResetFieldStyle)
		case "m":
			m.apply("marked manual", editor.MarkFieldManual)
		case "s":
			if err := docio.ExportFile(m.path, m.doc); err != nil {
				m.status = styleIconError.Render(iconError) + " " + err.Error()
				break
			}
			m.dirty = false
			m.status = styleIconSuccess.Render(iconSuccess) + " saved " + m.path
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m inspectModel) View() string {
	var b strings.Builder

	title := m.doc.Master.Name
	if m.dirty {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  r reset  m manual  s save  q quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.rows))
	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		state := iconInheriting
		if inherit.StateOf(r.field) == inherit.Manual {
			state = iconManual
		}
		rows = append(rows, []string{cursor, r.field.ID, r.ref.String(), string(r.field.Type()), state, summarize(m.resolved[r.field.ID])})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Field", "Container", "Type", "Style", "Resolved").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.offset + row
			if idx >= len(m.rows) {
				return lipgloss.NewStyle()
			}
			manual := m.rows[idx].field.StyleManuallyEdited
			switch {
			case col == 4 && manual:
				return styleManual
			case col == 4:
				return styleInheriting
			case col == 5:
				return listDimStyle
			case idx == m.cursor:
				return listSelectedStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.rows))))
	if m.status != "" {
		b.WriteString("  " + m.status)
	}
	return b.String()
}

// summarize renders the first few properties of a resolved style.
func summarize(c style.Config) string {
	props := c.Properties()
	if len(props) == 0 {
		return "—"
	}
	const shown = 3
	parts := make([]string, 0, shown)
	for _, p := range props[:min(shown, len(props))] {
		v, _ := c.Get(p)
		parts = append(parts, fmt.Sprintf("%s=%v", p, v))
	}
	if len(props) > shown {
		parts = append(parts, fmt.Sprintf("+%d", len(props)-shown))
	}
	return strings.Join(parts, " ")
}
