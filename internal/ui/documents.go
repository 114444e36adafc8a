package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kvernberg/lovchat/pkg/api"
)

// RenderDocumentsTable opens an interactive Bubble Tea table to browse the
// indexed documents.
func RenderDocumentsTable(_ context.Context, docs []api.DocumentInfo) error {
	cols := []table.Column{
		{Title: "RefID", Width: 24},
		{Title: "Title", Width: 48},
		{Title: "Chunks", Width: 8},
	}

	rows := make([]table.Row, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, table.Row{
			truncate(d.RefID, 24),
			truncate(d.Title, 48),
			fmt.Sprint(d.Chunks),
		})
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(12, max(3, len(rows)+3))),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := documentsModel{table: t}
	p := tea.NewProgram(m)
	_, err := p.Run()
	return err
}

type documentsModel struct{ table table.Model }

func (m documentsModel) Init() tea.Cmd { return nil }

func (m documentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c", "enter":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m documentsModel) View() string {
	if m.table.Height() < 3 {
		return "(no documents)\n"
	}
	return m.table.View() + "\n↑/↓ to navigate • enter/q to exit\n"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
