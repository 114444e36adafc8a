// Package ui holds the interactive Bubble Tea surfaces: the chat session and
// the document browser.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/kvernberg/lovchat/pkg/api"
)

// Asker answers one question; satisfied by bot.Bot.
type Asker interface {
	Ask(ctx context.Context, question string, topK int) (api.Answer, error)
}

// ChatOptions configure the interactive chat session.
type ChatOptions struct {
	Style string // glamour style for rendered answers
	Model string // shown in the header
}

var (
	youStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("57")).Bold(true)
	botStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	kilderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
)

// RunChat opens the interactive chat TUI over the given bot.
func RunChat(ctx context.Context, bot Asker, opts ChatOptions) error {
	ta := textarea.New()
	ta.Placeholder = "Still et spørsmål … (enter sender, ctrl+c avslutter)"
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.CharLimit = 0
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	vp := viewport.New(80, 16)

	style := opts.Style
	if style == "" {
		style = "dracula"
	}

	m := chatModel{
		ctx:      ctx,
		bot:      bot,
		input:    ta,
		spinner:  sp,
		viewport: vp,
		style:    style,
		model:    opts.Model,
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

type answerMsg struct {
	answer api.Answer
	err    error
}

type chatModel struct {
	ctx      context.Context
	bot      Asker
	input    textarea.Model
	spinner  spinner.Model
	viewport viewport.Model
	style    string
	model    string

	transcript []string
	waiting    bool
	width      int
	height     int
}

func (m chatModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m chatModel) askCmd(question string) tea.Cmd {
	return func() tea.Msg {
		ans, err := m.bot.Ask(m.ctx, question, 0)
		return answerMsg{answer: ans, err: err}
	}
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(3, msg.Height-m.input.Height()-4)
		m.input.SetWidth(msg.Width - 2)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			if m.waiting {
				return m, nil
			}
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				return m, nil
			}
			m.appendLine(youStyle.Render("Du: ") + question)
			m.input.Reset()
			m.waiting = true
			return m, tea.Batch(m.spinner.Tick, m.askCmd(question))
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case answerMsg:
		m.waiting = false
		if msg.err != nil {
			m.appendLine(botStyle.Render("LovChat: ") + "feil: " + msg.err.Error())
			return m, nil
		}
		m.appendLine(botStyle.Render("LovChat:"))
		m.appendLine(m.renderAnswer(msg.answer))
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *chatModel) appendLine(s string) {
	m.transcript = append(m.transcript, s)
	m.viewport.SetContent(strings.Join(m.transcript, "\n"))
	m.viewport.GotoBottom()
}

func (m *chatModel) renderAnswer(a api.Answer) string {
	text := strings.TrimSpace(a.Text)
	wrap := m.width - 2
	if wrap < 20 {
		wrap = 78
	}
	if r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.style),
		glamour.WithWordWrap(wrap),
	); err == nil {
		if out, err := r.Render(text); err == nil {
			text = strings.TrimRight(out, "\n")
		}
	}
	if len(a.Contexts) > 0 {
		var kilder strings.Builder
		kilder.WriteString("Kilder: ")
		for i, c := range a.Contexts {
			if i > 0 {
				kilder.WriteString(", ")
			}
			label := c.Chunk.Title
			if label == "" {
				label = c.Chunk.RefID
			}
			kilder.WriteString(label)
		}
		text += "\n" + kilderStyle.Render(kilder.String())
	}
	return text
}

func (m chatModel) View() string {
	header := headerStyle.Render("LovChat")
	if m.model != "" {
		header += kilderStyle.Render(" (" + m.model + ")")
	}
	status := ""
	if m.waiting {
		status = fmt.Sprintf("%s henter svar …", m.spinner.View())
	}
	return header + "\n" + m.viewport.View() + "\n" + status + "\n" + m.input.View()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
