// Package tui implements the interactive chat driving adapter.
// The model keeps a running transcript in a viewport; questions are
// answered asynchronously so the interface stays responsive.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/clause-labs/retriva-cli/internal/core/ports/driving"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	youStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	aiStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	chatStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// answerMsg carries the result of an asynchronous answer call.
type answerMsg struct {
	question string
	text     string
	err      error
}

// turn is one rendered exchange in the transcript.
type turn struct {
	question string
	answer   string
	failed   bool
}

// Model is the Bubble Tea model for the chat session.
type Model struct {
	ctx       context.Context
	answerer  driving.AnswerService
	namespace string

	input    textinput.Model
	viewport viewport.Model
	turns    []turn
	status   string
	waiting  bool
	ready    bool
}

// New creates a chat model bound to a namespace.
func New(ctx context.Context, answerer driving.AnswerService, namespace string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question and press Enter"
	ti.Focus()
	ti.CharLimit = 0

	return Model{
		ctx:       ctx,
		answerer:  answerer,
		namespace: namespace,
		input:     ti,
		viewport:  viewport.New(0, 0),
		status:    "Ready. Esc or Ctrl+C to quit.",
	}
}

// Init starts the text input cursor blink.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window, and answer events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ch := chatStyle.GetFrameSize()
		_, ih := inputStyle.GetFrameSize()
		reserved := 2 + ih + 1 // header, input frame, status
		height := msg.Height - reserved - ch
		if height < 3 {
			height = 3
		}
		m.viewport.Width = max(20, msg.Width-chatStyle.GetHorizontalFrameSize())
		m.viewport.Height = height
		m.input.Width = max(20, msg.Width-inputStyle.GetHorizontalFrameSize()-len(m.input.Prompt))
		m.viewport.SetContent(m.transcript())
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			question := strings.TrimSpace(m.input.Value())
			if question == "" || m.waiting {
				return m, nil
			}
			m.input.Reset()
			m.waiting = true
			m.status = "Thinking..."
			return m, m.ask(question)
		case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case answerMsg:
		m.waiting = false
		if msg.err != nil {
			m.turns = append(m.turns, turn{question: msg.question, answer: msg.err.Error(), failed: true})
			m.status = "Answer failed. Try again."
		} else {
			m.turns = append(m.turns, turn{question: msg.question, answer: msg.text})
			m.status = "Ready. Esc or Ctrl+C to quit."
		}
		m.viewport.SetContent(m.transcript())
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the transcript, input box, and status line.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := headerStyle.Render(fmt.Sprintf("Retriva chat (namespace %q)", m.namespace))
	chat := chatStyle.Render(m.viewport.View())
	input := inputStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + chat + "\n" + input + "\n" + status
}

// ask answers the question off the update loop.
func (m Model) ask(question string) tea.Cmd {
	ctx := m.ctx
	answerer := m.answerer
	namespace := m.namespace
	return func() tea.Msg {
		answer, err := answerer.Answer(ctx, question, namespace, driving.AnswerOptions{})
		if err != nil {
			return answerMsg{question: question, err: err}
		}
		return answerMsg{question: question, text: answer.Text}
	}
}

// transcript renders all completed turns.
func (m Model) transcript() string {
	if len(m.turns) == 0 {
		return "Ask a question about the ingested documents."
	}

	var sb strings.Builder
	for i, t := range m.turns {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(youStyle.Render("You: "))
		sb.WriteString(t.question)
		sb.WriteString("\n")
		if t.failed {
			sb.WriteString(errorStyle.Render("Error: " + t.answer))
		} else {
			sb.WriteString(aiStyle.Render("AI: "))
			sb.WriteString(t.answer)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
