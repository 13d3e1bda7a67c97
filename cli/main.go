package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	waiterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0a84ff"))

	guestStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#30d158"))

	actionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff9f0a")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)

	faintStyle = lipgloss.NewStyle().Faint(true)
)

// Model defines the application state
type Model struct {
	textInput         textinput.Model
	spinner           spinner.Model
	client            *ApiClient
	transcript        []string
	history           []ChatMessage
	pending           *PendingAction
	pendingConfidence float64
	loading           bool
	error             string
}

// Initialize the model
func initialModel() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ti := textinput.New()
	ti.Placeholder = "Say something to your waiter..."
	ti.Focus()
	ti.CharLimit = 280
	ti.Width = 60

	sessionID := fmt.Sprintf("cli-%d", time.Now().UnixNano())
	client := NewApiClient(sessionID)

	transcript := []string{
		waiterStyle.Render("Waiter: ") + "Welcome! What can I get you today?",
	}

	return Model{
		textInput:  ti,
		spinner:    s,
		client:     client,
		transcript: transcript,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, textinput.Blink)
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "y":
			if m.pending != nil && !m.textInput.Focused() {
				return m.resolvePending("confirmed")
			}
		case "n":
			if m.pending != nil && !m.textInput.Focused() {
				return m.resolvePending("declined")
			}
		case "enter":
			if m.loading {
				return m, nil
			}
			text := strings.TrimSpace(m.textInput.Value())
			if text == "" {
				return m, nil
			}
			m.transcript = append(m.transcript, guestStyle.Render("You: ")+text)
			m.history = append(m.history, ChatMessage{Role: "user", Content: text})
			m.textInput.SetValue("")
			m.loading = true
			m.error = ""
			return m, submitTurn(m.client, text, m.history)
		}
	case turnMsg:
		m.loading = false
		m.applyTurn(msg.resp)
		return m, nil
	case outcomeMsg:
		m.transcript = append(m.transcript, faintStyle.Render(msg.note))
		m.pending = nil
		m.textInput.Focus()
		return m, nil
	case errorMsg:
		m.loading = false
		m.error = msg.err
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// applyTurn folds one engine response into the transcript
func (m *Model) applyTurn(resp *TurnResponse) {
	if resp.Action != nil {
		m.transcript = append(m.transcript, waiterStyle.Render("Waiter: ")+resp.Action.ConfirmationMessage)
		m.history = append(m.history, ChatMessage{Role: "assistant", Content: resp.Action.ConfirmationMessage})
		verdict := fmt.Sprintf("[%s  confidence %.2f  %s]",
			resp.Intent, resp.Metrics.AdjustedConfidence, resp.Metrics.RecommendedAction)
		m.transcript = append(m.transcript, faintStyle.Render(verdict))

		if resp.Action.RequiresConfirmation {
			m.pending = resp.Action
			m.pendingConfidence = resp.Metrics.AdjustedConfidence
			m.textInput.Blur()
		}
		return
	}

	reply := resp.Reply
	if reply == "" {
		reply = "Of course. Anything else I can help you with?"
	}
	m.transcript = append(m.transcript, waiterStyle.Render("Waiter: ")+reply)
	m.history = append(m.history, ChatMessage{Role: "assistant", Content: reply})
}

// resolvePending reports the confirmation decision to the server
func (m Model) resolvePending(resolution string) (tea.Model, tea.Cmd) {
	action := m.pending
	confidence := m.pendingConfidence
	return m, func() tea.Msg {
		if err := m.client.ReportOutcome(action, confidence, resolution); err != nil {
			return errorMsg{err: fmt.Sprintf("Error reporting outcome: %v", err)}
		}
		note := fmt.Sprintf("[action %s %s]", action.Type, resolution)
		return outcomeMsg{note: note}
	}
}

// View renders the UI
func (m Model) View() string {
	view := titleStyle.Render("Maitred Chat") + "\n\n"
	view += strings.Join(m.transcript, "\n") + "\n\n"

	if m.pending != nil {
		view += actionStyle.Render("Confirm this action? (y/n)") + "\n\n"
	} else if m.loading {
		view += m.spinner.View() + " thinking...\n\n"
	} else {
		view += m.textInput.View() + "\n\n"
	}

	if m.error != "" {
		view += errorStyle.Render(m.error) + "\n"
	}
	view += faintStyle.Render("esc to quit")

	return docStyle.Render(view)
}

// Custom message types for the tea.Model
type turnMsg struct {
	resp *TurnResponse
}

type outcomeMsg struct {
	note string
}

type errorMsg struct {
	err string
}

// submitTurn runs one chat message through the API
func submitTurn(client *ApiClient, text string, history []ChatMessage) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.SubmitTurn(text, history)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error submitting turn: %v", err)}
		}
		return turnMsg{resp: resp}
	}
}

func main() {
	client := NewApiClient("healthcheck")
	if ok, err := client.CheckHealth(); !ok {
		fmt.Printf("Warning: API server at %s is not available: %v\n", client.BaseURL, err)
	}

	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v", err)
		os.Exit(1)
	}
}
