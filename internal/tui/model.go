package tui

import (
	"fmt"
	"strings"

	"github.com/alraulpm-lang/checador/internal/lookup/model"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Controls is what the terminal needs from the scan pipeline.
type Controls struct {
	// Submit hands a typed or wedge-scanned code to the pipeline.
	Submit func(code string)
	// Back returns to the scan view.
	Back func()
}

type stateMsg model.ViewState

// Model renders the view controller state. It never decides which view is
// active; it only mirrors snapshots received from the subscription.
type Model struct {
	input    textinput.Model
	controls Controls
	updates  <-chan model.ViewState
	state    model.ViewState
	width    int
	quitting bool
}

func NewModel(controls Controls, initial model.ViewState, updates <-chan model.ViewState) Model {
	in := textinput.New()
	in.Placeholder = "scan or type a barcode"
	in.CharLimit = 64
	in.Focus()

	return Model{
		input:    in,
		controls: controls,
		updates:  updates,
		state:    initial,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForState(m.updates))
}

func waitForState(updates <-chan model.ViewState) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-updates
		if !ok {
			return nil
		}
		return stateMsg(s)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case stateMsg:
		m.state = model.ViewState(msg)
		return m, waitForState(m.updates)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEsc:
			if m.controls.Back != nil {
				back := m.controls.Back
				return m, func() tea.Msg { back(); return nil }
			}
			return m, nil
		case tea.KeyEnter:
			code := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if code == "" || m.controls.Submit == nil {
				return m, nil
			}
			submit := m.controls.Submit
			return m, func() tea.Msg { submit(code); return nil }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("checador · price lookup"))
	b.WriteString("\n")

	if m.state.Active == model.DetailsView && m.state.Display != nil {
		b.WriteString(panelStyle.Render(renderDetails(*m.state.Display)))
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")

	if fb := m.state.Feedback; fb.Message != "" {
		b.WriteString(feedbackStyle(fb.Severity).Render(fb.Message))
		b.WriteString("\n")
	}

	help := "enter: look up • ctrl+c: quit"
	if m.state.Active == model.DetailsView {
		help = "enter: look up another • esc: back to scanner • ctrl+c: quit"
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

func renderDetails(d model.DisplayState) string {
	lines := []string{
		labelStyle.Render(d.Name),
		priceStyle.Render(d.Price),
	}
	if d.Description != "" {
		lines = append(lines, d.Description)
	}
	lines = append(lines, fmt.Sprintf("%s %s", labelStyle.Render("Code:"), d.Code))
	if d.ImageURL != "" {
		lines = append(lines, fmt.Sprintf("%s %s", labelStyle.Render("Image:"), d.ImageURL))
	}
	return strings.Join(lines, "\n")
}
