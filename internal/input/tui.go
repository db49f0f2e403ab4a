package input

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	tuiTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(1, 0, 1, 0)

	tuiHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 0, 0, 0)
)

var tuiTitles = [2]string{firstPrompt, secondPrompt}

type descriptionsModel struct {
	area     textarea.Model
	step     int // index of the description being edited
	values   [2]string
	canceled bool
}

func newDescriptionsModel() descriptionsModel {
	ta := textarea.New()
	ta.Placeholder = "Descripción..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(80)
	ta.SetHeight(6)
	// Plain enter submits; newlines need alt+enter or ctrl+j.
	ta.KeyMap.InsertNewline.SetKeys("alt+enter", "ctrl+j")
	ta.Focus()
	return descriptionsModel{area: ta}
}

func (m descriptionsModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m descriptionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.canceled = true
			return m, tea.Quit
		case "enter":
			m.values[m.step] = m.area.Value()
			m.step++
			if m.step == len(m.values) {
				return m, tea.Quit
			}
			m.area.Reset()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	return m, cmd
}

func (m descriptionsModel) View() string {
	if m.canceled || m.step >= len(m.values) {
		return ""
	}
	return fmt.Sprintf("%s\n%s\n%s\n",
		tuiTitleStyle.Render(tuiTitles[m.step]),
		m.area.View(),
		tuiHintStyle.Render("enter confirmar  alt+enter nueva línea  esc cancelar"),
	)
}

// TUISource collects both descriptions in a full-screen textarea, which
// allows multi-line descriptions.
type TUISource struct {
	In  io.Reader // nil means the process stdin
	Out io.Writer // nil means the process stdout
}

// Descriptions runs the textarea program until both descriptions are
// confirmed. Returns ErrCanceled if the user quits first.
func (s TUISource) Descriptions(ctx context.Context) (string, string, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if s.In != nil {
		opts = append(opts, tea.WithInput(s.In))
	}
	if s.Out != nil {
		opts = append(opts, tea.WithOutput(s.Out))
	}

	result, err := tea.NewProgram(newDescriptionsModel(), opts...).Run()
	if err != nil {
		return "", "", fmt.Errorf("run input tui: %w", err)
	}
	final := result.(descriptionsModel)
	if final.canceled {
		return "", "", ErrCanceled
	}
	return final.values[0], final.values[1], nil
}
