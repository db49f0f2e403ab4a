package console

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

type workDoneMsg struct{}

type loaderModel struct {
	label   string
	work    func()
	spinner spinner.Model
	done    bool
}

func newLoaderModel(label string, work func()) loaderModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle
	return loaderModel{label: label, work: work, spinner: s}
}

func (m loaderModel) Init() tea.Cmd {
	return tea.Batch(m.doWork(), m.spinner.Tick)
}

func (m loaderModel) doWork() tea.Cmd {
	work := m.work
	return func() tea.Msg {
		work()
		return workDoneMsg{}
	}
}

func (m loaderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workDoneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m loaderModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s\n", m.spinner.View(), labelStyle.Render(m.label))
}

// RunWithSpinner shows an inline spinner on out while work runs and clears
// it when work returns. Keys are not read, so ctrl+c reaches the process
// signal handler and cancels work through its context.
//
// work has run exactly once when RunWithSpinner returns, even if the program
// was interrupted or failed to start.
func RunWithSpinner(label string, out io.Writer, work func()) error {
	var once sync.Once
	runWork := func() { once.Do(work) }

	p := tea.NewProgram(newLoaderModel(label, runWork), tea.WithOutput(out), tea.WithInput(nil))
	_, err := p.Run()

	// On interrupt the program returns without waiting for its commands;
	// Do blocks until a running work call finishes.
	runWork()
	if err != nil {
		return fmt.Errorf("run spinner: %w", err)
	}
	return nil
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
