package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type exchangeDoneMsg struct{}

type exchangeSpinnerModel struct {
	spinner spinner.Model
	label   string
	done    bool
}

func newExchangeSpinnerModel(label string) exchangeSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return exchangeSpinnerModel{
		spinner: s,
		label:   label,
	}
}

func (m exchangeSpinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m exchangeSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case exchangeDoneMsg:
		m.done = true
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m exchangeSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

// runSpinner animates label on output until run returns. run always finishes
// before runSpinner does, also when the program is interrupted.
func runSpinner(ctx context.Context, output io.Writer, label string, run func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(
		newExchangeSpinnerModel(label),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	done := make(chan error, 1)
	go func() {
		err := run(ctx)
		done <- err
		p.Send(exchangeDoneMsg{})
	}()

	_, programErr := p.Run()
	cancel()
	if err := <-done; err != nil {
		return err
	}
	if programErr != nil {
		return fmt.Errorf("spinner: %w", programErr)
	}

	return nil
}
