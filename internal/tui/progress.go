package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

// BatchMsg reports one written batch to the progress model.
type BatchMsg pgcsv.BatchReport

// DoneMsg ends the progress display.
type DoneMsg struct {
	Err error
}

// ProgressModel is the bubbletea model of the live progress line.
type ProgressModel struct {
	spinner     spinner.Model
	keys        KeyMap
	table       string
	batches     int
	rows        int64
	replaced    bool
	interrupted bool
	done        bool
	err         error
	onInterrupt func()
}

// NewProgressModel returns a model for loading table. onInterrupt, if set,
// is called once when the user presses the interrupt key.
func NewProgressModel(table string, onInterrupt func()) ProgressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return ProgressModel{
		spinner:     s,
		keys:        DefaultKeyMap(),
		table:       table,
		onInterrupt: onInterrupt,
	}
}

// Init implements tea.Model.
func (m ProgressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Interrupt) && !m.interrupted {
			m.interrupted = true
			if m.onInterrupt != nil {
				m.onInterrupt()
			}
		}
		return m, nil
	case BatchMsg:
		m.batches++
		m.rows = msg.Total
		m.replaced = m.replaced || msg.Replaced
		return m, nil
	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m ProgressModel) View() string {
	if m.done {
		if m.err != nil {
			return ErrorStyle.Render(fmt.Sprintf("%s Import into %s failed after %d rows", SymbolCross, m.table, m.rows)) + "\n"
		}
		return SuccessStyle.Render(fmt.Sprintf("%s Loaded %d rows into %s", SymbolCheck, m.rows, m.table)) + "\n"
	}

	var b strings.Builder
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	switch {
	case m.batches == 0:
		b.WriteString(MessageStyle.Render(fmt.Sprintf("Connecting and reading first batch for %s...", m.table)))
	default:
		b.WriteString(MessageStyle.Render(fmt.Sprintf("Loading %s: %d batches, %d rows", m.table, m.batches, m.rows)))
	}
	if m.interrupted {
		b.WriteString(WarningStyle.Render(" (cancelling)"))
	}
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(m.keys.HelpText()))
	b.WriteString("\n")
	return b.String()
}

// Rows returns the running row total.
func (m ProgressModel) Rows() int64 { return m.rows }

// Done reports whether the display has finished.
func (m ProgressModel) Done() bool { return m.done }
