package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

// ProgressDisplay runs a ProgressModel in its own goroutine. It only renders;
// the import itself stays on the caller's goroutine.
type ProgressDisplay struct {
	program *tea.Program
	done    chan struct{}
}

// NewProgressDisplay creates a display writing to out.
func NewProgressDisplay(table string, out io.Writer, onInterrupt func()) *ProgressDisplay {
	return &ProgressDisplay{
		program: tea.NewProgram(NewProgressModel(table, onInterrupt),
			tea.WithOutput(out),
			tea.WithoutSignalHandler(),
		),
		done: make(chan struct{}),
	}
}

// Start begins rendering.
func (p *ProgressDisplay) Start() {
	go func() {
		defer close(p.done)
		_, _ = p.program.Run()
	}()
}

// Report forwards a batch report; it matches pgcsv.ProgressFunc.
func (p *ProgressDisplay) Report(r pgcsv.BatchReport) {
	p.program.Send(BatchMsg(r))
}

// Finish renders the final line and waits for the display to exit.
func (p *ProgressDisplay) Finish(err error) {
	p.program.Send(DoneMsg{Err: err})
	<-p.done
}
