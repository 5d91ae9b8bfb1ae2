// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// spinnerFrames are the classic braille dots. Purely cosmetic: the
// spinner goroutine only repaints the current step line and never
// influences execution.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 120 * time.Millisecond

// consoleReporter renders install progress as styled lines. When stdout
// is a terminal the in-flight step gets an animated spinner; otherwise
// output stays strictly line-oriented so logs pipe cleanly.
type consoleReporter struct {
	out   io.Writer
	isTTY bool

	mu   sync.Mutex
	stop chan struct{}
	done sync.WaitGroup
}

func newConsoleReporter() *consoleReporter {
	return &consoleReporter{
		out:   os.Stdout,
		isTTY: term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// PhaseStart implements phase.Reporter.
func (r *consoleReporter) PhaseStart(index, total int, label string, percent int) {
	fmt.Fprintf(r.out, "\n%s %s\n",
		phaseStyle.Render(fmt.Sprintf("[%d/%d]", index, total)),
		phaseStyle.Render(label)+SubtitleStyle.Render(fmt.Sprintf("  (%d%%)", percent)))
}

// StepStart implements phase.Reporter.
func (r *consoleReporter) StepStart(desc string) {
	if !r.isTTY {
		fmt.Fprintf(r.out, "  %s %s\n", stepStyle.Render("·"), desc)
		return
	}
	r.mu.Lock()
	stop := make(chan struct{})
	r.stop = stop
	r.mu.Unlock()

	r.done.Add(1)
	go r.spin(desc, stop)
}

// spin repaints the current step line until stopped.
func (r *consoleReporter) spin(desc string, stop <-chan struct{}) {
	defer r.done.Done()
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	frame := 0
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			fmt.Fprintf(r.out, "\r  %s %s", CmdStyle.Render(spinnerFrames[frame%len(spinnerFrames)]), desc)
			frame++
		}
	}
}

// StepDone implements phase.Reporter.
func (r *consoleReporter) StepDone(desc string, err error, bestEffort bool) {
	if r.isTTY {
		r.mu.Lock()
		if r.stop != nil {
			close(r.stop)
			r.stop = nil
		}
		r.mu.Unlock()
		r.done.Wait()
		fmt.Fprint(r.out, "\r\033[K")
	}

	switch {
	case err == nil:
		fmt.Fprintf(r.out, "  %s %s\n", SuccessStyle.Render("✓"), desc)
	case bestEffort:
		fmt.Fprintf(r.out, "  %s %s %s\n", WarningStyle.Render("!"), desc,
			SubtitleStyle.Render("(optional, skipped: "+err.Error()+")"))
	default:
		fmt.Fprintf(r.out, "  %s %s\n", ErrorStyle.Render("✗"), desc)
	}
}

// Done implements phase.Reporter.
func (r *consoleReporter) Done(err error) {
	if err == nil {
		fmt.Fprintf(r.out, "\n%s\n", SuccessStyle.Render("Provisioning complete."))
	}
}
