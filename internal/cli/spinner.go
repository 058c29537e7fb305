package cli

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"◜", "◝", "◞", "◟"}

const spinnerInterval = 100 * time.Millisecond

// spinner animates a status line on out until stopped or until its context
// is cancelled. Draw on stderr so piped stdout stays clean.
type spinner struct {
	out    io.Writer
	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	message string
	width   int // widest line drawn, for clearing
}

// startSpinner starts a spinner showing message.
func startSpinner(ctx context.Context, out io.Writer, message string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{
		out:     out,
		cancel:  cancel,
		done:    make(chan struct{}),
		message: message,
	}
	go s.run(ctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		s.draw(spinnerFrames[i%len(spinnerFrames)])
		select {
		case <-ctx.Done():
			s.clear()
			return
		case <-ticker.C:
		}
	}
}

func (s *spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := styleSpinner.Render(frame) + " " + styleDim.Render(s.message)
	s.width = max(s.width, lipgloss.Width(line))
	fmt.Fprintf(s.out, "\r%s", line)
}

func (s *spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%*s\r", s.width, "")
}

// update replaces the message shown from the next frame on.
func (s *spinner) update(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// stop halts the animation and clears the line. It is safe to call more
// than once.
func (s *spinner) stop() {
	s.cancel()
	<-s.done
}

// fail stops the spinner and leaves an error line in its place.
func (s *spinner) fail(message string) {
	s.stop()
	fmt.Fprintln(s.out, styleError.Render(iconError)+" "+message)
}
