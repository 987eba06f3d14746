package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Braille scan frames.
var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

const spinnerInterval = 80 * time.Millisecond

// Spinner animates a one-line "working" indicator on a terminal while a
// slow load runs. Stop erases it, so nothing is left behind in the report.
type Spinner struct {
	mu        sync.Mutex
	label     string
	out       io.Writer
	frame     int
	stopChan  chan struct{}
	doneChan  chan struct{}
	running   bool
	lastWidth int
}

// NewSpinner creates a spinner that draws to out.
func NewSpinner(out io.Writer, label string) *Spinner {
	return &Spinner{label: label, out: out}
}

// Start begins the animation. Starting a running spinner does nothing.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stopChan = make(chan struct{})
	s.doneChan = make(chan struct{})
	s.mu.Unlock()

	s.render()
	go s.animate()
}

// Stop halts the animation and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopChan)
	s.mu.Unlock()

	<-s.doneChan

	s.mu.Lock()
	defer s.mu.Unlock()
	s.clear()
}

// Running reports whether the spinner is animating.
func (s *Spinner) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Spinner) animate() {
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()
	defer close(s.doneChan)

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.frame = (s.frame + 1) % len(spinnerFrames)
			s.mu.Unlock()
			s.render()
		}
	}
}

func (s *Spinner) render() {
	s.mu.Lock()
	defer s.mu.Unlock()

	symbol := lipgloss.NewStyle().Foreground(ColorSecondary).Render(spinnerFrames[s.frame])
	line := fmt.Sprintf("%s %s...", symbol, s.label)

	s.clear()
	fmt.Fprint(s.out, line)
	s.lastWidth = lipgloss.Width(line)
}

// clear blanks the last drawn line. Callers hold mu.
func (s *Spinner) clear() {
	if s.lastWidth == 0 {
		return
	}
	fmt.Fprint(s.out, "\r"+strings.Repeat(" ", s.lastWidth)+"\r")
	s.lastWidth = 0
}
