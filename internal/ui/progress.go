package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// StepStatus represents the status of a step
type StepStatus int

const (
	StatusPending StepStatus = iota
	StatusRunning
	StatusComplete
	StatusFailed
	StatusSkipped
)

// Step represents a single step in the progress
type Step struct {
	Name    string
	Status  StepStatus
	Message string
}

// ProgressModel is the Bubble Tea model behind ProgressTracker.
type ProgressModel struct {
	spinner  spinner.Model
	title    string
	steps    []Step
	done     bool
	err      error
	quitting bool
}

// NewProgressModel creates a model with every step pending.
func NewProgressModel(title string, steps []string) ProgressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorSecondary)

	m := ProgressModel{spinner: s, title: title, steps: make([]Step, len(steps))}
	for i, name := range steps {
		m.steps[i] = Step{Name: name}
	}
	return m
}

func (m ProgressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// ProgressMsg is sent to update one step.
type ProgressMsg struct {
	StepIndex int
	Status    StepStatus
	Message   string
}

// DoneMsg signals that the operation is complete
type DoneMsg struct {
	Err error
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ProgressMsg:
		if msg.StepIndex >= 0 && msg.StepIndex < len(m.steps) {
			m.steps[msg.StepIndex].Status = msg.Status
			m.steps[msg.StepIndex].Message = msg.Message
		}
		return m, nil

	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m ProgressModel) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}
	return tea.NewView(m.render())
}

func (m ProgressModel) render() string {
	var b strings.Builder
	if m.title != "" {
		b.WriteString(Title.Render(m.title))
		b.WriteString("\n")
	}

	for i, step := range m.steps {
		var icon string
		var style styleWrapper
		switch step.Status {
		case StatusPending:
			icon, style = Muted.Render("○"), StepPending
		case StatusRunning:
			icon, style = m.spinner.View(), StepRunning
		case StatusComplete:
			icon, style = GetCheckMark(), StepComplete
		case StatusFailed:
			icon, style = GetCrossMark(), StepFailed
		case StatusSkipped:
			icon, style = Warning.Render("⊘"), StepSkipped
		}
		fmt.Fprintf(&b, "%s %s", icon, style.Render(step.Name))
		if step.Message != "" && step.Status != StatusPending {
			b.WriteString(Dim.Render(" → " + step.Message))
		}
		if i < len(m.steps)-1 {
			b.WriteString("\n")
		}
	}

	if m.done && m.err != nil {
		b.WriteString("\n")
		b.WriteString(ErrorBox.Render(GetCrossMark() + " " + m.err.Error()))
	}
	return b.String()
}

// ProgressTracker drives a ProgressModel from plain method calls. A nil
// *ProgressTracker ignores every call, so callers can skip the display in
// quiet mode without branching.
type ProgressTracker struct {
	out     io.Writer
	title   string
	steps   []string
	program *tea.Program
	exited  chan struct{}
	mu      sync.Mutex
	running bool
}

// NewProgressTracker creates a tracker rendering to w.
func NewProgressTracker(w io.Writer, title string, steps []string) *ProgressTracker {
	return &ProgressTracker{out: w, title: title, steps: steps}
}

// Start begins the progress display
func (pt *ProgressTracker) Start() {
	if pt == nil {
		return
	}
	pt.mu.Lock()
	defer pt.mu.Unlock()
	if pt.running {
		return
	}

	pt.program = tea.NewProgram(NewProgressModel(pt.title, pt.steps),
		tea.WithOutput(pt.out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	pt.exited = make(chan struct{})
	pt.running = true
	go func() {
		defer close(pt.exited)
		_, _ = pt.program.Run()
	}()
}

// UpdateStep updates a specific step's status
func (pt *ProgressTracker) UpdateStep(index int, status StepStatus, message string) {
	if pt == nil {
		return
	}
	pt.mu.Lock()
	defer pt.mu.Unlock()
	if !pt.running {
		return
	}
	pt.program.Send(ProgressMsg{StepIndex: index, Status: status, Message: message})
}

// Complete renders the final state and waits for the display to exit.
func (pt *ProgressTracker) Complete(err error) {
	if pt == nil {
		return
	}
	pt.mu.Lock()
	if !pt.running {
		pt.mu.Unlock()
		return
	}
	pt.running = false
	pt.program.Send(DoneMsg{Err: err})
	exited := pt.exited
	pt.mu.Unlock()
	<-exited
}

// Stop stops the progress display without marking complete
func (pt *ProgressTracker) Stop() {
	if pt == nil {
		return
	}
	pt.mu.Lock()
	if !pt.running {
		pt.mu.Unlock()
		return
	}
	pt.running = false
	pt.program.Quit()
	exited := pt.exited
	pt.mu.Unlock()
	<-exited
}
