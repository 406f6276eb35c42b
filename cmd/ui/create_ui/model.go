package create_ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/olimci/frontity-create/pkg/events"
	"github.com/olimci/frontity-create/pkg/steps"
)

type status int

const (
	statusRunning status = iota
	statusDone
	statusFailed
)

type line struct {
	label  string
	status status
	err    error
}

type eventMsg struct {
	event events.Event
}

type stepDoneMsg struct {
	index int
	err   error
}

type finishedMsg struct {
	err error
}

type Model struct {
	title   string
	spinner spinner.Model
	lines   []line
	cancel  context.CancelFunc

	interrupted bool
	finished    bool
	err         error
}

// Run renders the progress of task until it finishes and returns its result.
// ctrl+c calls cancel; the view stays up while the task rolls back.
func Run(task *steps.Task, title string, cancel context.CancelFunc, out io.Writer) error {
	program := tea.NewProgram(NewModel(title, cancel), tea.WithOutput(out))

	go func() {
		// subscribing replays the backlog through Send, which needs the
		// program loop to be running
		unsubscribe := task.Subscribe(events.NewHandlerFunc(func(ev events.Event) {
			program.Send(eventMsg{event: ev})
		}))
		<-task.Done()
		unsubscribe()
		program.Send(finishedMsg{err: task.Err()})
	}()

	_, viewErr := program.Run()
	if viewErr != nil {
		cancel()
	}
	return result(viewErr, task.Wait())
}

// result combines the outcome of the view with the task's. A SIGINT that
// reached the view surfaces as context.Canceled.
func result(viewErr, taskErr error) error {
	switch {
	case viewErr == nil, errors.Is(taskErr, context.Canceled):
		return taskErr
	case errors.Is(viewErr, tea.ErrInterrupted):
		return errors.Join(taskErr, fmt.Errorf("progress view interrupted: %w", context.Canceled))
	default:
		return errors.Join(taskErr, fmt.Errorf("running progress view: %w", viewErr))
	}
}

func NewModel(title string, cancel context.CancelFunc) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = initStyles().pending

	if cancel == nil {
		cancel = func() {}
	}

	return &Model{
		title:   title,
		spinner: sp,
		cancel:  cancel,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC && !m.interrupted {
			m.interrupted = true
			m.cancel()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case eventMsg:
		return m, m.handleEvent(msg.event)

	case stepDoneMsg:
		if msg.index < len(m.lines) {
			if msg.err != nil {
				m.lines[msg.index].status = statusFailed
				m.lines[msg.index].err = msg.err
			} else {
				m.lines[msg.index].status = statusDone
			}
		}
		return m, nil

	case finishedMsg:
		m.finished = true
		m.err = msg.err
		for i := range m.lines {
			if m.lines[i].status == statusRunning {
				m.lines[i].status = statusFailed
			}
		}
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) handleEvent(ev events.Event) tea.Cmd {
	switch ev.Type {
	case events.Message:
		m.lines = append(m.lines, line{label: ev.Message})
		if ev.Completion != nil {
			return waitCompletion(len(m.lines)-1, ev.Completion)
		}
	case events.Error:
		m.err = ev.Error
	}
	return nil
}

func waitCompletion(index int, c *events.Completion) tea.Cmd {
	return func() tea.Msg {
		<-c.Done()
		return stepDoneMsg{index: index, err: c.Err()}
	}
}

func (m *Model) View() string {
	styles := initStyles()

	var b strings.Builder
	b.WriteString(styles.title.Render(m.title))
	b.WriteString("\n\n")

	for _, l := range m.lines {
		switch l.status {
		case statusRunning:
			b.WriteString(m.spinner.View())
		case statusDone:
			b.WriteString(styles.done.Render("✓"))
		case statusFailed:
			b.WriteString(styles.failed.Render("✗"))
		}
		b.WriteString(" ")
		b.WriteString(styles.label.Render(l.label))
		b.WriteString("\n")
	}

	switch {
	case m.interrupted && !m.finished:
		b.WriteString("\n")
		b.WriteString(styles.muted.Render("Interrupted, rolling back..."))
		b.WriteString("\n")
	case !m.finished:
		b.WriteString("\n")
		b.WriteString(styles.muted.Render("ctrl+c to cancel"))
		b.WriteString("\n")
	}

	return b.String()
}

// Err returns the error the task finished with.
func (m *Model) Err() error {
	return m.err
}
