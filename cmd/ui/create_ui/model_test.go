package create_ui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olimci/frontity-create/pkg/events"
	"github.com/stretchr/testify/require"
)

func TestModelTracksSteps(t *testing.T) {
	m := NewModel("Creating my-app", nil)

	first := events.NewCompletion()
	cmd := m.handleEvent(events.Event{Type: events.Message, Step: "create:ensure-dir", Message: "Ensuring /tmp/proj directory.", Completion: first})
	require.NotNil(t, cmd)

	first.Resolve(nil)
	m.Update(cmd())
	require.Equal(t, statusDone, m.lines[0].status)

	second := events.NewCompletion()
	cmd = m.handleEvent(events.Event{Type: events.Message, Step: "create:readme", Message: "Creating README.md.", Completion: second})
	stepErr := errors.New("disk full")
	second.Resolve(stepErr)
	m.Update(cmd())
	require.Equal(t, statusFailed, m.lines[1].status)
	require.ErrorIs(t, m.lines[1].err, stepErr)

	_, quit := m.Update(finishedMsg{err: stepErr})
	require.NotNil(t, quit)
	require.True(t, m.finished)
	require.ErrorIs(t, m.Err(), stepErr)
	require.Contains(t, m.View(), "Creating README.md.")
}

func TestModelCtrlCCancelsOnce(t *testing.T) {
	calls := 0
	m := NewModel("Creating my-app", func() { calls++ })

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.Equal(t, 1, calls)
	require.True(t, m.interrupted)
	require.Contains(t, m.View(), "rolling back")
}

func TestModelMarksRunningStepFailedOnFinish(t *testing.T) {
	m := NewModel("Creating my-app", nil)
	m.handleEvent(events.Event{Type: events.Message, Message: "Installing dependencies."})

	m.Update(finishedMsg{err: errors.New("interrupted")})
	require.Equal(t, statusFailed, m.lines[0].status)
}

func TestResult(t *testing.T) {
	boom := errors.New("boom")
	rolledBack := fmt.Errorf("interrupted after 6 of 8 steps: %w", context.Canceled)

	tests := []struct {
		name       string
		viewErr    error
		taskErr    error
		wantNil    bool
		wantIs     []error
		wantCancel bool
	}{
		{name: "success", wantNil: true},
		{name: "task error", taskErr: boom, wantIs: []error{boom}},
		{name: "sigint while running", viewErr: tea.ErrInterrupted, taskErr: rolledBack, wantCancel: true},
		{name: "sigint after success", viewErr: tea.ErrInterrupted, wantCancel: true},
		{name: "sigint with failed task", viewErr: tea.ErrInterrupted, taskErr: boom, wantIs: []error{boom}, wantCancel: true},
		{name: "view failure", viewErr: tea.ErrProgramKilled, taskErr: boom, wantIs: []error{boom, tea.ErrProgramKilled}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := result(tt.viewErr, tt.taskErr)
			if tt.wantNil {
				require.NoError(t, err)
				return
			}
			for _, target := range tt.wantIs {
				require.ErrorIs(t, err, target)
			}
			require.Equal(t, tt.wantCancel, errors.Is(err, context.Canceled))
		})
	}
}
