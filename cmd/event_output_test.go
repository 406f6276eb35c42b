package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/olimci/frontity-create/pkg/create"
	"github.com/olimci/frontity-create/pkg/events"
	"github.com/stretchr/testify/require"
)

func TestFormatSummary(t *testing.T) {
	collector := events.NewCollector(nil)
	require.Nil(t, formatSummary(collector.Summary()))

	collector.Handle(events.Event{Type: events.Subscribe, Message: "subscribed after 0 events"})
	collector.Handle(events.Event{Type: events.Message, Step: "create:ensure-dir", Message: "Ensuring /tmp/proj directory."})
	collector.Handle(events.Event{Type: events.Message, Step: "create:readme", Message: "Creating README.md."})
	collector.Handle(events.Event{Type: events.Error, Message: "disk full", Error: errors.New("disk full")})

	lines := formatSummary(collector.Summary())
	require.Equal(t, []string{
		"summary: 2 steps, 1 errors",
		"errors (1):",
		"- [error] disk full",
	}, lines)
}

func TestLogPrinterPlain(t *testing.T) {
	var buf bytes.Buffer
	p := newLogPrinter(logOutputRich, &buf)

	p.Print(events.Event{Type: events.Subscribe, Message: "ignored"})
	p.Print(events.Event{Type: events.Message, Step: "create:readme", Message: "Creating README.md."})
	p.Print(events.Event{Type: events.Error, Message: "boom"})

	require.Equal(t, "message [create:readme]: Creating README.md.\nerror: boom\n", buf.String())
}

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name string
		opts create.Options
		want string
	}{
		{name: "from name", opts: create.Options{Name: "my-app"}, want: "my-app"},
		{name: "scoped name", opts: create.Options{Name: "@acme/blog"}, want: "blog"},
		{name: "explicit path", opts: create.Options{Name: "my-app", Path: "sites/app"}, want: "sites/app"},
		{name: "no name", opts: create.Options{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &createInput{opts: tt.opts}
			in.resolvePath()
			require.Equal(t, tt.want, in.opts.Path)
		})
	}
}
