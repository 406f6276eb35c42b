package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/olimci/frontity-create/pkg/events"
)

type logOutputStyle int

const (
	logOutputPlain logOutputStyle = iota
	logOutputRich
)

type logPrinter struct {
	style logOutputStyle
	out   io.Writer
	mu    sync.Mutex

	typeStyles map[events.Type]lipgloss.Style
	stepStyle  lipgloss.Style
}

func newLogPrinter(style logOutputStyle, out io.Writer) *logPrinter {
	p := &logPrinter{
		style: style,
		out:   out,
	}

	if style != logOutputRich {
		return p
	}

	colorEnabled := false
	if f, ok := out.(*os.File); ok {
		colorEnabled = isTerminal(f)
	}
	if !colorEnabled {
		return p
	}

	p.typeStyles = map[events.Type]lipgloss.Style{
		events.Message: lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")), // blue
		events.Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")), // red
	}
	p.stepStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8")) // grey
	return p
}

func (p *logPrinter) Print(ev events.Event) {
	if ev.Type == events.Subscribe {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	line := formatLogPlain(ev)
	if p.style == logOutputRich && p.typeStyles != nil {
		if typeStyle, ok := p.typeStyles[ev.Type]; ok {
			line = formatLogRich(ev, typeStyle.Render(ev.Type.String()), p.stepStyle)
		}
	}

	fmt.Fprintln(p.out, line)
}

func formatLogPlain(ev events.Event) string {
	var b strings.Builder

	b.WriteString(ev.Type.String())
	if ev.Step != "" {
		b.WriteString(" [")
		b.WriteString(ev.Step)
		b.WriteString("]")
	}
	b.WriteString(": ")
	b.WriteString(ev.Message)

	return b.String()
}

func formatLogRich(ev events.Event, typeToken string, stepStyle lipgloss.Style) string {
	var b strings.Builder

	b.WriteString(typeToken)
	if ev.Step != "" {
		b.WriteString(" ")
		b.WriteString(stepStyle.Render("[" + ev.Step + "]"))
	}
	b.WriteString(": ")
	b.WriteString(ev.Message)

	return b.String()
}
