package cmd

import (
	"fmt"

	"github.com/olimci/frontity-create/pkg/events"
)

type eventCounts struct {
	Message int
	Error   int
}

func countEvents(eventsList []events.Event) eventCounts {
	var counts eventCounts
	for _, event := range eventsList {
		switch event.Type {
		case events.Message:
			counts.Message++
		case events.Error:
			counts.Error++
		}
	}
	return counts
}

func formatEvent(event events.Event) string {
	if event.Step != "" {
		return fmt.Sprintf("[%s] %s: %s", event.Type, event.Step, event.Message)
	}
	return fmt.Sprintf("[%s] %s", event.Type, event.Message)
}

func formatSummary(summary *events.Summary) []string {
	if !hasSummaryEvents(summary) {
		return nil
	}

	counts := countEvents(summary.Full)

	lines := []string{
		fmt.Sprintf("summary: %d steps, %d errors", counts.Message, counts.Error),
	}

	if summary.ErrorCount > 0 {
		lines = append(lines, fmt.Sprintf("errors (%d):", summary.ErrorCount))
		for _, event := range summary.Errors {
			lines = append(lines, fmt.Sprintf("- %s", formatEvent(event)))
		}
	}

	return lines
}

func hasSummaryEvents(summary *events.Summary) bool {
	return summary != nil && len(summary.Full) > 0
}
