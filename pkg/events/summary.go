package events

import (
	"fmt"
	"strings"
)

type Summary struct {
	// Steps lists the IDs of the steps that were announced, in order.
	Steps []string

	ErrorCount int

	Errors []Event

	Full []Event
}

func (s Summary) String() string {
	if s.ErrorCount == 0 {
		return fmt.Sprintf("%d steps, no errors", len(s.Steps))
	}

	lines := make([]string, len(s.Errors))
	for i, err := range s.Errors {
		if err.Error != nil {
			lines[i] = fmt.Sprintf("- %s (%s)", err.Message, err.Error.Error())
		} else {
			lines[i] = fmt.Sprintf("- %s", err.Message)
		}
	}

	return fmt.Sprintf("%d steps, errors (%d):\n%s", len(s.Steps), s.ErrorCount, strings.Join(lines, "\n"))
}
