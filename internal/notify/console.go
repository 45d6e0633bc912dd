package notify

import (
	"fmt"
	"io"
)

// Console writes reminders to a writer, normally stdout.
type Console struct {
	Out io.Writer
}

// NewConsole creates a console notifier.
func NewConsole(out io.Writer) *Console {
	return &Console{Out: out}
}

// SendReminder prints the reminder.
func (c *Console) SendReminder(dueCount int, hoursSinceLast float64) error {
	if dueCount > 0 {
		fmt.Fprintf(c.Out, "Reminder: %d words are due for review (last session %.0f hours ago)\n",
			dueCount, hoursSinceLast)
	} else {
		fmt.Fprintf(c.Out, "Reminder: it has been %.0f hours since your last session\n", hoursSinceLast)
	}
	return nil
}
