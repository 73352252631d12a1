package service

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Notifier delivers a message to a user. Fire-and-forget: implementations
// give no delivery guarantee and must not fail the calling workflow.
type Notifier interface {
	Send(userID, message string)
}

// ConsoleNotifier prints notifications to a writer (stdout by default).
type ConsoleNotifier struct {
	Out io.Writer
}

// NewConsoleNotifier returns a notifier writing to stdout.
func NewConsoleNotifier() *ConsoleNotifier {
	return &ConsoleNotifier{Out: os.Stdout}
}

// Send prints the notification. Empty ids or messages are logged and
// dropped, never an error.
func (n *ConsoleNotifier) Send(userID, message string) {
	if userID == "" {
		slog.Error("notification dropped: empty user id")
		return
	}
	if message == "" {
		slog.Error("notification dropped: empty message", "user_id", userID)
		return
	}
	fmt.Fprintf(n.Out, "[NOTIFICATION to User '%s']: %s\n", userID, message)
}
