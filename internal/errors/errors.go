package errors

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/huddle/internal/logger"
)

// stderr is where user-facing messages go; tests swap it out.
var stderr io.Writer = os.Stderr

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Warn reports a non-fatal problem, such as a save that could not be
// persisted, without interrupting the command.
func Warn(msg string, err error) {
	if err == nil {
		return
	}
	logger.Warn(msg, "error", err)
	fmt.Fprintf(stderr, "Warning: %s: %v\n", msg, err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
