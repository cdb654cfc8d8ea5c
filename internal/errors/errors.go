// Package errors prints command failures the same way for every habitone
// command. Details go to the log file; the terminal gets one line and, for
// errors the user can act on, a hint.
package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/habitone/internal/lock"
	"github.com/julianstephens/habitone/internal/logger"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Hint suggests how to recover from err, or returns "" when there is nothing
// useful to say
func Hint(err error) string {
	switch {
	case errors.Is(err, lock.ErrLocked):
		return "Close the running habitone TUI, or wait for the other command to finish, then retry."
	default:
		return ""
	}
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, Format(err))
		if hint := Hint(err); hint != "" {
			fmt.Fprintln(os.Stderr, hint)
		}
		os.Exit(1)
	}
}
