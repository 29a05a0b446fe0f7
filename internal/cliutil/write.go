// Package cliutil provides output helpers shared by the apiverify commands.
package cliutil

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Writef writes formatted output to the writer.
// Write failures are reported on stderr so a closed pipe never aborts a command.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// Heading writes title followed by an underline of the same width.
func Heading(w io.Writer, title string) {
	Writef(w, "%s\n%s\n", title, strings.Repeat("=", len([]rune(title))))
}

// Pluralize returns "<n> <noun>" with an "s" appended when n != 1.
func Pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
