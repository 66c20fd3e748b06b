// Package output provides styled terminal output for kestrel.
//
// Progress lines (Success, Error, Info, Warn, Step) go to the output writer,
// stdout by default. Diagnostics go through Logger on stderr.
package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	mu          sync.Mutex
	out         io.Writer = os.Stdout
	verboseMode bool
)

// SetOutput redirects progress lines. Passing nil restores stdout.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stdout
	}
	out = w
}

// Writer returns the current progress writer.
func Writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return out
}

// SetVerbose enables or disables verbose output for debugging.
// This should be called by the CLI when the --verbose flag is set.
func SetVerbose(v bool) {
	mu.Lock()
	verboseMode = v
	mu.Unlock()
	SetupLogging(v)
}

// IsVerbose reports whether verbose output is enabled.
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verboseMode
}

// Success prints a success message with 🔥 emoji and green color.
// Use this for completed operations.
//
// Example:
//
//	output.Success("Created project: myapp")
func Success(msg string) {
	writeLine(successStyle.Render("🔥 " + msg))
}

// Error prints an error message with ❌ emoji and red color.
func Error(msg string) {
	writeLine(errorStyle.Render("❌ " + msg))
}

// Warn prints a warning for failures that do not stop the command,
// such as a package that could not be installed.
func Warn(msg string) {
	writeLine(warnStyle.Render("⚠️  " + msg))
}

// Info prints an informational message with ℹ️ emoji and cyan color.
//
// Example:
//
//	output.Info("Next steps:")
func Info(msg string) {
	writeLine(infoStyle.Render("ℹ️  " + msg))
}

// Step prints an indented step message in gray.
//
// Example:
//
//	output.Step("cd myapp")
//	output.Step("npm run dev")
func Step(msg string) {
	writeLine(stepStyle.Render("   " + msg))
}

// Verbose logs a debug message with optional key/value pairs.
// Nothing is printed unless verbose mode is enabled.
//
// Example:
//
//	output.Verbose("installing package", "name", "express")
func Verbose(msg string, keyvals ...any) {
	Debug(msg, keyvals...)
}

func writeLine(s string) {
	fmt.Fprintln(Writer(), s)
}
