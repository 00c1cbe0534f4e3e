package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/opal-lang/idfilter/pkgs/errors"
)

// CLIError represents a formatted CLI error with context
type CLIError struct {
	Type    string // "usage"
	Message string
	Details string // Additional context
	Hint    string // How to fix it
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Details != "" {
		b.WriteString("\n")
		b.WriteString(e.Details)
	}
	if e.Hint != "" {
		b.WriteString("\n")
		b.WriteString(e.Hint)
	}
	return b.String()
}

// FormatError formats an error for CLI output with colors
func FormatError(w io.Writer, err error, useColor bool) {
	if err == nil {
		return
	}

	switch e := err.(type) {
	case *CLIError:
		formatCLIError(w, e, useColor)
	case *errors.Error:
		formatTypedError(w, e, useColor)
	default:
		// Cobra argument and flag errors land here
		formatCLIError(w, &CLIError{
			Type:    "usage",
			Message: err.Error(),
			Hint:    "Run 'idfilter --help' for usage",
		}, useColor)
	}
}

// formatTypedError renders a categorized error with a hint for its category.
func formatTypedError(w io.Writer, err *errors.Error, useColor bool) {
	details := ""
	if err.Cause != nil {
		details = err.Cause.Error()
	}
	formatCLIError(w, &CLIError{
		Type:    err.Type,
		Message: err.Message,
		Details: details,
		Hint:    hintFor(err),
	}, useColor)
}

func hintFor(err *errors.Error) string {
	switch err.Type {
	case errors.ErrFileNotFound:
		if path, ok := err.GetContext("path"); ok {
			return fmt.Sprintf("Check the path %q, or pass '-' to read standard input", path)
		}
		return "Check the path, or pass '-' to read standard input"
	case errors.ErrInputRead:
		return "Check that the input is a readable regular file"
	case errors.ErrConfig:
		return "See 'idfilter --help' for the accepted configuration keys"
	case errors.ErrOutput:
		return "Check that standard output is writable"
	case errors.ErrNotFound:
		return "The identifier does not occur in the input and nothing similar does either"
	}
	return ""
}

// formatCLIError formats CLI errors
func formatCLIError(w io.Writer, err *CLIError, useColor bool) {
	_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", ColorRed, useColor), err.Message)

	if err.Details != "" {
		_, _ = fmt.Fprintf(w, "%s\n", Colorize("  "+strings.ReplaceAll(err.Details, "\n", "\n  "), ColorGray, useColor))
	}

	if err.Hint != "" {
		_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Hint: ", ColorYellow, useColor), err.Hint)
	}
}
