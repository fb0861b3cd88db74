package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/roach88/bi/internal/catalog"
	"github.com/roach88/bi/internal/query"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Lookup miss (the key does not exist)
	ExitCommandError = 2 // Command error (bad arguments, database failure, etc.)
)

// Error codes carried in CLIError.Code.
const (
	ErrCodeNotFound   = "E404"
	ErrCodeBadRequest = "E400"
	ErrCodeInternal   = "E500"
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitCommandError (2) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// classify maps an operation error to its response code and exit code.
func classify(err error) (code string, exit int) {
	switch {
	case query.IsNotFound(err):
		return ErrCodeNotFound, ExitFailure
	case errors.Is(err, catalog.ErrBadKey),
		errors.Is(err, catalog.ErrUnknownType),
		errors.Is(err, catalog.ErrUnsupported):
		return ErrCodeBadRequest, ExitCommandError
	default:
		return ErrCodeInternal, ExitCommandError
	}
}

// OutputFormatter renders CLI results as text, JSON or YAML.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
	TraceID   string
}

// CLIResponse is the standard structured response format for CLI output.
type CLIResponse struct {
	Status  string    `json:"status" yaml:"status"`                         // "ok" or "error"
	Data    any       `json:"data,omitempty" yaml:"data,omitempty"`         // success payload
	Error   *CLIError `json:"error,omitempty" yaml:"error,omitempty"`       // error details
	TraceID string    `json:"trace_id,omitempty" yaml:"trace_id,omitempty"` // request id, also logged
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code" yaml:"code"`                           // "E404", "E400", "E500"
	Message string `json:"message" yaml:"message"`                     // human-readable message
	Details any    `json:"details,omitempty" yaml:"details,omitempty"` // additional context
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	resp.TraceID = f.TraceID
	switch f.Format {
	case "json":
		return json.NewEncoder(f.Writer).Encode(resp)
	case "yaml":
		enc := yaml.NewEncoder(f.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(resp); err != nil {
			return err
		}
		return enc.Close()
	}
	return nil
}

// Success outputs a successful result in the configured format.
// Text output prints data with fmt, so result types implement fmt.Stringer.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" || f.Format == "yaml" {
		return f.encode(CLIResponse{Status: "ok", Data: data})
	}

	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" || f.Format == "yaml" {
		return f.encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Fail reports err and returns the ExitError the command should return.
func (f *OutputFormatter) Fail(message string, err error) error {
	code, exit := classify(err)
	if outErr := f.Error(code, fmt.Sprintf("%s: %v", message, err), nil); outErr != nil {
		return WrapExitError(ExitCommandError, "failed to write output", outErr)
	}
	return WrapExitError(exit, message, err)
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
