// Package clierr defines the error taxonomy shared by every layer of the CLI.
// Each error carries a machine-identifiable kind so that callers (and shell
// scripts branching on exit codes) can distinguish failure classes.
package clierr

import (
	"errors"
	"fmt"
)

// Kind classifies an error into one of the fixed failure classes.
type Kind int

const (
	// Internal is the fallback for errors that carry no explicit kind.
	Internal Kind = iota
	// Config marks pre-flight configuration failures. Never retried.
	Config
	// Auth marks authentication/authorization failures.
	Auth
	// Validation marks locally or remotely rejected input.
	Validation
	// NotFound marks a missing resource.
	NotFound
	// Server marks a remote 5xx failure.
	Server
	// Network marks a transport-level failure (DNS, dial, timeout).
	Network
)

// String returns the stable machine-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case Config:
		return "ConfigError"
	case Auth:
		return "AuthError"
	case Validation:
		return "ValidationError"
	case NotFound:
		return "NotFoundError"
	case Server:
		return "ServerError"
	case Network:
		return "NetworkError"
	default:
		return "InternalError"
	}
}

// ExitCode maps a kind to the process exit code contract.
func (k Kind) ExitCode() int {
	switch k {
	case Config:
		return 2
	case Auth:
		return 3
	case Validation:
		return 4
	case NotFound:
		return 5
	case Server:
		return 6
	case Network:
		return 7
	default:
		return 1
	}
}

// Error is a classified CLI error. Detail carries verbatim server-side
// field detail when the API returned any (422 validation bodies).
type Error struct {
	Kind    Kind
	Message string
	Detail  string
	cause   error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a classified error.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a classified error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// WithDetail returns a copy of the error carrying verbatim detail text.
func (e *Error) WithDetail(detail string) *Error {
	clone := *e
	clone.Detail = detail
	return &clone
}

// KindOf extracts the kind from anywhere in an error chain.
// Errors without a classified ancestor report Internal.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return Internal
}

// ExitCode returns the process exit code for an error chain.
// A nil error exits zero.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return KindOf(err).ExitCode()
}

// IsRetryable reports whether the error class may be retried with backoff.
// Only remote server failures and transport failures qualify; everything
// else is permanent from the client's point of view.
func IsRetryable(err error) bool {
	switch KindOf(err) {
	case Server, Network:
		return true
	default:
		return false
	}
}

// Format renders the final user-facing error line: stable kind tag
// followed by the human text.
func Format(err error) string {
	return fmt.Sprintf("ERROR (%s): %v", KindOf(err), err)
}
