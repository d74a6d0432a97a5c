// Package applescript runs AppleScript source through osascript and turns
// every failure mode into a tagged *Error.
package applescript

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// fieldSeparator is the unit separator the generated scripts place between
// fields of a row.
const fieldSeparator = "\x1f"

// Kind classifies why a script did not produce usable output.
type Kind string

const (
	// KindUnavailable means Mail (or osascript itself) cannot be reached or
	// the process is not authorized to automate it.
	KindUnavailable Kind = "unavailable"
	// KindTimeout means the script did not finish within its deadline.
	KindTimeout Kind = "timeout"
	// KindScript means osascript exited with a failure status.
	KindScript Kind = "script"
	// KindLogical means the script ran but reported that the action could
	// not be performed, e.g. a message id that no longer exists.
	KindLogical Kind = "logical"
)

// Error is the failure variant of a script execution.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("applescript %s: %s", e.Kind, e.Message)
}

// KindOf returns the Kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var scriptErr *Error
	if errors.As(err, &scriptErr) {
		return scriptErr.Kind
	}
	return ""
}

// Options tunes a single execution.
type Options struct {
	// Timeout overrides the runner default when positive.
	Timeout time.Duration
}

// Runner executes AppleScript source and returns its trimmed output.
type Runner interface {
	Run(ctx context.Context, script string, opts Options) (string, error)
}

// OSAScript runs scripts with the osascript binary.
type OSAScript struct {
	path    string
	timeout time.Duration
	goos    string
}

func NewOSAScript(path string, timeout time.Duration) *OSAScript {
	if strings.TrimSpace(path) == "" {
		path = "osascript"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OSAScript{path: path, timeout: timeout, goos: runtime.GOOS}
}

func (o *OSAScript) Run(ctx context.Context, script string, opts Options) (string, error) {
	if o.goos != "darwin" {
		return "", &Error{Kind: KindUnavailable, Message: "Apple Mail is only available on macOS (running on " + o.goos + ")"}
	}

	timeout := o.timeout
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, o.path, "-e", script)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", &Error{Kind: KindTimeout, Message: fmt.Sprintf("script did not finish within %s", timeout)}
		}
		if errors.Is(err, exec.ErrNotFound) {
			return "", &Error{Kind: KindUnavailable, Message: fmt.Sprintf("%s not found", o.path)}
		}
		return "", classifyFailure(stderr.String(), err)
	}

	return interpretOutput(stdout.String())
}

// interpretOutput applies the in-band failure convention: a script that
// completes but cannot perform its action returns "ERROR: <reason>". Output
// holding a field separator is row data and is never read as a failure.
// Only the newline osascript appends is removed so trailing content survives.
func interpretOutput(raw string) (string, error) {
	output := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
	if strings.Contains(output, fieldSeparator) {
		return output, nil
	}
	trimmed := strings.TrimSpace(output)
	if strings.HasPrefix(strings.ToLower(trimmed), "error:") {
		message := strings.TrimSpace(trimmed[len("error:"):])
		if message == "" {
			message = "script reported an error"
		}
		return "", &Error{Kind: KindLogical, Message: message}
	}
	return output, nil
}

// classifyFailure maps osascript stderr onto a Kind.
func classifyFailure(stderr string, runErr error) error {
	message := strings.TrimSpace(stderr)
	if message == "" {
		message = runErr.Error()
	}
	switch {
	case strings.Contains(message, "-1743"),
		strings.Contains(message, "Not authorized to send Apple events"):
		return &Error{Kind: KindUnavailable, Message: "not authorized to automate Mail; grant access in System Settings > Privacy & Security > Automation"}
	case strings.Contains(message, "-600"),
		strings.Contains(message, "Application isn't running"),
		strings.Contains(message, "not running"):
		return &Error{Kind: KindUnavailable, Message: "Mail is not running"}
	default:
		return &Error{Kind: KindScript, Message: message}
	}
}
