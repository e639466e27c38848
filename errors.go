package nitter

import (
	"errors"
	"fmt"
)

var (
	// ErrProtected means the account's tweets are only visible to approved followers.
	ErrProtected = errors.New("account is protected")
	// ErrSuspended means the account has been suspended.
	ErrSuspended = errors.New("account is suspended")
	// ErrNotFound means the account or tweet does not exist.
	ErrNotFound = errors.New("account not found")
	// ErrPageNotFound is returned by the fetcher for an HTTP 404.
	ErrPageNotFound = errors.New("page not found")
	// Done is returned by Stream.Next once the stream has ended.
	Done = errors.New("no more tweets")
)

// ParseError reports a page whose layout no longer matches what the parser expects.
// Field names the extraction that failed.
type ParseError struct {
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unable to parse nitter: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("unable to parse nitter: missing %s", e.Field)
}

// NetworkError reports a failed request: a transport failure (Err set) or an
// unexpected HTTP status (Status set).
type NetworkError struct {
	URL    string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Err != nil && e.Status != 0:
		return fmt.Sprintf("unable to send request: %s: HTTP %d: %v", e.URL, e.Status, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("unable to send request: %s: %v", e.URL, e.Err)
	default:
		return fmt.Sprintf("unable to send request: %s: HTTP %d", e.URL, e.Status)
	}
}

func (e *NetworkError) Unwrap() error { return e.Err }

// errorClass categorizes stream failures for end-of-stream handling.
type errorClass int

const (
	errNone        errorClass = iota
	errProtected              // timeline-protected marker
	errSuspended              // error panel: has been suspended
	errNotFound               // error panel: not found, or HTTP 404
	errOperational            // parse or network failure
)

// classifyError maps an error from the fetch/parse step to its class.
func classifyError(err error) errorClass {
	switch {
	case err == nil:
		return errNone
	case errors.Is(err, ErrProtected):
		return errProtected
	case errors.Is(err, ErrSuspended):
		return errSuspended
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrPageNotFound):
		return errNotFound
	}
	return errOperational
}

// StatusOf returns the status a stream would end with after err.
// A nil error maps to StatusEnded.
func StatusOf(err error) Status { return classifyError(err).status() }

// Status is the final state of a stream, readable after it ends.
type Status int

const (
	StatusRunning Status = iota
	StatusEnded
	StatusProtected
	StatusSuspended
	StatusNotFound
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusEnded:
		return "ended"
	case StatusProtected:
		return "protected"
	case StatusSuspended:
		return "suspended"
	case StatusNotFound:
		return "not_found"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Terminal reports whether the stream has stopped.
func (s Status) Terminal() bool { return s != StatusRunning }

// status returns the terminal status for an error class.
func (c errorClass) status() Status {
	switch c {
	case errNone:
		return StatusEnded
	case errProtected:
		return StatusProtected
	case errSuspended:
		return StatusSuspended
	case errNotFound:
		return StatusNotFound
	}
	return StatusFailed
}
