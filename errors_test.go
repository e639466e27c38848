package nitter

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected errorClass
	}{
		{"nil", nil, errNone},
		{"protected", ErrProtected, errProtected},
		{"suspended", ErrSuspended, errSuspended},
		{"not found", ErrNotFound, errNotFound},
		{"wrapped not found", fmt.Errorf("tweet: %w", ErrNotFound), errNotFound},
		{"page 404", fmt.Errorf("https://n/x: %w", ErrPageNotFound), errNotFound},
		{"parse", &ParseError{Field: "body"}, errOperational},
		{"http status", &NetworkError{URL: "u", Status: 500}, errOperational},
		{"cancelled", &NetworkError{URL: "u", Err: context.Canceled}, errOperational},
		{"other", errors.New("boom"), errOperational},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := classifyError(tt.err); result != tt.expected {
				t.Fatalf("classifyError(%v) = %d, want %d", tt.err, result, tt.expected)
			}
		})
	}
}

func TestErrorClassStatus(t *testing.T) {
	tests := map[errorClass]Status{
		errNone:        StatusEnded,
		errProtected:   StatusProtected,
		errSuspended:   StatusSuspended,
		errNotFound:    StatusNotFound,
		errOperational: StatusFailed,
	}
	for class, want := range tests {
		if got := class.status(); got != want {
			t.Fatalf("errorClass(%d).status() = %v, want %v", class, got, want)
		}
		if !want.Terminal() {
			t.Fatalf("%v should be terminal", want)
		}
	}
	if StatusRunning.Terminal() {
		t.Fatal("running should not be terminal")
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Status
	}{
		{"nil", nil, StatusEnded},
		{"wrapped protected", fmt.Errorf("x: %w", ErrProtected), StatusProtected},
		{"suspended", ErrSuspended, StatusSuspended},
		{"not found", ErrNotFound, StatusNotFound},
		{"page 404", ErrPageNotFound, StatusNotFound},
		{"parse", &ParseError{Field: "body"}, StatusFailed},
		{"network", &NetworkError{URL: "u", Status: 502}, StatusFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusOf(tt.err); got != tt.want {
				t.Fatalf("StatusOf(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusRunning, "running"},
		{StatusEnded, "ended"},
		{StatusProtected, "protected"},
		{StatusSuspended, "suspended"},
		{StatusNotFound, "not_found"},
		{StatusFailed, "failed"},
		{Status(42), "status(42)"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Fatalf("Status(%d).String() = %q, want %q", int(tt.status), got, tt.want)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&ParseError{Field: "full_name"}, "unable to parse nitter: missing full_name"},
		{&ParseError{Field: "id", Reason: `invalid id "x"`}, `unable to parse nitter: id: invalid id "x"`},
		{&NetworkError{URL: "https://n/a", Status: 502}, "unable to send request: https://n/a: HTTP 502"},
		{&NetworkError{URL: "https://n/a", Err: errors.New("eof")}, "unable to send request: https://n/a: eof"},
		{&NetworkError{URL: "https://n/a", Status: 429, Err: errors.New("gave up")}, "unable to send request: https://n/a: HTTP 429: gave up"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Fatalf("Error() = %q, want %q", got, tt.want)
		}
	}
}
