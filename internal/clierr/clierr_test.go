package clierr

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitCodes(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error exits zero", err: nil, want: 0},
		{name: "config error", err: New(Config, "no endpoint"), want: 2},
		{name: "auth error", err: New(Auth, "not logged in"), want: 3},
		{name: "validation error", err: New(Validation, "bad input"), want: 4},
		{name: "not found error", err: New(NotFound, "missing"), want: 5},
		{name: "server error", err: New(Server, "boom"), want: 6},
		{name: "network error", err: New(Network, "dial failed"), want: 7},
		{name: "unclassified error", err: errors.New("plain"), want: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExitCode(tc.err); got != tc.want {
				t.Errorf("ExitCode() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestKindOfUnwrapsChain(t *testing.T) {
	inner := New(NotFound, "cluster missing")
	outer := fmt.Errorf("failed to search clusters: %w", inner)

	if got := KindOf(outer); got != NotFound {
		t.Errorf("KindOf(wrapped) = %v, want NotFound", got)
	}
	if ExitCode(outer) != 5 {
		t.Errorf("ExitCode(wrapped) = %d, want 5", ExitCode(outer))
	}
}

func TestIsRetryable(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "server errors retry", err: New(Server, "HTTP 503"), want: true},
		{name: "network errors retry", err: New(Network, "timeout"), want: true},
		{name: "auth errors never retry", err: New(Auth, "rejected"), want: false},
		{name: "validation errors never retry", err: New(Validation, "bad"), want: false},
		{name: "not found never retries", err: New(NotFound, "gone"), want: false},
		{name: "config errors never retry", err: New(Config, "unset"), want: false},
		{name: "plain errors never retry", err: errors.New("plain"), want: false},
		{name: "wrapped server error retries", err: fmt.Errorf("attempt: %w", New(Server, "boom")), want: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsRetryable(tc.err); got != tc.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	plain := New(Validation, "replicas must be greater than 0")
	if plain.Error() != "replicas must be greater than 0" {
		t.Errorf("unexpected message: %q", plain.Error())
	}

	withDetail := Newf(Validation, "API rejected request (HTTP %d)", 422).
		WithDetail("node_count: must be positive")
	want := "API rejected request (HTTP 422): node_count: must be positive"
	if withDetail.Error() != want {
		t.Errorf("Error() = %q, want %q", withDetail.Error(), want)
	}

	cause := errors.New("connection refused")
	wrapped := Wrap(Network, "request to api.example failed", cause)
	if !errors.Is(wrapped, cause) {
		t.Error("Wrap must keep the cause reachable via errors.Is")
	}
}

func TestWithDetailDoesNotMutateOriginal(t *testing.T) {
	base := New(Validation, "rejected")
	detailed := base.WithDetail("field x")
	if base.Detail != "" {
		t.Error("WithDetail mutated the original error")
	}
	if detailed.Detail != "field x" {
		t.Errorf("detail not carried: %q", detailed.Detail)
	}
}

func TestFormat(t *testing.T) {
	err := New(NotFound, "no cluster found with identifier \"web\"")
	got := Format(err)
	want := `ERROR (NotFoundError): no cluster found with identifier "web"`
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}
