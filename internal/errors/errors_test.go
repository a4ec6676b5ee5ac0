package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	err := New(InvalidArgument, "bad input")
	if got, want := err.Error(), "invalid_argument: bad input"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("underlying failure")
	err := Wrap(Unavailable, "service unreachable", cause)
	if !errors.Is(err, cause) {
		t.Error("wrapped error does not unwrap to its cause")
	}
	if KindOf(err) != Unavailable {
		t.Errorf("KindOf = %v, want Unavailable", KindOf(err))
	}
	if got, want := err.Error(), "unavailable: service unreachable: underlying failure"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "invalid argument", err: New(InvalidArgument, "x"), want: InvalidArgument},
		{name: "not found", err: Newf(NotFound, "missing %s", "thing"), want: NotFound},
		{name: "plain error", err: fmt.Errorf("plain"), want: Kind("")},
		{name: "wrapped kinded error", err: fmt.Errorf("outer: %w", New(NotFound, "inner")), want: NotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf = %v, want %v", got, tt.want)
			}
		})
	}
}
