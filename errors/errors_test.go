package errors

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		kind      *Error
		err       error
		wantMatch bool
	}{
		"instance of the same root error": {
			kind:      ErrNotFound,
			err:       ErrNotFound,
			wantMatch: true,
		},
		"wrapped root error": {
			kind:      ErrNotFound,
			err:       Wrap(ErrNotFound, "gone"),
			wantMatch: true,
		},
		"deeply wrapped root error": {
			kind:      ErrNotFound,
			err:       Wrap(Wrap(ErrNotFound, "gone"), "sorry"),
			wantMatch: true,
		},
		"different root error": {
			kind:      ErrNotFound,
			err:       ErrUnauthorized,
			wantMatch: false,
		},
		"stdlib error": {
			kind:      ErrNotFound,
			err:       fmt.Errorf("stdlib"),
			wantMatch: false,
		},
		"wrapped stdlib error": {
			kind:      ErrNotFound,
			err:       Wrap(fmt.Errorf("stdlib"), "wrapped"),
			wantMatch: false,
		},
		"nil error against nil kind": {
			kind:      nil,
			err:       nil,
			wantMatch: true,
		},
		"nil error against a root error": {
			kind:      ErrNotFound,
			err:       nil,
			wantMatch: false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.kind.Is(tc.err); got != tc.wantMatch {
				t.Fatalf("unexpected match result: %v", got)
			}
		})
	}
}

func TestWrapNilIsNil(t *testing.T) {
	if err := Wrap(nil, "anything"); err != nil {
		t.Fatalf("want nil, got %+v", err)
	}
}

func TestWrapPreservesABCICode(t *testing.T) {
	err := Wrap(Wrap(ErrExpired, "deadline"), "order")
	if code := abciCode(err); code != ErrExpired.ABCICode() {
		t.Fatalf("want %d, got %d", ErrExpired.ABCICode(), code)
	}
}

func TestWrapAttachesStackTraceOnce(t *testing.T) {
	inner := Wrap(ErrState, "inner")
	st := stackTrace(inner)
	if st == nil {
		t.Fatal("no stack trace attached")
	}
	outer := Wrap(inner, "outer")
	if got := stackTrace(outer); fmt.Sprintf("%v", got) != fmt.Sprintf("%v", st) {
		t.Fatal("stack trace must be attached only at the lowest frame")
	}
}

func TestRegisterPanicsOnDuplicateCode(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	Register(ErrNotFound.ABCICode(), "duplicate")
}

func TestRecover(t *testing.T) {
	var err error
	func() {
		defer Recover(&err)
		panic("kaboom")
	}()
	if !ErrPanic.Is(err) {
		t.Fatalf("want ErrPanic, got %+v", err)
	}
}

func TestStdlibCauseSupport(t *testing.T) {
	// Errors produced by the pkg/errors library must participate in
	// cause unwrapping as well.
	err := errors.WithMessage(Wrap(ErrDuplicate, "order"), "create")
	if !ErrDuplicate.Is(err) {
		t.Fatalf("want ErrDuplicate, got %+v", err)
	}
}
