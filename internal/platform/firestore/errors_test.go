package firestore

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestWrapErrorCategorisesStatusCodes(t *testing.T) {
	cases := []struct {
		name        string
		code        codes.Code
		notFound    bool
		conflict    bool
		unavailable bool
	}{
		{name: "not found", code: codes.NotFound, notFound: true},
		{name: "already exists", code: codes.AlreadyExists, conflict: true},
		{name: "aborted", code: codes.Aborted, conflict: true},
		{name: "unavailable", code: codes.Unavailable, unavailable: true},
		{name: "resource exhausted", code: codes.ResourceExhausted, unavailable: true},
		{name: "unknown", code: codes.Unknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := WrapError("op", status.Error(tc.code, "boom"))

			var repoErr *Error
			if !errors.As(err, &repoErr) {
				t.Fatalf("WrapError = %T, want *Error", err)
			}
			if got := repoErr.IsNotFound(); got != tc.notFound {
				t.Errorf("IsNotFound() = %v, want %v", got, tc.notFound)
			}
			if got := repoErr.IsConflict(); got != tc.conflict {
				t.Errorf("IsConflict() = %v, want %v", got, tc.conflict)
			}
			if got := repoErr.IsUnavailable(); got != tc.unavailable {
				t.Errorf("IsUnavailable() = %v, want %v", got, tc.unavailable)
			}
		})
	}
}

func TestWrapErrorNil(t *testing.T) {
	if err := WrapError("op", nil); err != nil {
		t.Fatalf("WrapError(nil) = %v, want nil", err)
	}
}

func TestWrapErrorPassesThroughCancellation(t *testing.T) {
	if err := WrapError("op", context.Canceled); !errors.Is(err, context.Canceled) {
		t.Fatalf("WrapError = %v, want context.Canceled", err)
	}
	if err := WrapError("op", status.Error(codes.DeadlineExceeded, "late")); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("WrapError = %v, want context.DeadlineExceeded", err)
	}
}

func TestWrapErrorKeepsExistingWrapping(t *testing.T) {
	inner := WrapError("contributions.insert", status.Error(codes.AlreadyExists, "dup"))

	outer := WrapError("outer", inner)
	var repoErr *Error
	if !errors.As(outer, &repoErr) {
		t.Fatalf("WrapError = %T, want *Error", outer)
	}
	if repoErr.op != "contributions.insert" {
		t.Fatalf("op = %q, want contributions.insert", repoErr.op)
	}
	if !repoErr.IsConflict() {
		t.Fatal("IsConflict() = false, want true")
	}
}

func TestErrorMessageIncludesOperation(t *testing.T) {
	err := WrapError("language_pairs.ensure", status.Error(codes.Unavailable, "down"))
	want := "language_pairs.ensure: rpc error: code = Unavailable desc = down"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}
