package solrdex

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCollection_Add_Object(t *testing.T) {
	col := testCollection(&mockDoer{}, "users")
	col.Add(map[string]any{"a": 1})
	if col.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", col.Pending())
	}
}

func TestCollection_Add_Array(t *testing.T) {
	col := testCollection(&mockDoer{}, "users")
	col.Add([]any{map[string]any{"b": 2}, map[string]any{"c": 3}})
	if col.Pending() != 2 {
		t.Errorf("Pending = %d, want 2", col.Pending())
	}
}

func TestCollection_Add_IgnoresOtherShapes(t *testing.T) {
	// Neither an object nor an array: silently a no-op.
	col := testCollection(&mockDoer{}, "users")
	col.Add("just a string").Add(42).Add(nil).Add(true)
	if col.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", col.Pending())
	}
	if col.pending != nil {
		t.Errorf("sticky error set for ignored shapes: %v", col.pending)
	}
}

func TestCollection_Commit_SendsQueueInOnePost(t *testing.T) {
	mock := &mockDoer{
		postFn: func(_ context.Context, path string, body any) (map[string]any, error) {
			return okHeader(), nil
		},
	}
	col := testCollection(mock, "users")
	col.Add(map[string]any{"a": float64(1)})
	col.Add([]any{map[string]any{"b": float64(2)}, map[string]any{"c": float64(3)}})

	if err := col.Commit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mock.posts) != 1 {
		t.Fatalf("POSTs = %d, want 1", len(mock.posts))
	}
	if got := mock.posts[0].path; got != "users/update?commit=true" {
		t.Errorf("path = %q, want users/update?commit=true", got)
	}
	want := []any{
		map[string]any{"a": float64(1)},
		map[string]any{"b": float64(2)},
		map[string]any{"c": float64(3)},
	}
	if diff := cmp.Diff(want, mock.posts[0].body); diff != "" {
		t.Errorf("posted body mismatch (-want +got):\n%s", diff)
	}
	if col.Pending() != 0 {
		t.Errorf("Pending = %d after successful commit, want 0", col.Pending())
	}
}

func TestCollection_Commit_EmptyQueueIsNoop(t *testing.T) {
	mock := &mockDoer{}
	col := testCollection(mock, "users")
	if err := col.Commit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.calls() != 0 {
		t.Errorf("network calls = %d, want 0", mock.calls())
	}
}

func TestCollection_Add_NonObjectElementSetsStickyError(t *testing.T) {
	mock := &mockDoer{}
	col := testCollection(mock, "users")
	col.Add([]any{map[string]any{"a": 1}, "not-an-object", map[string]any{"b": 2}})

	// The valid prefix stays queued, enqueueing halted at the bad element.
	if col.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", col.Pending())
	}

	err := col.Commit(context.Background())
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if mock.calls() != 0 {
		t.Errorf("network calls = %d, want 0", mock.calls())
	}

	// The sticky error is consumed exactly once; the queue is untouched,
	// so the next Commit flushes the valid prefix.
	mock.postFn = func(_ context.Context, _ string, _ any) (map[string]any, error) {
		return okHeader(), nil
	}
	if err := col.Commit(context.Background()); err != nil {
		t.Fatalf("second commit: unexpected error: %v", err)
	}
	if len(mock.posts) != 1 {
		t.Errorf("POSTs = %d, want 1", len(mock.posts))
	}
}

func TestCollection_Add_FirstStickyErrorWins(t *testing.T) {
	col := testCollection(&mockDoer{}, "users")
	col.Add([]any{"first bad"})
	first := col.pending
	col.Add([]any{42})
	if col.pending != first {
		t.Error("sticky error overwritten by a later Add")
	}
}

func TestCollection_Commit_FailurePreservesQueue(t *testing.T) {
	boom := fmt.Errorf("%w: connection refused", ErrTransport)
	mock := &mockDoer{
		postFn: func(_ context.Context, _ string, _ any) (map[string]any, error) {
			return nil, boom
		},
	}
	col := testCollection(mock, "users")
	col.Add(map[string]any{"a": 1})

	if err := col.Commit(context.Background()); !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if col.Pending() != 1 {
		t.Fatalf("Pending = %d after failed flush, want 1 (queue preserved)", col.Pending())
	}

	// Retry succeeds and drains the queue.
	mock.postFn = func(_ context.Context, _ string, _ any) (map[string]any, error) {
		return okHeader(), nil
	}
	if err := col.Commit(context.Background()); err != nil {
		t.Fatalf("retry: unexpected error: %v", err)
	}
	if col.Pending() != 0 {
		t.Errorf("Pending = %d after retry, want 0", col.Pending())
	}
}

func TestCollection_Name(t *testing.T) {
	col := testCollection(&mockDoer{}, "users")
	if col.Name() != "users" {
		t.Errorf("Name = %q, want users", col.Name())
	}
}
