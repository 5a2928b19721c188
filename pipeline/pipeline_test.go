package pipeline

import (
	"context"
	"errors"
	"sort"
	"testing"
)

func TestFromSlice_Collect(t *testing.T) {
	p := FromSlice([]int{1, 2, 3})
	got, err := Collect(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{1, 2, 3}) {
		t.Errorf("got %v, want [1 2 3]", got)
	}
}

func TestFromSlice_Empty(t *testing.T) {
	p := FromSlice([]int{})
	got, err := Collect(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestFrom_Iterator(t *testing.T) {
	iter := &sliceIter[string]{items: []string{"a", "b"}}
	p := From[string](iter)
	got, err := Collect(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("got %v, want [a b]", got)
	}
}

func TestForEach(t *testing.T) {
	var sum int
	p := FromSlice([]int{1, 2, 3})
	err := ForEach(context.Background(), p, func(_ context.Context, n int) error {
		sum += n
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if sum != 6 {
		t.Errorf("sum = %d, want 6", sum)
	}
}

func TestIter(t *testing.T) {
	p := FromSlice([]int{1, 2})
	ctx := context.Background()
	iter := p.Iter(ctx)
	defer iter.Close()

	v1, ok, err := iter.Next(ctx)
	if err != nil || !ok || v1 != 1 {
		t.Errorf("first Next: val=%d ok=%v err=%v", v1, ok, err)
	}
	v2, ok, err := iter.Next(ctx)
	if err != nil || !ok || v2 != 2 {
		t.Errorf("second Next: val=%d ok=%v err=%v", v2, ok, err)
	}
	_, ok, err = iter.Next(ctx)
	if err != nil || ok {
		t.Errorf("third Next should be exhausted: ok=%v err=%v", ok, err)
	}
}

func TestBatch_ExactMultiple(t *testing.T) {
	p := Batch(FromSlice([]int{1, 2, 3, 4}), 2)
	got, err := Collect(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	// No trailing empty batch when the input divides evenly.
	if len(got) != 2 || len(got[0]) != 2 || len(got[1]) != 2 {
		t.Fatalf("got %v, want [[1 2] [3 4]]", got)
	}
}

func TestBatch_FinalPartial(t *testing.T) {
	p := Batch(FromSlice([]int{1, 2, 3, 4, 5}), 2)
	got, err := Collect(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d batches, want 3", len(got))
	}
	if len(got[2]) != 1 || got[2][0] != 5 {
		t.Errorf("final batch = %v, want [5]", got[2])
	}
}

func TestBatch_SizeOne(t *testing.T) {
	p := Batch(FromSlice([]int{7, 8}), 1)
	got, err := Collect(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0][0] != 7 || got[1][0] != 8 {
		t.Errorf("got %v, want [[7] [8]]", got)
	}
}

func TestBatch_LargerThanInput(t *testing.T) {
	p := Batch(FromSlice([]int{1, 2}), 10)
	got, err := Collect(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || len(got[0]) != 2 {
		t.Errorf("got %v, want one batch [1 2]", got)
	}
}

func TestBatch_Empty(t *testing.T) {
	p := Batch(FromSlice([]int{}), 3)
	got, err := Collect(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want no batches", got)
	}
}

func TestBatch_OwnershipTransfer(t *testing.T) {
	// Consecutive batches must not share backing storage.
	p := Batch(FromSlice([]int{1, 2, 3, 4}), 2)
	got, err := Collect(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	got[0][0] = 99
	if got[1][0] == 99 {
		t.Error("batches share backing storage")
	}
}

func TestBatch_SourceError(t *testing.T) {
	src := &failingIter{failAt: 3}
	p := Batch(From[int](src), 2)
	_, err := Collect(context.Background(), p)
	if err == nil || !errors.Is(err, errBoom) {
		t.Fatalf("expected source error, got %v", err)
	}
}

func TestParallel(t *testing.T) {
	p := FromSlice([]int{1, 2, 3, 4, 5})
	doubled := Parallel(p, 3, func(_ context.Context, n int) (int, error) {
		return n * 2, nil
	})
	got, err := Collect(context.Background(), doubled)
	if err != nil {
		t.Fatal(err)
	}
	sort.Ints(got) // order not guaranteed
	if !intSliceEqual(got, []int{2, 4, 6, 8, 10}) {
		t.Errorf("got %v, want [2 4 6 8 10]", got)
	}
}

func TestParallel_Error(t *testing.T) {
	p := FromSlice([]int{1, 2, 3, 4, 5})
	failing := Parallel(p, 2, func(_ context.Context, n int) (int, error) {
		if n == 3 {
			return 0, errBoom
		}
		return n, nil
	})
	_, err := Collect(context.Background(), failing)
	if err == nil {
		t.Fatal("expected error from parallel worker")
	}
}

func TestParallel_SingleWorker(t *testing.T) {
	p := FromSlice([]int{1, 2, 3})
	out := Parallel(p, 1, func(_ context.Context, n int) (int, error) {
		return n + 10, nil
	})
	got, err := Collect(context.Background(), out)
	if err != nil {
		t.Fatal(err)
	}
	sort.Ints(got)
	if !intSliceEqual(got, []int{11, 12, 13}) {
		t.Errorf("got %v, want [11 12 13]", got)
	}
}

func TestParallel_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := FromSlice([]int{1, 2, 3})
	out := Parallel(p, 2, func(_ context.Context, n int) (int, error) {
		return n, nil
	})
	// Must return promptly rather than hang; whether values squeezed
	// through before cancellation is best-effort for sync sources.
	_, _ = Collect(ctx, out)
}

// --- helpers ---

var errBoom = errors.New("boom")

// failingIter yields 1, 2, ... and fails at the failAt-th pull.
type failingIter struct {
	n      int
	failAt int
}

func (it *failingIter) Next(_ context.Context) (int, bool, error) {
	it.n++
	if it.n >= it.failAt {
		return 0, false, errBoom
	}
	return it.n, true, nil
}

func (it *failingIter) Close() error { return nil }

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
