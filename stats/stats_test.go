package stats

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	s := New(10.0)
	if s.Min != 10.0 || s.Max != 10.0 || s.Sum != 10.0 || s.Count != 1 {
		t.Errorf("got %+v, want min=max=sum=10 count=1", s)
	}
}

func TestUpdate(t *testing.T) {
	s := New(1.0)
	s.Update(5.0)
	s.Update(-3.0)
	if s.Min != -3.0 {
		t.Errorf("min = %v, want -3", s.Min)
	}
	if s.Max != 5.0 {
		t.Errorf("max = %v, want 5", s.Max)
	}
	if s.Sum != 3.0 {
		t.Errorf("sum = %v, want 3", s.Sum)
	}
	if s.Count != 3 {
		t.Errorf("count = %v, want 3", s.Count)
	}
}

func TestMean(t *testing.T) {
	s := New(1.0)
	s.Update(5.0)
	s.Update(-3.0)
	if got := s.Mean(); got != 1.0 {
		t.Errorf("mean = %v, want 1", got)
	}
}

func TestMerge_EqualsSequentialFold(t *testing.T) {
	// merge(fold(as), fold(bs)) must equal fold(as ++ bs)
	as := []float64{1.5, -2.0, 7.25}
	bs := []float64{0.0, 9.5, -4.75, 3.0}

	a := fold(as)
	b := fold(bs)
	a.Merge(b)

	want := fold(append(append([]float64{}, as...), bs...))
	if !statsEqual(a, want) {
		t.Errorf("merged = %+v, want %+v", a, want)
	}
}

func TestMerge_Commutative(t *testing.T) {
	ab := fold([]float64{1, 2})
	ab.Merge(fold([]float64{3, 4, 5}))

	ba := fold([]float64{3, 4, 5})
	ba.Merge(fold([]float64{1, 2}))

	if !statsEqual(ab, ba) {
		t.Errorf("merge not commutative: %+v vs %+v", ab, ba)
	}
}

func TestMerge_Associative(t *testing.T) {
	mk := func() (*Stats, *Stats, *Stats) {
		return fold([]float64{1, 2}), fold([]float64{-9}), fold([]float64{4, 4, 4})
	}

	a, b, c := mk()
	a.Merge(b)
	a.Merge(c) // (a+b)+c

	a2, b2, c2 := mk()
	b2.Merge(c2)
	a2.Merge(b2) // a+(b+c)

	if !statsEqual(a, a2) {
		t.Errorf("merge not associative: %+v vs %+v", a, a2)
	}
}

func TestMerge_Idempotent_Reaggregation(t *testing.T) {
	// Aggregating the same observations twice and merging doubles sum and
	// count but leaves min/max untouched.
	obs := []float64{2.5, -1.0, 8.0}
	a := fold(obs)
	b := fold(obs)
	a.Merge(b)

	single := fold(obs)
	if a.Min != single.Min || a.Max != single.Max {
		t.Errorf("min/max changed: got %+v, want min=%v max=%v", a, single.Min, single.Max)
	}
	if a.Sum != 2*single.Sum {
		t.Errorf("sum = %v, want %v", a.Sum, 2*single.Sum)
	}
	if a.Count != 2*single.Count {
		t.Errorf("count = %v, want %v", a.Count, 2*single.Count)
	}
}

func TestTable_Observe(t *testing.T) {
	table := make(Table)
	table.Observe("X", 1.0)
	table.Observe("X", 5.0)
	table.Observe("Y", -2.0)

	if len(table) != 2 {
		t.Fatalf("len = %d, want 2", len(table))
	}
	if x := table["X"]; x.Count != 2 || x.Min != 1.0 || x.Max != 5.0 {
		t.Errorf("X = %+v", x)
	}
	if y := table["Y"]; y.Count != 1 || y.Min != -2.0 {
		t.Errorf("Y = %+v", y)
	}
}

func TestMergeTables_Union(t *testing.T) {
	dst := make(Table)
	dst.Observe("A", 1.0)
	dst.Observe("B", 2.0)

	src := make(Table)
	src.Observe("B", 6.0)
	src.Observe("C", 3.0)

	got := MergeTables(dst, src)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if b := got["B"]; b.Count != 2 || b.Min != 2.0 || b.Max != 6.0 || b.Sum != 8.0 {
		t.Errorf("B = %+v", b)
	}
	if c := got["C"]; c.Count != 1 || c.Min != 3.0 {
		t.Errorf("C = %+v", c)
	}
}

func TestMergeTables_EmptySrc(t *testing.T) {
	dst := make(Table)
	dst.Observe("A", 1.0)
	got := MergeTables(dst, make(Table))
	if len(got) != 1 || got["A"].Count != 1 {
		t.Errorf("got %+v, want dst unchanged", got)
	}
}

func TestKeys_Sorted(t *testing.T) {
	table := make(Table)
	for _, k := range []string{"zeta", "alpha", "mid"} {
		table.Observe(k, 0)
	}
	keys := table.Keys()
	want := []string{"alpha", "mid", "zeta"}
	if len(keys) != len(want) {
		t.Fatalf("got %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestKeys_OpaqueBytes(t *testing.T) {
	// Keys are raw bytes; non-UTF-8 sequences must survive intact.
	raw := string([]byte{0xff, 0xfe, ';', 0x00})
	table := make(Table)
	table.Observe(raw, 1.0)
	if _, ok := table[raw]; !ok {
		t.Error("non-UTF-8 key not preserved")
	}
}

// --- helpers ---

func fold(values []float64) *Stats {
	s := New(values[0])
	for _, v := range values[1:] {
		s.Update(v)
	}
	return s
}

func statsEqual(a, b *Stats) bool {
	return a.Min == b.Min && a.Max == b.Max && a.Count == b.Count &&
		math.Abs(a.Sum-b.Sum) < 1e-9
}
