package stats

import "sort"

// Stats accumulates observations for a single key.
type Stats struct {
	Min   float64
	Max   float64
	Sum   float64
	Count int64
}

// New creates an accumulator seeded with its first observation.
func New(v float64) *Stats {
	return &Stats{Min: v, Max: v, Sum: v, Count: 1}
}

// Update folds one more observation into the accumulator.
func (s *Stats) Update(v float64) {
	if v < s.Min {
		s.Min = v
	}
	if v > s.Max {
		s.Max = v
	}
	s.Sum += v
	s.Count++
}

// Merge folds another accumulator for the same key into this one.
// The operation is associative and commutative.
func (s *Stats) Merge(o *Stats) {
	if o.Min < s.Min {
		s.Min = o.Min
	}
	if o.Max > s.Max {
		s.Max = o.Max
	}
	s.Sum += o.Sum
	s.Count += o.Count
}

// Mean returns the arithmetic mean of all observations.
// Count is at least 1 once an accumulator exists, so division is safe.
func (s *Stats) Mean() float64 {
	return s.Sum / float64(s.Count)
}

// Table maps keys to their accumulators. One Table is produced per batch;
// MergeTables folds them into the final result.
type Table map[string]*Stats

// Observe folds a single (key, value) observation into the table.
func (t Table) Observe(key string, v float64) {
	if s, ok := t[key]; ok {
		s.Update(v)
	} else {
		t[key] = New(v)
	}
}

// MergeTables folds src into dst and returns dst. Accumulators present in
// src but not dst move over directly; dst must not be read concurrently
// while merging.
func MergeTables(dst, src Table) Table {
	for key, s := range src {
		if existing, ok := dst[key]; ok {
			existing.Merge(s)
		} else {
			dst[key] = s
		}
	}
	return dst
}

// Keys returns the table's keys in byte-wise sorted order.
// The table itself carries no ordering; this is for consumers that render.
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
