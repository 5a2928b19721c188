package rollup

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/kbukum/rollup/stats"
)

// AggregateBatch folds one batch of raw lines into a per-key stats table.
// It is a pure function of its input: no shared state, no side effects.
//
// Each line is split at the first delimiter byte. The key segment is used
// verbatim as raw bytes; only the value segment is decoded, trimmed, and
// parsed as a float. Malformed lines — no delimiter, unparsable value, or
// a non-finite value (NaN, ±Inf) — are skipped silently.
func AggregateBatch(batch [][]byte, delim byte) stats.Table {
	table, _ := aggregate(batch, delim)
	return table
}

// aggregate is AggregateBatch plus the count of lines skipped as malformed.
func aggregate(batch [][]byte, delim byte) (stats.Table, int64) {
	table := make(stats.Table)
	var skipped int64

	for _, line := range batch {
		pos := bytes.IndexByte(line, delim)
		if pos < 0 {
			skipped++
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(string(line[pos+1:])), 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			skipped++
			continue
		}
		table.Observe(string(line[:pos]), value)
	}

	return table, skipped
}
