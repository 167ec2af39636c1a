package builtin

import (
	"sort"
	"strings"

	"github.com/zeebo/xxh3"

	"playeretl/internal/frame"
	"playeretl/internal/metrics"
	"playeretl/internal/value"
)

// Dedup policies.
const (
	KeepFirst    = "keep-first"
	KeepLast     = "keep-last"
	MostComplete = "most-complete"
)

// DeDup collapses rows that share a key and picks a winner per key:
//
//   - "keep-first"   : keep the earliest occurrence (default)
//   - "keep-last"    : keep the latest occurrence
//   - "most-complete": keep the row with the most non-missing cells;
//     ties break by keep-first
//
// With no Keys every column is part of the key, which removes exact
// duplicate rows. Missing equals Missing when comparing cells. Survivors keep
// their original relative order.
//
// Keys are hashed with xxh3 over value.AppendKey; a hash hit is confirmed
// cell by cell before two rows are treated as duplicates.
type DeDup struct {
	// Keys are the columns forming the key. Empty means all columns. Unknown
	// names are ignored.
	Keys []string

	// Policy is KeepFirst, KeepLast or MostComplete.
	Policy string

	// Job labels the duplicates_dropped metric. Empty disables it.
	Job string
}

func (DeDup) Name() string { return "dedup" }

func (d DeDup) Apply(f *frame.Frame) *frame.Frame {
	if f.Len() < 2 {
		return f
	}
	cols := d.keyColumns(f)
	if len(cols) == 0 {
		return f
	}

	policy := strings.ToLower(strings.TrimSpace(d.Policy))
	if policy == "" {
		policy = KeepFirst
	}

	type slot struct {
		index int
		score int
	}
	var (
		winners []slot
		buckets = make(map[xxh3.Uint128][]int, f.Len())
		buf     []byte
	)
	for i, row := range f.Rows {
		buf = buf[:0]
		for _, c := range cols {
			buf = row[c].AppendKey(buf)
		}
		h := xxh3.Hash128(buf)

		found := -1
		for _, w := range buckets[h] {
			if sameKey(f.Rows[winners[w].index], row, cols) {
				found = w
				break
			}
		}
		if found < 0 {
			buckets[h] = append(buckets[h], len(winners))
			winners = append(winners, slot{index: i, score: completeness(row)})
			continue
		}

		switch policy {
		case KeepLast:
			winners[found] = slot{index: i}
		case MostComplete:
			if s := completeness(row); s > winners[found].score {
				winners[found] = slot{index: i, score: s}
			}
		}
	}

	if len(winners) == f.Len() {
		return f
	}
	sort.Slice(winners, func(a, b int) bool { return winners[a].index < winners[b].index })
	kept := make([]int, len(winners))
	for i, w := range winners {
		kept[i] = w.index
	}
	dropped := f.Len() - len(kept)
	f.Rows = pick(f.Rows, kept)

	if d.Job != "" {
		metrics.RecordRow(d.Job, metrics.KindDuplicatesDropped, int64(dropped))
	}
	return f
}

func (d DeDup) keyColumns(f *frame.Frame) []int {
	if len(d.Keys) == 0 {
		cols := make([]int, len(f.Columns))
		for i := range cols {
			cols[i] = i
		}
		return cols
	}
	cols := make([]int, 0, len(d.Keys))
	for _, k := range d.Keys {
		if i := f.Index(k); i >= 0 {
			cols = append(cols, i)
		}
	}
	return cols
}

func sameKey(a, b []value.Value, cols []int) bool {
	for _, c := range cols {
		if !a[c].Equal(b[c]) {
			return false
		}
	}
	return true
}

// completeness counts non-missing cells. Empty strings do not count.
func completeness(row []value.Value) int {
	n := 0
	for _, v := range row {
		if s, ok := v.Text(); v.IsMissing() || (ok && s == "") {
			continue
		}
		n++
	}
	return n
}

func pick(rows [][]value.Value, idx []int) [][]value.Value {
	out := make([][]value.Value, len(idx))
	for i, j := range idx {
		out[i] = rows[j]
	}
	return out
}
