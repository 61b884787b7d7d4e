// Package count aggregates token sequences into frequency tables.
package count

import (
	"cmp"
	"slices"

	"github.com/gaurav-prasanna/lexipipe/core"
)

// Count aggregates tokens by exact key match (lemma when present, otherwise
// surface text). Rows are sorted by count descending; equal counts keep the
// order in which words were first seen.
func Count(seq core.TokenSeq) core.FrequencyTable {
	return CountAll(seq)
}

// CountAll merges several sequences into one table. First-seen order runs
// across the sequences in argument order.
func CountAll(seqs ...core.TokenSeq) core.FrequencyTable {
	index := make(map[string]int)
	var rows []core.FrequencyRow

	for _, seq := range seqs {
		if seq == nil {
			continue
		}
		for tok := range seq {
			key := tok.Key()
			if key == "" {
				continue
			}
			if i, ok := index[key]; ok {
				rows[i].Count++
				continue
			}
			index[key] = len(rows)
			rows = append(rows, core.FrequencyRow{Word: key, Count: 1})
		}
	}

	slices.SortStableFunc(rows, func(a, b core.FrequencyRow) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return core.FrequencyTable{Rows: rows}
}
