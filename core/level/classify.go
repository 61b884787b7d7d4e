package level

import (
	"fmt"

	"github.com/gaurav-prasanna/lexipipe/core"
)

// Classify resolves a level for every row of table and keeps rows whose level
// ranks at or above threshold. Words missing from ref resolve to C2, the
// hardest level, so they are always kept. Row order is preserved.
func Classify(table core.FrequencyTable, ref *Reference, threshold core.Level) ([]core.LeveledRow, error) {
	if !threshold.Valid() {
		return nil, fmt.Errorf("%w: %q", core.ErrInvalidLevel, threshold)
	}
	minRank := threshold.Rank()

	rows := make([]core.LeveledRow, 0, len(table.Rows))
	for _, r := range table.Rows {
		l := ref.Resolve(r.Word)
		if l.Rank() < minRank {
			continue
		}
		rows = append(rows, core.LeveledRow{Word: r.Word, Count: r.Count, Level: l})
	}
	return rows, nil
}
