package lexer

import "cci/internal/diag"

// ReporterAdapter адаптирует diag.Bag для использования в лексере
type ReporterAdapter struct {
	Bag *diag.Bag
	// Dedup отбрасывает повторы (code+span) до попадания в Bag.
	Dedup bool
}

// Reporter returns a diag.Reporter that forwards diagnostics to the adapter's bag.
func (r *ReporterAdapter) Reporter() diag.Reporter {
	var rep diag.Reporter = &diag.BagReporter{Bag: r.Bag}
	if r.Dedup {
		rep = diag.NewDedupReporter(rep)
	}
	return rep
}
