package absint

import "fmt"

// Metrics counts engine events across a run, mirroring the teacher's
// own absint/metrics.go counters gated behind -metrics.
type Metrics struct {
	BasesCoined    int
	Promotions     int
	Frees          int
	Reuses         int
	Leaks          int
	Diagnostics    int
}

func (m *Metrics) String() string {
	return fmt.Sprintf(
		"bases coined: %d, promotions: %d, reuses: %d, frees: %d, leaks: %d, diagnostics: %d",
		m.BasesCoined, m.Promotions, m.Reuses, m.Frees, m.Leaks, m.Diagnostics,
	)
}
