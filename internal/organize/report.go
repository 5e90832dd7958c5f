package organize

import (
	"time"

	"cubby/internal/category"
	"cubby/internal/classify"
)

// Move records one file placement, planned or executed.
type Move struct {
	Source      string
	Category    category.Name
	Destination string
	Size        int64
	Via         classify.Via
}

// Failure records a file that could not be handled. The rest of the run is
// unaffected.
type Failure struct {
	Source string
	Err    error
}

// Report aggregates everything a run decided and did.
type Report struct {
	Target   string
	Mode     Mode
	RunID    string
	Started  time.Time
	Finished time.Time
	Moves    []Move
	Skipped  []string
	Failures []Failure
}

// CategoryCounts returns how many files landed in each category.
func (r *Report) CategoryCounts() map[category.Name]int {
	counts := make(map[category.Name]int, len(r.Moves))
	for _, move := range r.Moves {
		counts[move.Category]++
	}
	return counts
}

// CategoryBytes sums the moved bytes per category.
func (r *Report) CategoryBytes() map[category.Name]int64 {
	sizes := make(map[category.Name]int64, len(r.Moves))
	for _, move := range r.Moves {
		sizes[move.Category] += move.Size
	}
	return sizes
}

// TotalBytes sums the size of every move in the report.
func (r *Report) TotalBytes() int64 {
	var total int64
	for _, move := range r.Moves {
		total += move.Size
	}
	return total
}

// Elapsed returns the wall-clock duration of the run.
func (r *Report) Elapsed() time.Duration {
	return r.Finished.Sub(r.Started)
}
