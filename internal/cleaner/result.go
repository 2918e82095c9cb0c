package cleaner

import (
	"fmt"
	"time"
)

// Result summarizes one cleaning run
type Result struct {
	// RunID uniquely identifies this run in logs and run history
	RunID string

	// Source and Destination are the paths as given by the caller.
	// Destination is empty for analyze-only runs.
	Source      string
	Destination string

	// StartedAt is when the run began; Duration covers read through write
	StartedAt time.Time
	Duration  time.Duration

	// BlocksParsed is the number of complete records found in the source
	BlocksParsed int

	// RecordsKept is the number of records that survived to the output
	RecordsKept int

	// RecordsNoPhone is the number of records rejected for lacking a phone
	RecordsNoPhone int

	// DuplicatesRemoved is the number of records rejected as repeats of
	// an earlier record
	DuplicatesRemoved int

	// FieldsRemoved counts fields stripped from the records that were kept
	FieldsRemoved int

	// DiscardedLines counts physical lines thrown away while recovering
	// from malformed spans
	DiscardedLines int
}

// Validate checks internal consistency of the counters
func (r *Result) Validate() error {
	for name, v := range map[string]int{
		"blocks_parsed":      r.BlocksParsed,
		"records_kept":       r.RecordsKept,
		"records_no_phone":   r.RecordsNoPhone,
		"duplicates_removed": r.DuplicatesRemoved,
		"fields_removed":     r.FieldsRemoved,
		"discarded_lines":    r.DiscardedLines,
	} {
		if v < 0 {
			return fmt.Errorf("%s cannot be negative (got %d)", name, v)
		}
	}
	accounted := r.RecordsKept + r.RecordsNoPhone + r.DuplicatesRemoved
	if r.BlocksParsed != accounted {
		return fmt.Errorf("blocks_parsed (%d) does not match kept + no_phone + duplicates (%d)",
			r.BlocksParsed, accounted)
	}
	return nil
}

// String returns a one-line summary for logs
func (r *Result) String() string {
	return fmt.Sprintf("Result{Kept: %d/%d, NoPhone: %d, Duplicates: %d, FieldsRemoved: %d, Discarded: %d}",
		r.RecordsKept, r.BlocksParsed, r.RecordsNoPhone, r.DuplicatesRemoved,
		r.FieldsRemoved, r.DiscardedLines)
}
