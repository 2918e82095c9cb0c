package dedup

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/vcftools/vcf/internal/vcard"
)

// Deduplicator tracks the identity keys seen during one run and admits
// only the first record bearing each key. It is single-pass state, not
// safe for concurrent use; every pipeline builds its own.
type Deduplicator struct {
	opts  Options
	caser cases.Caser
	seen  map[string]struct{}
	stats Stats
}

// New returns a Deduplicator with an empty seen-set.
func New(opts Options) (*Deduplicator, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dedup options: %w", err)
	}
	return &Deduplicator{
		opts:  opts,
		caser: cases.Fold(),
		seen:  make(map[string]struct{}),
	}, nil
}

// Key derives the identity key for a record. The empty string means the
// record has no usable identity (keyless).
func (d *Deduplicator) Key(rec *vcard.Record) string {
	var name string
	for _, fieldName := range d.opts.NameFields {
		if v, ok := rec.ValueOf(fieldName); ok && strings.TrimSpace(v) != "" {
			name = v
			break
		}
	}
	phone, _ := rec.FirstValue(d.opts.PhonePrefix)

	namePart := stripSpace(d.caser.String(name))
	phonePart := digitsOnly(phone)

	if namePart == "" {
		return phonePart
	}
	return namePart + keySeparator + phonePart
}

// Admit reports whether rec is the first occurrence of its identity.
// Keyless records are always admitted.
func (d *Deduplicator) Admit(rec *vcard.Record) bool {
	d.stats.Checked++

	key := d.Key(rec)
	if key == "" {
		d.stats.Keyless++
		d.stats.Unique++
		return true
	}
	if _, dup := d.seen[key]; dup {
		d.stats.Duplicates++
		return false
	}
	d.seen[key] = struct{}{}
	d.stats.Unique++
	return true
}

// Stats returns the counters accumulated so far.
func (d *Deduplicator) Stats() Stats {
	return d.stats
}

// Stats counts deduplication outcomes
type Stats struct {
	// Checked is the number of records examined
	Checked int

	// Unique is the number of records admitted (first occurrences)
	Unique int

	// Duplicates is the number of records rejected as repeats
	Duplicates int

	// Keyless is the number of admitted records that had no usable
	// identity; such records are never merged with anything
	Keyless int
}

// Validate checks internal consistency of the counters
func (s Stats) Validate() error {
	if s.Checked < 0 || s.Unique < 0 || s.Duplicates < 0 || s.Keyless < 0 {
		return fmt.Errorf("counters cannot be negative (got %+v)", s)
	}
	if s.Checked != s.Unique+s.Duplicates {
		return fmt.Errorf("checked (%d) does not match unique + duplicates (%d)",
			s.Checked, s.Unique+s.Duplicates)
	}
	if s.Keyless > s.Unique {
		return fmt.Errorf("keyless (%d) cannot exceed unique (%d)", s.Keyless, s.Unique)
	}
	return nil
}
