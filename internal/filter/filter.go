// Package filter strips unwanted fields from vCard records and rejects
// records without a phone number.
package filter

import (
	"fmt"

	"github.com/vcftools/vcf/internal/vcard"
)

// Class is the disposition of a single field.
type Class int

const (
	// ClassKeep passes the field through unchanged. Unknown prefixes
	// default to keep: cleaning must never guess at field semantics.
	ClassKeep Class = iota

	// ClassDrop removes the field together with its continuation lines.
	ClassDrop

	// ClassPhone keeps the field and marks the record as having a phone.
	ClassPhone
)

// String returns the class name for logging.
func (c Class) String() string {
	switch c {
	case ClassKeep:
		return "keep"
	case ClassDrop:
		return "drop"
	case ClassPhone:
		return "phone"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

// Classify assigns a disposition to a field using only the configured
// prefix sets. Phone classification is checked first; Validate forbids
// drop prefixes that overlap the phone prefix, so for any valid Config
// the order cannot change the outcome.
func (c Config) Classify(f vcard.Field) Class {
	if f.HasPrefix(c.PhonePrefix) {
		return ClassPhone
	}
	for _, token := range c.DropPrefixes {
		if f.HasPrefix(token) {
			return ClassDrop
		}
	}
	return ClassKeep
}

// Filter applies configured rules to whole records.
type Filter struct {
	cfg Config
}

// New returns a Filter for the given rules.
func New(cfg Config) (*Filter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid filter configuration: %w", err)
	}
	return &Filter{cfg: cfg}, nil
}

// Config returns the rules this filter applies.
func (f *Filter) Config() Config {
	return f.cfg
}

// Apply filters one record. It returns the filtered copy, the number of
// fields removed, and whether the record survives. A record with no
// phone field does not survive (the filtered copy is nil). The input
// record is never modified.
func (f *Filter) Apply(rec *vcard.Record) (*vcard.Record, int, bool) {
	out := &vcard.Record{Fields: make([]vcard.Field, 0, len(rec.Fields))}
	removed := 0
	hasPhone := false

	for _, fld := range rec.Fields {
		switch f.cfg.Classify(fld) {
		case ClassDrop:
			removed++
		case ClassPhone:
			hasPhone = true
			out.Append(fld)
		default:
			out.Append(fld)
		}
	}

	if !hasPhone {
		return nil, removed, false
	}
	return out, removed, true
}
