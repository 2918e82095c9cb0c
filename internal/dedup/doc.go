// Package dedup detects duplicate contact records by normalized identity.
//
// # Overview
//
// Two records are considered the same contact when they agree on a
// derived identity key; the first occurrence wins and later ones are
// discarded. The comparison deliberately uses only the name and the
// first phone number: exporters disagree wildly about everything else
// (notes, labels, photos), and a conservative key means a false merge
// is far less likely than a missed one.
//
// # Identity Keys
//
// The key is namePart + US + phonePart, where:
//
//   - namePart is the first non-blank FN (else N) value, Unicode
//     case-folded with all whitespace removed
//   - phonePart is the first phone field's value with every non-digit
//     stripped, so "+1 (555) 010-0100" and "1-555-010-0100" agree
//   - a record with no usable name keys on the phone part alone
//   - a record with neither is keyless and always admitted
//
// Keys exist only for the duration of one run; nothing is persisted.
package dedup
