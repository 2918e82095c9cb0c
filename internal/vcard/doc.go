// Package vcard provides line-oriented parsing of vCard streams: content
// lines, records, and block splitting.
//
// # Overview
//
// The package deliberately implements only as much of the vCard grammar
// as record cleaning needs. A stream is segmented into records bounded by
// BEGIN:VCARD/END:VCARD markers, and each line inside a record is split
// into group, name, raw parameter text, and value. Nothing is validated
// beyond that, and raw line text is preserved byte for byte so that kept
// fields round-trip unchanged.
//
// # Parsing Model
//
// A Field is one logical content line:
//
//	item1.TEL;TYPE=CELL:+1 555 0100
//	^^^^^ ^^^ ^^^^^^^^^ ^^^^^^^^^^^
//	group name params    value
//
// Physical lines that continue a previous line travel with their parent
// Field: RFC 6350 folded lines (leading space or tab), and bare payload
// lines without a ':' separator, which some exporters emit for multi-line
// base64 photo data. Removing a Field therefore removes its continuation
// lines too.
//
// # Malformed Input
//
// The Splitter recovers locally and never aborts the scan:
//
//   - content outside any block, including stray END:VCARD markers, is
//     discarded
//   - a BEGIN:VCARD inside an open block discards the open span and
//     starts a fresh record
//   - a block still open at end of input is discarded
//   - blank lines and orphaned continuations inside a block are discarded
//
// DiscardedLines reports how many physical lines recovery threw away.
package vcard
