// Package cleaner wires the vCard pipeline together and owns file I/O.
//
// # Pipeline
//
// One run is a single pass over the source file:
//
//	read + sanitize -> split into records -> filter fields -> dedup -> write
//
// The source is read fully into memory (contact files are small), the
// destination is created only after the source has been read, and zero
// surviving records still produce a (empty) destination file. Each run
// gets a fresh Deduplicator, so nothing persists between runs and
// cleaning its own output is a no-op.
//
// Batch mode (CleanAll) runs independent pipelines for several files,
// bounded by a weighted semaphore; within one file processing is always
// strictly sequential and ordered.
package cleaner
