// Package uniqueq provides a generic FIFO queue in which every value appears
// at most once.
//
// A Queue keeps two structures in lockstep: an ordered ring buffer holding
// values in insertion order and a presence set used for O(1) duplicate and
// membership checks. Every mutating method updates both or neither. Push
// ignores values already present; once a value leaves the queue (via Pop,
// Remove or Clear) it may be pushed again.
//
// A Queue is not safe for concurrent use. Callers sharing a queue across
// goroutines must provide their own locking, or use the blockingqueue
// subpackage which does that for them. Mutating a queue while ranging over one
// of its iterators is not supported.
package uniqueq
