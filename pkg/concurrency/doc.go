// Package concurrency holds the shared execution primitives of computation
// runtimes: the cooperative termination flag, range partitioning, bounded
// parallel loops, a panic-safe worker pool and atomic scalar arrays.
//
// No primitive here holds a lock longer than one element update.
package concurrency
