// Package runner glues the pipeline: it loads inputs and templates,
// drives the lazy configuration generator, fans accepted
// configurations out to a worker pool for realization, theorem finding
// and filtering, and writes one plain-text report per input.
//
// One goroutine drives the generator onto a bounded channel; workers
// pull from it, each owning its pictures and randomness. Results carry
// the generator sequence number and reports are written in that order,
// so output files are deterministic in content even when workers race.
package runner
