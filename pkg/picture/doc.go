// Package picture realizes configurations numerically. Each accepted
// configuration is instantiated in several independently randomized
// pictures; the cross-picture consistency contract demands that every
// constructed object agrees across pictures on whether it was
// constructable and whether it coincided with an earlier object.
// Disagreement triggers a bounded rebuild loop with fresh randomness.
package picture
