// Package rng provides deterministic random number generation for
// picture construction.
//
// # Sub-Seed Derivation
//
// Each picture derives its seed using SHA-256:
//
//	seed_picture = H(masterSeed, label, pictureIndex)
//
// where:
//   - masterSeed: top-level seed for the entire run
//   - label: the consuming configuration's canonical key plus the
//     rebuild attempt number
//   - pictureIndex: the picture's position within its picture set
//
// This ensures:
//  1. Same inputs always produce the same sequence (determinism)
//  2. Different pictures get independent random sequences (isolation)
//  3. Rebuild attempts draw fresh randomness (inconsistency recovery)
//
// # Thread Safety
//
// RNG instances are NOT thread-safe. Each analysis worker derives its
// own instances and never shares them.
package rng
