// Package gen enumerates configurations. The argument stream produces
// the distinct argument tuples a construction admits over a
// configuration; the generator drives a breadth-first expansion over
// an iteration budget, canonicalizing each candidate and deduplicating
// by canonical key.
//
// Both are lazy: the generator does no work until pulled, and stops
// producing when the last permitted depth drains.
package gen
