// Package analytic implements the numeric geometry kernel: points,
// lines and circles over rounded float64 coordinates, their
// intersections and incidence predicates, and the randomized layout
// generators used to draw the loose objects of a picture.
//
// Every comparison of coordinates goes through rounding. Values are
// stored rounded to Precision decimal places; predicates compare
// derived quantities at the coarser CheckPrecision, so two analytically
// equal objects computed along different construction paths compare
// equal despite accumulated rounding error.
//
// Degenerate inputs to a constructor (coincident points, collinear
// rays, ...) surface ErrAnalyticFailure. A zero-solution intersection
// is not a failure; it is an empty result.
package analytic
