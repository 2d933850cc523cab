// Package simplify reduces dense, hand drawn boundaries to a smaller set of
// points that keeps the perceived shape, and prepares the result for
// transport.
//
// Two reducers share the same input and output shape and can be swapped:
//
//   - [DouglasPeucker] keeps every point that deviates from its chord by more
//     than a tolerance, optionally after a [Radial] coarsening pass.
//   - [Visvalingam] keeps a fixed number of points, dropping the ones whose
//     effective triangle area is smallest first.
//
// Tolerances for the first reducer are usually derived from the map view with
// a [ToleranceStrategy]. Results can be truncated with [Quantize] and packed
// into a string with [Encode].
//
// Coordinates are planar. Callers project geographic input themselves.
package simplify
