// Package gc removes range-index entries that cannot affect any query.
//
// Mutations enqueue the entries intersecting the rect they touched. The
// host drives the collector one candidate at a time, either directly with
// Step or through Tick, which throttles steps to one per configured delay.
// Nothing runs in the background.
//
// A candidate is deleted when one of these holds:
//
//  1. Dangling: it references a named style the style manager no longer
//     resolves.
//  2. Default at the bottom: it is a Default marker and no older entry
//     intersects its rect.
//  3. Neutral delta at the bottom: it is a zero Indentation or Precision
//     delta and no older entry intersects its rect.
//  4. Shadowed: a newer entry whose rect contains the candidate's rect
//     overrides it completely. A Default marker shadows anything. A plain
//     attribute is also shadowed by a newer entry of the same kind, or by a
//     named-style reference whose own attributes define that kind.
//     Indentation, Precision, named-style references and Default markers
//     are only shadowed by a Default marker.
//
// Each rule leaves the composed style of every cell unchanged.
package gc
