// Package grid provides the integer geometry of a sheet: points, inclusive
// rectangles, regions of disjoint rectangles and the structural shift
// transform used by row/column insertion and removal.
//
// Coordinates are 1-indexed. A Rect is inclusive on all four edges, so the
// single cell B3 is Rect{Left: 2, Top: 3, Right: 2, Bottom: 3}. Any rect with
// a coordinate below 1, or with Left > Right or Top > Bottom, is empty; the
// zero Rect is therefore empty.
package grid
