// Package types holds the small shared vocabulary of stylekit: typed errors
// with stable categories and the coordinate limits of a sheet grid.
//
// Design goals:
//   - Typed errors with stable categories (range/config/state) so callers can
//     branch on intent rather than text.
//   - Limits are values, not globals, so small grids can be used in tests.
//
// This package has no dependencies beyond the standard library.
package types
