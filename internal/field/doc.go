// Package field holds the simulation field tensor read from a solver dump.
//
// A dump is a flat stream of floating point tokens that reshapes, row-major,
// into a fixed four-dimensional [Shape]: time steps × rows × columns ×
// channels. Each grid point carries four channels:
//
//	0 - solver node kind (ignored when rendering)
//	1 - X coordinate
//	2 - Y coordinate
//	3 - scalar value (temperature)
//
// The [Tensor] is built once by [Load] and never mutated afterwards. A single
// time slice is exposed through [Frame], which also adapts itself to gonum's
// plotter.GridXYZ via [Frame.Grid].
package field
