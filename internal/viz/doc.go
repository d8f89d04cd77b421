// Package viz renders interpolation scenes in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Terminal]: a visualizer.Renderer running the full-screen [Model]
//   - [Heatmap]: filled contour plot drawn with half-block cells
//   - [Canvas]: Braille-based dot canvas used for the 3D wireframe
//   - [Camera], [SurfaceMesh]: perspective projection of the surface, shared
//     with the SVG exporter
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Tab   - Cycle contour / surface / cross-section views
//	x y z - Rotate the surface (shift reverses)
//	+ -   - Zoom
//	j k   - Move the cross-section row
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
