// Package visualizer ties the interpolation pipeline together.
//
// A [Visualizer] samples the target field at construction time, builds the
// evaluation grid, and on every call to [Visualizer.InterpolateAndPlot] fits
// a fresh cubic interpolant and hands the resulting [Scene] to a [Renderer]:
//
//	v, err := visualizer.New(100, 100)
//	if err != nil {
//	    return err
//	}
//	return v.InterpolateAndPlot(gui.NewWindow(logger))
//
// Samples and grid are owned by the visualizer and never change after New.
package visualizer
