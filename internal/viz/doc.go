// Package viz draws a running field configuration in the terminal.
//
// The live view is a Bubble Tea program:
//
//   - [Model]: steps a [sim.Session] and renders its contours and charges
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//   - [Viewport]: maps simulation coordinates onto a canvas
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset fields and time
//	F     - Toggle field lines
//	T     - Cycle color themes
//	+/-   - Scale contour levels
//	?     - Show help overlay
//	Q     - Quit
package viz
