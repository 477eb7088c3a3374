// Package viewer shows rendered frames interactively in the terminal.
//
// The Bubble Tea program draws the scalar field as coloured half-block cells
// using the renderer's band colours, or as braille contour lines traced by
// marching squares.
//
// # Key Bindings
//
//	←/→, h/l - Step one frame
//	Home/End - First/last frame
//	Space    - Play/Pause
//	C        - Toggle contour lines
//	T        - Cycle colour themes
//	Q        - Quit
package viewer
