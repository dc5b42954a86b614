// Package viz draws isocontours in the terminal.
//
// [Canvas] is a braille pixel grid; [Viewport] maps domain coordinates onto
// it. [Model] is a Bubble Tea program that steps a simulation and redraws
// the contour every tick, and [Picker] chooses a preset to start it with.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	N     - Single step while paused
//	R     - Reset to the initial configuration
//	+/-   - Raise/lower the isolevel
//	I     - Toggle edge interpolation
//	P     - Toggle particle outlines
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
