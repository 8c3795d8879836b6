// Package viz hosts a ball session in the terminal.
//
// Balls are painted onto a braille [Canvas] through [Surface], which
// implements render.Surface. [Model] is the Bubble Tea program for one
// session and [App] is a preset picker in front of it.
//
// # Key Bindings
//
//	Mouse  - Moving pushes nearby balls, clicking a ball opens the color menu
//	1 2 3  - Commit red, green or blue to the selected ball
//	Esc    - Close the color menu
//	Space  - Pause/Resume simulation
//	R      - Reset to initial state
//	T      - Cycle color themes
//	?      - Show help overlay
package viz
