// Package viz renders solutions in the terminal: lipgloss reports for the
// inspect and bangbang commands and a Bubble Tea browser over the variables.
//
// # Key Bindings
//
//	↑/K, ↓/J - Select variable
//	Tab      - Next bunch (states, adjoints, controls)
//	S        - Toggle smooth/step interpolation
//	T        - Cycle color themes
//	?        - Show help overlay
//	Q        - Quit
package viz
