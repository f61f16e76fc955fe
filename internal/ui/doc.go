// Package ui provides the terminal interface for vinquery.
//
// # Overview
//
// The package has two entry points that share one set of Lipgloss styles:
//
//   - Run starts an interactive Bubble Tea screen where VINs are typed,
//     decoded, and rendered one at a time.
//   - RenderReport renders the outcome of a single nhtsa.Query as a bordered
//     panel. The one-shot CLI path prints it directly.
//
// # Package Structure
//
//   - app.go: Model, Update/View loop, and Run
//   - keys.go: key bindings and help.KeyMap implementation
//   - report.go: vehicle and failure panels
//   - theme.go: palettes, derived styles, and theme cycling
//
// # Event Flow
//
//  1. Enter normalizes the input and checks it locally with vin.Validate.
//     A failed check shows a warning but the VIN is still sent as typed.
//  2. A tea.Cmd runs Query.Get off the update loop while a spinner ticks.
//  3. The finished query arrives as a message and is rendered by
//     RenderReport with the current theme.
//
// Theme changes and the last decoded VIN are written to the preferences file
// when Options.PrefsPath is set.
//
// # Key Bindings
//
//   - enter: Decode the VIN in the input
//   - ctrl+l: Clear the input and the last report
//   - ctrl+t: Cycle theme
//   - esc or ctrl+c: Exit
package ui
