// Package ui provides semantic text formatting for triflow CLI output.
//
// Formatters render content by role (commands, paths, record state) and
// adapt to the terminal. When colors are available, content is colorized.
// When NO_COLOR is set or the terminal doesn't support colors, text-based
// decorations are used instead.
//
// # Semantic Formatters
//
//	ui.Code.Sprint("triflow tasks add")      // Commands
//	ui.Path.Sprint("tasks.json.enc")         // File paths
//	ui.Success.Sprint("✓")                   // Success indicators
//	ui.Error.Sprint("✗")                     // Error indicators
//	ui.Info.Sprint("→")                      // Hints
//	ui.Highlight.Sprint("Buy milk")          // User values
//	ui.Muted.Sprint("none")                  // De-emphasized text
//
// Task state uses TaskStatus, which returns a fixed-width label so that
// list output stays aligned with and without color.
//
// # Color Behavior
//
// Colors are disabled when NO_COLOR is set (any value) or when fatih/color
// decides the output is not a color-capable terminal. Without color:
//   - Code: `backticks`
//   - Highlight: 'single quotes'
//   - Muted: (parentheses)
//   - Others: no decoration
package ui
