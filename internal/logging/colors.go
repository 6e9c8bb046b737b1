package logging

import "github.com/fatih/color"

// Colors are suppressed automatically when the output is not a terminal
// (see color.NoColor).
var (
	colorTimestamp = color.New(color.FgWhite)

	colorError = color.New(color.FgRed, color.Bold)
	colorWarn  = color.New(color.FgRed)
	colorInfo  = color.New(color.Reset)
	colorDebug = color.New(color.FgGreen)
	colorTrace = color.New(color.FgYellow)
)
