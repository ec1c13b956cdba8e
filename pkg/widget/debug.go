package widget

// DebugMode enables extra protocol checks in MatchWidget. They report through
// errors.ReportContract and never change behavior.
var DebugMode = true

// SetDebugMode enables or disables the debug checks and returns the
// previous mode.
func SetDebugMode(debug bool) bool {
	prev := DebugMode
	DebugMode = debug
	return prev
}
