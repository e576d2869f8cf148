package core

// Logger receives progress and statistics from scene construction and rendering.
// Render workers call Printf concurrently, so implementations must be goroutine safe.
type Logger interface {
	Printf(format string, args ...interface{})
}
