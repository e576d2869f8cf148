package server

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/df07/go-raytracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by recording the messages of one render
type WebLogger struct {
	renderID string
	mu       sync.Mutex
	messages []ConsoleMessage
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string) *WebLogger {
	return &WebLogger{renderID: renderID}
}

var _ core.Logger = (*WebLogger)(nil)

// Printf implements core.Logger interface. Render workers call it concurrently.
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	// Also write to stdout for server logs
	fmt.Printf("[%s] %s", wl.renderID, message)

	wl.mu.Lock()
	defer wl.mu.Unlock()
	wl.messages = append(wl.messages, ConsoleMessage{
		Message:   strings.TrimRight(message, "\n"),
		Timestamp: time.Now(),
		Level:     "info",
	})
}

// Messages returns a copy of the recorded messages
func (wl *WebLogger) Messages() []ConsoleMessage {
	wl.mu.Lock()
	defer wl.mu.Unlock()
	return append([]ConsoleMessage(nil), wl.messages...)
}
