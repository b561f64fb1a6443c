package server

import (
	"fmt"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info" or "debug"
}

// WebLogger implements core.Logger by sending messages to a console channel
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
	}
}

func (wl *WebLogger) Infof(format string, args ...interface{}) {
	wl.send("info", format, args...)
}

func (wl *WebLogger) Debugf(format string, args ...interface{}) {
	wl.send("debug", format, args...)
}

// send never blocks; messages are dropped while the channel is full
func (wl *WebLogger) send(level, format string, args ...interface{}) {
	if wl.consoleChan == nil {
		return
	}

	select {
	case wl.consoleChan <- ConsoleMessage{
		Message:   fmt.Sprintf("[%s] %s", wl.renderID, fmt.Sprintf(format, args...)),
		Timestamp: time.Now(),
		Level:     level,
	}:
	default:
	}
}
