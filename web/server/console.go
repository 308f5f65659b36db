package server

import (
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"
)

// ConsoleMessage is one log line of a render, returned with format=json
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info" or "warning"
}

// Console collects the log output of a single render. It satisfies core.Logger,
// mirrors every line to the server log and never blocks the renderer: once the
// buffer is full further lines are only counted.
type Console struct {
	renderID string
	messages chan ConsoleMessage
	dropped  atomic.Int64
}

// NewConsole creates a console that buffers up to capacity messages
func NewConsole(renderID string, capacity int) *Console {
	return &Console{
		renderID: renderID,
		messages: make(chan ConsoleMessage, max(capacity, 0)),
	}
}

// Printf implements core.Logger
func (c *Console) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	line := strings.TrimRight(message, "\n")
	log.Printf("[%s] %s", c.renderID, line)

	msg := ConsoleMessage{Message: message, Timestamp: time.Now(), Level: messageLevel(line)}
	select {
	case c.messages <- msg:
	default:
		c.dropped.Add(1)
	}
}

// Messages drains the buffered lines in the order they were logged. When lines
// were dropped a trailing warning says how many.
func (c *Console) Messages() []ConsoleMessage {
	messages := []ConsoleMessage{}
	for {
		select {
		case msg := <-c.messages:
			messages = append(messages, msg)
		default:
			if n := c.dropped.Swap(0); n > 0 {
				messages = append(messages, ConsoleMessage{
					Message:   fmt.Sprintf("%d console messages dropped\n", n),
					Timestamp: time.Now(),
					Level:     "warning",
				})
			}
			return messages
		}
	}
}

func messageLevel(line string) string {
	if strings.HasPrefix(strings.ToLower(line), "warning") {
		return "warning"
	}
	return "info"
}
