// Package report collects the diagnostics produced while loading a
// workbook or rendering documents. A Collector is passed explicitly into
// every load/render call and inspected by the caller afterwards; there is
// no ambient global sink.
package report

import (
	"fmt"
	"log/slog"
	"sync"
)

type Kind string

const (
	KindInfo      Kind = "info"
	KindWarn      Kind = "warn"
	KindError     Kind = "error"
	KindCodeError Kind = "codeError"
)

type Message struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Collector accumulates messages in order and mirrors them to a logger.
// One collector may be shared by concurrent renderers.
type Collector struct {
	logger *slog.Logger

	mu       sync.Mutex
	messages []Message
}

func NewCollector(logger *slog.Logger) *Collector {
	return &Collector{logger: logger}
}

func (c *Collector) record(kind Kind, text string) {
	c.mu.Lock()
	c.messages = append(c.messages, Message{Kind: kind, Text: text})
	c.mu.Unlock()
}

func (c *Collector) Info(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	c.record(KindInfo, text)
	c.logger.Info(text)
}

func (c *Collector) Warn(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	c.record(KindWarn, text)
	c.logger.Warn(text)
}

// Error records a user-facing data problem.
func (c *Collector) Error(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	c.record(KindError, text)
	c.logger.Error(text)
}

// CodeError records a defect in this program, as opposed to a problem in
// the input data.
func (c *Collector) CodeError(err error) {
	c.record(KindCodeError, err.Error())
	c.logger.Error("internal error", slog.Any("error", err))
}

func (c *Collector) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Collector) MessagesOf(kind Kind) []Message {
	var out []Message
	for _, m := range c.Messages() {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}
