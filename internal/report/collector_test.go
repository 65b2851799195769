package report

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollector() *Collector {
	return NewCollector(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCollectorRecordsInOrder(t *testing.T) {
	c := newTestCollector()
	c.Info("loaded %d meetings", 3)
	c.Warn("zoom room without link: %s", "Room B")
	c.Error("missing individual: %s", "bob-jones")
	c.CodeError(errors.New("boom"))

	require.Len(t, c.Messages(), 4)
	assert.Equal(t, Message{Kind: KindInfo, Text: "loaded 3 meetings"}, c.Messages()[0])
	assert.Equal(t, Message{Kind: KindWarn, Text: "zoom room without link: Room B"}, c.Messages()[1])

	warns := c.MessagesOf(KindWarn)
	require.Len(t, warns, 1)
	assert.Equal(t, "zoom room without link: Room B", warns[0].Text)
	assert.Len(t, c.MessagesOf(KindCodeError), 1)
}

// Concurrent renderers share one collector, so recording from multiple
// goroutines must not lose messages.
func TestCollectorConcurrentRecording(t *testing.T) {
	const goroutines = 8
	const perGoroutine = 100

	c := newTestCollector()
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				c.Warn("worker %d message %d", g, i)
			}
		}(g)
	}
	wg.Wait()

	assert.Len(t, c.Messages(), goroutines*perGoroutine)
	assert.Len(t, c.MessagesOf(KindWarn), goroutines*perGoroutine)
}
