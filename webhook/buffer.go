package webhook

import "sync"

// DefaultBufferCapacity is the number of ingested events kept in memory
const DefaultBufferCapacity = 200

// Buffer is a fixed-capacity ring of ingested events. Once full, each
// append overwrites the oldest entry.
type Buffer struct {
	mu    sync.Mutex
	ring  []Event
	start int
	size  int
}

// NewBuffer creates a buffer holding at most capacity events
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultBufferCapacity
	}
	return &Buffer{
		ring: make([]Event, capacity),
	}
}

// Append stores ev and returns the number of events now held
func (b *Buffer) Append(ev Event) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	capacity := len(b.ring)
	if b.size < capacity {
		b.ring[(b.start+b.size)%capacity] = ev
		b.size++
		return b.size
	}

	// Overwrite oldest.
	b.ring[b.start] = ev
	b.start = (b.start + 1) % capacity
	return b.size
}

// Recent returns the last n events, oldest first. n is clamped to [0, Len].
func (b *Buffer) Recent(n int) []Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n < 0 {
		n = 0
	}
	if n > b.size {
		n = b.size
	}

	out := make([]Event, 0, n)
	for i := b.size - n; i < b.size; i++ {
		out = append(out, b.ring[(b.start+i)%len(b.ring)])
	}
	return out
}

// Len returns the number of events held
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

// Cap returns the buffer capacity
func (b *Buffer) Cap() int {
	return len(b.ring)
}
