// Package pitch turns audio into pitch samples: a YIN-style detector, the
// concrete sources (keyboard voice, WAV file, synthetic tone) and the
// single-producer/single-consumer queue that hands samples to the game loop.
package pitch

import (
	"errors"
	"sync/atomic"

	"github.com/vovakirdan/fermata/internal/core"
)

// ErrQueueClosed is returned by Push after Close.
var ErrQueueClosed = errors.New("pitch: queue closed")

// Queue is a bounded SPSC queue. The producer never blocks: when the queue
// is full the newest sample is dropped and counted.
type Queue struct {
	ch      chan core.PitchSample
	closed  atomic.Bool
	dropped atomic.Uint64
}

// NewQueue creates a queue holding up to size samples.
func NewQueue(size int) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{ch: make(chan core.PitchSample, size)}
}

// Push enqueues s without blocking.
func (q *Queue) Push(s core.PitchSample) error {
	if q.closed.Load() {
		return ErrQueueClosed
	}
	select {
	case q.ch <- s:
	default:
		q.dropped.Add(1)
	}
	return nil
}

// Emit is Push with the error discarded, matching registry.Source's emit.
func (q *Queue) Emit(s core.PitchSample) {
	_ = q.Push(s)
}

// Drain appends every queued sample to dst in arrival order.
func (q *Queue) Drain(dst []core.PitchSample) []core.PitchSample {
	for {
		select {
		case s := <-q.ch:
			dst = append(dst, s)
		default:
			return dst
		}
	}
}

// Len returns the number of queued samples.
func (q *Queue) Len() int {
	return len(q.ch)
}

// Dropped returns how many samples were discarded because the queue was full.
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}

// Close rejects further pushes. Queued samples can still be drained.
func (q *Queue) Close() {
	q.closed.Store(true)
}
