// Package network links remote viewers to the scene over websockets. The
// scene never waits on a viewer: frames go out through bounded queues and
// pointer input comes back through a channel.
package network

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/hexfield/internal/network/packets"
)

// Frame is the set of packets produced by one scene frame, sent in order.
type Frame [][]byte

// Input is one pointer packet received from a viewer.
type Input struct {
	Viewer  uuid.UUID
	Pointer packets.PointerInput
}

// Hub tracks connected viewers and fans frames out to them.
type Hub struct {
	mu      sync.RWMutex
	viewers map[uuid.UUID]*Viewer

	inputs     chan Input
	sendBuffer int
	log        *zap.Logger
}

// NewHub creates a hub whose viewers queue up to sendBuffer frames.
func NewHub(sendBuffer int, log *zap.Logger) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = 1
	}
	return &Hub{
		viewers:    make(map[uuid.UUID]*Viewer),
		inputs:     make(chan Input, 64),
		sendBuffer: sendBuffer,
		log:        log,
	}
}

// Inputs returns the channel of pointer input from all viewers.
func (h *Hub) Inputs() <-chan Input {
	return h.inputs
}

// Len returns the number of connected viewers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.viewers)
}

// register adds v. New viewers start stale so the next tick sends them a
// full snapshot.
func (h *Hub) register(v *Viewer) {
	v.stale.Store(true)

	h.mu.Lock()
	h.viewers[v.ID] = v
	n := len(h.viewers)
	h.mu.Unlock()

	h.log.Info("viewer joined", zap.Stringer("viewer", v.ID), zap.Int("viewers", n))
}

func (h *Hub) unregister(v *Viewer) {
	h.mu.Lock()
	delete(h.viewers, v.ID)
	n := len(h.viewers)
	h.mu.Unlock()

	h.log.Info("viewer left", zap.Stringer("viewer", v.ID), zap.Int("viewers", n))
}

// Broadcast queues frame for every viewer that is up to date. A viewer
// whose queue is full drops the frame and becomes stale.
func (h *Hub) Broadcast(frame Frame) {
	if len(frame) == 0 {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, v := range h.viewers {
		if v.stale.Load() {
			continue
		}
		if !v.enqueue(frame) {
			v.stale.Store(true)
			h.log.Debug("viewer lagging, frame dropped", zap.Stringer("viewer", v.ID))
		}
	}
}

// Resync queues a full snapshot for every stale viewer, built on demand.
// Viewers whose queue is still full stay stale. It returns the number of
// viewers resynced.
func (h *Hub) Resync(snapshot func() Frame) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var frame Frame
	n := 0
	for _, v := range h.viewers {
		if !v.stale.Load() {
			continue
		}
		if frame == nil {
			frame = snapshot()
		}
		if v.enqueue(frame) {
			v.stale.Store(false)
			n++
		}
	}
	return n
}

// Stale returns the ids of viewers waiting for a snapshot.
func (h *Hub) Stale() []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var ids []uuid.UUID
	for id, v := range h.viewers {
		if v.stale.Load() {
			ids = append(ids, id)
		}
	}
	return ids
}
