package server

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Hub tracks active rooms by the key players join with. Rooms are created
// on first join and dropped once the last connection leaves.
type Hub struct {
	mu    sync.Mutex
	cfg   Config
	log   *logrus.Logger
	rooms map[string]*Room
}

func NewHub(cfg Config, log *logrus.Logger) *Hub {
	return &Hub{cfg: cfg, log: log, rooms: map[string]*Room{}}
}

func (h *Hub) room(key string) *Room {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.rooms[key]
	if !ok {
		r = newRoom(key, h.cfg, h.log)
		h.rooms[key] = r
	}
	return r
}

func (h *Hub) removeIfEmpty(key string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.rooms[key]
	if !ok {
		return
	}
	if r.Empty() {
		delete(h.rooms, key)
		h.log.WithField("room", key).Info("room closed")
	}
}
