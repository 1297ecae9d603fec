package live

import (
	"sync"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/IvanREAL05/control-actividades-sub000/internal/dto"
)

// Hub is the per-class fan-out registry: class id → set of subscribers.
// Registration, removal, and fan-out are all serialized under the write
// lock; the send channel itself is only touched through Client.queue and
// Client.closeSend, so an eviction can never race a delivery in flight.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[uint]map[*Client]bool
	logger *zap.Logger
}

// NewHub creates an empty registry.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		rooms:  make(map[uint]map[*Client]bool),
		logger: logger,
	}
}

// Subscribe registers the client on its class channel with the snapshot as
// its first queued frame. The snapshot is built under the write lock, so an
// event published while the subscription is in flight is either already in
// the snapshot or delivered after it; nothing falls in between. A snapshot
// error leaves the client unregistered.
func (h *Hub) Subscribe(c *Client, snapshot func() ([]byte, error)) error {
	h.mu.Lock()
	frame, err := snapshot()
	if err != nil {
		h.mu.Unlock()
		return err
	}
	room, ok := h.rooms[c.idClase]
	if !ok {
		room = make(map[*Client]bool)
		h.rooms[c.idClase] = room
	}
	room[c] = true
	c.queue(frame)
	total := len(room)
	h.mu.Unlock()

	h.logger.Info("suscriptor registrado",
		zap.Uint("id_clase", c.idClase),
		zap.Uint64("id_cliente", c.id),
		zap.Int("suscriptores", total),
	)
	return nil
}

// Unsubscribe removes the client and drops its class entry when empty.
// Safe to call more than once for the same client.
func (h *Hub) Unsubscribe(c *Client) {
	h.mu.Lock()
	room, ok := h.rooms[c.idClase]
	if ok && room[c] {
		delete(room, c)
		c.closeSend()
		if len(room) == 0 {
			delete(h.rooms, c.idClase)
		}
	}
	h.mu.Unlock()

	if ok {
		h.logger.Info("suscriptor eliminado",
			zap.Uint("id_clase", c.idClase),
			zap.Uint64("id_cliente", c.id),
		)
	}
}

// Publish serializes the event once and delivers it to every current
// subscriber of the class. A subscriber that cannot keep up is evicted;
// its failure never blocks the other deliveries.
func (h *Hub) Publish(idClase uint, evento *dto.EventoClase) {
	frame, err := json.Marshal(evento)
	if err != nil {
		h.logger.Error("serializar evento", zap.Error(err))
		return
	}

	h.mu.Lock()
	room := h.rooms[idClase]
	var caidos []*Client
	for c := range room {
		if !c.queue(frame) {
			caidos = append(caidos, c)
		}
	}
	for _, c := range caidos {
		delete(room, c)
		c.closeSend()
	}
	if room != nil && len(room) == 0 {
		delete(h.rooms, idClase)
	}
	h.mu.Unlock()

	for _, c := range caidos {
		h.logger.Warn("suscriptor sin capacidad, expulsado",
			zap.Uint("id_clase", idClase),
			zap.Uint64("id_cliente", c.id),
		)
	}
}

// Subscribers reports how many clients watch a class.
func (h *Hub) Subscribers(idClase uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[idClase])
}

// Shutdown closes every subscriber. Used during graceful server stop.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	cerrados := 0
	for idClase, room := range h.rooms {
		for c := range room {
			delete(room, c)
			c.closeSend()
			cerrados++
		}
		delete(h.rooms, idClase)
	}

	h.logger.Info("canal en vivo detenido", zap.Int("suscriptores_cerrados", cerrados))
}
