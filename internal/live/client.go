package live

import (
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/IvanREAL05/control-actividades-sub000/internal/dto"
)

const (
	writeWait      = 10 * time.Second
	silencioMax    = 60 * time.Second // cooperative idle timeout
	pingPeriod     = (silencioMax * 9) / 10
	maxMessageSize = 4 * 1024
	sendBuffer     = 256
)

var clientIDCounter atomic.Uint64

// mensajeControl is the small ping/pong frame clients exchange.
type mensajeControl struct {
	Tipo string `json:"tipo"`
}

// Client is one dashboard connection subscribed to a single class channel.
// Frames flow hub → send channel → writePump; any send error closes the
// connection and removes the client from the registry.
type Client struct {
	id      uint64
	idClase uint
	hub     *Hub
	conn    *websocket.Conn
	logger  *zap.Logger

	// mu guards send against a queue racing a close: every producer goes
	// through queue, every close through closeSend.
	mu     sync.Mutex
	send   chan []byte
	closed bool
}

// NewClient wraps an accepted websocket connection for a class channel.
func NewClient(hub *Hub, conn *websocket.Conn, idClase uint, logger *zap.Logger) *Client {
	return &Client{
		id:      clientIDCounter.Add(1),
		idClase: idClase,
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		logger:  logger,
	}
}

// Start launches the read and write pumps.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

// queue enqueues a frame without blocking. Reports false when the client is
// already closed or its buffer is full.
func (c *Client) queue(frame []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// closeSend closes the outbound queue exactly once.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// readPump consumes client traffic. Any message resets the idle deadline;
// an application-level ping gets an immediate pong.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unsubscribe(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(silencioMax)); err != nil {
		return
	}

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Warn("cierre inesperado de websocket", zap.Uint64("id_cliente", c.id), zap.Error(err))
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(silencioMax))

		var msg mensajeControl
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Tipo == dto.TipoPing {
			pong, _ := json.Marshal(mensajeControl{Tipo: dto.TipoPong})
			c.queue(pong)
		}
	}
}

// writePump delivers queued frames and pings a silent client periodically.
// A closed send channel (eviction or shutdown) sends the close frame.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			ping, _ := json.Marshal(mensajeControl{Tipo: dto.TipoPing})
			if err := c.conn.WriteMessage(websocket.TextMessage, ping); err != nil {
				return
			}
		}
	}
}
