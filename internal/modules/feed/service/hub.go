package service

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"signal_bot/pkg/logger"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
)

const (
	sendBuffer = 32
	writeWait  = 5 * time.Second
)

// Message — то, что уходит подписчикам /ws.
type Message struct {
	Type string `json:"type"`
	Text string `json:"text"`
	TS   int64  `json:"ts"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub рассылает каждое уведомление всем подключённым websocket-клиентам.
// Медленный клиент с забитым буфером отключается, остальных не блокирует.
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS апгрейдит соединение и регистрирует клиента.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writePump(c)
	go h.readPump(c)
	return nil
}

func (h *Hub) writePump(c *client) {
	defer func() { _ = c.conn.Close() }()

	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.remove(c)
			return
		}
	}
}

// readPump нужен только чтобы заметить закрытие со стороны клиента.
func (h *Hub) readPump(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.remove(c)
			return
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// Broadcast не блокируется.
func (h *Hub) Broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			logger.Warn("[FEED] client too slow, dropping")
			h.removeLocked(c)
		}
	}
}

func (h *Hub) Send(msg string) {
	data, err := sonic.Marshal(Message{Type: "notification", Text: msg, TS: time.Now().Unix()})
	if err != nil {
		logger.Error("[FEED] marshal: %v", err)
		return
	}
	h.Broadcast(data)
}

func (h *Hub) Sendf(format string, args ...any) {
	h.Send(fmt.Sprintf(format, args...))
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close отключает всех клиентов.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.removeLocked(c)
	}
}
