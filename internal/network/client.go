package network

import (
	"context"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/Faultbox/hexfield/internal/network/packets"
)

// PacketHandler handles incoming packets.
type PacketHandler func(data []byte) error

// Client is a minimal viewer: it receives host packets and sends pointer
// input. Used by tools and tests.
type Client struct {
	conn     *websocket.Conn
	mu       sync.Mutex
	handlers map[uint16]PacketHandler
}

// Dial connects to a viewer endpoint such as ws://localhost:8080/ws.
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", url, err)
	}
	return &Client{
		conn:     conn,
		handlers: make(map[uint16]PacketHandler),
	}, nil
}

// Close closes the connection with a normal close message.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.conn.Close()
}

// RegisterHandler registers a packet handler.
func (c *Client) RegisterHandler(packetID uint16, handler PacketHandler) {
	c.handlers[packetID] = handler
}

// Send sends one packet to the host.
func (c *Client) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.BinaryMessage, data)
}

// SendPointer sends pointer input to the host.
func (c *Client) SendPointer(p packets.PointerInput) error {
	return c.Send(p.Encode())
}

// ReadPacket blocks for the next binary packet and returns its id.
func (c *Client) ReadPacket() (uint16, []byte, error) {
	for {
		kind, data, err := c.conn.ReadMessage()
		if err != nil {
			return 0, nil, err
		}
		if kind != websocket.BinaryMessage {
			continue
		}
		id, err := packets.PeekID(data)
		if err != nil {
			return 0, nil, err
		}
		return id, data, nil
	}
}

// Process reads one packet and dispatches it to its handler. Packets
// without a handler are skipped.
func (c *Client) Process() (uint16, error) {
	id, data, err := c.ReadPacket()
	if err != nil {
		return 0, err
	}
	if h, ok := c.handlers[id]; ok {
		if err := h(data); err != nil {
			return id, fmt.Errorf("handling packet 0x%04x: %w", id, err)
		}
	}
	return id, nil
}
