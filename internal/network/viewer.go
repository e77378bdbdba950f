package network

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/hexfield/internal/network/packets"
)

const (
	// Maximum message size allowed from a viewer.
	maxMessageSize = 512
	// Time allowed to flush the close message.
	closeWait = time.Second
)

// ViewerOptions holds per-connection timing.
type ViewerOptions struct {
	PingInterval time.Duration
	WriteTimeout time.Duration
}

func (o ViewerOptions) withDefaults() ViewerOptions {
	if o.PingInterval <= 0 {
		o.PingInterval = 30 * time.Second
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 10 * time.Second
	}
	return o
}

// Viewer is one connected renderer.
type Viewer struct {
	ID uuid.UUID

	conn  *websocket.Conn
	hub   *Hub
	send  chan Frame
	stale atomic.Bool
	opts  ViewerOptions
	log   *zap.Logger
}

func newViewer(conn *websocket.Conn, hub *Hub, opts ViewerOptions) *Viewer {
	id := uuid.New()
	return &Viewer{
		ID:   id,
		conn: conn,
		hub:  hub,
		send: make(chan Frame, hub.sendBuffer),
		opts: opts.withDefaults(),
		log:  hub.log.With(zap.Stringer("viewer", id)),
	}
}

// enqueue queues f without blocking.
func (v *Viewer) enqueue(f Frame) bool {
	select {
	case v.send <- f:
		return true
	default:
		return false
	}
}

// Serve registers the viewer and runs its read, ping and publish loops
// until the connection fails or ctx is cancelled. A normal close by the
// viewer returns nil.
func (v *Viewer) Serve(ctx context.Context) error {
	v.hub.register(v)
	defer v.hub.unregister(v)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return v.readMessages(groupCtx)
	})
	group.Go(func() error {
		return v.pingPong(groupCtx)
	})
	group.Go(func() error {
		return v.publish(groupCtx)
	})
	group.Go(func() error {
		<-groupCtx.Done()
		v.close()
		return nil
	})

	err := group.Wait()
	if isClosure(err) {
		return nil
	}
	return err
}

// readMessages decodes pointer packets and forwards them to the hub.
// Read errors are permanent and end the connection.
func (v *Viewer) readMessages(ctx context.Context) error {
	pongWait := 2 * v.opts.PingInterval
	v.conn.SetReadLimit(maxMessageSize)
	_ = v.conn.SetReadDeadline(time.Now().Add(pongWait))
	v.conn.SetPongHandler(func(string) error {
		return v.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		kind, data, err := v.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}
		_ = v.conn.SetReadDeadline(time.Now().Add(pongWait))

		if kind != websocket.BinaryMessage {
			continue
		}
		v.handle(ctx, data)
	}
}

func (v *Viewer) handle(ctx context.Context, data []byte) {
	id, err := packets.PeekID(data)
	if err != nil {
		v.log.Debug("bad packet", zap.Error(err))
		return
	}

	switch id {
	case packets.VH_POINTER_INPUT:
		p, err := packets.DecodePointerInput(data)
		if err != nil {
			v.log.Debug("bad pointer packet", zap.Error(err))
			return
		}
		select {
		case v.hub.inputs <- Input{Viewer: v.ID, Pointer: p}:
		case <-ctx.Done():
		default:
			v.log.Debug("input queue full, pointer dropped")
		}
	default:
		v.log.Debug("unknown packet", zap.Uint16("id", id))
	}
}

// pingPong keeps the read deadline alive while the viewer answers pings.
func (v *Viewer) pingPong(ctx context.Context) error {
	pinger := channerics.NewTicker(ctx.Done(), v.opts.PingInterval)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pinger:
			deadline := time.Now().Add(v.opts.WriteTimeout)
			if err := v.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("ping: %w", err)
			}
		}
	}
}

// publish writes queued frames, one binary message per packet.
func (v *Viewer) publish(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case frame := <-v.send:
			for _, msg := range frame {
				if err := v.write(msg); err != nil {
					if ctx.Err() != nil {
						return nil
					}
					return fmt.Errorf("publish: %w", err)
				}
			}
		}
	}
}

func (v *Viewer) write(msg []byte) error {
	if err := v.conn.SetWriteDeadline(time.Now().Add(v.opts.WriteTimeout)); err != nil {
		return err
	}
	return v.conn.WriteMessage(websocket.BinaryMessage, msg)
}

func (v *Viewer) close() {
	_ = v.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(closeWait))
	_ = v.conn.Close()
}

// isClosure reports whether err, possibly wrapped, is an orderly close.
func isClosure(err error) bool {
	var ce *websocket.CloseError
	if !errors.As(err, &ce) {
		return false
	}
	switch ce.Code {
	case websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived:
		return true
	}
	return false
}
