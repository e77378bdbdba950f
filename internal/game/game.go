// Package game runs the hex field scene: a fixed-tick loop that feeds
// viewer input into the scene and publishes tile and camera updates.
package game

import (
	"context"
	"fmt"
	"time"

	channerics "github.com/niceyeti/channerics/channels"
	"go.uber.org/zap"

	"github.com/Faultbox/hexfield/internal/config"
	"github.com/Faultbox/hexfield/internal/network"
	"github.com/Faultbox/hexfield/internal/network/packets"
	"github.com/Faultbox/hexfield/pkg/math"
)

// Game is the main loop. Only the goroutine running Run touches the scene.
type Game struct {
	scene *Scene
	hub   *network.Hub
	tick  time.Duration
	log   *zap.Logger

	batch   packets.InstanceBatch
	pointer packets.PointerInput
	click   bool
	frames  uint64
}

// New creates a game publishing scene through hub every tick.
func New(scene *Scene, hub *network.Hub, tick time.Duration, log *zap.Logger) *Game {
	return &Game{
		scene: scene,
		hub:   hub,
		tick:  tick,
		log:   log,
	}
}

// Run steps the scene once per tick until ctx is cancelled.
func (g *Game) Run(ctx context.Context) error {
	g.log.Info("game loop started",
		zap.Int("tiles", g.scene.Field.Len()),
		zap.Duration("tick", g.tick),
	)
	defer func() {
		g.log.Info("game loop stopped", zap.Uint64("frames", g.frames))
	}()

	ticker := channerics.NewTicker(ctx.Done(), g.tick)
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker:
		}
		if ctx.Err() != nil {
			return nil
		}

		now := time.Now()
		delta := float32(now.Sub(last).Seconds())
		last = now

		if err := g.Step(delta); err != nil {
			return err
		}
	}
}

// Step advances one frame by delta seconds and publishes the result.
func (g *Game) Step(delta float32) error {
	g.drainInputs()

	in := FrameInput{
		Delta:      delta,
		HasPointer: g.pointer.Present(),
		NDCX:       g.pointer.NDCX,
		NDCY:       g.pointer.NDCY,
		Aspect:     g.pointer.Aspect,
		Click:      g.click,
	}
	g.click = false

	g.batch.Reset()
	sink := batchSink{batch: &g.batch}
	res, err := g.scene.Frame(in, &sink)
	if err == nil {
		err = sink.err
	}
	if err != nil {
		return fmt.Errorf("frame %d: %w", g.frames, err)
	}
	g.frames++

	if res.Focused {
		g.log.Debug("camera focus",
			zap.Float32("x", res.LookAt.X),
			zap.Float32("z", res.LookAt.Z),
			zap.Ints("slots", g.scene.Selection.Current()),
		)
	}

	frame := network.Frame(g.batch.Encode())
	frame = append(frame, cameraPacket(res))
	g.hub.Broadcast(frame)

	if n := g.hub.Resync(g.snapshot); n > 0 {
		g.log.Debug("viewers resynced", zap.Int("viewers", n))
	}
	return nil
}

// batchSink collects field uploads into an InstanceBatch and keeps the
// first slot the batch rejected.
type batchSink struct {
	batch *packets.InstanceBatch
	err   error
}

func (s *batchSink) SetMatrixAt(slot int, m *math.Mat4) {
	t := m.Translation()
	if err := s.batch.Add(slot, t.X, t.Y, t.Z); err != nil && s.err == nil {
		s.err = err
	}
}

// Frames returns the number of frames stepped.
func (g *Game) Frames() uint64 {
	return g.frames
}

// drainInputs folds all pending pointer packets: the latest position wins
// and any click in between is kept.
func (g *Game) drainInputs() {
	for {
		select {
		case in := <-g.hub.Inputs():
			g.pointer = in.Pointer
			g.click = g.click || in.Pointer.Click()
		default:
			return
		}
	}
}

// snapshot encodes the complete scene state for a viewer that joined or
// fell behind.
func (g *Game) snapshot() network.Frame {
	f := g.scene.Field
	info := packets.FieldInfo{
		Count:      uint16(f.Len()),
		TileSize:   float32(f.Layout().Size),
		TileHeight: g.scene.TileHeight,
	}

	var all packets.InstanceBatch
	sink := batchSink{batch: &all}
	f.UploadAll(&sink)
	if sink.err != nil {
		g.log.Error("snapshot incomplete", zap.Error(sink.err))
	}

	frame := network.Frame{info.Encode()}
	frame = append(frame, all.Encode()...)
	frame = append(frame, cameraPacket(FrameResult{
		Eye:    g.scene.Orbit.Position(),
		LookAt: g.scene.Target.Position(),
	}))
	return frame
}

func cameraPacket(res FrameResult) []byte {
	p := packets.CameraState{
		Eye:    res.Eye.Array(),
		LookAt: res.LookAt.Array(),
	}
	return p.Encode()
}

// Summary describes the scene's field for the HTTP API.
func Summary(cfg *config.Config, s *Scene) network.FieldSummary {
	sum := network.FieldSummary{
		Shape:       cfg.Field.Shape,
		Radius:      cfg.Field.Radius,
		Orientation: cfg.Field.Orientation,
		TileSize:    cfg.Field.TileSize,
		TileHeight:  cfg.Field.TileHeight,
	}
	for _, t := range s.Field.Tiles() {
		q, r := t.Cell.Axial()
		sum.Cells = append(sum.Cells, network.CellSummary{
			Slot: t.ID,
			Q:    q,
			R:    r,
			X:    t.X,
			Z:    t.Z,
		})
	}
	return sum
}
