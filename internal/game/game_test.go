package game

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/hexfield/internal/config"
	"github.com/Faultbox/hexfield/internal/engine/camera"
	"github.com/Faultbox/hexfield/internal/engine/picking"
	"github.com/Faultbox/hexfield/internal/game/field"
	"github.com/Faultbox/hexfield/internal/network"
	"github.com/Faultbox/hexfield/internal/network/packets"
	"github.com/Faultbox/hexfield/pkg/hex"
	"github.com/Faultbox/hexfield/pkg/math"
)

type harness struct {
	cfg   *config.Config
	scene *Scene
	hub   *network.Hub
	game  *Game
	ts    *httptest.Server
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := config.Default()
	scene, err := NewScene(cfg)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	hub := network.NewHub(4, zap.NewNop())
	srv := network.NewServer(hub, Summary(cfg, scene), network.ViewerOptions{}, zap.NewNop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return &harness{
		cfg:   cfg,
		scene: scene,
		hub:   hub,
		game:  New(scene, hub, time.Millisecond, zap.NewNop()),
		ts:    ts,
	}
}

func (h *harness) dial(t *testing.T) *network.Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(h.ts.URL, "http") + "/ws"
	c, err := network.Dial(ctx, url)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	waitFor(t, func() bool { return h.hub.Len() == 1 })
	return c
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func expectPacket(t *testing.T, c *network.Client, want uint16) []byte {
	t.Helper()
	id, data, err := c.ReadPacket()
	if err != nil {
		t.Fatalf("ReadPacket: %v", err)
	}
	if id != want {
		t.Fatalf("got packet 0x%04x, want 0x%04x", id, want)
	}
	return data
}

func TestJoiningViewerGetsSnapshot(t *testing.T) {
	h := newHarness(t)
	c := h.dial(t)

	if err := h.game.Step(0.016); err != nil {
		t.Fatalf("Step: %v", err)
	}

	info, err := packets.DecodeFieldInfo(expectPacket(t, c, packets.HV_FIELD_INFO))
	if err != nil {
		t.Fatal(err)
	}
	if info.Count != 37 || info.TileSize != 1 {
		t.Errorf("unexpected field info %+v", info)
	}

	batch, err := packets.DecodeInstanceBatch(expectPacket(t, c, packets.HV_INSTANCE_BATCH))
	if err != nil {
		t.Fatal(err)
	}
	if batch.Len() != 37 {
		t.Errorf("snapshot carries %d instances, want 37", batch.Len())
	}

	cam, err := packets.DecodeCameraState(expectPacket(t, c, packets.HV_CAMERA_STATE))
	if err != nil {
		t.Fatal(err)
	}
	if cam.Eye[1] != 6 {
		t.Errorf("camera eye %v, want height 6", cam.Eye)
	}

	// Nothing animates, so the next frame only carries the camera.
	if err := h.game.Step(0.016); err != nil {
		t.Fatalf("Step: %v", err)
	}
	expectPacket(t, c, packets.HV_CAMERA_STATE)
}

func TestPointerInputSelectsTile(t *testing.T) {
	h := newHarness(t)
	c := h.dial(t)

	// Screen center looks at the center tile.
	err := c.SendPointer(packets.PointerInput{Aspect: 1, Flags: packets.PointerPresent | packets.PointerClick})
	if err != nil {
		t.Fatalf("SendPointer: %v", err)
	}

	tile, _ := h.scene.Field.Tile(0)
	waitFor(t, func() bool {
		if err := h.game.Step(0.016); err != nil {
			t.Fatalf("Step: %v", err)
		}
		return tile.Selected
	})

	if got := h.scene.Selection.Current(); len(got) != 1 || got[0] != 0 {
		t.Errorf("selection = %v, want [0]", got)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	h := newHarness(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := h.game.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if h.game.Frames() == 0 {
		t.Error("expected at least one frame before cancel")
	}
}

func TestSummary(t *testing.T) {
	h := newHarness(t)
	sum := Summary(h.cfg, h.scene)

	if len(sum.Cells) != 37 {
		t.Fatalf("summary has %d cells, want 37", len(sum.Cells))
	}
	if sum.Cells[0].Q != 0 || sum.Cells[0].R != 0 {
		t.Errorf("first cell = %+v, want the center", sum.Cells[0])
	}
	if sum.Cells[1].Q != -1 || sum.Cells[1].R != 1 {
		t.Errorf("second cell = %+v, want the south-west neighbour", sum.Cells[1])
	}
}

func TestNewSceneRejectsOversizedField(t *testing.T) {
	cfg := config.Default()
	cfg.Field.Radius = 148 // 66157 tiles

	if _, err := NewScene(cfg); !errors.Is(err, ErrFieldTooLarge) {
		t.Errorf("NewScene() error = %v, want ErrFieldTooLarge", err)
	}

	cfg.Field.Radius = 147
	scene, err := NewScene(cfg)
	if err != nil {
		t.Fatalf("NewScene(radius 147): %v", err)
	}
	if scene.Field.Len() > packets.MaxSlots {
		t.Errorf("field of %d tiles exceeds %d", scene.Field.Len(), packets.MaxSlots)
	}
}

func TestBatchSinkKeepsFirstError(t *testing.T) {
	var batch packets.InstanceBatch
	sink := batchSink{batch: &batch}

	var m math.Mat4
	m.SetTranslation(1, 0.3, -2)
	sink.SetMatrixAt(3, &m)
	sink.SetMatrixAt(66156, &m)
	sink.SetMatrixAt(70000, &m)

	if !errors.Is(sink.err, packets.ErrSlotRange) || !strings.Contains(sink.err.Error(), "66156") {
		t.Errorf("sink error = %v, want ErrSlotRange for slot 66156", sink.err)
	}
	if batch.Len() != 1 || batch.Instances[0] != (packets.Instance{Slot: 3, X: 1, Y: 0.3, Z: -2}) {
		t.Errorf("batch = %+v, want only slot 3", batch.Instances)
	}
}

func TestStepFailsInsteadOfWrappingSlots(t *testing.T) {
	scene := &Scene{
		Field:      field.New(hex.Origin.Spiral(148), field.DefaultOptions()),
		Target:     camera.NewTarget(camera.DefaultTargetRate),
		Orbit:      camera.NewOrbitCamera(),
		TileHeight: picking.DefaultTileHeight,
		aspect:     1,
	}
	g := New(scene, network.NewHub(4, zap.NewNop()), time.Millisecond, zap.NewNop())

	if err := g.Step(0); !errors.Is(err, packets.ErrSlotRange) {
		t.Errorf("Step() error = %v, want ErrSlotRange", err)
	}
}
