package game

import (
	"errors"
	"fmt"

	"github.com/Faultbox/hexfield/internal/config"
	"github.com/Faultbox/hexfield/internal/engine/camera"
	"github.com/Faultbox/hexfield/internal/engine/picking"
	"github.com/Faultbox/hexfield/internal/game/field"
	"github.com/Faultbox/hexfield/internal/network/packets"
	"github.com/Faultbox/hexfield/pkg/math"
)

// ErrFieldTooLarge is returned by NewScene when the field has more tiles
// than viewer packets can address.
var ErrFieldTooLarge = errors.New("game: field too large")

// FrameInput is the host input for one frame.
type FrameInput struct {
	Delta float32 // Seconds since the last frame

	// Pointer in normalized device coordinates, Y up. Ignored unless
	// HasPointer is set.
	HasPointer bool
	NDCX, NDCY float32
	Aspect     float32 // Viewport width / height
	Click      bool
}

// FrameResult reports what one frame changed.
type FrameResult struct {
	Uploads int   // Slots written to the sink
	Entered []int // Slots that came under the pointer
	Left    []int // Slots that left the pointer
	Focused bool  // Camera target moved to the clicked tiles
	Eye     math.Vec3
	LookAt  math.Vec3
}

// Scene owns all per-frame state of the demo: the tile field, the camera
// and the hover selection. It is not safe for concurrent use.
type Scene struct {
	Field     *field.Field
	Target    *camera.Target
	Orbit     *camera.OrbitCamera
	Selection picking.Selection

	TileHeight float32
	PickMode   picking.Mode
	aspect     float32
}

// NewScene builds a scene from configuration.
func NewScene(cfg *config.Config) (*Scene, error) {
	cells, err := cfg.Field.Cells()
	if err != nil {
		return nil, fmt.Errorf("generating field: %w", err)
	}
	if len(cells) > packets.MaxSlots {
		return nil, fmt.Errorf("%w: %d tiles, limit %d", ErrFieldTooLarge, len(cells), packets.MaxSlots)
	}
	layout, err := cfg.Field.Layout()
	if err != nil {
		return nil, fmt.Errorf("field layout: %w", err)
	}

	mode, err := picking.ParseMode(cfg.Field.PickMode)
	if err != nil {
		return nil, fmt.Errorf("pick mode: %w", err)
	}

	orbit := camera.NewOrbitCamera()
	orbit.Radius = cfg.Camera.OrbitRadius
	orbit.Height = cfg.Camera.OrbitHeight
	orbit.Rate = cfg.Camera.OrbitRate
	orbit.ViewUnit = cfg.Camera.ViewUnit
	orbit.Near = cfg.Camera.Near
	orbit.Far = cfg.Camera.Far

	return &Scene{
		Field: field.New(cells, field.Options{
			Layout:    layout,
			MinHeight: cfg.Animation.MinHeight,
			MaxHeight: cfg.Animation.MaxHeight,
			Rate:      cfg.Animation.Rate,
		}),
		Target:     camera.NewTarget(cfg.Camera.TargetRate),
		Orbit:      orbit,
		TileHeight: cfg.Field.TileHeight,
		PickMode:   mode,
		aspect:     1,
	}, nil
}

// Frame advances the scene by one frame: orbit, pick, hover, click focus,
// tile animation with uploads to sink, then the camera target.
func (s *Scene) Frame(in FrameInput, sink field.Sink) (FrameResult, error) {
	var res FrameResult

	s.SetAspect(in.Aspect)
	s.Orbit.Update(in.Delta)

	var hits []int
	if in.HasPointer {
		if slot, ok := s.PickMode.Pick(s.Ray(in.NDCX, in.NDCY), s.Field, s.TileHeight); ok {
			hits = append(hits, slot)
		}
	}
	s.Selection.Push(hits...)

	res.Entered = s.Selection.Entered()
	res.Left = s.Selection.Left()
	for _, slot := range res.Left {
		if err := s.Field.SetSelected(slot, false); err != nil {
			return res, err
		}
	}
	for _, slot := range res.Entered {
		if err := s.Field.SetSelected(slot, true); err != nil {
			return res, err
		}
	}

	if in.Click && len(s.Selection.Current()) > 0 {
		c, err := s.Field.Centroid(s.Selection.Current())
		if err != nil {
			return res, err
		}
		s.Target.SetPos(c.X, c.Y, c.Z)
		res.Focused = true
	}

	res.Uploads = s.Field.Update(in.Delta, sink)
	s.Target.Update(in.Delta)

	res.Eye = s.Orbit.Position()
	res.LookAt = s.Target.Position()
	return res, nil
}

// Ray returns the world ray under a pointer in normalized device
// coordinates, seen through the current camera and aspect ratio.
func (s *Scene) Ray(ndcX, ndcY float32) picking.Ray {
	return picking.NDCToRay(ndcX, ndcY, s.InverseViewProjection())
}

// InverseViewProjection returns the inverse of the current camera's
// view-projection matrix.
func (s *Scene) InverseViewProjection() math.Mat4 {
	return s.Orbit.ViewProjection(s.Target.Position(), s.aspect).Inverse()
}

// SetAspect records the viewport aspect ratio. Non-positive values are
// ignored.
func (s *Scene) SetAspect(aspect float32) {
	if aspect > 0 {
		s.aspect = aspect
	}
}

// Aspect returns the last viewport aspect ratio seen.
func (s *Scene) Aspect() float32 {
	return s.aspect
}
