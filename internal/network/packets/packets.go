// Package packets defines the binary viewer protocol. All values are
// little-endian; each websocket binary message carries one packet.
package packets

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Packet IDs
const (
	// Host -> Viewer
	HV_FIELD_INFO     uint16 = 0x0101 // Field dimensions
	HV_INSTANCE_BATCH uint16 = 0x0102 // Tile transform uploads
	HV_CAMERA_STATE   uint16 = 0x0103 // Camera eye and look-at point

	// Viewer -> Host
	VH_POINTER_INPUT uint16 = 0x0201 // Pointer position and click
)

var (
	// ErrShortPacket is returned when data is smaller than the packet.
	ErrShortPacket = errors.New("packets: short packet")
	// ErrUnexpectedID is returned when data carries a different packet.
	ErrUnexpectedID = errors.New("packets: unexpected packet id")
	// ErrSlotRange is returned for slots that do not fit the u16 slot field.
	ErrSlotRange = errors.New("packets: slot out of range")
)

// MaxSlots is the largest field tile count FieldInfo can carry. Valid slots
// are 0 to MaxSlots-1.
const MaxSlots = math.MaxUint16

var le = binary.LittleEndian

func putF32(b []byte, v float32) {
	le.PutUint32(b, math.Float32bits(v))
}

func getF32(b []byte) float32 {
	return math.Float32frombits(le.Uint32(b))
}

// PeekID returns the packet id at the start of data.
func PeekID(data []byte) (uint16, error) {
	if len(data) < 2 {
		return 0, fmt.Errorf("%w: %d bytes", ErrShortPacket, len(data))
	}
	return le.Uint16(data), nil
}

func expect(data []byte, id uint16, size int) error {
	got, err := PeekID(data)
	if err != nil {
		return err
	}
	if got != id {
		return fmt.Errorf("%w: 0x%04x, want 0x%04x", ErrUnexpectedID, got, id)
	}
	if len(data) < size {
		return fmt.Errorf("%w: %d bytes, want %d", ErrShortPacket, len(data), size)
	}
	return nil
}

// FieldInfo (HV_FIELD_INFO 0x0101)
type FieldInfo struct {
	Count      uint16  // Instance slots
	TileSize   float32 // Hexagon circumradius
	TileHeight float32
}

// Size returns packet size.
func (p *FieldInfo) Size() int {
	return 12
}

// Encode encodes the packet to bytes.
func (p *FieldInfo) Encode() []byte {
	buf := make([]byte, p.Size())
	le.PutUint16(buf[0:], HV_FIELD_INFO)
	le.PutUint16(buf[2:], p.Count)
	putF32(buf[4:], p.TileSize)
	putF32(buf[8:], p.TileHeight)
	return buf
}

// DecodeFieldInfo parses a FieldInfo packet.
func DecodeFieldInfo(data []byte) (FieldInfo, error) {
	var p FieldInfo
	if err := expect(data, HV_FIELD_INFO, p.Size()); err != nil {
		return p, err
	}
	p.Count = le.Uint16(data[2:])
	p.TileSize = getF32(data[4:])
	p.TileHeight = getF32(data[8:])
	return p, nil
}

// Instance is one slot transform in an InstanceBatch.
type Instance struct {
	Slot    uint16
	X, Y, Z float32
}

const (
	batchHeader  = 6
	instanceSize = 14

	// MaxInstances is the most instances one InstanceBatch packet holds.
	MaxInstances = (0xFFFF - batchHeader) / instanceSize
)

// InstanceBatch (HV_INSTANCE_BATCH 0x0102), variable length:
// id u16, len u16, count u16, count * {slot u16, x f32, y f32, z f32}.
type InstanceBatch struct {
	Instances []Instance
}

// Add appends one slot transform. Slots outside [0, MaxSlots) are rejected
// with ErrSlotRange and leave the batch unchanged.
func (p *InstanceBatch) Add(slot int, x, y, z float32) error {
	if slot < 0 || slot >= MaxSlots {
		return fmt.Errorf("%w: %d", ErrSlotRange, slot)
	}
	p.Instances = append(p.Instances, Instance{Slot: uint16(slot), X: x, Y: y, Z: z})
	return nil
}

// Reset clears the batch, keeping its storage.
func (p *InstanceBatch) Reset() {
	p.Instances = p.Instances[:0]
}

// Len returns the number of instances.
func (p *InstanceBatch) Len() int {
	return len(p.Instances)
}

// Size returns packet size, assuming at most MaxInstances instances.
func (p *InstanceBatch) Size() int {
	return batchHeader + instanceSize*len(p.Instances)
}

// Encode encodes the batch into as many packets as needed to stay within
// MaxInstances per packet. An empty batch encodes to no packets.
func (p *InstanceBatch) Encode() [][]byte {
	var out [][]byte
	for start := 0; start < len(p.Instances); start += MaxInstances {
		end := min(start+MaxInstances, len(p.Instances))
		out = append(out, encodeInstances(p.Instances[start:end]))
	}
	return out
}

func encodeInstances(instances []Instance) []byte {
	size := batchHeader + instanceSize*len(instances)
	buf := make([]byte, size)
	le.PutUint16(buf[0:], HV_INSTANCE_BATCH)
	le.PutUint16(buf[2:], uint16(size))
	le.PutUint16(buf[4:], uint16(len(instances)))

	off := batchHeader
	for _, in := range instances {
		le.PutUint16(buf[off:], in.Slot)
		putF32(buf[off+2:], in.X)
		putF32(buf[off+6:], in.Y)
		putF32(buf[off+10:], in.Z)
		off += instanceSize
	}
	return buf
}

// DecodeInstanceBatch parses one InstanceBatch packet.
func DecodeInstanceBatch(data []byte) (InstanceBatch, error) {
	var p InstanceBatch
	if err := expect(data, HV_INSTANCE_BATCH, batchHeader); err != nil {
		return p, err
	}
	size := int(le.Uint16(data[2:]))
	count := int(le.Uint16(data[4:]))
	if size != batchHeader+instanceSize*count || len(data) < size {
		return p, fmt.Errorf("%w: len %d for %d instances, have %d bytes", ErrShortPacket, size, count, len(data))
	}

	p.Instances = make([]Instance, count)
	off := batchHeader
	for i := range p.Instances {
		p.Instances[i] = Instance{
			Slot: le.Uint16(data[off:]),
			X:    getF32(data[off+2:]),
			Y:    getF32(data[off+6:]),
			Z:    getF32(data[off+10:]),
		}
		off += instanceSize
	}
	return p, nil
}

// CameraState (HV_CAMERA_STATE 0x0103)
type CameraState struct {
	Eye    [3]float32
	LookAt [3]float32
}

// Size returns packet size.
func (p *CameraState) Size() int {
	return 26
}

// Encode encodes the packet to bytes.
func (p *CameraState) Encode() []byte {
	buf := make([]byte, p.Size())
	le.PutUint16(buf[0:], HV_CAMERA_STATE)
	for i := 0; i < 3; i++ {
		putF32(buf[2+4*i:], p.Eye[i])
		putF32(buf[14+4*i:], p.LookAt[i])
	}
	return buf
}

// DecodeCameraState parses a CameraState packet.
func DecodeCameraState(data []byte) (CameraState, error) {
	var p CameraState
	if err := expect(data, HV_CAMERA_STATE, p.Size()); err != nil {
		return p, err
	}
	for i := 0; i < 3; i++ {
		p.Eye[i] = getF32(data[2+4*i:])
		p.LookAt[i] = getF32(data[14+4*i:])
	}
	return p, nil
}

// Pointer flags
const (
	PointerClick   uint8 = 1 << 0 // Primary button pressed this frame
	PointerPresent uint8 = 1 << 1 // Pointer is over the viewport
)

// PointerInput (VH_POINTER_INPUT 0x0201)
type PointerInput struct {
	NDCX, NDCY float32 // Normalized device coordinates, Y up
	Aspect     float32 // Viewport width / height
	Flags      uint8
}

// Size returns packet size.
func (p *PointerInput) Size() int {
	return 15
}

// Click reports whether the click flag is set.
func (p *PointerInput) Click() bool {
	return p.Flags&PointerClick != 0
}

// Present reports whether the pointer is over the viewport.
func (p *PointerInput) Present() bool {
	return p.Flags&PointerPresent != 0
}

// Encode encodes the packet to bytes.
func (p *PointerInput) Encode() []byte {
	buf := make([]byte, p.Size())
	le.PutUint16(buf[0:], VH_POINTER_INPUT)
	putF32(buf[2:], p.NDCX)
	putF32(buf[6:], p.NDCY)
	putF32(buf[10:], p.Aspect)
	buf[14] = p.Flags
	return buf
}

// DecodePointerInput parses a PointerInput packet.
func DecodePointerInput(data []byte) (PointerInput, error) {
	var p PointerInput
	if err := expect(data, VH_POINTER_INPUT, p.Size()); err != nil {
		return p, err
	}
	p.NDCX = getF32(data[2:])
	p.NDCY = getF32(data[6:])
	p.Aspect = getF32(data[10:])
	p.Flags = data[14]
	return p, nil
}
