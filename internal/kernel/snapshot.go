package kernel

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sort"
)

// SnapshotVersion is bumped whenever the wire layout of Snapshot changes.
// Adapted from internal/ipc/protocol.go's ProtocolVersion field, carried
// here as the versioning strategy for the snapshot format itself (§6).
const SnapshotVersion uint16 = 1

// ShipSnapshot is one ship entry in a Snapshot (§6: "{handle, team, class,
// position, velocity, heading, angular_velocity, health}").
type ShipSnapshot struct {
	Handle          Handle
	Team            int32
	Class           ShipClass
	Position        Vec2
	Velocity        Vec2
	Heading         float64
	AngularVelocity float64
	Health          float64
}

// BulletSnapshot is one bullet entry in a Snapshot.
type BulletSnapshot struct {
	Handle   Handle
	Team     int32
	Position Vec2
	Velocity Vec2
}

// Snapshot is the deterministic, versioned wire format emitted at
// configurable cadence for renderer/replay consumers (§6).
type Snapshot struct {
	Version uint16
	Tick    uint64
	Status  Status
	Ships   []ShipSnapshot
	Bullets []BulletSnapshot
	Lines   []Line
}

// Snapshot captures the current world state. Ships and bullets are sorted
// by ascending handle index so that two runs that reach the same world
// state always serialize to the same bytes (P1).
func (w *World) Snapshot(status Status) Snapshot {
	snap := Snapshot{
		Version: SnapshotVersion,
		Tick:    w.TickCount,
		Status:  status,
		Lines:   append([]Line(nil), w.Lines...),
	}

	w.Ships.Each(func(h Handle, s *Ship) {
		snap.Ships = append(snap.Ships, ShipSnapshot{
			Handle: h, Team: s.Team, Class: s.Data.Class,
			Position: s.Position, Velocity: s.Velocity,
			Heading: s.Heading, AngularVelocity: s.AngularVelocity,
			Health: s.Health,
		})
	})
	sort.Slice(snap.Ships, func(i, j int) bool { return snap.Ships[i].Handle.Index < snap.Ships[j].Handle.Index })

	w.Bullets.Each(func(h Handle, b *Bullet) {
		snap.Bullets = append(snap.Bullets, BulletSnapshot{Handle: h, Team: b.Team, Position: b.Position, Velocity: b.Velocity})
	})
	sort.Slice(snap.Bullets, func(i, j int) bool { return snap.Bullets[i].Handle.Index < snap.Bullets[j].Handle.Index })

	return snap
}

// Encode serializes the snapshot with gob, matching the wire encoding
// internal/ipc/protocol.go uses for its framed messages.
func (s Snapshot) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeSnapshot deserializes bytes produced by Encode.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Version != SnapshotVersion {
		return Snapshot{}, fmt.Errorf("snapshot version mismatch: got %d, want %d", s.Version, SnapshotVersion)
	}
	return s, nil
}
