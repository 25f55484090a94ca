package kernel

import "testing"

// TestSnapshotEncodeDecodeRoundTrip checks a snapshot survives an
// encode/decode cycle with its fields intact.
func TestSnapshotEncodeDecodeRoundTrip(t *testing.T) {
	w := NewWorld(DefaultWorldSize, 1)
	w.AddShip(NewShip(ClassFighter, 0, Vec2{X: 10, Y: 20}, 0, 1, 0))
	w.AddBullet(Bullet{Team: 0, Position: Vec2{X: 5, Y: 5}, Velocity: Vec2{X: 1, Y: 0}, TTL: 1})

	snap := w.Snapshot(Running())
	data, err := snap.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}

	if decoded.Tick != snap.Tick {
		t.Errorf("Tick = %d, want %d", decoded.Tick, snap.Tick)
	}
	if len(decoded.Ships) != 1 || decoded.Ships[0].Position != (Vec2{X: 10, Y: 20}) {
		t.Errorf("Ships = %+v, want one ship at (10,20)", decoded.Ships)
	}
	if len(decoded.Bullets) != 1 {
		t.Errorf("Bullets = %+v, want one bullet", decoded.Bullets)
	}
}

// TestSnapshotVersionMismatchRejected checks DecodeSnapshot refuses a
// payload stamped with a different version.
func TestSnapshotVersionMismatchRejected(t *testing.T) {
	snap := Snapshot{Version: SnapshotVersion + 1}
	data, err := snap.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := DecodeSnapshot(data); err == nil {
		t.Error("expected a version mismatch error, got nil")
	}
}

// TestSnapshotShipsSortedByHandle checks ships/bullets are serialized in
// ascending handle-index order so identical world states always produce
// identical bytes (P1).
func TestSnapshotShipsSortedByHandle(t *testing.T) {
	w := NewWorld(DefaultWorldSize, 1)
	var handles []Handle
	for i := 0; i < 5; i++ {
		handles = append(handles, w.AddShip(NewShip(ClassFighter, 0, Vec2{}, 0, int64(i), 0)))
	}
	// Remove one to create a gap, then add another so arena order and
	// insertion order diverge.
	w.Ships.Remove(handles[2])
	w.AddShip(NewShip(ClassFighter, 0, Vec2{}, 0, 99, 0))

	snap := w.Snapshot(Running())
	for i := 1; i < len(snap.Ships); i++ {
		if snap.Ships[i].Handle.Index <= snap.Ships[i-1].Handle.Index {
			t.Fatalf("ships not in ascending handle order: %+v", snap.Ships)
		}
	}
}
