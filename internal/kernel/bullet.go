package kernel

// Bullet is an instant-hit projectile spawned by a gun.
type Bullet struct {
	Handle   Handle
	Team     int32
	Position Vec2
	Velocity Vec2
	Mass     float64
	Color    string
	TTL      float64 // seconds remaining; removed at <= 0
}

// Update advances the bullet by dt and decrements its TTL. Returns false
// once the bullet should be removed.
func (b *Bullet) Update(dt float64) bool {
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
	b.TTL -= dt
	return b.TTL > 0
}
