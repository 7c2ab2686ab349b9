package model

// Position is a point in world space. Used only for transfer range
// checks between inventory owners.
type Position struct {
	X, Y, Z float64
}

// DistanceSq returns the squared distance to another position.
func (p Position) DistanceSq(o Position) float64 {
	dx, dy, dz := p.X-o.X, p.Y-o.Y, p.Z-o.Z
	return dx*dx + dy*dy + dz*dz
}

// Owner is the back-reference an inventory may hold to the entity that
// owns it. The second return is false when the owner has no world
// position (e.g. a bank tab), which makes it always in range.
type Owner interface {
	Position() (Position, bool)
}
