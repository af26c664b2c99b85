package engine

import (
	"github.com/lixenwraith/crashx/parameter"
	"github.com/lixenwraith/crashx/vmath"
)

// Camera offsets the world so the rocket stays inside the follow box
// Each axis holds at zero until the rocket first crosses its threshold
type Camera struct {
	Offset vmath.Vec2
}

// Follow updates the offset for the current rocket position
func (c *Camera) Follow(rocket vmath.Vec2, width, height float64) {
	if limit := width * parameter.CameraFollowX; rocket.X > limit {
		c.Offset.X = -rocket.X + limit
	}
	if limit := height * parameter.CameraFollowY; rocket.Y < limit {
		c.Offset.Y = -rocket.Y + limit
	}
}

func (c *Camera) Reset() {
	c.Offset = vmath.Vec2{}
}
