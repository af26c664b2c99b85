package parameter

// Camera ratchet thresholds as a fraction of the playfield
// The camera holds at zero until the rocket passes the threshold, then keeps the rocket pinned to it
const (
	// CameraFollowX is the horizontal fraction of width the rocket may reach before the view scrolls
	CameraFollowX = 0.85

	// CameraFollowY is the vertical fraction of height the rocket may climb to before the view scrolls
	CameraFollowY = 0.35
)
