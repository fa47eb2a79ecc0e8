package main

import "github.com/charmbracelet/harmonica"

// Keyboard scrolling speed in world units per second, matching the edge
// scrolling speed of the mouse.
const (
	scrollSpeedX = 1400
	scrollSpeedZ = 2400
)

// ScrollAxis tracks the camera's keyboard scroll velocity along one axis
// with spring decay.
type ScrollAxis struct {
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // internal spring velocity (for animating Velocity toward 0)
}

// NewScrollAxis creates an axis with a harmonica spring for smooth velocity decay
func NewScrollAxis(fps int) ScrollAxis {
	return ScrollAxis{
		// Frequency 6.0 stops a released key quickly, damping 1.0 = critically damped (no overshoot)
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

// Update returns the distance covered in dt seconds and decays velocity
// toward 0 using the spring.
func (a *ScrollAxis) Update(dt float64) float64 {
	d := a.Velocity * dt
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
	return d
}

// ScrollState holds both horizontal scroll axes.
type ScrollState struct {
	X, Z ScrollAxis
}

func NewScrollState(fps int) *ScrollState {
	return &ScrollState{X: NewScrollAxis(fps), Z: NewScrollAxis(fps)}
}

// Push sets the velocity of the axes a key points along. Key repeats keep
// the camera moving; the spring stops it once they end.
func (s *ScrollState) Push(dx, dz float64) {
	if dx != 0 {
		s.X.Velocity = dx * scrollSpeedX
	}
	if dz != 0 {
		s.Z.Velocity = dz * scrollSpeedZ
	}
}

// Update advances both axes and returns the pan for this frame.
func (s *ScrollState) Update(dt float64) [2]float64 {
	return [2]float64{s.X.Update(dt), s.Z.Update(dt)}
}
