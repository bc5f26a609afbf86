package ui

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Overlay transition constants, in the stiffness/damping/mass form.
const (
	springStiffness = 100.0
	springDamping   = 25.0
	springMass      = 1.0

	springRestPos = 0.002
	springRestVel = 0.01
)

// harmonica takes the same spring as an angular frequency and a damping
// ratio: sqrt(k/m) and c/(2*sqrt(k*m)).
var (
	springFrequency = math.Sqrt(springStiffness / springMass)
	springRatio     = springDamping / (2 * math.Sqrt(springStiffness*springMass))
)

// Spring drives a single value towards Target, one frame per Step.
type Spring struct {
	Pos    float64
	Vel    float64
	Target float64

	motion harmonica.Spring
}

// NewSpring returns the overlay spring at rest on pos, stepped at the frame
// rate of the view.
func NewSpring(pos float64) Spring {
	fps := int(time.Second / frameInterval)
	return Spring{
		Pos:    pos,
		Target: pos,
		motion: harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springRatio),
	}
}

// Step advances the spring by one frame.
func (s *Spring) Step() {
	s.Pos, s.Vel = s.motion.Update(s.Pos, s.Vel, s.Target)
	if s.Settled() {
		s.Pos, s.Vel = s.Target, 0
	}
}

// Settled reports whether the spring is at rest on its target.
func (s Spring) Settled() bool {
	return math.Abs(s.Pos-s.Target) < springRestPos && math.Abs(s.Vel) < springRestVel
}
