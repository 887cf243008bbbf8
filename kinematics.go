package gesture

import "math"

// computeKinematics derives motion quantities from the state's Delta and
// Movement. hasInput distinguishes a real sample from a freeze pass
// (cancellation, key release, final up): a freeze pass re-clamps the offset
// but leaves velocity, direction, distance, and axis at their last computed
// values instead of treating the call as new input.
//
// dtMs is the time since the previous sample in milliseconds; velocity is
// only updated for a positive dt.
func computeKinematics(s *State, dtMs float64, hasInput bool) {
	if hasInput {
		s.Distance.X += math.Abs(s.Delta.X)
		s.Distance.Y += math.Abs(s.Delta.Y)

		if s.Delta.X != 0 {
			s.Direction.X = sign(s.Delta.X)
		}
		if s.Delta.Y != 0 {
			s.Direction.Y = sign(s.Delta.Y)
		}

		if dtMs > 0 {
			s.Velocity = Vec2{X: s.Delta.X / dtMs, Y: s.Delta.Y / dtMs}
		}

		// Axis locks on the first decisive accumulated movement and then
		// sticks for the rest of the gesture.
		if s.Axis == AxisNone {
			ax := math.Abs(s.Movement.X)
			ay := math.Abs(s.Movement.Y)
			if ax > ay {
				s.Axis = AxisX
			} else if ay > ax {
				s.Axis = AxisY
			}
		}
	}

	s.Offset = s.Bounds.clamp(Vec2{
		X: s.from.X + s.Movement.X,
		Y: s.from.Y + s.Movement.Y,
	})
}
