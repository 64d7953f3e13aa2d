package car

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/menuka400/vision-guided-smart-car-system/car/hardware"
)

// Twist is the chassis motion implied by a directive set: lateral (x, right
// positive) and longitudinal (y, forward positive) translation plus yaw rate
// (counter-clockwise positive). There is no speed control, so magnitudes are
// unit directions, not velocities.
type Twist struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Yaw float64 `json:"yaw"`
}

// wheelForce holds the unit ground-force direction each wheel produces when
// driven forward (X-configured mecanum rollers); wheelPos holds the wheel
// position used for the yaw moment. Both indexed by MotorID.
var (
	wheelForce = [hardware.NumMotors]mgl64.Vec2{
		hardware.FrontRight: {-1, 1},
		hardware.BackRight:  {1, 1},
		hardware.FrontLeft:  {1, 1},
		hardware.BackLeft:   {-1, 1},
	}

	wheelPos = [hardware.NumMotors]mgl64.Vec2{
		hardware.FrontRight: {1, 1},
		hardware.BackRight:  {1, -1},
		hardware.FrontLeft:  {-1, 1},
		hardware.BackLeft:   {-1, -1},
	}
)

// Twist sums each wheel's force contribution and the moment it exerts about
// the chassis center, normalised so a full four-wheel command comes out at
// unit magnitude.
func (s DirectiveSet) Twist() Twist {
	var force mgl64.Vec2
	var moment float64

	for id, d := range s {
		f := wheelForce[id].Mul(float64(d))
		force = force.Add(f)

		p := wheelPos[id]
		moment += p.X()*f.Y() - p.Y()*f.X()
	}

	n := float64(hardware.NumMotors)
	return Twist{
		X:   force.X() / n,
		Y:   force.Y() / n,
		Yaw: moment / (2 * n),
	}
}
