package car

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTwist(t *testing.T) {
	Convey("straight commands translate without rotating", t, func() {
		up := DirectivesFor(CmdUp).Twist()
		So(up.X, ShouldAlmostEqual, 0)
		So(up.Y, ShouldAlmostEqual, 1)
		So(up.Yaw, ShouldAlmostEqual, 0)

		down := DirectivesFor(CmdDown).Twist()
		So(down.Y, ShouldAlmostEqual, -1)
		So(down.Yaw, ShouldAlmostEqual, 0)
	})

	Convey("strafe commands are pure lateral translation", t, func() {
		left := DirectivesFor(CmdLeft).Twist()
		So(left.X, ShouldAlmostEqual, -1)
		So(left.Y, ShouldAlmostEqual, 0)
		So(left.Yaw, ShouldAlmostEqual, 0)

		right := DirectivesFor(CmdRight).Twist()
		So(right.X, ShouldAlmostEqual, 1)
		So(right.Y, ShouldAlmostEqual, 0)
		So(right.Yaw, ShouldAlmostEqual, 0)
	})

	Convey("turn commands are pure rotation", t, func() {
		left := DirectivesFor(CmdTurnLeft).Twist()
		So(left.X, ShouldAlmostEqual, 0)
		So(left.Y, ShouldAlmostEqual, 0)
		So(left.Yaw, ShouldAlmostEqual, 1)

		right := DirectivesFor(CmdTurnRight).Twist()
		So(right.Yaw, ShouldAlmostEqual, -1)
	})

	Convey("diagonals run two wheels at half the translation", t, func() {
		upLeft := DirectivesFor(CmdUpLeft).Twist()
		So(upLeft.X, ShouldAlmostEqual, -0.5)
		So(upLeft.Y, ShouldAlmostEqual, 0.5)
		So(upLeft.Yaw, ShouldAlmostEqual, 0)

		downRight := DirectivesFor(CmdDownRight).Twist()
		So(downRight.X, ShouldAlmostEqual, 0.5)
		So(downRight.Y, ShouldAlmostEqual, -0.5)
		So(downRight.Yaw, ShouldAlmostEqual, 0)
	})

	Convey("stop is a zero twist", t, func() {
		So(stopAll.Twist(), ShouldResemble, Twist{})
	})
}
