package comms

import (
	"strconv"
	"testing"

	"github.com/Masterminds/semver"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/menuka400/vision-guided-smart-car-system/car"
)

type mockDrivetrain struct {
	codes []int
}

func (m *mockDrivetrain) ProcessMovement(value string) {
	code, err := strconv.Atoi(value)
	if err != nil {
		code = car.CmdStop
	}
	m.Dispatch(code)
}

func (m *mockDrivetrain) Dispatch(code int) {
	m.codes = append(m.codes, code)
}

func (m *mockDrivetrain) State() car.State {
	last := car.CmdStop
	if len(m.codes) > 0 {
		last = m.codes[len(m.codes)-1]
	}
	return car.State{Code: last, Command: car.CommandName(last)}
}

func TestConductor(t *testing.T) {
	Convey("with a conductor over a mock drivetrain", t, func() {
		device := new(mockDrivetrain)
		conductor := NewConductor(device)

		Convey("commands pass straight through", func() {
			conductor.ProcessCommand("4")
			So(device.codes, ShouldResemble, []int{car.CmdRight})
		})

		Convey("gestures map onto their command codes", func() {
			So(conductor.ProcessGesture("left"), ShouldBeTrue)
			So(conductor.ProcessGesture("right"), ShouldBeTrue)
			So(conductor.ProcessGesture("both"), ShouldBeTrue)
			So(conductor.ProcessGesture("none"), ShouldBeTrue)
			So(device.codes, ShouldResemble, []int{
				car.CmdHandLeftRaised,
				car.CmdHandRightRaised,
				car.CmdHandBothRaised,
				car.CmdHandNoneRaised,
			})
		})

		Convey("an unknown gesture stops the car", func() {
			So(conductor.ProcessGesture("jazz_hands"), ShouldBeFalse)
			So(device.codes, ShouldResemble, []int{car.CmdStop})
		})

		Convey("tracking actions map onto their command codes", func() {
			So(conductor.ProcessTracking("track_left"), ShouldBeTrue)
			So(conductor.ProcessTracking("track_right"), ShouldBeTrue)
			So(conductor.ProcessTracking("track_center"), ShouldBeTrue)
			So(device.codes, ShouldResemble, []int{
				car.CmdTrackLeft,
				car.CmdTrackRight,
				car.CmdTrackCenter,
			})
		})

		Convey("an unknown tracking action stops the car", func() {
			So(conductor.ProcessTracking("track_backflip"), ShouldBeFalse)
			So(device.codes, ShouldResemble, []int{car.CmdStop})
		})

		Convey("losing a control channel stops the car", func() {
			conductor.ProcessCommand("1")
			conductor.Stop()
			So(device.codes, ShouldResemble, []int{car.CmdUp, car.CmdStop})
		})

		Convey("each dispatch queues a state update", func() {
			conductor.ProcessCommand("9")
			state := <-conductor.updates
			So(state.Code, ShouldEqual, car.CmdTurnLeft)
			So(state.Command, ShouldEqual, "TURN_LEFT")
		})

		Convey("a full update queue never blocks a dispatch", func() {
			for i := 0; i < 20; i++ {
				conductor.ProcessCommand("1")
			}
			So(len(device.codes), ShouldEqual, 20)
		})
	})
}

func TestVisionVersionGate(t *testing.T) {
	constraint, err := semver.NewConstraint(VISION_VERSION)
	if err != nil {
		t.Fatal(err)
	}
	bridge := &MQTTBridge{constraint: constraint}

	Convey("versions inside the supported range are accepted", t, func() {
		So(bridge.checkVersion("1.0.0"), ShouldBeTrue)
		So(bridge.checkVersion("1.0.7"), ShouldBeTrue)
	})

	Convey("versions outside the supported range are rejected", t, func() {
		So(bridge.checkVersion("0.9.0"), ShouldBeFalse)
		So(bridge.checkVersion("1.1.0"), ShouldBeFalse)
		So(bridge.checkVersion("2.0.0"), ShouldBeFalse)
	})

	Convey("dev builds are allowed through", t, func() {
		So(bridge.checkVersion("DEV"), ShouldBeTrue)
	})

	Convey("garbage is rejected", t, func() {
		So(bridge.checkVersion("not-a-version"), ShouldBeFalse)
	})
}
