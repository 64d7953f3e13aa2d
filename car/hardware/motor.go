package hardware

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/menuka400/vision-guided-smart-car-system/car/pwm"
)

// NumMotors is the fixed wheel count of the chassis.
const NumMotors = 4

// MotorID indexes one of the four drive motors.
type MotorID int

const (
	FrontRight MotorID = iota
	BackRight
	FrontLeft
	BackLeft
)

func (m MotorID) String() string {
	switch m {
	case FrontRight:
		return "front_right"
	case BackRight:
		return "back_right"
	case FrontLeft:
		return "front_left"
	case BackLeft:
		return "back_left"
	}
	return fmt.Sprintf("motor(%d)", int(m))
}

// Directive is the logical direction request issued to one motor. The values
// are chosen so that a wiring correction is a plain sign multiplication.
type Directive int

const (
	Forward  Directive = 1
	Backward Directive = -1
	Stop     Directive = 0
)

func (d Directive) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	}
	return "stop"
}

// PinPair holds the two H-bridge input channels driving one motor.
type PinPair struct {
	IN1 int `yaml:"in1"`
	IN2 int `yaml:"in2"`
}

// Motor drives one wheel through a pair of PWM channels. Correction is -1 for
// motors wired with inverted polarity, +1 otherwise; it is fixed at startup
// and applied on every rotation.
type Motor struct {
	ID         MotorID
	Pins       PinPair
	Correction int

	chip    pwm.Chip
	maxDuty uint32
}

// NewMotor binds a motor to its channel pair. An id outside the fixed four is
// a programming defect upstream, never external input, so it panics.
func NewMotor(chip pwm.Chip, id MotorID, pins PinPair, correction int) *Motor {
	if id < FrontRight || id >= NumMotors {
		panic(fmt.Sprintf("motor id %d out of range", int(id)))
	}

	return &Motor{
		ID:         id,
		Pins:       pins,
		Correction: correction,
		chip:       chip,
	}
}

// Configure arms both channels at the given frequency and duty range and
// leaves the motor stopped. Must run before the first Rotate.
func (m *Motor) Configure(freqHz uint, maxDuty uint32) error {
	if err := m.chip.Configure(m.Pins.IN1, freqHz, maxDuty); err != nil {
		return err
	}
	if err := m.chip.Configure(m.Pins.IN2, freqHz, maxDuty); err != nil {
		return err
	}

	m.maxDuty = maxDuty
	m.Rotate(Stop)
	return nil
}

// Rotate applies the wiring correction and drives the channel pair. Anything
// that is not forward or backward after correction stops the motor - braking
// is the safe default, not an error.
func (m *Motor) Rotate(d Directive) {
	corrected := Directive(int(d) * m.Correction)

	var in1, in2 uint32
	switch corrected {
	case Forward:
		in1 = m.maxDuty
	case Backward:
		in2 = m.maxDuty
	}

	if err := m.chip.Write(m.Pins.IN1, in1); err != nil {
		log.Printf("motor %v: IN1 write failed: %v", m.ID, err)
	}
	if err := m.chip.Write(m.Pins.IN2, in2); err != nil {
		log.Printf("motor %v: IN2 write failed: %v", m.ID, err)
	}
}
