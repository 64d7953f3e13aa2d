package car

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/menuka400/vision-guided-smart-car-system/car/hardware"
	"github.com/menuka400/vision-guided-smart-car-system/car/pwm"
)

// Drivetrain is what the transport layers see: fire one command at the car
// and get nothing back. Actuation is fire-and-forget on purpose; there is a
// single uncontested client and no feedback loop to report into.
type Drivetrain interface {
	ProcessMovement(value string)
	Dispatch(code int)
	State() State
}

// State is a snapshot of the last dispatch, pushed to UI clients and the
// MQTT state topic after every command.
type State struct {
	Code       int          `json:"code"`
	Command    string       `json:"command"`
	Directives DirectiveSet `json:"directives"`
	Twist      Twist        `json:"twist"`
}

// Car owns the four motors and converts command codes into directive sets.
// Dispatches run to completion one at a time; a command arriving mid-dispatch
// waits its turn and then simply overwrites the channel state the previous
// one left behind - last command wins, nothing is cancelled.
type Car struct {
	motors      [hardware.NumMotors]*hardware.Motor
	forwardLead time.Duration

	sleep func(time.Duration) // swapped out in tests

	mu   sync.Mutex
	last State
}

// NewCar builds and arms all four motors. The config must have passed
// Validate; every motor is left stopped.
func NewCar(config *CarConfig, chip pwm.Chip) (c *Car, err error) {
	c = &Car{
		forwardLead: config.Lead(),
		sleep:       time.Sleep,
	}

	for i, mc := range config.Motors {
		id := hardware.MotorID(i)
		m := hardware.NewMotor(chip, id, mc.PinPair, mc.Correction)
		if err = m.Configure(config.PWM.Frequency, config.PWM.MaxDuty); err != nil {
			return nil, fmt.Errorf("unable to configure motor %v: %v", id, err)
		}
		c.motors[id] = m
	}

	c.last = State{Code: CmdStop, Command: CommandName(CmdStop), Directives: stopAll}
	return c, nil
}

// ProcessMovement parses one textual command code from a transport layer.
// Anything that does not parse degrades to STOP rather than erroring - a
// garbled control message must never leave the car moving.
func (c *Car) ProcessMovement(value string) {
	code, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		log.Printf("got non-numeric command %q, stopping", value)
		code = CmdStop
	}
	c.Dispatch(code)
}

// Dispatch applies the directive set for one command code. Unknown codes stop
// the car. The call blocks until all four motors are written, including the
// forward-start lead time.
func (c *Car) Dispatch(code int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	set := DirectivesFor(code)
	log.Printf("dispatch %d (%s)", code, CommandName(code))

	switch code {
	case CmdUp, CmdHandLeftRaised:
		c.startForwardSynchronized()
	default:
		for id, d := range set {
			c.motors[id].Rotate(d)
		}
	}

	c.last = State{
		Code:       code,
		Command:    CommandName(code),
		Directives: set,
		Twist:      set.Twist(),
	}
}

// startForwardSynchronized gives the front left motor a fixed head start to
// cover its slower measured spin-up, so the car tracks straight through the
// acceleration transient instead of veering toward the lagging wheel.
func (c *Car) startForwardSynchronized() {
	c.motors[hardware.FrontLeft].Rotate(hardware.Forward)
	c.sleep(c.forwardLead)

	c.motors[hardware.FrontRight].Rotate(hardware.Forward)
	c.motors[hardware.BackRight].Rotate(hardware.Forward)
	c.motors[hardware.BackLeft].Rotate(hardware.Forward)
}

// StopAll is the fail-safe entry used when a control channel drops.
func (c *Car) StopAll() {
	c.Dispatch(CmdStop)
}

// State returns the snapshot of the last dispatch.
func (c *Car) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}
