package pwm

import (
	"errors"
)

// errors
var (
	ErrZeroFrequency       = errors.New("frequency must be greater than zero")
	ErrChannelUnconfigured = errors.New("channel has not been configured")
	ErrDutyOutOfRange      = errors.New("duty exceeds the configured maximum")
)

// Chip drives a bank of PWM channels. Channel numbering follows the motor
// wiring: motor n owns channels for its IN1 and IN2 terminals. Callers are
// expected to serialize access; implementations do no internal locking.
type Chip interface {
	Configure(channel int, freqHz uint, maxDuty uint32) error
	Write(channel int, duty uint32) error
}
