package car

import (
	"fmt"
	"io/ioutil"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/menuka400/vision-guided-smart-car-system/car/hardware"
)

// representative defaults for a small DC gearmotor H-bridge
const (
	DefaultFrequency     uint   = 1000
	DefaultMaxDuty       uint32 = 255
	DefaultForwardLeadMs        = 50
	DefaultDiagStepMs           = 500
)

// MotorConfig binds one motor's channel pair and wiring correction. Entries
// appear in MotorID order: front right, back right, front left, back left.
type MotorConfig struct {
	hardware.PinPair `yaml:",inline"`
	Correction       int `yaml:"correction"`
}

type PWMConfig struct {
	Frequency uint   `yaml:"frequency"`
	MaxDuty   uint32 `yaml:"max_duty"`
}

type DiagnosticsConfig struct {
	Enabled bool `yaml:"enabled"`
	StepMs  int  `yaml:"step_ms"`
}

func (d DiagnosticsConfig) Step() time.Duration {
	return time.Duration(d.StepMs) * time.Millisecond
}

type MQTTConfig struct {
	Broker string `yaml:"broker"`
	Port   int    `yaml:"port"`
}

type CarConfig struct {
	Version       int               `yaml:"version"`
	PWM           PWMConfig         `yaml:"pwm"`
	ForwardLeadMs int               `yaml:"forward_lead_ms"`
	Motors        []MotorConfig     `yaml:"motors"`
	Diagnostics   DiagnosticsConfig `yaml:"diagnostics"`
	MQTT          MQTTConfig        `yaml:"mqtt"`
}

// Lead is the head start given to the front left motor on a forward start.
func (c *CarConfig) Lead() time.Duration {
	return time.Duration(c.ForwardLeadMs) * time.Millisecond
}

// LoadConfig reads, defaults and validates a device config. A config that
// fails validation is a startup defect; nothing is silently coerced later.
func LoadConfig(filename string) (*CarConfig, error) {
	raw, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file: %v", err)
	}

	var config CarConfig
	if err = yaml.Unmarshal(raw, &config); err != nil {
		return nil, fmt.Errorf("unable to unmarshal yaml: %v", err)
	}

	config.applyDefaults()
	if err = config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *CarConfig) applyDefaults() {
	if c.PWM.Frequency == 0 {
		c.PWM.Frequency = DefaultFrequency
	}
	if c.PWM.MaxDuty == 0 {
		c.PWM.MaxDuty = DefaultMaxDuty
	}
	if c.ForwardLeadMs == 0 {
		c.ForwardLeadMs = DefaultForwardLeadMs
	}
	if c.Diagnostics.StepMs == 0 {
		c.Diagnostics.StepMs = DefaultDiagStepMs
	}
}

// Validate enforces the fixed four-motor layout: one entry per motor,
// corrections in {-1,+1} and channels disjoint across motors.
func (c *CarConfig) Validate() error {
	if len(c.Motors) != hardware.NumMotors {
		return fmt.Errorf("config: expected %d motor entries, got %d", hardware.NumMotors, len(c.Motors))
	}

	seen := make(map[int]hardware.MotorID)
	for i, mc := range c.Motors {
		id := hardware.MotorID(i)

		if mc.Correction != 1 && mc.Correction != -1 {
			return fmt.Errorf("config: motor %v correction must be -1 or 1, got %d", id, mc.Correction)
		}
		if mc.IN1 == mc.IN2 {
			return fmt.Errorf("config: motor %v uses channel %d for both terminals", id, mc.IN1)
		}

		for _, pin := range []int{mc.IN1, mc.IN2} {
			if prev, ok := seen[pin]; ok {
				return fmt.Errorf("config: channel %d bound to both %v and %v", pin, prev, id)
			}
			seen[pin] = id
		}
	}

	return nil
}
