package pwm

import (
	"fmt"
)

type channelState struct {
	periodNs uint32
	maxDuty  uint32
}

// SysfsChip on darwin just prints what it would do so the rest of the stack
// can be developed off the vehicle.
type SysfsChip struct {
	base     string
	channels map[int]*channelState
}

func NewSysfsChip(index int) *SysfsChip {
	return &SysfsChip{
		base:     fmt.Sprintf("pwmchip%d", index),
		channels: make(map[int]*channelState),
	}
}

func (c *SysfsChip) Configure(channel int, freqHz uint, maxDuty uint32) error {
	if freqHz == 0 {
		return ErrZeroFrequency
	}
	c.channels[channel] = &channelState{periodNs: uint32(1e9 / freqHz), maxDuty: maxDuty}
	fmt.Printf("%s/pwm%d armed at %dHz\n", c.base, channel, freqHz)
	return nil
}

func (c *SysfsChip) Write(channel int, duty uint32) error {
	ch, ok := c.channels[channel]
	if !ok {
		return ErrChannelUnconfigured
	}
	if duty > ch.maxDuty {
		return ErrDutyOutOfRange
	}
	fmt.Printf("%s/pwm%d <- %d\n", c.base, channel, duty)
	return nil
}
