package pwm

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type channelState struct {
	periodNs uint32
	maxDuty  uint32
}

// SysfsChip drives PWM channels through the kernel sysfs interface
// (/sys/class/pwm/pwmchipN). Configure exports and arms a channel; Write
// scales the requested duty into nanoseconds of the configured period.
type SysfsChip struct {
	base     string
	channels map[int]*channelState
}

func NewSysfsChip(index int) *SysfsChip {
	return &SysfsChip{
		base:     fmt.Sprintf("/sys/class/pwm/pwmchip%d", index),
		channels: make(map[int]*channelState),
	}
}

func (c *SysfsChip) Configure(channel int, freqHz uint, maxDuty uint32) error {
	if freqHz == 0 {
		return ErrZeroFrequency
	}

	dir := c.channelDir(channel)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := writeAttr(filepath.Join(c.base, "export"), strconv.Itoa(channel)); err != nil {
			return err
		}
	}

	periodNs := uint32(1e9 / freqHz)
	if err := writeAttr(filepath.Join(dir, "period"), strconv.FormatUint(uint64(periodNs), 10)); err != nil {
		return err
	}
	if err := writeAttr(filepath.Join(dir, "duty_cycle"), "0"); err != nil {
		return err
	}
	if err := writeAttr(filepath.Join(dir, "enable"), "1"); err != nil {
		return err
	}

	c.channels[channel] = &channelState{periodNs: periodNs, maxDuty: maxDuty}
	log.Printf("pwm%d armed at %dHz (period %dns)", channel, freqHz, periodNs)
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

	ns := uint64(ch.periodNs) * uint64(duty) / uint64(ch.maxDuty)
	return writeAttr(filepath.Join(c.channelDir(channel), "duty_cycle"), strconv.FormatUint(ns, 10))
}

func (c *SysfsChip) channelDir(channel int) string {
	return filepath.Join(c.base, fmt.Sprintf("pwm%d", channel))
}

func writeAttr(path, value string) error {
	return os.WriteFile(path, []byte(value), 0644)
}
