package pwm

// MockChip keeps channel state in memory. It backs the -sim mode and stands
// in for real hardware in tests.
type MockChip struct {
	Freq    map[int]uint
	MaxDuty map[int]uint32
	Duty    map[int]uint32

	// Writes records every Write in order, for tests that care about
	// sequencing rather than final state.
	Writes []MockWrite
}

type MockWrite struct {
	Channel int
	Duty    uint32
}

func NewMockChip() *MockChip {
	return &MockChip{
		Freq:    make(map[int]uint),
		MaxDuty: make(map[int]uint32),
		Duty:    make(map[int]uint32),
	}
}

func (c *MockChip) Configure(channel int, freqHz uint, maxDuty uint32) error {
	if freqHz == 0 {
		return ErrZeroFrequency
	}
	c.Freq[channel] = freqHz
	c.MaxDuty[channel] = maxDuty
	c.Duty[channel] = 0
	return nil
}

func (c *MockChip) Write(channel int, duty uint32) error {
	max, ok := c.MaxDuty[channel]
	if !ok {
		return ErrChannelUnconfigured
	}
	if duty > max {
		return ErrDutyOutOfRange
	}
	c.Duty[channel] = duty
	c.Writes = append(c.Writes, MockWrite{Channel: channel, Duty: duty})
	return nil
}
