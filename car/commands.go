package car

import (
	"github.com/menuka400/vision-guided-smart-car-system/car/hardware"
)

// Command codes as sent by the web UI over the drive socket and by the vision
// system through the gesture and tracking endpoints.
const (
	CmdStop      = 0
	CmdUp        = 1
	CmdDown      = 2
	CmdLeft      = 3
	CmdRight     = 4
	CmdUpLeft    = 5
	CmdUpRight   = 6
	CmdDownLeft  = 7
	CmdDownRight = 8
	CmdTurnLeft  = 9
	CmdTurnRight = 10

	// hand gesture commands
	CmdHandLeftRaised  = 11
	CmdHandRightRaised = 12
	CmdHandBothRaised  = 13
	CmdHandNoneRaised  = 14

	// person tracking commands
	CmdTrackLeft   = 15
	CmdTrackRight  = 16
	CmdTrackCenter = 17
)

// DirectiveSet lists one directive per motor in MotorID order
// (front right, back right, front left, back left).
type DirectiveSet [hardware.NumMotors]hardware.Directive

// shorthand for the table below
const (
	fwd  = hardware.Forward
	back = hardware.Backward
	stop = hardware.Stop
)

var (
	stopAll    = DirectiveSet{stop, stop, stop, stop}
	allForward = DirectiveSet{fwd, fwd, fwd, fwd}
)

// commandTable maps each command code to its per-motor directive set. The
// strafe rows counter-rotate the front/back pairs on opposite sides for
// lateral translation, the turn rows counter-rotate left side against right
// side for in-place rotation, and the diagonal rows idle the pair of wheels
// not contributing to that diagonal.
var commandTable = map[int]DirectiveSet{
	CmdStop:      stopAll,
	CmdUp:        allForward,
	CmdDown:      {back, back, back, back},
	CmdLeft:      {fwd, back, back, fwd},
	CmdRight:     {back, fwd, fwd, back},
	CmdUpLeft:    {fwd, stop, stop, fwd},
	CmdUpRight:   {stop, fwd, fwd, stop},
	CmdDownLeft:  {stop, back, back, stop},
	CmdDownRight: {back, stop, stop, back},
	CmdTurnLeft:  {fwd, fwd, back, back},
	CmdTurnRight: {back, back, fwd, fwd},

	CmdHandLeftRaised:  allForward,
	CmdHandRightRaised: {back, back, back, back},
	CmdHandBothRaised:  stopAll,
	CmdHandNoneRaised:  stopAll,

	CmdTrackLeft:   {fwd, fwd, back, back},
	CmdTrackRight:  {back, back, fwd, fwd},
	CmdTrackCenter: stopAll,
}

var commandNames = map[int]string{
	CmdStop:            "STOP",
	CmdUp:              "UP",
	CmdDown:            "DOWN",
	CmdLeft:            "LEFT",
	CmdRight:           "RIGHT",
	CmdUpLeft:          "UP_LEFT",
	CmdUpRight:         "UP_RIGHT",
	CmdDownLeft:        "DOWN_LEFT",
	CmdDownRight:       "DOWN_RIGHT",
	CmdTurnLeft:        "TURN_LEFT",
	CmdTurnRight:       "TURN_RIGHT",
	CmdHandLeftRaised:  "HAND_LEFT_RAISED",
	CmdHandRightRaised: "HAND_RIGHT_RAISED",
	CmdHandBothRaised:  "HAND_BOTH_RAISED",
	CmdHandNoneRaised:  "HAND_NONE_RAISED",
	CmdTrackLeft:       "TRACK_LEFT",
	CmdTrackRight:      "TRACK_RIGHT",
	CmdTrackCenter:     "TRACK_CENTER",
}

// DirectivesFor returns the per-motor directive set for a command code.
// Codes outside the vocabulary fall back to the all-stop set.
func DirectivesFor(code int) DirectiveSet {
	if set, ok := commandTable[code]; ok {
		return set
	}
	return stopAll
}

// CommandName returns the wire name of a code, or UNKNOWN.
func CommandName(code int) string {
	if name, ok := commandNames[code]; ok {
		return name
	}
	return "UNKNOWN"
}

// CodeFor resolves a command by name, for the dev shell.
func CodeFor(name string) (code int, ok bool) {
	for c, n := range commandNames {
		if n == name {
			return c, true
		}
	}
	return CmdStop, false
}

// CommandNamesList returns every known command name, for shell completion.
func CommandNamesList() (names []string) {
	names = make([]string, 0, len(commandNames))
	for _, n := range commandNames {
		names = append(names, n)
	}
	return
}
