package comms

import (
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/menuka400/vision-guided-smart-car-system/car"
)

// gesture and tracking vocabularies as posted by the vision system
var gestureCodes = map[string]int{
	"left":  car.CmdHandLeftRaised,
	"right": car.CmdHandRightRaised,
	"both":  car.CmdHandBothRaised,
	"none":  car.CmdHandNoneRaised,
}

var trackingCodes = map[string]int{
	"track_left":   car.CmdTrackLeft,
	"track_right":  car.CmdTrackRight,
	"track_center": car.CmdTrackCenter,
}

// Conductor fans commands from every transport - the websocket UI, the HTTP
// gesture/tracking endpoints and the MQTT bridge - into the single drivetrain
// and pushes a state snapshot back out to connected UI clients after each
// dispatch. There is no arbitration between sources; last command wins.
type Conductor struct {
	Device car.Drivetrain

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	updates chan car.State
}

func NewConductor(device car.Drivetrain) *Conductor {
	return &Conductor{
		Device:  device,
		clients: make(map[*websocket.Conn]bool),
		updates: make(chan car.State, 8),
	}
}

// ProcessCommand drives one textual command code end to end.
func (c *Conductor) ProcessCommand(value string) {
	c.Device.ProcessMovement(value)
	c.queueUpdate()
}

// ProcessGesture maps a hand gesture onto its command code. An unknown
// gesture stops the car; the return value reports whether it was recognised.
func (c *Conductor) ProcessGesture(gesture string) bool {
	code, ok := gestureCodes[gesture]
	if !ok {
		log.Printf("unknown gesture %q, stopping", gesture)
		code = car.CmdStop
	}
	c.Device.Dispatch(code)
	c.queueUpdate()
	return ok
}

// ProcessTracking maps a person-tracking action onto its command code, with
// the same stop fallback as gestures.
func (c *Conductor) ProcessTracking(action string) bool {
	code, ok := trackingCodes[action]
	if !ok {
		log.Printf("unknown tracking action %q, stopping", action)
		code = car.CmdStop
	}
	c.Device.Dispatch(code)
	c.queueUpdate()
	return ok
}

// Stop is the fail-safe issued when a control channel drops: losing the
// channel halts the vehicle.
func (c *Conductor) Stop() {
	c.Device.Dispatch(car.CmdStop)
	c.queueUpdate()
}

func (c *Conductor) queueUpdate() {
	select {
	case c.updates <- c.Device.State():
	default:
		// never block a dispatch on a slow UI; a dropped snapshot is stale anyway
	}
}

// AddClient registers a UI websocket for state updates.
func (c *Conductor) AddClient(conn *websocket.Conn) {
	c.mu.Lock()
	c.clients[conn] = true
	c.mu.Unlock()
}

func (c *Conductor) RemoveClient(conn *websocket.Conn) {
	c.mu.Lock()
	delete(c.clients, conn)
	c.mu.Unlock()
}

// UpdateClients pushes dispatched state to every connected UI client.
// Run as a goroutine from main.
func (c *Conductor) UpdateClients() {
	for state := range c.updates {
		c.mu.Lock()
		for conn := range c.clients {
			if err := conn.WriteJSON(state); err != nil {
				log.Printf("dropping client: %v", err)
				conn.Close()
				delete(c.clients, conn)
			}
		}
		c.mu.Unlock()
	}
}
