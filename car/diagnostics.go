package car

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/menuka400/vision-guided-smart-car-system/car/hardware"
)

// RunDiagnostics spins each motor forward then backward in MotorID order so a
// miswired motor can be spotted on the bench and its correction flipped in
// the config. Blocks until the whole sequence has run.
func (c *Car) RunDiagnostics(step time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	log.Printf("running motor diagnostics, step %v", step)

	for i := 0; i < hardware.NumMotors; i++ {
		m := c.motors[hardware.MotorID(i)]
		log.Printf("testing motor %d (%v)", i, m.ID)

		m.Rotate(hardware.Forward)
		c.sleep(step)
		m.Rotate(hardware.Stop)
		c.sleep(step / 2)

		m.Rotate(hardware.Backward)
		c.sleep(step)
		m.Rotate(hardware.Stop)
		c.sleep(step / 2)
	}

	log.Print("motor diagnostics complete")
}
