package comms

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/semver"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
)

const (
	TopicHello    = "smartcar/hello"
	TopicGesture  = "smartcar/gesture"
	TopicTracking = "smartcar/tracking"
	TopicState    = "smartcar/state"

	// VISION_VERSION is the range of vision clients this bridge will take
	// commands from.
	VISION_VERSION = "~1.0.0"
)

// HelloPayload is the first message a vision client publishes after
// connecting to the broker.
type HelloPayload struct {
	Client  string `json:"client"`
	Version string `json:"version"`
}

// MQTTBridge lets the vision system feed gesture and tracking commands over
// a broker instead of the HTTP endpoints, and mirrors car state out for
// dashboards. Commands are ignored until a client with a supported version
// has said hello.
type MQTTBridge struct {
	conductor  *Conductor
	client     mqtt.Client
	constraint *semver.Constraints
	accepted   bool
}

func NewMQTTBridge(conductor *Conductor, broker string, port int) (b *MQTTBridge, err error) {
	b = &MQTTBridge{conductor: conductor}

	b.constraint, err = semver.NewConstraint(VISION_VERSION)
	if err != nil {
		return
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", broker, port))
	opts.SetClientID("smartcar_onboard")
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(5 * time.Second)
	opts.OnConnect = func(client mqtt.Client) {
		log.Println("connected to MQTT broker")
		client.Subscribe(TopicHello, 1, b.handleHello)
		client.Subscribe(TopicGesture, 0, b.handleGesture)
		client.Subscribe(TopicTracking, 0, b.handleTracking)
	}
	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		log.Printf("MQTT connection lost: %v", err)
		b.accepted = false
		b.conductor.Stop()
	}

	b.client = mqtt.NewClient(opts)
	if token := b.client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}

	return b, nil
}

func (b *MQTTBridge) handleHello(client mqtt.Client, msg mqtt.Message) {
	var hello HelloPayload
	if err := json.Unmarshal(msg.Payload(), &hello); err != nil {
		log.Printf("bad hello payload: %v", err)
		return
	}

	b.accepted = b.checkVersion(hello.Version)
	if b.accepted {
		log.Printf("vision client %q v%s accepted", hello.Client, hello.Version)
	}
}

// checkVersion gates commands on the vision client's reported version so a
// stale detector with an incompatible action vocabulary cannot drive the car.
func (b *MQTTBridge) checkVersion(version string) bool {
	v, err := semver.NewVersion(version)
	if err != nil {
		if version == "DEV" {
			// a dev build on the bench, let it through
			return true
		}
		log.Printf("vision client version %q is not a semver", version)
		return false
	}

	if !b.constraint.Check(v) {
		log.Printf("vision client %s outside supported range %s", version, VISION_VERSION)
		return false
	}
	return true
}

func (b *MQTTBridge) handleGesture(client mqtt.Client, msg mqtt.Message) {
	if !b.accepted {
		log.Print("ignoring gesture from unverified vision client")
		return
	}
	b.conductor.ProcessGesture(string(msg.Payload()))
	b.publishState()
}

func (b *MQTTBridge) handleTracking(client mqtt.Client, msg mqtt.Message) {
	if !b.accepted {
		log.Print("ignoring tracking action from unverified vision client")
		return
	}
	b.conductor.ProcessTracking(string(msg.Payload()))
	b.publishState()
}

func (b *MQTTBridge) publishState() {
	payload, err := json.Marshal(b.conductor.Device.State())
	if err != nil {
		return
	}
	b.client.Publish(TopicState, 0, false, payload)
}
