package main

import (
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// DriveSocketHandler is the primary control channel: every text frame holds
// one command code. Losing the socket stops the car.
func DriveSocketHandler(w http.ResponseWriter, r *http.Request) {
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Print("upgrade:", err)
		return
	}

	log.Printf("drive client connected from %s", r.RemoteAddr)
	ENV.Conductor.AddClient(c)

	defer func() {
		ENV.Conductor.RemoveClient(c)
		c.Close()
		ENV.Conductor.Stop()
		log.Printf("drive client %s disconnected, car stopped", r.RemoteAddr)
	}()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			log.Println("read:", err)
			break
		}
		if mt != websocket.TextMessage {
			continue
		}

		ENV.Conductor.ProcessCommand(string(message))
	}
}
