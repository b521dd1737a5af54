package main

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"flag"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	MsgTypeJoinRoom      = 101
	MsgTypeLeaveRoom     = 102
	MsgTypeRoll          = 201
	MsgTypeReset         = 202
	MsgTypeUseMitigation = 203
	MsgTypeAcceptMisstep = 204
	MsgTypeShareIntel    = 205
	MsgTypeRoomState     = 301
	MsgTypeToast         = 302
	MsgTypeJoined        = 303
)

// send formats and sends a message to the WebSocket server.
func send(c *websocket.Conn, msgID uint16, data []byte) error {
	packet := make([]byte, 4+len(data))
	binary.BigEndian.PutUint16(packet[0:2], msgID)
	binary.BigEndian.PutUint16(packet[2:4], uint16(len(data)))
	copy(packet[4:], data)

	return c.WriteMessage(websocket.BinaryMessage, packet)
}

func label(msgID uint16) string {
	switch msgID {
	case MsgTypeRoomState:
		return "STATE"
	case MsgTypeToast:
		return "TOAST"
	case MsgTypeJoined:
		return "JOINED"
	default:
		return "RECV"
	}
}

func main() {
	host := flag.String("host", "localhost:31337", "server address")
	room := flag.String("room", "alpha", "room to join")
	name := flag.String("name", "Analyst", "player name")
	flag.Parse()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	u := url.URL{Scheme: "ws", Host: *host, Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	// Read loop
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}
			if len(message) < 4 {
				log.Printf("Received invalid packet of size %d", len(message))
				continue
			}
			msgID := binary.BigEndian.Uint16(message[0:2])
			data := message[4:]
			log.Printf("<- %s: %s", label(msgID), string(data))
		}
	}()

	joinReq, _ := json.Marshal(map[string]string{"roomId": *room, "name": *name})
	log.Printf("Joining room %q as %q...", *room, *name)
	if err := send(c, MsgTypeJoinRoom, joinReq); err != nil {
		log.Println("Write error:", err)
		return
	}

	log.Println("Commands: roll, use <mitigationId>, accept, intel, reset, leave")

	// Write loop
	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-done:
			return
		case <-interrupt:
			log.Println("Interrupt received, closing connection.")
			err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			if err != nil {
				log.Println("Write close error:", err)
			}
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		default:
			text, _ := reader.ReadString('\n')
			text = strings.TrimSpace(text)
			if text == "" {
				continue
			}

			var msgID uint16
			var data []byte
			switch {
			case text == "roll":
				msgID = MsgTypeRoll
			case text == "reset":
				msgID = MsgTypeReset
			case text == "accept":
				msgID = MsgTypeAcceptMisstep
			case text == "intel":
				msgID = MsgTypeShareIntel
			case text == "leave":
				msgID = MsgTypeLeaveRoom
			case strings.HasPrefix(text, "use "):
				msgID = MsgTypeUseMitigation
				data, _ = json.Marshal(map[string]string{"mitigationId": strings.TrimSpace(strings.TrimPrefix(text, "use "))})
			default:
				log.Printf("Unknown command %q", text)
				continue
			}

			if err := send(c, msgID, data); err != nil {
				log.Println("Write error:", err)
				return
			}
			log.Printf("-> SENT: %s", text)
		}
	}
}
