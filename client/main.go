// Interactive test client for the admiral-undersea server. Speaks the
// binary packet protocol and exposes the crew intents as shell commands.
package main

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	MsgTypeJoinGame          = 101
	MsgTypeSelectTeam        = 102
	MsgTypeSelectRoles       = 103
	MsgTypeStartGame         = 104
	MsgTypeCaptainMove       = 201
	MsgTypeAyeCaptain        = 202
	MsgTypeChargeSystem      = 203
	MsgTypeMarkDamage        = 204
	MsgTypeFireTorpedo       = 205
	MsgTypeSetAutomatedRoles = 206
	MsgTypeSetSystemPriority = 207
)

// send formats and sends a message to the WebSocket server.
func send(c *websocket.Conn, msgID uint16, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	packet := make([]byte, 4+len(data))
	binary.BigEndian.PutUint16(packet[0:2], msgID)
	binary.BigEndian.PutUint16(packet[2:4], uint16(len(data)))
	copy(packet[4:], data)

	return c.WriteMessage(websocket.BinaryMessage, packet)
}

func main() {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	u := url.URL{Scheme: "ws", Host: "localhost:8080", Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	// Print everything the server pushes.
	go func() {
		for {
			_, data, err := c.ReadMessage()
			if err != nil {
				log.Printf("Read error: %v", err)
				return
			}
			if len(data) < 4 {
				continue
			}
			msgID := binary.BigEndian.Uint16(data[0:2])
			fmt.Printf("<< msg %d: %s\n", msgID, data[4:])
		}
	}()

	fmt.Println("Commands: join CODE USERID NAME | team alpha|bravo | roles r1,r2 | start")
	fmt.Println("          move N|S|E|W | aye ROLE | charge SYSTEM | damage SLOT DIR | fire X Y | quit")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "join":
			if len(fields) < 4 {
				fmt.Println("usage: join CODE USERID NAME")
				continue
			}
			userID, _ := strconv.ParseInt(fields[2], 10, 64)
			err = send(c, MsgTypeJoinGame, map[string]interface{}{
				"gameCode": fields[1], "userId": userID, "username": fields[3],
			})
		case "team":
			err = send(c, MsgTypeSelectTeam, map[string]string{"team": fields[1]})
		case "roles":
			err = send(c, MsgTypeSelectRoles, map[string]interface{}{
				"roles": strings.Split(fields[1], ","),
			})
		case "start":
			err = send(c, MsgTypeStartGame, map[string]string{})
		case "move":
			err = send(c, MsgTypeCaptainMove, map[string]string{"direction": fields[1]})
		case "aye":
			err = send(c, MsgTypeAyeCaptain, map[string]string{"role": fields[1]})
		case "charge":
			err = send(c, MsgTypeChargeSystem, map[string]string{"system": fields[1]})
		case "damage":
			if len(fields) < 3 {
				fmt.Println("usage: damage SLOT DIR")
				continue
			}
			err = send(c, MsgTypeMarkDamage, map[string]string{
				"slotId": fields[1], "direction": fields[2],
			})
		case "fire":
			if len(fields) < 3 {
				fmt.Println("usage: fire X Y")
				continue
			}
			x, _ := strconv.Atoi(fields[1])
			y, _ := strconv.Atoi(fields[2])
			err = send(c, MsgTypeFireTorpedo, map[string]interface{}{
				"target": map[string]int{"x": x, "y": y},
			})
		case "quit":
			c.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			time.Sleep(100 * time.Millisecond)
			return
		default:
			fmt.Println("unknown command")
			continue
		}
		if err != nil {
			log.Printf("Send error: %v", err)
		}
	}
	<-interrupt
}
