package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/roomrelay/server/internal/proto"
)

// Interactive chat client for manual testing. Joins a room, relays stdin
// lines as messages, and renders roster and typing updates. Typing state is
// client-driven: typing-start is sent when a line is being composed and
// typing-stop fires after one second of idle, matching the server's trust
// model.
func main() {
	if err := run(); err != nil {
		log.Printf("ws_chat: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:3001/ws", "WebSocket address")
	user := flag.String("user", "cli-user", "username")
	room := flag.String("room", "general", "room to join")
	flag.Parse()

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(typ string, data any) {
		payload, err := json.Marshal(data)
		if err != nil {
			log.Printf("marshal %s: %v", typ, err)
			return
		}
		if writeErr := wsjson.Write(ctx, conn, proto.Inbound{Type: typ, Data: payload}); writeErr != nil {
			cancel()
			log.Printf("send: %v", writeErr)
		}
	}

	send(proto.InboundTypeJoinRoom, proto.JoinRoomData{RoomID: *room, Username: *user})

	fmt.Printf("Connected to %s as %s in room %s\n", *addr, *user, *room)
	fmt.Println("Type messages and press Enter to send. /leave to leave, Ctrl+C to exit.")

	go func() {
		defer cancel()
		readLoop(ctx, conn, *user)
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/leave":
			send(proto.InboundTypeLeaveRoom, proto.LeaveRoomData{RoomID: *room, Username: *user})
		case line == "/quit":
			stop()
		default:
			send(proto.InboundTypeTypingStart, proto.TypingData{RoomID: *room, User: *user})
			// Sending the message clears typing server-side; the idle
			// timer below covers abandoned input.
			timer := time.AfterFunc(time.Second, func() {
				send(proto.InboundTypeTypingStop, proto.TypingData{RoomID: *room, User: *user})
			})
			send(proto.InboundTypeSendMessage, proto.SendMessageData{RoomID: *room, Message: line, User: *user})
			timer.Stop()
			fmt.Printf("[%s] %s (you)\n", *user, line)
		}
	}

	stop()
	cancel()
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
	return nil
}

func readLoop(ctx context.Context, conn *websocket.Conn, self string) {
	for {
		var outbound struct {
			Type  string          `json:"type"`
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
			Error *proto.Error    `json:"error"`
		}
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			if ctx.Err() == nil {
				log.Printf("read: %v", err)
			}
			return
		}

		switch outbound.Type {
		case proto.OutboundTypeError:
			fmt.Printf("** error: %s (%s)\n", outbound.Error.Msg, outbound.Error.Code)
		case proto.OutboundTypeEvent:
			renderEvent(outbound.Event, outbound.Data, self)
		}
	}
}

func renderEvent(event string, data json.RawMessage, self string) {
	switch event {
	case proto.EventReceiveMessage:
		var msg proto.ReceiveMessageData
		if json.Unmarshal(data, &msg) == nil {
			fmt.Printf("[%s] %s\n", msg.User, msg.Message)
		}
	case proto.EventUserJoined:
		var joined proto.UserJoinedData
		if json.Unmarshal(data, &joined) == nil {
			fmt.Printf("** %s joined (%s)\n", joined.Username, strings.Join(joined.Users, ", "))
		}
	case proto.EventUserLeft:
		var left proto.UserLeftData
		if json.Unmarshal(data, &left) == nil {
			fmt.Printf("** %s left (%s)\n", left.Username, strings.Join(left.Users, ", "))
		}
	case proto.EventRoomUsers:
		var users []string
		if json.Unmarshal(data, &users) == nil {
			fmt.Printf("** users in room: %s\n", strings.Join(users, ", "))
		}
	case proto.EventTypingUpdate:
		var typers []string
		if json.Unmarshal(data, &typers) == nil {
			// The list is unfiltered; drop our own name.
			others := typers[:0:0]
			for _, u := range typers {
				if u != self {
					others = append(others, u)
				}
			}
			if len(others) > 0 {
				fmt.Printf("** typing: %s\n", strings.Join(others, ", "))
			}
		}
	}
}
