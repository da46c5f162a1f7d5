package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"fair_rps/internal/fairness"
	"fair_rps/internal/ws"

	"github.com/gorilla/websocket"
)

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func main() {
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	url := fmt.Sprintf("ws://127.0.0.1:%s/ws/play?preset=rpsls", port)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	var commit ws.CommitPayload
	expect(conn, ws.MsgCommit, &commit)
	log.Printf("round %d committed: %s", commit.Round, commit.HMAC)

	if err := conn.WriteJSON(ws.Message{Type: ws.MsgMove, Payload: ws.MovePayload{Index: 1}}); err != nil {
		log.Fatalf("send move: %v", err)
	}

	var res ws.ResultPayload
	expect(conn, ws.MsgResult, &res)
	log.Printf("you: %s computer: %s outcome: %s", res.UserMove, res.ComputerMove, res.Outcome)

	ok, err := fairness.Verify(res.Key, res.ComputerMove, commit.HMAC)
	if err != nil {
		log.Fatalf("verify: %v", err)
	}
	if !ok {
		log.Fatalf("HMAC mismatch: key=%s move=%s hmac=%s", res.Key, res.ComputerMove, commit.HMAC)
	}
	log.Println("commitment verified")

	var next ws.CommitPayload
	expect(conn, ws.MsgCommit, &next)
	_ = conn.WriteJSON(ws.Message{Type: ws.MsgExit})
	expect(conn, ws.MsgBye, nil)
}

func expect(conn *websocket.Conn, typ string, into any) {
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg envelope
	if err := conn.ReadJSON(&msg); err != nil {
		log.Fatalf("read %s: %v", typ, err)
	}
	if msg.Type != typ {
		log.Fatalf("expected %s, got %s: %s", typ, msg.Type, msg.Payload)
	}
	if into != nil {
		if err := json.Unmarshal(msg.Payload, into); err != nil {
			log.Fatalf("decode %s: %v", typ, err)
		}
	}
}
